package matdb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	reg, err := Parse(strings.NewReader(`{"carbon": {"id": 1}, "glass": {"id": 2}}`))
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"carbon", "glass"}, reg.Names())

	id, ok := reg.Lookup("carbon")
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = reg.Lookup("unobtainium")
	assert.False(t, ok)
}

func TestParseIgnoresExtraMaterialProperties(t *testing.T) {
	reg, err := Parse(strings.NewReader(`{"carbon": {"id": 3, "density": 1600, "E11": 135e9}}`))
	require.NoError(t, err)

	id, ok := reg.Lookup("carbon")
	assert.True(t, ok)
	assert.Equal(t, 3, id)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"carbon": `))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matdb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"foam": {"id": 9}}`), 0o644))

	reg, err := Load(path)
	require.NoError(t, err)

	id, ok := reg.Lookup("foam")
	assert.True(t, ok)
	assert.Equal(t, 9, id)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	reg := FromMap(map[string]int{"carbon": 1})
	id, ok := reg.Lookup("carbon")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}
