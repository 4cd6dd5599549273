package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadObservations_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	content := `{"Gram Stain": "Negative", "Shape": "Rod", "Catalase": "Unknown"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	observations, err := LoadObservations(path)
	require.NoError(t, err)

	assert.Equal(t, "Negative", observations["Gram Stain"])
	value, ok := observations.Observed("Shape")
	assert.True(t, ok)
	assert.Equal(t, "Rod", value)
	_, ok = observations.Observed("Catalase")
	assert.False(t, ok)
}

func TestLoadObservations_FileNotFound(t *testing.T) {
	_, err := LoadObservations(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadObservations_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadObservations(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
