package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHasSaneValues(t *testing.T) {
	p := Default()
	assert.Equal(t, "best-first", p.BranchAndPrice.BBExplorationStrategy)
	assert.True(t, p.BranchAndPrice.MIPHeuristic.Active)
	assert.Equal(t, 1000, p.MWSSMultiplier)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.json")
	err := os.WriteFile(path, []byte(`{"mwss_multiplier": 42, "tabu": {"tenure": 3}}`), 0644)
	assert.NoError(t, err)

	p, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 42, p.MWSSMultiplier)
	assert.Equal(t, int64(3), p.Tabu.Tenure)
	// untouched fields keep their default
	assert.Equal(t, "best-first", p.BranchAndPrice.BBExplorationStrategy)
}

func TestLoadMissingFileIsInputError(t *testing.T) {
	_, err := Load("/nonexistent/params.json")
	assert.Error(t, err)
}
