package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultNumPages, cfg.NumPages)
	assert.Equal(t, DefaultPageBytes, cfg.PageBytes)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, Undirected, cfg.Mode)
	assert.Equal(t, 4, cfg.PageCapacity())
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsDegenerateTunables(t *testing.T) {
	cases := []Config{
		{NumPages: 0, PageBytes: 32, BatchSize: 1},
		{NumPages: 1, PageBytes: 4, BatchSize: 1},
		{NumPages: 1, PageBytes: 32, BatchSize: 0},
	}
	for _, c := range cases {
		assert.Error(t, c.Validate())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_pages: 4\nbatch_size: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.NumPages)
	assert.Equal(t, 2, cfg.BatchSize)
	assert.Equal(t, DefaultPageBytes, cfg.PageBytes)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "undirected", Undirected.String())
	assert.Equal(t, "directed", Directed.String())
}
