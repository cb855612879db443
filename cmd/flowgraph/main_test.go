package main

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraphdb/flowgraph/pkg/config"
	"github.com/flowgraphdb/flowgraph/pkg/engine"
	"github.com/flowgraphdb/flowgraph/pkg/graphstore"
)

func TestIngestPairsConsecutiveTokens(t *testing.T) {
	var out bytes.Buffer
	eng := engine.New(&out)
	cfg := config.Default()
	cfg.BatchSize = 1
	store, err := graphstore.New(cfg, eng)
	require.NoError(t, err)

	ingest(store, strings.NewReader("1 2\n2 3\n3 1\n"))
	require.NoError(t, store.Close())

	fields := strings.Fields(out.String())
	sort.Strings(fields)
	assert.Equal(t, []string{"1", "2", "3"}, fields)
}

func TestIngestDiscardsTrailingUnpairedToken(t *testing.T) {
	var out bytes.Buffer
	eng := engine.New(&out)
	cfg := config.Default()
	store, err := graphstore.New(cfg, eng)
	require.NoError(t, err)

	ingest(store, strings.NewReader("1 2 3"))
	assert.Equal(t, uint64(1), store.NumPushed())
	require.NoError(t, store.Close())
}

func TestIngestSkipsBlankLinesAndWhitespace(t *testing.T) {
	var out bytes.Buffer
	eng := engine.New(&out)
	cfg := config.Default()
	store, err := graphstore.New(cfg, eng)
	require.NoError(t, err)

	ingest(store, strings.NewReader("\n\n  1   2  \n\n"))
	assert.Equal(t, uint64(1), store.NumPushed())
	require.NoError(t, store.Close())
}
