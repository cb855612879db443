// Command flowgraph reads whitespace-separated (tail head) integer
// pairs from standard input, ingests them into a bounded-memory
// streaming graph store, and writes the resulting approximate
// community partition to communities.dat in the current directory
// (§6).
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flowgraphdb/flowgraph/pkg/config"
	"github.com/flowgraphdb/flowgraph/pkg/engine"
	"github.com/flowgraphdb/flowgraph/pkg/graphstore"
)

var (
	version = "0.1.0"
	commit  = "dev"

	configPath string
)

const outputFile = "communities.dat"

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowgraph",
		Short: "Stream graph edges into a bounded-memory approximate community partition",
		Long: `flowgraph ingests an unbounded stream of (tail head) edge pairs from
standard input under a fixed memory budget, maintaining an approximate
community partition as edges arrive. When the paged adjacency store
fills up, the oldest edge pages are evicted; the community engine sees
the evicted edges but keeps the communities it has already built.

On a clean run it writes the final partition to communities.dat, one
community per line, members as their original external ids.`,
		RunE: runIngest,
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional YAML file overriding the compile-time page/batch tunables")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flowgraph v%s (%s)\n", version, commit)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Printf("flowgraph: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	out, err := os.Create(outputFile)
	if err != nil {
		log.Printf("flowgraph: create %s: %v", outputFile, err)
		os.Exit(1)
	}
	defer out.Close()

	eng := engine.New(out)
	store, err := graphstore.New(cfg, eng)
	if err != nil {
		// InitializationFailure (§7): single-line diagnostic, exit 1.
		log.Printf("flowgraph: initialize graph store: %v", err)
		os.Exit(1)
	}

	ingest(store, os.Stdin)

	if err := store.Close(); err != nil {
		log.Fatalf("flowgraph: close graph store: %v", err)
	}

	log.Printf("flowgraph: done: %d edges ingested, %d communities emitted, %d pages evicted",
		store.NumPushed(), eng.EmittedCommunities(), store.NumEvictedPages())
	return nil
}

// ingest reads whitespace-separated decimal non-negative integers from
// stdin, pairing consecutive tokens as (tail head) undirected edges. A
// trailing unpaired token at end of stream is a MalformedInput (§7)
// and is silently discarded.
func ingest(store *graphstore.Store, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	scanner.Split(bufio.ScanWords)

	var pending uint64
	havePending := false
	var count uint64

	for scanner.Scan() {
		val, err := strconv.ParseUint(scanner.Text(), 10, 64)
		if err != nil {
			continue
		}
		if !havePending {
			pending = val
			havePending = true
			continue
		}

		if err := store.Push(pending, val, 1.0); err != nil {
			log.Fatalf("flowgraph: push failed: %v", err)
		}
		havePending = false
		count++
		if count%10000 == 0 {
			log.Printf("flowgraph: ingested %d edges, pool occupancy %s", count, store.Occupancy())
		}
	}
}
