// Package config holds the compile-time tunables for the streaming graph
// store and community engine: page geometry, batch size, and graph mode.
//
// Example:
//
//	cfg := config.Default()
//	cfg.Mode = config.Directed
//	store, err := graphstore.New(cfg, engine)
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode fixes whether edges are interpreted as undirected or directed at
// construction. It never changes for the lifetime of a store.
type Mode int

const (
	// Undirected edges are symmetric: both endpoints are adjacent to
	// the edge's page, and the adjacency iterator yields both sides.
	Undirected Mode = iota
	// Directed edges are adjacent only from tail to head.
	Directed
)

func (m Mode) String() string {
	if m == Directed {
		return "directed"
	}
	return "undirected"
}

// edgeSize is the on-the-wire size of one Edge record: two uint32 ids.
const edgeSize = 8

// Default page/pool geometry, per §6 of the specification.
const (
	DefaultNumPages  = 1048576
	DefaultPageBytes = 4 * edgeSize
	DefaultBatchSize = 1024
)

// Config bundles the tunables read once at Store construction.
//
// NumPages and PageBytes size the Buffer Pool's single contiguous
// allocation (NumPages * PageBytes bytes, never grown or shrunk).
// BatchSize controls how many pushed edges accumulate before the
// community engine's InsertBatch callback fires.
type Config struct {
	NumPages  int  `yaml:"num_pages"`
	PageBytes int  `yaml:"page_bytes"`
	BatchSize int  `yaml:"batch_size"`
	Mode      Mode `yaml:"-"`
}

// Default returns the compile-time defaults from §6: 1,048,576 pages of
// 4 edges each, batches of 1024, undirected mode.
func Default() Config {
	return Config{
		NumPages:  DefaultNumPages,
		PageBytes: DefaultPageBytes,
		BatchSize: DefaultBatchSize,
		Mode:      Undirected,
	}
}

// PageCapacity returns the number of edges a single page can hold.
func (c Config) PageCapacity() int {
	return c.PageBytes / edgeSize
}

// Validate checks that the tunables can describe at least one edge per
// page and a non-empty batch.
func (c Config) Validate() error {
	if c.NumPages <= 0 {
		return fmt.Errorf("config: num_pages must be > 0, got %d", c.NumPages)
	}
	if c.PageCapacity() < 1 {
		return fmt.Errorf("config: page_bytes must hold at least one edge (%d bytes), got %d", edgeSize, c.PageBytes)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("config: batch_size must be >= 1, got %d", c.BatchSize)
	}
	return nil
}

// Load reads a YAML override file on top of Default(). Fields absent from
// the file keep their default value. This is an additive convenience on
// top of the compile-time defaults §6 requires — it never consults
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	overlay := struct {
		NumPages  *int `yaml:"num_pages"`
		PageBytes *int `yaml:"page_bytes"`
		BatchSize *int `yaml:"batch_size"`
	}{}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if overlay.NumPages != nil {
		cfg.NumPages = *overlay.NumPages
	}
	if overlay.PageBytes != nil {
		cfg.PageBytes = *overlay.PageBytes
	}
	if overlay.BatchSize != nil {
		cfg.BatchSize = *overlay.BatchSize
	}
	return cfg, cfg.Validate()
}
