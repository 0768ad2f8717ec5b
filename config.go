package laju

import "github.com/mitchellh/mapstructure"

// Default tunables for a HttpParserGroup, mirroring the fixed constants
// the spec carries for pool size, region chunk size, and the initial
// capacity of the chunk-accumulation fallback buffer.
const (
	DefaultMaxPoolSize                 = 256
	DefaultRegionChunkSize             = 1024
	DefaultChunkBufferInitialCapacity  = 4096
	DefaultMetricsNamespace            = "laju"
)

// Config carries the tunables a HttpParserGroup needs.
type Config struct {
	// MaxPoolSize caps how many parsers the group's free list retains.
	// Requests beyond the cap still get a working parser; it's just
	// never returned to the pool.
	MaxPoolSize int

	// RegionChunkSize is the backing chunk size for each parser's arena
	// allocator.
	RegionChunkSize int

	// ChunkBufferInitialCapacity is the starting capacity of the buffer
	// used to accumulate a chunked body when no on_body_chunk callback
	// is registered.
	ChunkBufferInitialCapacity int

	// MetricsNamespace prefixes every Prometheus collector name when
	// MetricsEnabled is true.
	MetricsNamespace string

	// MetricsEnabled opts a group into exporting pool/parse-outcome
	// metrics via RegisterMetrics.
	MetricsEnabled bool
}

// DefaultConfig returns a Config with pre-tuned defaults suitable for
// most callers:
//   - MaxPoolSize: 256
//   - RegionChunkSize: 1024 bytes
//   - ChunkBufferInitialCapacity: 4096 bytes
//   - MetricsNamespace: "laju"
//   - MetricsEnabled: false
func DefaultConfig() Config {
	return Config{
		MaxPoolSize:                DefaultMaxPoolSize,
		RegionChunkSize:            DefaultRegionChunkSize,
		ChunkBufferInitialCapacity: DefaultChunkBufferInitialCapacity,
		MetricsNamespace:           DefaultMetricsNamespace,
		MetricsEnabled:             false,
	}
}

// LoadMap decodes configuration assembled by the caller (e.g. from
// environment variables or a config file) into cfg, leaving fields
// absent from m untouched.
func (c *Config) LoadMap(m map[string]interface{}) error {
	return mapstructure.Decode(m, c)
}
