package laju

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDefaultConfig tests the DefaultConfig function.
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, DefaultMaxPoolSize, config.MaxPoolSize, "DefaultConfig().MaxPoolSize should be 256")
	assert.Equal(t, DefaultRegionChunkSize, config.RegionChunkSize, "DefaultConfig().RegionChunkSize should be 1024")
	assert.Equal(t, DefaultChunkBufferInitialCapacity, config.ChunkBufferInitialCapacity, "DefaultConfig().ChunkBufferInitialCapacity should be 4096")
	assert.Equal(t, "laju", config.MetricsNamespace, "DefaultConfig().MetricsNamespace should be \"laju\"")
	assert.False(t, config.MetricsEnabled, "DefaultConfig().MetricsEnabled should be false")
}

// TestConfigZeroValues tests that a zero-value Config has zero values for all fields.
func TestConfigZeroValues(t *testing.T) {
	var config Config
	assert.Equal(t, 0, config.MaxPoolSize)
	assert.Equal(t, 0, config.RegionChunkSize)
	assert.Equal(t, 0, config.ChunkBufferInitialCapacity)
	assert.Equal(t, "", config.MetricsNamespace)
	assert.False(t, config.MetricsEnabled)
}

// TestConfigLoadMap tests overriding a default Config from a generic map.
func TestConfigLoadMap(t *testing.T) {
	config := DefaultConfig()
	err := config.LoadMap(map[string]interface{}{
		"MaxPoolSize":    64,
		"MetricsEnabled": true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 64, config.MaxPoolSize)
	assert.True(t, config.MetricsEnabled)
	// Fields absent from the map are untouched.
	assert.Equal(t, DefaultRegionChunkSize, config.RegionChunkSize)
}
