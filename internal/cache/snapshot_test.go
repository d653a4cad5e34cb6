package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/chainsight/internal/config"
)

func TestBuildKeyIsDeterministic(t *testing.T) {
	fp := Fingerprint{
		Source:  "/data/supply_chain.csv",
		ModTime: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		Size:    4096,
	}

	assert.Equal(t, BuildKey(fp, "snapshot"), BuildKey(fp, "snapshot"))
	assert.NotEqual(t, BuildKey(fp, "snapshot"), BuildKey(fp, "overview"))

	changed := fp
	changed.Size = 8192
	assert.NotEqual(t, BuildKey(fp, "snapshot"), BuildKey(changed, "snapshot"))
}

func TestNewSnapshotCacheDisabled(t *testing.T) {
	c, err := NewSnapshotCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	_, ok, err := c.Get(context.Background(), Fingerprint{}, "snapshot")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, c.Set(context.Background(), Fingerprint{}, "snapshot", nil))
	assert.NoError(t, c.InvalidateAll(context.Background()))
}
