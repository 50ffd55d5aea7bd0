package metric

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	var m InterfaceMetric

	m.Observe(100*time.Microsecond, true)
	m.Observe(200*time.Microsecond, false)

	count, errors, latencyUS := m.Snapshot()
	assert.Equal(t, uint64(2), count)
	assert.Equal(t, uint64(1), errors)
	assert.Equal(t, uint64(300), latencyUS)
}

func TestNewMetaServerClientMetric_GeneratedPrefix(t *testing.T) {
	first := NewMetaServerClientMetric("")
	second := NewMetaServerClientMetric("")

	require.True(t, strings.HasPrefix(first.Prefix, "metafs_metaserver_client_"))
	// Prefixes are unique per instance so expvar names never collide.
	assert.NotEqual(t, first.Prefix, second.Prefix)
}

func TestSnapshotShape(t *testing.T) {
	m := NewMetaServerClientMetric("metafs_metric_snapshot_test")
	m.GetInode.Observe(50*time.Microsecond, true)

	snap, ok := m.snapshot().(map[string]map[string]uint64)
	require.True(t, ok)

	require.Contains(t, snap, "getInode")
	assert.Equal(t, uint64(1), snap["getInode"]["count"])
	assert.Equal(t, uint64(0), snap["getInode"]["errors"])
	require.Contains(t, snap, "prepareRenameTx")
}
