package metric

import (
	"expvar"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// InterfaceMetric tracks one client operation: calls, failures and total
// latency. Counters are lock-free; readers see eventually-exact totals.
type InterfaceMetric struct {
	count     atomic.Uint64
	errors    atomic.Uint64
	latencyUS atomic.Uint64
}

// Observe records one completed call.
func (m *InterfaceMetric) Observe(d time.Duration, ok bool) {
	m.count.Add(1)
	m.latencyUS.Add(uint64(d.Microseconds()))
	if !ok {
		m.errors.Add(1)
	}
}

// Snapshot returns the current counters.
func (m *InterfaceMetric) Snapshot() (count, errors, latencyUS uint64) {
	return m.count.Load(), m.errors.Load(), m.latencyUS.Load()
}

// MetaServerClientMetric groups the per-operation metrics of the metaserver
// client under one prefix. When no prefix is supplied a UUID-derived one is
// generated, so two clients in one process publish disjoint names. The
// generated name is random and differs from run to run.
type MetaServerClientMetric struct {
	Prefix string

	GetDentry       InterfaceMetric
	ListDentry      InterfaceMetric
	CreateDentry    InterfaceMetric
	DeleteDentry    InterfaceMetric
	GetInode        InterfaceMetric
	CreateInode     InterfaceMetric
	UpdateInode     InterfaceMetric
	DeleteInode     InterfaceMetric
	CreateRootInode InterfaceMetric
	PrepareRenameTx InterfaceMetric
}

// NewMetaServerClientMetric builds the metric group and publishes it under
// prefix via expvar.
func NewMetaServerClientMetric(prefix string) *MetaServerClientMetric {
	if prefix == "" {
		prefix = "metafs_metaserver_client_" + uuid.NewString()[:8]
	}
	m := &MetaServerClientMetric{Prefix: prefix}
	expvar.Publish(prefix, expvar.Func(m.snapshot))
	return m
}

func (m *MetaServerClientMetric) snapshot() interface{} {
	ops := map[string]*InterfaceMetric{
		"getDentry":       &m.GetDentry,
		"listDentry":      &m.ListDentry,
		"createDentry":    &m.CreateDentry,
		"deleteDentry":    &m.DeleteDentry,
		"getInode":        &m.GetInode,
		"createInode":     &m.CreateInode,
		"updateInode":     &m.UpdateInode,
		"deleteInode":     &m.DeleteInode,
		"createRootInode": &m.CreateRootInode,
		"prepareRenameTx": &m.PrepareRenameTx,
	}

	out := make(map[string]map[string]uint64, len(ops))
	for name, op := range ops {
		count, errors, latencyUS := op.Snapshot()
		out[name] = map[string]uint64{
			"count":      count,
			"errors":     errors,
			"latency_us": latencyUS,
		}
	}
	return out
}
