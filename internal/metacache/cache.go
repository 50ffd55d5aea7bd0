package metacache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/kamil5b/go-metafs-client/internal/logger"
	"github.com/kamil5b/go-metafs-client/internal/rpcclient"
)

// Config tunes the cache's interaction with the cluster resolver.
type Config struct {
	// ResolveTimeoutMS bounds a single resolver call.
	ResolveTimeoutMS uint64 `yaml:"resolve_timeout_ms" validate:"gt=0"`

	// RefreshPerSecond and RefreshBurst throttle forced leader refreshes so a
	// retry storm cannot hammer the discovery service.
	RefreshPerSecond float64 `yaml:"refresh_per_second" validate:"gt=0"`
	RefreshBurst     int     `yaml:"refresh_burst" validate:"gt=0"`
}

// DefaultConfig returns production cache settings.
func DefaultConfig() Config {
	return Config{
		ResolveTimeoutMS: 2000,
		RefreshPerSecond: 10,
		RefreshBurst:     5,
	}
}

type copysetState struct {
	leader          MetaServerNode
	applyIndex      uint64
	leaderMayChange bool
}

// MetaCache maps ⟨filesystem, inode⟩ to the partition, copyset and leader
// that currently serve it, and keeps the per-copyset apply index and
// availability hints the executor consults between attempts. State is
// process-local, built lazily from the resolver and rebuilt on demand; it
// never expires by time.
//
// All methods are safe for concurrent use. Entry mutations happen under one
// lock so a reader always observes a coherent target.
type MetaCache struct {
	cfg      Config
	resolver ClusterResolver
	limiter  *rate.Limiter
	flight   singleflight.Group

	mu          sync.RWMutex
	partitions  map[uint32][]PartitionInfo
	copysets    map[rpcclient.CopysetGroupID]*copysetState
	txids       map[rpcclient.PartitionID]uint64
	unavailable map[rpcclient.PartitionID]struct{}
	cursor      map[uint32]int
}

// NewMetaCache builds an empty cache over the given resolver.
func NewMetaCache(cfg Config, resolver ClusterResolver) *MetaCache {
	return &MetaCache{
		cfg:         cfg,
		resolver:    resolver,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RefreshPerSecond), cfg.RefreshBurst),
		partitions:  make(map[uint32][]PartitionInfo),
		copysets:    make(map[rpcclient.CopysetGroupID]*copysetState),
		txids:       make(map[rpcclient.PartitionID]uint64),
		unavailable: make(map[rpcclient.PartitionID]struct{}),
		cursor:      make(map[uint32]int),
	}
}

var _ rpcclient.MetaCache = (*MetaCache)(nil)

// GetTarget resolves the partition owning ⟨fsID, inodeID⟩ and the cached
// leader of its copyset.
func (c *MetaCache) GetTarget(fsID uint32, inodeID uint64) (rpcclient.Target, uint64, bool) {
	parts, err := c.partitionsFor(fsID)
	if err != nil {
		logger.WithField("fs_id", fsID).WithError(err).Error("list partitions failed")
		return rpcclient.Target{}, 0, false
	}

	for _, p := range parts {
		if !p.Contains(inodeID) || !c.available(p.PartitionID) {
			continue
		}
		return c.buildTarget(p)
	}
	return rpcclient.Target{}, 0, false
}

// SelectTarget picks any available read-write partition within fsID,
// round-robin so creation load spreads across partitions.
func (c *MetaCache) SelectTarget(fsID uint32) (rpcclient.Target, uint64, bool) {
	parts, err := c.partitionsFor(fsID)
	if err != nil {
		logger.WithField("fs_id", fsID).WithError(err).Error("list partitions failed")
		return rpcclient.Target{}, 0, false
	}
	if len(parts) == 0 {
		return rpcclient.Target{}, 0, false
	}

	c.mu.Lock()
	start := c.cursor[fsID]
	c.cursor[fsID] = start + 1
	c.mu.Unlock()

	for i := 0; i < len(parts); i++ {
		p := parts[(start+i)%len(parts)]
		if !p.ReadWrite || !c.available(p.PartitionID) {
			continue
		}
		return c.buildTarget(p)
	}
	return rpcclient.Target{}, 0, false
}

// GetTargetLeader returns target rebound to the current leader of its
// copyset. With refresh set the cluster is consulted for an authoritative
// answer; otherwise the cached leader is used when present.
func (c *MetaCache) GetTargetLeader(target rpcclient.Target, refresh bool) (rpcclient.Target, uint64, bool) {
	group := target.Group

	if !refresh {
		c.mu.RLock()
		cs, ok := c.copysets[group]
		c.mu.RUnlock()
		if ok && cs.leader.ID != 0 {
			target.MetaServerID = cs.leader.ID
			target.Endpoint = cs.leader.Endpoint
			return target, cs.applyIndex, true
		}
	}

	// A refresh storm from many concurrently-failing tasks collapses into one
	// resolver call per copyset; past the rate limit, callers fall back to
	// the cached leader.
	if refresh && !c.limiter.Allow() {
		c.mu.RLock()
		cs, ok := c.copysets[group]
		c.mu.RUnlock()
		if ok && cs.leader.ID != 0 {
			target.MetaServerID = cs.leader.ID
			target.Endpoint = cs.leader.Endpoint
			return target, cs.applyIndex, true
		}
	}

	node, applyIndex, err := c.resolveLeader(group)
	if err != nil {
		logger.WithField("group", group.String()).WithError(err).Warn("resolve copyset leader failed")
		c.markLeaderMayChange(group, true)
		return target, 0, false
	}

	target.MetaServerID = node.ID
	target.Endpoint = node.Endpoint
	return target, applyIndex, true
}

// IsLeaderMayChange reports the sticky hint that the copyset's leadership is
// in flux.
func (c *MetaCache) IsLeaderMayChange(group rpcclient.CopysetGroupID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cs, ok := c.copysets[group]
	return ok && cs.leaderMayChange
}

// MarkLeaderMayChange records that recent timeouts suggest the copyset's
// leadership is in flux. Cleared by the next successful leader refresh.
func (c *MetaCache) MarkLeaderMayChange(group rpcclient.CopysetGroupID) {
	c.markLeaderMayChange(group, true)
}

// MarkPartitionUnavailable suppresses further use of a partition that
// reported allocation failure.
func (c *MetaCache) MarkPartitionUnavailable(partitionID rpcclient.PartitionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unavailable[partitionID] = struct{}{}
}

// UpdateApplyIndex folds a response's apply index into the copyset record.
// The index only ever moves forward.
func (c *MetaCache) UpdateApplyIndex(group rpcclient.CopysetGroupID, applyIndex uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cs := c.copyset(group)
	if applyIndex > cs.applyIndex {
		cs.applyIndex = applyIndex
	}
}

// GetApplyIndex returns the last apply index observed for a copyset.
func (c *MetaCache) GetApplyIndex(group rpcclient.CopysetGroupID) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cs, ok := c.copysets[group]; ok {
		return cs.applyIndex
	}
	return 0
}

// SetTxID records a partition's new transaction epoch, as produced by a
// committed rename transaction.
func (c *MetaCache) SetTxID(partitionID rpcclient.PartitionID, txID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txids[partitionID] = txID
}

// InvalidateFs drops the cached partition view of a filesystem so the next
// lookup rebuilds it from the resolver.
func (c *MetaCache) InvalidateFs(fsID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.partitions, fsID)
}

func (c *MetaCache) buildTarget(p PartitionInfo) (rpcclient.Target, uint64, bool) {
	node, applyIndex, err := c.cachedOrResolveLeader(p.Group)
	if err != nil {
		logger.WithField("group", p.Group.String()).WithError(err).Error("resolve copyset leader failed")
		return rpcclient.Target{}, 0, false
	}

	c.mu.RLock()
	txid, ok := c.txids[p.PartitionID]
	c.mu.RUnlock()
	if !ok {
		txid = p.TxID
	}

	return rpcclient.Target{
		Group:        p.Group,
		PartitionID:  p.PartitionID,
		MetaServerID: node.ID,
		Endpoint:     node.Endpoint,
		TxID:         txid,
	}, applyIndex, true
}

func (c *MetaCache) available(partitionID rpcclient.PartitionID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, bad := c.unavailable[partitionID]
	return !bad
}

// partitionsFor returns the cached partition view of a filesystem, loading it
// once from the resolver on first use. Concurrent first lookups collapse into
// a single resolver call.
func (c *MetaCache) partitionsFor(fsID uint32) ([]PartitionInfo, error) {
	c.mu.RLock()
	parts, ok := c.partitions[fsID]
	c.mu.RUnlock()
	if ok {
		return parts, nil
	}

	v, err, _ := c.flight.Do(fmt.Sprintf("partitions/%d", fsID), func() (interface{}, error) {
		ctx, cancel := c.resolveContext()
		defer cancel()

		loaded, err := c.resolver.ListPartitions(ctx, fsID)
		if err != nil {
			return nil, err
		}
		sort.Slice(loaded, func(i, j int) bool { return loaded[i].Start < loaded[j].Start })

		c.mu.Lock()
		c.partitions[fsID] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]PartitionInfo), nil
}

func (c *MetaCache) cachedOrResolveLeader(group rpcclient.CopysetGroupID) (MetaServerNode, uint64, error) {
	c.mu.RLock()
	cs, ok := c.copysets[group]
	c.mu.RUnlock()
	if ok && cs.leader.ID != 0 {
		return cs.leader, cs.applyIndex, nil
	}
	return c.resolveLeader(group)
}

// resolveLeader asks the cluster for the copyset's current leader and
// publishes it. Concurrent refreshes of the same copyset collapse into one
// resolver call.
func (c *MetaCache) resolveLeader(group rpcclient.CopysetGroupID) (MetaServerNode, uint64, error) {
	v, err, _ := c.flight.Do(fmt.Sprintf("leader/%s", group), func() (interface{}, error) {
		ctx, cancel := c.resolveContext()
		defer cancel()

		node, err := c.resolver.GetCopysetLeader(ctx, group)
		if err != nil {
			return MetaServerNode{}, err
		}

		c.mu.Lock()
		cs := c.copyset(group)
		cs.leader = node
		cs.leaderMayChange = false
		c.mu.Unlock()
		return node, nil
	})
	if err != nil {
		return MetaServerNode{}, 0, err
	}

	c.mu.RLock()
	applyIndex := uint64(0)
	if cs, ok := c.copysets[group]; ok {
		applyIndex = cs.applyIndex
	}
	c.mu.RUnlock()

	return v.(MetaServerNode), applyIndex, nil
}

func (c *MetaCache) markLeaderMayChange(group rpcclient.CopysetGroupID, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copyset(group).leaderMayChange = v
}

// copyset returns the state record for a group, creating it. Caller holds mu.
func (c *MetaCache) copyset(group rpcclient.CopysetGroupID) *copysetState {
	cs, ok := c.copysets[group]
	if !ok {
		cs = &copysetState{}
		c.copysets[group] = cs
	}
	return cs
}

func (c *MetaCache) resolveContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(),
		time.Duration(c.cfg.ResolveTimeoutMS)*time.Millisecond)
}
