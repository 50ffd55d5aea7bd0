package metacache

import (
	"context"

	"github.com/kamil5b/go-metafs-client/internal/rpcclient"
)

//go:generate mockgen -destination=mocks/mock_resolver.go -package=mocks github.com/kamil5b/go-metafs-client/internal/metacache ClusterResolver

// MetaServerNode identifies one metaserver and how to reach it.
type MetaServerNode struct {
	ID       rpcclient.MetaServerID
	Endpoint string
}

// PartitionInfo is the cluster's view of one metadata partition: the inode
// range it owns, the copyset hosting it, its transaction epoch and whether it
// still accepts writes.
type PartitionInfo struct {
	PartitionID rpcclient.PartitionID
	Group       rpcclient.CopysetGroupID
	Start       uint64
	End         uint64
	TxID        uint64
	ReadWrite   bool
}

// Contains reports whether the partition owns inodeID.
func (p PartitionInfo) Contains(inodeID uint64) bool {
	return inodeID >= p.Start && inodeID <= p.End
}

// ClusterResolver answers topology questions against the cluster's discovery
// service. Implementations live outside this module; the cache only requires
// that answers are authoritative at the time of the call.
type ClusterResolver interface {
	// ListPartitions returns every partition of a filesystem.
	ListPartitions(ctx context.Context, fsID uint32) ([]PartitionInfo, error)

	// GetCopysetLeader returns the current leader of a copyset.
	GetCopysetLeader(ctx context.Context, group rpcclient.CopysetGroupID) (MetaServerNode, error)
}
