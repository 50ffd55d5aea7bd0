package rpcclient

import "google.golang.org/grpc"

//go:generate mockgen -destination=mocks/mock_rpcclient.go -package=mocks github.com/kamil5b/go-metafs-client/internal/rpcclient MetaCache,ChannelManager

// MetaCache is the metadata-location cache the executor routes through. All
// methods must be safe for concurrent use; writers publish atomically so a
// reader never observes a half-updated target.
type MetaCache interface {
	// GetTarget resolves the partition and copyset leader owning
	// ⟨fsID, inodeID⟩ along with the last apply index observed for that
	// copyset. Returns false when the location cannot be resolved.
	GetTarget(fsID uint32, inodeID uint64) (Target, uint64, bool)

	// SelectTarget picks any available partition within fsID that has
	// capacity. Used by creation-style operations with no prior inode
	// identity.
	SelectTarget(fsID uint32) (Target, uint64, bool)

	// GetTargetLeader re-resolves the current leader of target's copyset,
	// consulting the cluster when refresh is set. On success the returned
	// target carries the (possibly unchanged) leader id and endpoint.
	GetTargetLeader(target Target, refresh bool) (Target, uint64, bool)

	// IsLeaderMayChange reports the sticky hint that recent timeouts suggest
	// the copyset's leadership is in flux.
	IsLeaderMayChange(group CopysetGroupID) bool

	// MarkPartitionUnavailable suppresses further use of a partition that
	// reported allocation failure, so selection routes elsewhere.
	MarkPartitionUnavailable(partitionID PartitionID)
}

// ChannelManager owns the shared RPC channels, one per metaserver identity.
type ChannelManager interface {
	// GetOrCreateChannel returns the shared channel for a metaserver,
	// creating it lazily. Concurrent calls for the same id are serialized so
	// only one channel is ever created.
	GetOrCreateChannel(id MetaServerID, endpoint string) (*grpc.ClientConn, error)

	// ResetSenderIfNotHealth discards the cached channel if the substrate
	// reports it unhealthy, forcing recreation on next use.
	ResetSenderIfNotHealth(id MetaServerID)
}
