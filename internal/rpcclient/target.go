package rpcclient

import "fmt"

// Identifier types for the metadata cluster topology.
type (
	PoolID       uint32
	CopysetID    uint32
	PartitionID  uint32
	MetaServerID uint32
)

// CopysetGroupID names a replication group: a copyset within a pool.
type CopysetGroupID struct {
	PoolID    PoolID
	CopysetID CopysetID
}

func (g CopysetGroupID) String() string {
	return fmt.Sprintf("(%d,%d)", g.PoolID, g.CopysetID)
}

// Target is the fully-resolved routing tuple for one RPC attempt: the
// partition being operated on, the copyset that hosts it, and the metaserver
// currently believed to lead that copyset. TxID is the partition's transaction
// epoch; the server uses it to fence stale clients.
type Target struct {
	Group        CopysetGroupID
	PartitionID  PartitionID
	MetaServerID MetaServerID
	Endpoint     string
	TxID         uint64
}

// IsValid reports whether the target is bound tightly enough to dispatch:
// all ids assigned and an endpoint to dial.
func (t *Target) IsValid() bool {
	return t.Group.PoolID != 0 &&
		t.Group.CopysetID != 0 &&
		t.PartitionID != 0 &&
		t.MetaServerID != 0 &&
		t.Endpoint != ""
}

func (t *Target) String() string {
	return fmt.Sprintf("target{group:%s, partition:%d, metaserver:%d@%s, txid:%d}",
		t.Group, t.PartitionID, t.MetaServerID, t.Endpoint, t.TxID)
}
