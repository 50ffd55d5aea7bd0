package rpcclient

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// OpType names the logical metadata operation a task performs. Used for
// logging and metric attribution only; the executor treats all ops alike.
type OpType int

const (
	OpGetDentry OpType = iota
	OpListDentry
	OpCreateDentry
	OpDeleteDentry
	OpGetInode
	OpCreateInode
	OpUpdateInode
	OpDeleteInode
	OpCreateRootInode
	OpPrepareRenameTx
)

var opNames = map[OpType]string{
	OpGetDentry:       "GetDentry",
	OpListDentry:      "ListDentry",
	OpCreateDentry:    "CreateDentry",
	OpDeleteDentry:    "DeleteDentry",
	OpGetInode:        "GetInode",
	OpCreateInode:     "CreateInode",
	OpUpdateInode:     "UpdateInode",
	OpDeleteInode:     "DeleteInode",
	OpCreateRootInode: "CreateRootInode",
	OpPrepareRenameTx: "PrepareRenameTx",
}

func (o OpType) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "Unknown"
}

// Controller carries the transport settings for a single attempt. The
// send-callable must bound its RPC by Timeout and perform exactly one
// synchronous send; retrying is the executor's job.
type Controller struct {
	Timeout time.Duration
}

// RPCTask is the send-callable bound into a task context. It receives the
// fully-bound routing tuple, the client's last-known apply index, a shared
// channel and the attempt's controller. It returns the server's
// MetaStatusCode as a non-negative int, or a negative transport code.
type RPCTask func(ctx context.Context, poolID PoolID, copysetID CopysetID,
	partitionID PartitionID, txID, applyIndex uint64,
	conn *grpc.ClientConn, ctrl *Controller) int

// TaskContext describes one logical RPC and its routing state for the
// duration of a single DoRPCTask call. It is mutated by the executor between
// attempts and must not be shared across concurrent calls.
type TaskContext struct {
	Op      OpType
	FsID    uint32
	InodeID uint64

	// Target starts invalid; the executor binds it through the cache.
	Target     Target
	ApplyIndex uint64

	// RPCTimeoutMS is the current attempt's timeout. It grows under timeout
	// backoff and is reset on the leader-change fast path.
	RPCTimeoutMS uint64

	// RetryTimes counts attempts so far, including target/channel binding
	// failures that consumed retry budget.
	RetryTimes uint64

	// Suspend is a sticky operator-visibility marker: the task has retried
	// past the configured threshold but keeps retrying.
	Suspend bool

	// RetryDirectly skips the inter-attempt sleep when the next attempt
	// already targets a different metaserver.
	RetryDirectly bool

	RPCTask RPCTask
}

// NewTaskContext builds a task for an operation addressed by ⟨fsID, inodeID⟩.
// Operations whose target is selected rather than looked up (inode creation)
// leave inodeID zero.
func NewTaskContext(op OpType, fsID uint32, inodeID uint64, task RPCTask) *TaskContext {
	return &TaskContext{
		Op:      op,
		FsID:    fsID,
		InodeID: inodeID,
		RPCTask: task,
	}
}

// Fields returns the task's identity and routing state for structured logs.
func (t *TaskContext) Fields() logrus.Fields {
	return logrus.Fields{
		"op":             t.Op.String(),
		"fs_id":          t.FsID,
		"inode_id":       t.InodeID,
		"target":         t.Target.String(),
		"apply_index":    t.ApplyIndex,
		"rpc_timeout_ms": t.RPCTimeoutMS,
		"retry_times":    t.RetryTimes,
		"suspend":        t.Suspend,
	}
}
