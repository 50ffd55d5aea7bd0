package metaserver

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/kamil5b/go-metafs-client/internal/metacache"
	"github.com/kamil5b/go-metafs-client/internal/metric"
	"github.com/kamil5b/go-metafs-client/internal/rpcclient"
)

const servicePrefix = "/metaserver.MetaServerService/"

// RootInodeID is the fixed inode id of a filesystem's root directory.
const RootInodeID uint64 = 1

// invoker performs one unary call on a channel. Swapped in tests.
type invoker func(ctx context.Context, conn *grpc.ClientConn, method string, req, resp interface{}) error

func grpcInvoke(ctx context.Context, conn *grpc.ClientConn, method string, req, resp interface{}) error {
	return conn.Invoke(ctx, method, req, resp)
}

// Client is the metaserver RPC stub layer. Every operation builds a task
// context around a single-send callable and hands it to a task executor;
// routing, retry and cache invalidation all happen there. The client itself
// is stateless apart from shared collaborators and safe for concurrent use.
type Client struct {
	opt      rpcclient.ExecutorOption
	cache    *metacache.MetaCache
	channels rpcclient.ChannelManager
	metric   *metric.MetaServerClientMetric
	invoke   invoker
}

// NewClient builds the stub layer over shared cache and channel manager.
func NewClient(opt rpcclient.ExecutorOption, cache *metacache.MetaCache, channels rpcclient.ChannelManager, m *metric.MetaServerClientMetric) *Client {
	if m == nil {
		m = metric.NewMetaServerClientMetric("")
	}
	return &Client{
		opt:      opt,
		cache:    cache,
		channels: channels,
		metric:   m,
		invoke:   grpcInvoke,
	}
}

// GetInode fetches the inode record of ⟨fsID, inodeID⟩.
func (c *Client) GetInode(ctx context.Context, fsID uint32, inodeID uint64) (*Inode, error) {
	var resp getInodeResponse
	task := rpcclient.NewTaskContext(rpcclient.OpGetInode, fsID, inodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = getInodeResponse{}
			req := &getInodeRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				FsID:          fsID,
				InodeID:       inodeID,
			}
			return c.send(ctx, conn, ctrl, "GetInode", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.GetInode, false, &resp.responseHeader)
	if err := rpcclient.StatusError(task.Op, st); err != nil {
		return nil, err
	}
	return &resp.Inode, nil
}

// CreateInode allocates a new inode in any available partition of fsID. The
// partition is selected, not looked up, so this runs on the create-inode
// executor variant.
func (c *Client) CreateInode(ctx context.Context, fsID uint32, param InodeParam) (*Inode, error) {
	var resp createInodeResponse
	task := rpcclient.NewTaskContext(rpcclient.OpCreateInode, fsID, 0,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = createInodeResponse{}
			req := &createInodeRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				FsID:          fsID,
				Param:         param,
			}
			return c.send(ctx, conn, ctrl, "CreateInode", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.CreateInode, true, &resp.responseHeader)
	if err := rpcclient.StatusError(task.Op, st); err != nil {
		return nil, err
	}
	return &resp.Inode, nil
}

// CreateRootInode creates the root directory inode of a fresh filesystem,
// routed to the partition owning the root inode id.
func (c *Client) CreateRootInode(ctx context.Context, fsID uint32, param InodeParam) error {
	var resp createRootInodeResponse
	task := rpcclient.NewTaskContext(rpcclient.OpCreateRootInode, fsID, RootInodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = createRootInodeResponse{}
			req := &createRootInodeRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				FsID:          fsID,
				Param:         param,
			}
			return c.send(ctx, conn, ctrl, "CreateRootInode", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.CreateRootInode, false, &resp.responseHeader)
	return rpcclient.StatusError(task.Op, st)
}

// UpdateInode overwrites an inode record.
func (c *Client) UpdateInode(ctx context.Context, inode *Inode) error {
	var resp updateInodeResponse
	task := rpcclient.NewTaskContext(rpcclient.OpUpdateInode, inode.FsID, inode.InodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = updateInodeResponse{}
			req := &updateInodeRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				Inode:         *inode,
			}
			return c.send(ctx, conn, ctrl, "UpdateInode", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.UpdateInode, false, &resp.responseHeader)
	return rpcclient.StatusError(task.Op, st)
}

// DeleteInode removes an inode record.
func (c *Client) DeleteInode(ctx context.Context, fsID uint32, inodeID uint64) error {
	var resp deleteInodeResponse
	task := rpcclient.NewTaskContext(rpcclient.OpDeleteInode, fsID, inodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = deleteInodeResponse{}
			req := &deleteInodeRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				FsID:          fsID,
				InodeID:       inodeID,
			}
			return c.send(ctx, conn, ctrl, "DeleteInode", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.DeleteInode, false, &resp.responseHeader)
	return rpcclient.StatusError(task.Op, st)
}

// GetDentry looks up one name under a parent directory.
func (c *Client) GetDentry(ctx context.Context, fsID uint32, parentInodeID uint64, name string) (*Dentry, error) {
	var resp getDentryResponse
	task := rpcclient.NewTaskContext(rpcclient.OpGetDentry, fsID, parentInodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = getDentryResponse{}
			req := &getDentryRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				FsID:          fsID,
				ParentInodeID: parentInodeID,
				Name:          name,
			}
			return c.send(ctx, conn, ctrl, "GetDentry", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.GetDentry, false, &resp.responseHeader)
	if err := rpcclient.StatusError(task.Op, st); err != nil {
		return nil, err
	}
	return &resp.Dentry, nil
}

// ListDentry pages through the entries of a directory, starting after last.
func (c *Client) ListDentry(ctx context.Context, fsID uint32, parentInodeID uint64, last string, count uint32) ([]Dentry, error) {
	var resp listDentryResponse
	task := rpcclient.NewTaskContext(rpcclient.OpListDentry, fsID, parentInodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = listDentryResponse{}
			req := &listDentryRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				FsID:          fsID,
				ParentInodeID: parentInodeID,
				Last:          last,
				Count:         count,
			}
			return c.send(ctx, conn, ctrl, "ListDentry", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.ListDentry, false, &resp.responseHeader)
	if err := rpcclient.StatusError(task.Op, st); err != nil {
		return nil, err
	}
	return resp.Dentrys, nil
}

// CreateDentry links a name to an inode, routed by the parent directory.
func (c *Client) CreateDentry(ctx context.Context, dentry *Dentry) error {
	var resp createDentryResponse
	task := rpcclient.NewTaskContext(rpcclient.OpCreateDentry, dentry.FsID, dentry.ParentInodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = createDentryResponse{}
			req := &createDentryRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				Dentry:        *dentry,
			}
			return c.send(ctx, conn, ctrl, "CreateDentry", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.CreateDentry, false, &resp.responseHeader)
	return rpcclient.StatusError(task.Op, st)
}

// DeleteDentry unlinks a name from its parent directory.
func (c *Client) DeleteDentry(ctx context.Context, fsID uint32, parentInodeID uint64, name string) error {
	var resp deleteDentryResponse
	task := rpcclient.NewTaskContext(rpcclient.OpDeleteDentry, fsID, parentInodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = deleteDentryResponse{}
			req := &deleteDentryRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				FsID:          fsID,
				ParentInodeID: parentInodeID,
				Name:          name,
			}
			return c.send(ctx, conn, ctrl, "DeleteDentry", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.DeleteDentry, false, &resp.responseHeader)
	return rpcclient.StatusError(task.Op, st)
}

// PrepareRenameTx stages the dentry set of a rename transaction on the
// partition owning the first dentry's parent. All dentrys must carry the new
// transaction epoch; on success the epoch becomes the partition's fencing
// txId for subsequent requests.
func (c *Client) PrepareRenameTx(ctx context.Context, dentrys []Dentry) error {
	if len(dentrys) == 0 {
		return rpcclient.StatusError(rpcclient.OpPrepareRenameTx, int(rpcclient.StatusParamError))
	}

	var resp prepareRenameTxResponse
	task := rpcclient.NewTaskContext(rpcclient.OpPrepareRenameTx, dentrys[0].FsID, dentrys[0].ParentInodeID,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			resp = prepareRenameTxResponse{}
			req := &prepareRenameTxRequest{
				requestHeader: header(poolID, copysetID, partitionID, txID, applyIndex),
				Dentrys:       dentrys,
			}
			return c.send(ctx, conn, ctrl, "PrepareRenameTx", req, &resp, &resp.responseHeader)
		})

	st := c.run(ctx, task, &c.metric.PrepareRenameTx, false, &resp.responseHeader)
	if err := rpcclient.StatusError(task.Op, st); err != nil {
		return err
	}
	c.cache.SetTxID(task.Target.PartitionID, dentrys[0].TxID)
	return nil
}

// send performs the single transport-level attempt for a task: one unary
// call bounded by the controller's timeout, returning the server's status or
// a negative transport code.
func (c *Client) send(ctx context.Context, conn *grpc.ClientConn, ctrl *rpcclient.Controller,
	method string, req, resp interface{}, hdr *responseHeader) int {
	callCtx, cancel := context.WithTimeout(ctx, ctrl.Timeout)
	defer cancel()

	if err := c.invoke(callCtx, conn, servicePrefix+method, req, resp); err != nil {
		return rpcclient.TransportStatus(err)
	}
	return int(hdr.StatusCode)
}

// run drives the task through an executor, records the operation metric and
// folds a successful response's apply index back into the cache.
func (c *Client) run(ctx context.Context, task *rpcclient.TaskContext,
	m *metric.InterfaceMetric, create bool, hdr *responseHeader) int {
	var exec rpcclient.Executor
	if create {
		exec = rpcclient.NewCreateInodeExecutor(c.opt, c.cache, c.channels)
	} else {
		exec = rpcclient.NewTaskExecutor(c.opt, c.cache, c.channels)
	}

	start := time.Now()
	st := exec.DoRPCTask(ctx, task)
	m.Observe(time.Since(start), st == int(rpcclient.StatusOK))

	if st == int(rpcclient.StatusOK) {
		c.cache.UpdateApplyIndex(task.Target.Group, hdr.AppliedIndex)
	}
	return st
}

func header(poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
	partitionID rpcclient.PartitionID, txID, applyIndex uint64) requestHeader {
	return requestHeader{
		PoolID:       poolID,
		CopysetID:    copysetID,
		PartitionID:  partitionID,
		TxID:         txID,
		AppliedIndex: applyIndex,
	}
}
