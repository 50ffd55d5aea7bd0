package metaserver

import "github.com/kamil5b/go-metafs-client/internal/rpcclient"

// FileType distinguishes the kinds of inode a metaserver stores.
type FileType uint8

const (
	TypeDirectory FileType = iota + 1
	TypeFile
	TypeSymlink
)

// Inode is the metadata record of one file.
type Inode struct {
	FsID    uint32   `json:"fsId"`
	InodeID uint64   `json:"inodeId"`
	Length  uint64   `json:"length"`
	Type    FileType `json:"type"`
	Mode    uint32   `json:"mode"`
	UID     uint32   `json:"uid"`
	GID     uint32   `json:"gid"`
	Nlink   uint32   `json:"nlink"`
	Symlink string   `json:"symlink,omitempty"`
	Ctime   int64    `json:"ctime"`
	Mtime   int64    `json:"mtime"`
	Atime   int64    `json:"atime"`
}

// Dentry links a name in a parent directory to an inode.
type Dentry struct {
	FsID          uint32   `json:"fsId"`
	ParentInodeID uint64   `json:"parentInodeId"`
	Name          string   `json:"name"`
	InodeID       uint64   `json:"inodeId"`
	TxID          uint64   `json:"txId"`
	Type          FileType `json:"type"`
}

// InodeParam carries the caller-supplied attributes of a new inode. The
// server allocates the inode id within the selected partition.
type InodeParam struct {
	Length  uint64   `json:"length"`
	Type    FileType `json:"type"`
	Mode    uint32   `json:"mode"`
	UID     uint32   `json:"uid"`
	GID     uint32   `json:"gid"`
	Symlink string   `json:"symlink,omitempty"`
}

// requestHeader is the routing tuple every metaserver request carries. The
// server checks copyset membership, fences stale transaction epochs by txId
// and rejects reads behind appliedIndex.
type requestHeader struct {
	PoolID       rpcclient.PoolID      `json:"poolId"`
	CopysetID    rpcclient.CopysetID   `json:"copysetId"`
	PartitionID  rpcclient.PartitionID `json:"partitionId"`
	TxID         uint64                `json:"txId"`
	AppliedIndex uint64                `json:"appliedIndex"`
}

// responseHeader is common to every metaserver response.
type responseHeader struct {
	StatusCode   rpcclient.MetaStatusCode `json:"statusCode"`
	AppliedIndex uint64                   `json:"appliedIndex"`
}

type getInodeRequest struct {
	requestHeader
	FsID    uint32 `json:"fsId"`
	InodeID uint64 `json:"inodeId"`
}

type getInodeResponse struct {
	responseHeader
	Inode Inode `json:"inode"`
}

type createInodeRequest struct {
	requestHeader
	FsID  uint32     `json:"fsId"`
	Param InodeParam `json:"param"`
}

type createInodeResponse struct {
	responseHeader
	Inode Inode `json:"inode"`
}

type createRootInodeRequest struct {
	requestHeader
	FsID  uint32     `json:"fsId"`
	Param InodeParam `json:"param"`
}

type createRootInodeResponse struct {
	responseHeader
}

type updateInodeRequest struct {
	requestHeader
	Inode Inode `json:"inode"`
}

type updateInodeResponse struct {
	responseHeader
}

type deleteInodeRequest struct {
	requestHeader
	FsID    uint32 `json:"fsId"`
	InodeID uint64 `json:"inodeId"`
}

type deleteInodeResponse struct {
	responseHeader
}

type getDentryRequest struct {
	requestHeader
	FsID          uint32 `json:"fsId"`
	ParentInodeID uint64 `json:"parentInodeId"`
	Name          string `json:"name"`
}

type getDentryResponse struct {
	responseHeader
	Dentry Dentry `json:"dentry"`
}

type listDentryRequest struct {
	requestHeader
	FsID          uint32 `json:"fsId"`
	ParentInodeID uint64 `json:"parentInodeId"`
	Last          string `json:"last,omitempty"`
	Count         uint32 `json:"count"`
}

type listDentryResponse struct {
	responseHeader
	Dentrys []Dentry `json:"dentrys"`
}

type createDentryRequest struct {
	requestHeader
	Dentry Dentry `json:"dentry"`
}

type createDentryResponse struct {
	responseHeader
}

type deleteDentryRequest struct {
	requestHeader
	FsID          uint32 `json:"fsId"`
	ParentInodeID uint64 `json:"parentInodeId"`
	Name          string `json:"name"`
}

type deleteDentryResponse struct {
	responseHeader
}

type prepareRenameTxRequest struct {
	requestHeader
	Dentrys []Dentry `json:"dentrys"`
}

type prepareRenameTxResponse struct {
	responseHeader
}
