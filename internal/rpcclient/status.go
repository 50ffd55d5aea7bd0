package rpcclient

import (
	"errors"
	"os"
	"syscall"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MetaStatusCode is the application-level status a metaserver returns for a
// single operation. Codes form a closed enum; the executor only ever inspects
// the retryable subset, everything else is terminal for the task.
type MetaStatusCode int32

const (
	StatusOK MetaStatusCode = iota
	StatusUnknownError
	StatusParamError
	StatusNotFound
	StatusInodeExist
	StatusDentryExist
	StatusOverload
	StatusRedirected
	StatusCopysetNotExist
	StatusPartitionAllocIDFail
	StatusPartitionNotFound
	StatusPartitionExist
	StatusStorageError
	StatusTxFailed
)

var statusNames = map[MetaStatusCode]string{
	StatusOK:                   "OK",
	StatusUnknownError:         "UNKNOWN_ERROR",
	StatusParamError:           "PARAM_ERROR",
	StatusNotFound:             "NOT_FOUND",
	StatusInodeExist:           "INODE_EXIST",
	StatusDentryExist:          "DENTRY_EXIST",
	StatusOverload:             "OVERLOAD",
	StatusRedirected:           "REDIRECTED",
	StatusCopysetNotExist:      "COPYSET_NOTEXIST",
	StatusPartitionAllocIDFail: "PARTITION_ALLOC_ID_FAIL",
	StatusPartitionNotFound:    "PARTITION_NOT_FOUND",
	StatusPartitionExist:       "PARTITION_EXIST",
	StatusStorageError:         "STORAGE_ERROR",
	StatusTxFailed:             "TX_FAILED",
}

func (c MetaStatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Transport-band codes. RPC attempts report transport failures as negative
// values so the two bands never collide. ErrRPCTimedOut and ErrTimedOut are
// distinguished by the timeout-backoff path; every other negative value is a
// generic transport failure.
const (
	ErrRPCFailed   = -1
	ErrTimedOut    = -110
	ErrRPCTimedOut = -1008
)

// IsRetryableStatus reports whether an application status is transient and
// worth another attempt. Transport failures (negative codes) are always
// retryable and never reach this check.
func IsRetryableStatus(c MetaStatusCode) bool {
	switch c {
	case StatusOverload, StatusRedirected, StatusCopysetNotExist, StatusPartitionAllocIDFail:
		return true
	}
	return false
}

// TransportStatus maps a transport error from the RPC substrate to the
// negative status band. A gRPC DeadlineExceeded status maps to ErrRPCTimedOut;
// a socket-level timeout (ETIMEDOUT or an expired I/O deadline) maps to
// ErrTimedOut; every other error, a refused connection included, maps to
// ErrRPCFailed.
func TransportStatus(err error) int {
	if err == nil {
		return int(StatusOK)
	}
	if errors.Is(err, syscall.ETIMEDOUT) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrTimedOut
	}
	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return ErrRPCTimedOut
	default:
		return ErrRPCFailed
	}
}
