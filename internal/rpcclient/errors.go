package rpcclient

import "fmt"

// ClientError carries a terminal status across the stub boundary as a
// code-bearing error. The executor itself never raises errors; callers of the
// higher-level stubs get one of these when a task ends on a non-OK status.
type ClientError struct {
	Status int
	Op     OpType
}

func (e *ClientError) Error() string {
	if e.Status < 0 {
		return fmt.Sprintf("%s: transport failure (%d)", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, MetaStatusCode(e.Status))
}

// StatusError wraps a terminal status for an operation; nil for StatusOK.
func StatusError(op OpType, status int) error {
	if MetaStatusCode(status) == StatusOK && status >= 0 {
		return nil
	}
	return &ClientError{Status: status, Op: op}
}

// IsNotFound reports whether err is a ClientError for NOT_FOUND.
func IsNotFound(err error) bool {
	ce, ok := err.(*ClientError)
	return ok && MetaStatusCode(ce.Status) == StatusNotFound
}
