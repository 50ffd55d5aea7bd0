package rpcclient

// ExecutorOption configures the retry loop. Options are immutable for the
// executor's lifetime; build a new executor to change them.
type ExecutorOption struct {
	// RPCTimeoutMS is the initial per-attempt timeout and the base for
	// timeout backoff.
	RPCTimeoutMS uint64 `yaml:"rpc_timeout_ms" validate:"gt=0"`

	// MaxRPCTimeoutMS is the ceiling for timeout backoff.
	MaxRPCTimeoutMS uint64 `yaml:"max_rpc_timeout_ms" validate:"gtefield=RPCTimeoutMS"`

	// RetryIntervalUS is the base inter-attempt sleep and the base for
	// overload backoff.
	RetryIntervalUS uint64 `yaml:"retry_interval_us" validate:"gt=0"`

	// MaxRetrySleepIntervalUS is the ceiling for overload backoff.
	MaxRetrySleepIntervalUS uint64 `yaml:"max_retry_sleep_interval_us" validate:"gtefield=RetryIntervalUS"`

	// MaxRetry bounds the loop: a task performs at most MaxRetry+1 attempts.
	MaxRetry uint64 `yaml:"max_retry" validate:"gt=0"`

	// MaxRetryTimesBeforeConsiderSuspend is the retry count at which the
	// task's sticky suspend flag is raised for operator visibility.
	MaxRetryTimesBeforeConsiderSuspend uint64 `yaml:"max_retry_times_before_consider_suspend" validate:"gt=0"`

	// MinRetryTimesForceTimeoutBackoff is the retry count below which a
	// timed-out attempt keeps the base timeout when the cache hints the
	// leader may have changed, so rediscovery is not delayed by backoff.
	MinRetryTimesForceTimeoutBackoff uint64 `yaml:"min_retry_times_force_timeout_backoff" validate:"gt=0"`
}

// DefaultExecutorOption mirrors the production client defaults.
func DefaultExecutorOption() ExecutorOption {
	return ExecutorOption{
		RPCTimeoutMS:                       1000,
		MaxRPCTimeoutMS:                    8000,
		RetryIntervalUS:                    100000,
		MaxRetrySleepIntervalUS:            8000000,
		MaxRetry:                           10,
		MaxRetryTimesBeforeConsiderSuspend: 5,
		MinRetryTimesForceTimeoutBackoff:   5,
	}
}
