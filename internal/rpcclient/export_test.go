package rpcclient

import "time"

// Test-only accessors for backoff internals.

func (e *TaskExecutor) OverLoadBackOff(retryTimes uint64) time.Duration {
	return e.overLoadBackOff(retryTimes)
}

func (e *TaskExecutor) TimeoutBackOff(retryTimes uint64) uint64 {
	return e.timeoutBackOff(retryTimes)
}

var MaxPowerLessEqual = maxPowerLessEqual
