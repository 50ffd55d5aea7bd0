package rpcclient

import (
	"context"
	"math/bits"
	"math/rand"
	"time"

	"google.golang.org/grpc"

	"github.com/kamil5b/go-metafs-client/internal/logger"
)

// Executor drives a task to terminal success or retry exhaustion.
type Executor interface {
	DoRPCTask(ctx context.Context, task *TaskContext) int
}

// TaskExecutor is the default retry/backoff loop. It binds a target through
// the metadata cache, obtains a channel, invokes the task's send-callable and
// interprets the returned status, looping with updated routing and backoff
// until the status is terminal or the retry budget is spent.
//
// A TaskExecutor is cheap to construct and safe to reuse across concurrent
// DoRPCTask calls; each call mutates only its own task context.
type TaskExecutor struct {
	opt       ExecutorOption
	metaCache MetaCache
	channels  ChannelManager

	maxOverloadPow uint64
	maxTimeoutPow  uint64

	selectTarget func(task *TaskContext) bool
	sleep        func(d time.Duration)
	jitter       func(n int64) int64
}

// Option customizes an executor. Used by tests to pin sleeps and jitter.
type Option func(*TaskExecutor)

// WithSleep replaces the sleep primitive. The replacement must yield to the
// scheduler for the requested duration.
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *TaskExecutor) { e.sleep = sleep }
}

// WithJitter replaces the pseudo-random source used for overload backoff.
// The function receives n and must return a value in [0, n).
func WithJitter(jitter func(n int64) int64) Option {
	return func(e *TaskExecutor) { e.jitter = jitter }
}

// NewTaskExecutor builds an executor resolving targets by ⟨fsID, inodeID⟩.
func NewTaskExecutor(opt ExecutorOption, metaCache MetaCache, channels ChannelManager, opts ...Option) *TaskExecutor {
	e := &TaskExecutor{
		opt:            opt,
		metaCache:      metaCache,
		channels:       channels,
		maxOverloadPow: maxPowerLessEqual(opt.MaxRetrySleepIntervalUS / opt.RetryIntervalUS),
		maxTimeoutPow:  maxPowerLessEqual(opt.MaxRPCTimeoutMS / opt.RPCTimeoutMS),
		sleep:          time.Sleep,
		jitter:         rand.Int63n,
	}
	e.selectTarget = e.lookupTarget
	for _, o := range opts {
		o(e)
	}
	return e
}

// CreateInodeExecutor is the target-selection variant for inode creation: no
// prior inode identity constrains the target, so the cache picks any viable
// partition within the filesystem.
type CreateInodeExecutor struct {
	*TaskExecutor
}

// NewCreateInodeExecutor builds the create-inode variant.
func NewCreateInodeExecutor(opt ExecutorOption, metaCache MetaCache, channels ChannelManager, opts ...Option) *CreateInodeExecutor {
	e := NewTaskExecutor(opt, metaCache, channels, opts...)
	e.selectTarget = e.pickTarget
	return &CreateInodeExecutor{TaskExecutor: e}
}

// DoRPCTask drives task through repeated attempts and returns the last
// attempt's status: a non-negative MetaStatusCode or a negative transport
// code. Retryable statuses are absorbed; the caller only sees them when the
// retry budget is exhausted.
func (e *TaskExecutor) DoRPCTask(ctx context.Context, task *TaskContext) int {
	task.RPCTimeoutMS = e.opt.RPCTimeoutMS

	ret := ErrRPCFailed
	for {
		if task.RetryTimes > e.opt.MaxRetry {
			logger.WithFields(task.Fields()).Error("retry times exceeds the limit")
			break
		}
		task.RetryTimes++

		if !task.Target.IsValid() && !e.selectTarget(task) {
			e.sleep(e.retryInterval())
			continue
		}

		conn, err := e.channels.GetOrCreateChannel(task.Target.MetaServerID, task.Target.Endpoint)
		if err != nil {
			logger.WithFields(task.Fields()).WithError(err).Warn("get channel failed")
			e.sleep(e.retryInterval())
			continue
		}

		ret = e.executeTask(ctx, conn, task)
		if !e.onReturn(task, ret) {
			break
		}
		e.preProcessBeforeRetry(task, ret)
	}

	return ret
}

func (e *TaskExecutor) executeTask(ctx context.Context, conn *grpc.ClientConn, task *TaskContext) int {
	ctrl := &Controller{Timeout: time.Duration(task.RPCTimeoutMS) * time.Millisecond}
	return task.RPCTask(ctx,
		task.Target.Group.PoolID, task.Target.Group.CopysetID,
		task.Target.PartitionID, task.Target.TxID,
		task.ApplyIndex, conn, ctrl)
}

// onReturn interprets an attempt's status and applies the cache actions it
// implies. It reports whether the task should retry.
func (e *TaskExecutor) onReturn(task *TaskContext, ret int) bool {
	if ret < 0 {
		e.channels.ResetSenderIfNotHealth(task.Target.MetaServerID)
		e.refreshLeader(task)
		return true
	}

	switch MetaStatusCode(ret) {
	case StatusOK:
		return false
	case StatusOverload:
		return true
	case StatusRedirected:
		e.refreshLeader(task)
		return true
	case StatusCopysetNotExist:
		e.refreshLeader(task)
		return true
	case StatusPartitionAllocIDFail:
		// Marking the partition and unbinding the target routes the next
		// selection elsewhere.
		e.metaCache.MarkPartitionUnavailable(task.Target.PartitionID)
		task.Target = Target{}
		return true
	default:
		return false
	}
}

// preProcessBeforeRetry applies suspend bookkeeping and the backoff the last
// status calls for. Timed-out attempts return without sleeping: the next
// attempt's grown timeout has already absorbed the delay.
func (e *TaskExecutor) preProcessBeforeRetry(task *TaskContext, ret int) {
	if task.RetryTimes >= e.opt.MaxRetryTimesBeforeConsiderSuspend {
		if !task.Suspend {
			task.Suspend = true
			logger.WithFields(task.Fields()).
				Errorf("retried %d times, set suspend flag", e.opt.MaxRetryTimesBeforeConsiderSuspend)
		} else if task.RetryTimes%e.opt.MaxRetryTimesBeforeConsiderSuspend == 0 {
			logger.WithFields(task.Fields()).Errorf("retried %d times", task.RetryTimes)
		}
	}

	if ret == ErrRPCTimedOut || ret == ErrTimedOut {
		var nextTimeout uint64
		if task.RetryTimes < e.opt.MinRetryTimesForceTimeoutBackoff &&
			e.metaCache.IsLeaderMayChange(task.Target.Group) {
			// Quick-recover path: a leader change is the likely cause, so keep
			// the base timeout instead of delaying rediscovery.
			nextTimeout = e.opt.RPCTimeoutMS
		} else {
			nextTimeout = e.timeoutBackOff(task.RetryTimes)
		}
		task.RPCTimeoutMS = nextTimeout
		logger.WithFields(task.Fields()).Warnf("rpc timeout, next timeout = %d ms", nextTimeout)
		return
	}

	if MetaStatusCode(ret) == StatusOverload {
		next := e.overLoadBackOff(task.RetryTimes)
		logger.WithFields(task.Fields()).Warnf("metaserver overload, sleep %v", next)
		e.sleep(next)
		return
	}

	if !task.RetryDirectly {
		e.sleep(e.retryInterval())
	}
}

func (e *TaskExecutor) lookupTarget(task *TaskContext) bool {
	target, applyIndex, ok := e.metaCache.GetTarget(task.FsID, task.InodeID)
	if !ok {
		logger.WithFields(task.Fields()).Error("fetch target for task failed")
		return false
	}
	task.Target = target
	task.ApplyIndex = applyIndex
	return true
}

func (e *TaskExecutor) pickTarget(task *TaskContext) bool {
	target, applyIndex, ok := e.metaCache.SelectTarget(task.FsID)
	if !ok {
		logger.WithFields(task.Fields()).Error("select target for task failed")
		return false
	}
	task.Target = target
	task.ApplyIndex = applyIndex
	return true
}

// refreshLeader re-resolves the copyset leader. When the leader moved, the
// next attempt targets a different server and skips the inter-attempt sleep.
func (e *TaskExecutor) refreshLeader(task *TaskContext) {
	oldTarget := task.Target.MetaServerID

	target, applyIndex, ok := e.metaCache.GetTargetLeader(task.Target, true)
	if ok {
		task.Target = target
		task.ApplyIndex = applyIndex
	}

	logger.WithFields(task.Fields()).WithField("refresh_ok", ok).Info("refresh leader")

	task.RetryDirectly = oldTarget != task.Target.MetaServerID
}

// overLoadBackOff computes the sleep before the next attempt after an
// OVERLOAD response: exponential in the retry count with ±10% jitter, clamped
// to [RetryIntervalUS, MaxRetrySleepIntervalUS].
func (e *TaskExecutor) overLoadBackOff(retryTimes uint64) time.Duration {
	pow := retryTimes
	if pow > e.maxOverloadPow {
		pow = e.maxOverloadPow
	}

	next := int64(e.opt.RetryIntervalUS << pow)
	next += e.jitter(next/5+1) - next/10

	if next > int64(e.opt.MaxRetrySleepIntervalUS) {
		next = int64(e.opt.MaxRetrySleepIntervalUS)
	}
	if next < int64(e.opt.RetryIntervalUS) {
		next = int64(e.opt.RetryIntervalUS)
	}
	return time.Duration(next) * time.Microsecond
}

// timeoutBackOff computes the next attempt's timeout after a timed-out one:
// exponential in the retry count, clamped to [RPCTimeoutMS, MaxRPCTimeoutMS].
// No jitter; timeouts are not sleep durations.
func (e *TaskExecutor) timeoutBackOff(retryTimes uint64) uint64 {
	pow := retryTimes
	if pow > e.maxTimeoutPow {
		pow = e.maxTimeoutPow
	}

	next := e.opt.RPCTimeoutMS << pow
	if next > e.opt.MaxRPCTimeoutMS {
		next = e.opt.MaxRPCTimeoutMS
	}
	if next < e.opt.RPCTimeoutMS {
		next = e.opt.RPCTimeoutMS
	}
	return next
}

func (e *TaskExecutor) retryInterval() time.Duration {
	return time.Duration(e.opt.RetryIntervalUS) * time.Microsecond
}

// maxPowerLessEqual returns the largest k with 2^k <= v, and 0 for v < 2.
func maxPowerLessEqual(v uint64) uint64 {
	if v < 2 {
		return 0
	}
	return uint64(bits.Len64(v)) - 1
}
