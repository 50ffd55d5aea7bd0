package rpcclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/kamil5b/go-metafs-client/internal/logger"
	"github.com/kamil5b/go-metafs-client/internal/rpcclient"
	"github.com/kamil5b/go-metafs-client/internal/rpcclient/mocks"
)

func testOption() rpcclient.ExecutorOption {
	return rpcclient.ExecutorOption{
		RPCTimeoutMS:                       1000,
		MaxRPCTimeoutMS:                    8000,
		RetryIntervalUS:                    1000,
		MaxRetrySleepIntervalUS:            8000,
		MaxRetry:                           10,
		MaxRetryTimesBeforeConsiderSuspend: 5,
		MinRetryTimesForceTimeoutBackoff:   5,
	}
}

// sleepRecorder captures the executor's sleeps instead of waiting them out.
type sleepRecorder struct {
	sleeps []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.sleeps = append(s.sleeps, d)
}

// noJitter keeps overload backoff deterministic: the returned value cancels
// the -10% shift exactly.
func noJitter(n int64) int64 {
	return (n - 1) / 2
}

func testTarget(metaServerID rpcclient.MetaServerID) rpcclient.Target {
	return rpcclient.Target{
		Group:        rpcclient.CopysetGroupID{PoolID: 1, CopysetID: 2},
		PartitionID:  3,
		MetaServerID: metaServerID,
		Endpoint:     "10.0.0.1:6700",
		TxID:         1,
	}
}

// attemptLog captures what each invocation of the send-callable observed.
type attemptLog struct {
	timeouts   []time.Duration
	partitions []rpcclient.PartitionID
}

// scriptedTask returns a task whose send-callable replays script, repeating
// the last status once the script is exhausted.
func scriptedTask(op rpcclient.OpType, script []int, log *attemptLog) *rpcclient.TaskContext {
	calls := 0
	return rpcclient.NewTaskContext(op, 1, 100,
		func(ctx context.Context, poolID rpcclient.PoolID, copysetID rpcclient.CopysetID,
			partitionID rpcclient.PartitionID, txID, applyIndex uint64,
			conn *grpc.ClientConn, ctrl *rpcclient.Controller) int {
			if log != nil {
				log.timeouts = append(log.timeouts, ctrl.Timeout)
				log.partitions = append(log.partitions, partitionID)
			}
			idx := calls
			if idx >= len(script) {
				idx = len(script) - 1
			}
			calls++
			return script[idx]
		})
}

func TestDoRPCTask_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	target := testTarget(4)
	cache.EXPECT().GetTarget(uint32(1), uint64(100)).Return(target, uint64(10), true).Times(1)
	channels.EXPECT().GetOrCreateChannel(rpcclient.MetaServerID(4), "10.0.0.1:6700").Return(nil, nil).Times(1)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode, []int{int(rpcclient.StatusOK)}, log)

	exec := rpcclient.NewTaskExecutor(testOption(), cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	assert.Len(t, log.timeouts, 1)
	assert.Equal(t, 1000*time.Millisecond, log.timeouts[0])
	assert.Empty(t, rec.sleeps)
	assert.Equal(t, uint64(10), task.ApplyIndex)
	assert.False(t, task.Suspend)
}

func TestDoRPCTask_TerminalStatusHalts(t *testing.T) {
	tests := []struct {
		name   string
		script []int
		want   int
		calls  int
	}{
		{
			name:   "immediate terminal",
			script: []int{int(rpcclient.StatusNotFound)},
			want:   int(rpcclient.StatusNotFound),
			calls:  1,
		},
		{
			name:   "terminal after retryable",
			script: []int{int(rpcclient.StatusOverload), int(rpcclient.StatusParamError)},
			want:   int(rpcclient.StatusParamError),
			calls:  2,
		},
		{
			name:   "inode exist is terminal",
			script: []int{int(rpcclient.StatusInodeExist)},
			want:   int(rpcclient.StatusInodeExist),
			calls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cache := mocks.NewMockMetaCache(ctrl)
			channels := mocks.NewMockChannelManager(ctrl)
			rec := &sleepRecorder{}

			cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(testTarget(4), uint64(0), true).Times(1)
			channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).Times(tt.calls)

			log := &attemptLog{}
			task := scriptedTask(rpcclient.OpGetInode, tt.script, log)

			exec := rpcclient.NewTaskExecutor(testOption(), cache, channels,
				rpcclient.WithSleep(rec.sleep), rpcclient.WithJitter(noJitter))
			st := exec.DoRPCTask(context.Background(), task)

			assert.Equal(t, tt.want, st)
			assert.Len(t, log.timeouts, tt.calls)
		})
	}
}

func TestDoRPCTask_RetryBound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}
	opt := testOption()

	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(testTarget(4), uint64(0), true).Times(1)
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode, []int{int(rpcclient.StatusOverload)}, log)

	exec := rpcclient.NewTaskExecutor(opt, cache, channels,
		rpcclient.WithSleep(rec.sleep), rpcclient.WithJitter(noJitter))
	st := exec.DoRPCTask(context.Background(), task)

	// Post-increment exhaustion check: exactly maxRetry+1 attempts.
	assert.Len(t, log.timeouts, int(opt.MaxRetry)+1)
	assert.Equal(t, int(rpcclient.StatusOverload), st)
	assert.LessOrEqual(t, task.RetryTimes, opt.MaxRetry+1)
}

func TestDoRPCTask_RetryBoundWithoutTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}
	opt := testOption()

	// Target never resolves; every pass consumes retry budget and sleeps.
	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).
		Return(rpcclient.Target{}, uint64(0), false).Times(int(opt.MaxRetry) + 1)

	task := scriptedTask(rpcclient.OpGetInode, []int{int(rpcclient.StatusOK)}, nil)

	exec := rpcclient.NewTaskExecutor(opt, cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, rpcclient.ErrRPCFailed, st)
	assert.Len(t, rec.sleeps, int(opt.MaxRetry)+1)
}

func TestDoRPCTask_ChannelFailureThenOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(testTarget(4), uint64(0), true).Times(1)
	gomock.InOrder(
		channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, assert.AnError),
		channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil),
	)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode, []int{int(rpcclient.StatusOK)}, log)

	exec := rpcclient.NewTaskExecutor(testOption(), cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	assert.Len(t, log.timeouts, 1)
	assert.Equal(t, []time.Duration{time.Millisecond}, rec.sleeps)
}

func TestDoRPCTask_RedirectThenOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	oldTarget := testTarget(4)
	newTarget := testTarget(5)
	newTarget.Endpoint = "10.0.0.2:6700"

	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(oldTarget, uint64(0), true).Times(1)
	cache.EXPECT().GetTargetLeader(oldTarget, true).Return(newTarget, uint64(7), true).Times(1)
	gomock.InOrder(
		channels.EXPECT().GetOrCreateChannel(rpcclient.MetaServerID(4), "10.0.0.1:6700").Return(nil, nil),
		channels.EXPECT().GetOrCreateChannel(rpcclient.MetaServerID(5), "10.0.0.2:6700").Return(nil, nil),
	)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode,
		[]int{int(rpcclient.StatusRedirected), int(rpcclient.StatusOK)}, log)

	exec := rpcclient.NewTaskExecutor(testOption(), cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	assert.Len(t, log.timeouts, 2)
	// Leader moved, so the second attempt goes out without the base sleep.
	assert.Empty(t, rec.sleeps)
	assert.True(t, task.RetryDirectly)
	assert.Equal(t, uint64(7), task.ApplyIndex)
}

func TestDoRPCTask_CopysetNotExistRefreshesLeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	target := testTarget(4)
	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(target, uint64(0), true).Times(1)
	// Leader unchanged: the next attempt waits out the base interval.
	cache.EXPECT().GetTargetLeader(target, true).Return(target, uint64(0), true).Times(1)
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode,
		[]int{int(rpcclient.StatusCopysetNotExist), int(rpcclient.StatusOK)}, log)

	exec := rpcclient.NewTaskExecutor(testOption(), cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	assert.Len(t, log.timeouts, 2)
	assert.Equal(t, []time.Duration{time.Millisecond}, rec.sleeps)
	assert.False(t, task.RetryDirectly)
}

func TestDoRPCTask_OverloadBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(testTarget(4), uint64(0), true).Times(1)
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).Times(4)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode, []int{
		int(rpcclient.StatusOverload),
		int(rpcclient.StatusOverload),
		int(rpcclient.StatusOverload),
		int(rpcclient.StatusOK),
	}, log)

	exec := rpcclient.NewTaskExecutor(testOption(), cache, channels,
		rpcclient.WithSleep(rec.sleep), rpcclient.WithJitter(noJitter))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	assert.Len(t, log.timeouts, 4)
	require.Len(t, rec.sleeps, 3)
	assert.Equal(t, 2000*time.Microsecond, rec.sleeps[0])
	assert.Equal(t, 4000*time.Microsecond, rec.sleeps[1])
	assert.Equal(t, 8000*time.Microsecond, rec.sleeps[2])
}

func TestDoRPCTask_TimeoutFlurryBacksOff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}
	opt := testOption()

	target := testTarget(4)
	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(target, uint64(0), true).Times(1)
	cache.EXPECT().GetTargetLeader(gomock.Any(), true).Return(target, uint64(0), true).AnyTimes()
	cache.EXPECT().IsLeaderMayChange(target.Group).Return(false).AnyTimes()
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	channels.EXPECT().ResetSenderIfNotHealth(rpcclient.MetaServerID(4)).AnyTimes()

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode, []int{rpcclient.ErrRPCTimedOut}, log)

	exec := rpcclient.NewTaskExecutor(opt, cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, rpcclient.ErrRPCTimedOut, st)
	require.Len(t, log.timeouts, int(opt.MaxRetry)+1)

	want := []time.Duration{
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
	}
	for i, d := range log.timeouts {
		if i < len(want) {
			assert.Equal(t, want[i], d, "attempt %d", i+1)
		} else {
			assert.Equal(t, 8000*time.Millisecond, d, "attempt %d", i+1)
		}
	}
	// Timed-out attempts never add a sleep on top of the grown timeout.
	assert.Empty(t, rec.sleeps)
}

func TestDoRPCTask_LeaderChangeFastPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	target := testTarget(4)
	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(target, uint64(0), true).Times(1)
	cache.EXPECT().GetTargetLeader(target, true).Return(target, uint64(0), true).Times(1)
	cache.EXPECT().IsLeaderMayChange(target.Group).Return(true).Times(1)
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	channels.EXPECT().ResetSenderIfNotHealth(rpcclient.MetaServerID(4)).Times(1)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode,
		[]int{rpcclient.ErrRPCTimedOut, int(rpcclient.StatusOK)}, log)

	exec := rpcclient.NewTaskExecutor(testOption(), cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	require.Len(t, log.timeouts, 2)
	// Below the force-backoff threshold with a leader change hinted, the
	// retry keeps the base timeout exactly.
	assert.Equal(t, 1000*time.Millisecond, log.timeouts[0])
	assert.Equal(t, 1000*time.Millisecond, log.timeouts[1])
}

func TestDoRPCTask_GenericTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	target := testTarget(4)
	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(target, uint64(0), true).Times(1)
	cache.EXPECT().GetTargetLeader(target, true).Return(target, uint64(0), true).Times(1)
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	channels.EXPECT().ResetSenderIfNotHealth(rpcclient.MetaServerID(4)).Times(1)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode,
		[]int{rpcclient.ErrRPCFailed, int(rpcclient.StatusOK)}, log)

	exec := rpcclient.NewTaskExecutor(testOption(), cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	// An unnamed transport error takes the base-interval sleep, no backoff.
	assert.Equal(t, []time.Duration{time.Millisecond}, rec.sleeps)
	require.Len(t, log.timeouts, 2)
	assert.Equal(t, 1000*time.Millisecond, log.timeouts[1])
}

func TestDoRPCTask_SuspendCrossing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nullLogger, hook := logrustest.NewNullLogger()
	old := logger.GetDefaultLogger()
	logger.SetLogger(&logger.Logger{Logger: nullLogger})
	defer logger.SetLogger(old)

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	opt := testOption()
	opt.MaxRetry = 20
	opt.MaxRetryTimesBeforeConsiderSuspend = 5

	cache.EXPECT().GetTarget(gomock.Any(), gomock.Any()).Return(testTarget(4), uint64(0), true).Times(1)
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpGetInode, []int{int(rpcclient.StatusOverload)}, log)

	exec := rpcclient.NewTaskExecutor(opt, cache, channels,
		rpcclient.WithSleep(rec.sleep), rpcclient.WithJitter(noJitter))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOverload), st)
	assert.Len(t, log.timeouts, 21)
	assert.True(t, task.Suspend)

	var suspendSet, periodic int
	for _, entry := range hook.AllEntries() {
		if entry.Level != logrus.ErrorLevel {
			continue
		}
		switch {
		case entry.Message == "retried 5 times, set suspend flag":
			suspendSet++
		case entry.Message == "retried 10 times" ||
			entry.Message == "retried 15 times" ||
			entry.Message == "retried 20 times":
			periodic++
		}
	}
	assert.Equal(t, 1, suspendSet)
	assert.Equal(t, 3, periodic)
}

func TestCreateInodeExecutor_PartitionAllocFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockMetaCache(ctrl)
	channels := mocks.NewMockChannelManager(ctrl)
	rec := &sleepRecorder{}

	first := testTarget(4)
	second := testTarget(4)
	second.PartitionID = 7

	gomock.InOrder(
		cache.EXPECT().SelectTarget(uint32(1)).Return(first, uint64(0), true),
		cache.EXPECT().MarkPartitionUnavailable(rpcclient.PartitionID(3)),
		cache.EXPECT().SelectTarget(uint32(1)).Return(second, uint64(0), true),
	)
	channels.EXPECT().GetOrCreateChannel(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	log := &attemptLog{}
	task := scriptedTask(rpcclient.OpCreateInode,
		[]int{int(rpcclient.StatusPartitionAllocIDFail), int(rpcclient.StatusOK)}, log)
	task.InodeID = 0

	exec := rpcclient.NewCreateInodeExecutor(testOption(), cache, channels, rpcclient.WithSleep(rec.sleep))
	st := exec.DoRPCTask(context.Background(), task)

	assert.Equal(t, int(rpcclient.StatusOK), st)
	assert.Equal(t, []rpcclient.PartitionID{3, 7}, log.partitions)
}

func TestOverLoadBackOff_Bounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	opt := testOption()
	exec := rpcclient.NewTaskExecutor(opt,
		mocks.NewMockMetaCache(ctrl), mocks.NewMockChannelManager(ctrl))

	lo := time.Duration(opt.RetryIntervalUS) * time.Microsecond
	hi := time.Duration(opt.MaxRetrySleepIntervalUS) * time.Microsecond
	for retry := uint64(0); retry <= 100; retry++ {
		d := exec.OverLoadBackOff(retry)
		assert.GreaterOrEqual(t, d, lo, "retry %d", retry)
		assert.LessOrEqual(t, d, hi, "retry %d", retry)
	}
}

func TestTimeoutBackOff_Bounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	opt := testOption()
	exec := rpcclient.NewTaskExecutor(opt,
		mocks.NewMockMetaCache(ctrl), mocks.NewMockChannelManager(ctrl))

	prev := uint64(0)
	for retry := uint64(0); retry <= 100; retry++ {
		d := exec.TimeoutBackOff(retry)
		assert.GreaterOrEqual(t, d, opt.RPCTimeoutMS, "retry %d", retry)
		assert.LessOrEqual(t, d, opt.MaxRPCTimeoutMS, "retry %d", retry)
		assert.GreaterOrEqual(t, d, prev, "retry %d", retry)
		prev = d
	}
}

func TestMaxPowerLessEqual(t *testing.T) {
	tests := []struct {
		v    uint64
		want uint64
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3}, {9, 3}, {1024, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rpcclient.MaxPowerLessEqual(tt.v), "v=%d", tt.v)
	}
}

func TestTargetIsValid(t *testing.T) {
	target := testTarget(4)
	assert.True(t, target.IsValid())

	for name, mutate := range map[string]func(*rpcclient.Target){
		"zero pool":       func(tg *rpcclient.Target) { tg.Group.PoolID = 0 },
		"zero copyset":    func(tg *rpcclient.Target) { tg.Group.CopysetID = 0 },
		"zero partition":  func(tg *rpcclient.Target) { tg.PartitionID = 0 },
		"zero metaserver": func(tg *rpcclient.Target) { tg.MetaServerID = 0 },
		"empty endpoint":  func(tg *rpcclient.Target) { tg.Endpoint = "" },
	} {
		tg := testTarget(4)
		mutate(&tg)
		assert.False(t, tg.IsValid(), name)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	retryable := []rpcclient.MetaStatusCode{
		rpcclient.StatusOverload,
		rpcclient.StatusRedirected,
		rpcclient.StatusCopysetNotExist,
		rpcclient.StatusPartitionAllocIDFail,
	}
	for _, c := range retryable {
		assert.True(t, rpcclient.IsRetryableStatus(c), c.String())
	}

	terminal := []rpcclient.MetaStatusCode{
		rpcclient.StatusOK,
		rpcclient.StatusUnknownError,
		rpcclient.StatusParamError,
		rpcclient.StatusNotFound,
		rpcclient.StatusInodeExist,
		rpcclient.StatusDentryExist,
		rpcclient.StatusStorageError,
		rpcclient.StatusTxFailed,
	}
	for _, c := range terminal {
		assert.False(t, rpcclient.IsRetryableStatus(c), c.String())
	}
}
