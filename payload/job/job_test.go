package job

import (
	"context"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/triedb"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/payload-job/payload"
)

// fakeStateProvider hands back a fresh empty in-memory state for any
// requested hash, the way worker_test.go's in-package tests build state
// for the miner without a real blockchain behind it.
type fakeStateProvider struct{}

func (fakeStateProvider) StateByBlockHash(common.Hash) (*state.StateDB, error) {
	db := rawdb.NewMemoryDatabase()
	return state.New(common.Hash{}, state.NewDatabase(triedb.NewDatabase(db, nil), nil))
}

// fakeBuilder is a payload.Builder whose TryBuild behaviour is entirely
// scripted by the test: it reports how many calls it saw concurrently and
// can be gated with a channel to control exactly when it returns.
type fakeBuilder struct {
	outcome payload.Outcome
	err     error
	gate    chan struct{} // if non-nil, TryBuild blocks here before returning

	inFlight int32
	maxSeen  int32
	calls    int32
}

func (b *fakeBuilder) TryBuild(args payload.BuildArguments) (payload.Outcome, error) {
	n := atomic.AddInt32(&b.inFlight, 1)
	defer atomic.AddInt32(&b.inFlight, -1)
	atomic.AddInt32(&b.calls, 1)
	for {
		cur := atomic.LoadInt32(&b.maxSeen)
		if n <= cur || atomic.CompareAndSwapInt32(&b.maxSeen, cur, n) {
			break
		}
	}
	if b.gate != nil {
		<-b.gate
	}
	return b.outcome, b.err
}

func (b *fakeBuilder) OnMissingPayload(args payload.BuildArguments) (*payload.Built, bool) {
	return nil, false
}

func testConfig(t *testing.T) *payload.Config {
	t.Helper()
	parent := types.NewBlockWithHeader(&types.Header{
		Number:   big.NewInt(1),
		GasLimit: 30_000_000,
		Time:     1000,
		BaseFee:  big.NewInt(params.InitialBaseFee),
	})
	attrs := payload.Attributes{Timestamp: 1001}
	return payload.NewConfig(parent, params.TestChainConfig, nil, attrs)
}

func newTestJob(t *testing.T, builder payload.Builder, deadline time.Duration, interval time.Duration) *Job {
	t.Helper()
	j := &Job{
		client:     fakeStateProvider{},
		builder:    builder,
		tasks:      GoroutineSpawner{},
		permit:     NewPermit(4),
		config:     testConfig(t),
		deadline:   time.Now().Add(deadline),
		interval:   interval,
		bestReq:    make(chan chan bestResp),
		resolveReq: make(chan chan resolveResp),
		doneCh:     make(chan struct{}),
	}
	go j.run()
	return j
}

func TestJobBestPayloadReturnsStoredBest(t *testing.T) {
	want := &payload.Built{Fees: uint256.NewInt(42), Block: types.NewBlockWithHeader(&types.Header{Number: big.NewInt(2)})}
	builder := &fakeBuilder{
		outcome: payload.Outcome{Kind: payload.OutcomeBetter, Payload: want, CachedReads: nil},
	}
	j := newTestJob(t, builder, 5*time.Second, time.Hour)

	var got *payload.Built
	require.Eventually(t, func() bool {
		built, err := j.BestPayload(context.Background())
		if err != nil || built == nil {
			return false
		}
		got = built
		return true
	}, time.Second, 2*time.Millisecond)

	assert.Equal(t, want.Fees, got.Fees)
}

func TestJobBestPayloadFallsBackToEmptyPayload(t *testing.T) {
	builder := &fakeBuilder{gate: make(chan struct{})} // never returns within the test
	j := newTestJob(t, builder, 5*time.Second, time.Hour)

	built, err := j.BestPayload(context.Background())
	require.NoError(t, err)
	require.NotNil(t, built)
	assert.True(t, built.Fees.IsZero())
	assert.Equal(t, 0, len(built.Block.Transactions()))
}

func TestJobResolveReturnsStoredBestAndTerminates(t *testing.T) {
	want := &payload.Built{Fees: uint256.NewInt(7), Block: types.NewBlockWithHeader(&types.Header{Number: big.NewInt(2)})}
	builder := &fakeBuilder{
		outcome: payload.Outcome{Kind: payload.OutcomeBetter, Payload: want},
	}
	j := newTestJob(t, builder, 5*time.Second, time.Hour)

	require.Eventually(t, func() bool {
		built, err := j.BestPayload(context.Background())
		return err == nil && built != nil && built.Fees.Sign() > 0
	}, time.Second, 2*time.Millisecond)

	waiter, keepAlive, err := j.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KeepAliveNo, keepAlive)

	got, err := waiter.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Fees, got.Fees)

	select {
	case <-j.Done():
	case <-time.After(time.Second):
		t.Fatal("job did not terminate after resolve")
	}
}

func TestJobDeadlineTerminatesJob(t *testing.T) {
	builder := &fakeBuilder{gate: make(chan struct{})}
	j := newTestJob(t, builder, 5*time.Millisecond, time.Hour)

	select {
	case <-j.Done():
	case <-time.After(time.Second):
		t.Fatal("job did not terminate at its deadline")
	}
}

func TestJobAtMostOneBuildInFlight(t *testing.T) {
	builder := &fakeBuilder{
		outcome: payload.Outcome{Kind: payload.OutcomeAborted, Fees: uint256.NewInt(0)},
	}
	j := newTestJob(t, builder, 200*time.Millisecond, 5*time.Millisecond)

	select {
	case <-j.Done():
	case <-time.After(time.Second):
		t.Fatal("job did not terminate at its deadline")
	}

	assert.LessOrEqual(t, atomic.LoadInt32(&builder.maxSeen), int32(1),
		"at most one build attempt may be in flight at a time")
	assert.Greater(t, atomic.LoadInt32(&builder.calls), int32(1),
		"expected the interval timer to trigger more than one attempt")
}
