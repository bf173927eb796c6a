package job

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/payload-job/payload"
)

func TestResolveWaiterAwaitPreferPendingBetter(t *testing.T) {
	pb := newPendingBuild()
	better := &payload.Built{Fees: uint256.NewInt(9)}
	pb.send(payload.Outcome{Kind: payload.OutcomeBetter, Payload: better}, nil)

	w := &ResolveWaiter{pending: pb, best: &payload.Built{Fees: uint256.NewInt(1)}}
	got, err := w.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, better.Fees, got.Fees)
}

func TestResolveWaiterAwaitFallsBackToStoredBest(t *testing.T) {
	best := &payload.Built{Fees: uint256.NewInt(3)}
	w := &ResolveWaiter{best: best}

	got, err := w.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, best, got)
}

func TestResolveWaiterAwaitPendingStillInFlightFallsThroughToBest(t *testing.T) {
	pb := newPendingBuild() // never sent: still "in flight"
	best := &payload.Built{Fees: uint256.NewInt(5)}
	w := &ResolveWaiter{pending: pb, best: best}

	got, err := w.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, best, got)
	assert.True(t, pb.cancel.Reader().IsCancelled(), "the losing in-flight attempt must be discarded")
}

func TestResolveWaiterAwaitEmptyFallback(t *testing.T) {
	emptyCh := make(chan emptyResult, 1)
	want := &payload.Built{Fees: uint256.NewInt(0)}
	emptyCh <- emptyResult{built: want}

	w := &ResolveWaiter{emptyCh: emptyCh}
	got, err := w.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveWaiterAwaitNothingToResolve(t *testing.T) {
	w := &ResolveWaiter{}
	_, err := w.Await(context.Background())
	assert.ErrorIs(t, err, errNothingToResolve)
}
