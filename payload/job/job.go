// Copyright 2025 The payload-job Authors
// This file is part of the payload-job library.
//
// The payload-job library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The payload-job library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the payload-job library. If not, see <http://www.gnu.org/licenses/>.

package job

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mantlenetworkio/payload-job/payload"
	"github.com/mantlenetworkio/payload-job/payload/cachedreads"
	"github.com/mantlenetworkio/payload-job/payload/empty"
)

// errJobTerminated is returned by Job methods invoked after the job's
// driver loop has already exited (deadline fired, or a prior Resolve call
// terminated it).
var errJobTerminated = errors.New("payload: job already terminated")

type bestResp struct {
	built *payload.Built
	err   error
}

type resolveResp struct {
	waiter    *ResolveWaiter
	keepAlive KeepAlive
}

// Job is a single payload-building job: it repeatedly asks its Builder for
// better payloads until its deadline fires or resolve is called. Exactly
// one goroutine (run) ever touches the job's mutable state; every other
// method communicates with it over a channel, so the state itself needs
// no lock.
type Job struct {
	client  payload.StateProviderFactory
	builder payload.Builder
	tasks   payload.TaskSpawner
	permit  *Permit

	config   *payload.Config
	deadline time.Time
	interval time.Duration

	bestReq    chan chan bestResp
	resolveReq chan chan resolveResp
	doneCh     chan struct{}
}

// Attributes returns the payload attributes this job was created for. The
// config is immutable for the job's lifetime, so this is safe to read
// without going through the driver goroutine.
func (j *Job) Attributes() payload.Attributes {
	return j.config.Attributes
}

// BestPayload returns the job's current best payload. If no attempt has
// produced one yet, it synchronously builds and returns the empty-payload
// fallback.
func (j *Job) BestPayload(ctx context.Context) (*payload.Built, error) {
	respCh := make(chan bestResp, 1)
	select {
	case j.bestReq <- respCh:
	case <-j.doneCh:
		return nil, errJobTerminated
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-respCh:
		return resp.built, resp.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolve takes the job's current best payload and any in-flight attempt,
// and returns a ResolveWaiter plus a KeepAlive flag. Unless the Builder's
// OnMissingPayload hook asks to keep running, the job's driver loop
// terminates as part of this call: a job terminates exactly once, either
// the deadline fires or resolve is called.
func (j *Job) Resolve(ctx context.Context) (*ResolveWaiter, KeepAlive, error) {
	respCh := make(chan resolveResp, 1)
	select {
	case j.resolveReq <- respCh:
	case <-j.doneCh:
		return nil, KeepAliveNo, errJobTerminated
	case <-ctx.Done():
		return nil, KeepAliveNo, ctx.Err()
	}
	select {
	case resp := <-respCh:
		return resp.waiter, resp.keepAlive, nil
	case <-ctx.Done():
		return nil, KeepAliveNo, ctx.Err()
	}
}

// Done reports a channel closed once the driver loop has terminated.
func (j *Job) Done() <-chan struct{} {
	return j.doneCh
}

// run is the job's driver goroutine. It holds every piece of mutable job
// state locally (best, pending, cached) and is the only goroutine that
// ever touches them.
func (j *Job) run() {
	defer close(j.doneCh)

	deadlineTimer := time.NewTimer(time.Until(j.deadline))
	defer deadlineTimer.Stop()

	// Fire immediately on the first tick.
	intervalTimer := time.NewTimer(0)
	defer intervalTimer.Stop()
	periodStart := time.Now()

	var (
		best    *payload.Built
		pending *pendingBuild
		cached  = cachedreads.New()
	)

	spawn := func() {
		cr := cached
		cached = nil
		pb := newPendingBuild()
		pending = pb
		args := payload.BuildArguments{
			Config:      j.config,
			BestPayload: best,
			CachedReads: cr,
			Cancel:      pb.cancel.Reader(),
		}
		builder, permit := j.builder, j.permit
		j.tasks.SpawnBlocking(func() {
			// A panicking builder closes the result channel without a
			// value, which the driver reads as payload.ErrChannelClosed.
			defer func() {
				if r := recover(); r != nil {
					log.Error("payload build attempt panicked", "id", args.Config.Attributes.ID, "panic", r)
					close(pb.result)
				}
			}()
			// The permit is acquired inside the spawned task, not at
			// spawn time, so spawning itself never blocks.
			if err := permit.Acquire(context.Background()); err != nil {
				pb.send(payload.Outcome{}, err)
				return
			}
			defer permit.Release()

			start := time.Now()
			outcome, err := builder.TryBuild(args)
			metricsRecordBuild(start)
			pb.send(outcome, err)
		})
	}

	for {
		var pendingCh chan buildResult
		if pending != nil {
			pendingCh = pending.result
			metricsSetPending(1)
		} else {
			metricsSetPending(0)
		}

		select {
		case <-deadlineTimer.C:
			// Deadline reached: drop the pending handle, cancelling any
			// in-flight attempt, and terminate.
			if pending != nil {
				pending.discard()
			}
			return

		case <-intervalTimer.C:
			if pending == nil {
				spawn()
			}
			// The timer stays disarmed (one-shot) until the pending
			// result is processed below, which enforces "at most one
			// build in flight" without any extra bookkeeping.

		case res, ok := <-pendingCh:
			pending = nil
			if !ok {
				res = buildResult{err: payload.ErrChannelClosed}
			}
			switch {
			case res.err != nil:
				log.Warn("payload build attempt failed", "id", j.config.Attributes.ID, "err", res.err)
				metricsRecordFailed()
				// Interval is NOT reset: continue on the old schedule so
				// an overdue retry fires immediately.
				elapsed := time.Since(periodStart)
				remaining := j.interval - elapsed
				if remaining < 0 {
					remaining = 0
				}
				intervalTimer.Reset(remaining)

			case res.outcome.Kind == payload.OutcomeCancelled:
				// Unreachable for a job's own regular builds: the job
				// never cancels its own attempts. Treat it as a logic
				// error and recover by resuming the normal schedule.
				log.Error("build attempt reported cancellation for a job-owned build, this is a logic error", "id", j.config.Attributes.ID)
				metricsRecordCancelled()
				periodStart = time.Now()
				intervalTimer.Reset(j.interval)

			case res.outcome.Kind == payload.OutcomeBetter:
				cached = res.outcome.CachedReads
				best = res.outcome.Payload
				metricsRecordBetter()
				log.Info("updated best payload", "id", j.config.Attributes.ID,
					"fees", best.Fees, "hash", best.Block.Hash())
				periodStart = time.Now()
				intervalTimer.Reset(j.interval)

			default: // OutcomeAborted
				cached = res.outcome.CachedReads
				metricsRecordAborted()
				periodStart = time.Now()
				intervalTimer.Reset(j.interval)
			}

		case respCh := <-j.bestReq:
			if best != nil {
				respCh <- bestResp{built: best}
				continue
			}
			built, err := empty.Build(j.client, j.config)
			respCh <- bestResp{built: built, err: err}

		case respCh := <-j.resolveReq:
			waiter, keepAlive := j.resolveWaiter(best, pending)
			best, pending = nil, nil
			respCh <- resolveResp{waiter: waiter, keepAlive: keepAlive}
			if keepAlive == KeepAliveNo {
				return
			}
		}
	}
}

// resolveWaiter decides what the resolve waiter should hold and whether
// the job should keep running.
func (j *Job) resolveWaiter(best *payload.Built, pending *pendingBuild) (*ResolveWaiter, KeepAlive) {
	if best != nil {
		return &ResolveWaiter{pending: pending, best: best}, KeepAliveNo
	}

	args := payload.BuildArguments{Config: j.config, Cancel: noopCancelReader{}}
	if p, ok := j.builder.OnMissingPayload(args); ok {
		return &ResolveWaiter{pending: pending, best: p}, KeepAliveYes
	}

	emptyCh := make(chan emptyResult, 1)
	client, config := j.client, j.config
	j.tasks.SpawnBlocking(func() {
		built, err := empty.Build(client, config)
		emptyCh <- emptyResult{built: built, err: err}
		close(emptyCh)
	})
	return &ResolveWaiter{pending: pending, emptyCh: emptyCh}, KeepAliveNo
}
