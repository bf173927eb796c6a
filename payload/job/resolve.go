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

	"github.com/mantlenetworkio/payload-job/payload"
)

// KeepAlive tells the caller of Resolve whether the job should keep
// running after resolve completes. It is Yes only when a specialised
// builder's OnMissingPayload hook signals it is still improving things
// externally, e.g. an L2 builder pulling batches from somewhere other
// than this job's own build loop.
type KeepAlive int

const (
	KeepAliveNo KeepAlive = iota
	KeepAliveYes
)

// emptyResult is what the empty-payload fallback task posts back.
type emptyResult struct {
	built *payload.Built
	err   error
}

// ResolveWaiter races an in-flight "maybe better" build against the job's
// stored best and an empty-payload fallback. Resolve hands one of these to
// the caller instead of blocking itself, so the caller decides when (and
// whether) to wait for the outcome.
type ResolveWaiter struct {
	pending *pendingBuild
	best    *payload.Built
	emptyCh chan emptyResult
}

var errNothingToResolve = errors.New("payload: nothing available to resolve")

// Await prefers an in-flight build that already completed with a better
// payload, then the stored best, then the empty-payload fallback (the only
// one worth actually waiting for, since it's the last resort).
func (w *ResolveWaiter) Await(ctx context.Context) (*payload.Built, error) {
	if w.pending != nil {
		select {
		case res, ok := <-w.pending.result:
			if ok && res.err == nil && res.outcome.Kind == payload.OutcomeBetter {
				return res.outcome.Payload, nil
			}
			// Not better (or it failed/was cancelled): the attempt no
			// longer matters to this resolve, fall through.
		default:
			// Still in flight: it loses the race to best/empty below.
			w.pending.discard()
		}
	}
	if w.best != nil {
		return w.best, nil
	}
	if w.emptyCh != nil {
		select {
		case res, ok := <-w.emptyCh:
			if !ok {
				return nil, payload.ErrChannelClosed
			}
			return res.built, res.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, errNothingToResolve
}

// noopCancelReader always reports "not cancelled"; used for synchronous
// calls into a Builder (OnMissingPayload) that have no attempt to cancel.
type noopCancelReader struct{}

func (noopCancelReader) IsCancelled() bool { return false }
