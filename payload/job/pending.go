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

import "github.com/mantlenetworkio/payload-job/payload"

// buildResult is what a spawned build task posts back on its result
// channel: either a produced Outcome or a failure (builder error, or the
// task never got to send before panicking, represented by the channel
// being closed without a value, which pendingBuild.poll turns into
// payload.ErrChannelClosed).
type buildResult struct {
	outcome payload.Outcome
	err     error
}

// pendingBuild owns the cancellation token for one in-flight build attempt
// and the channel the attempt's result arrives on. At most one pendingBuild
// exists per job at any time.
type pendingBuild struct {
	cancel *cancelOwner
	result chan buildResult
}

// newPendingBuild wires up a fresh cancellation token and a single-slot
// result channel for a build task about to be spawned.
func newPendingBuild() *pendingBuild {
	return &pendingBuild{
		cancel: newCancelToken(),
		result: make(chan buildResult, 1),
	}
}

// send is called by the build task goroutine exactly once, with its
// outcome or error.
func (p *pendingBuild) send(outcome payload.Outcome, err error) {
	p.result <- buildResult{outcome: outcome, err: err}
	close(p.result)
}

// poll performs a non-blocking check for a completed result. ok is false
// if the build is still in flight.
func (p *pendingBuild) poll() (res buildResult, ok bool) {
	select {
	case res, open := <-p.result:
		if !open {
			return buildResult{err: payload.ErrChannelClosed}, true
		}
		return res, true
	default:
		return buildResult{}, false
	}
}

// wait blocks until the build completes, for callers that need the result
// synchronously.
func (p *pendingBuild) wait() buildResult {
	res, open := <-p.result
	if !open {
		return buildResult{err: payload.ErrChannelClosed}
	}
	return res
}

// discard cancels the in-flight attempt. It is called explicitly by the
// job's driver when the deadline fires, and by ResolveWaiter.Await when
// the attempt is still in flight. A ResolveWaiter that is never awaited
// does not cancel the attempt it holds.
func (p *pendingBuild) discard() {
	p.cancel.Cancel()
}
