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

import "sync/atomic"

// cancelFlag is the shared boolean backing a build attempt's cancellation
// token, initially false.
type cancelFlag struct {
	cancelled atomic.Bool
}

// cancelOwner is the write side of a cancellation token. Exactly one owner
// exists per build attempt: the job that spawned it. Only the owner can
// ever set the flag, either by an explicit Cancel() or by the job dropping
// the pending build handle, which calls Cancel() in its own cleanup.
type cancelOwner struct {
	flag *cancelFlag
}

// newCancelToken creates a fresh, unset cancellation token and its owner
// handle.
func newCancelToken() *cancelOwner {
	return &cancelOwner{flag: &cancelFlag{}}
}

// Cancel sets the flag. Idempotent and safe to call more than once.
func (o *cancelOwner) Cancel() {
	o.flag.cancelled.Store(true)
}

// Reader returns a read-only view of the token that a builder may poll.
func (o *cancelOwner) Reader() *cancelReader {
	return &cancelReader{flag: o.flag}
}

// cancelReader is the read-only half of a cancellation token. It satisfies
// payload.CancelReader; holding or dropping a cancelReader never mutates
// the underlying flag.
type cancelReader struct {
	flag *cancelFlag
}

// IsCancelled polls the flag non-blockingly.
func (r *cancelReader) IsCancelled() bool {
	return r.flag.cancelled.Load()
}
