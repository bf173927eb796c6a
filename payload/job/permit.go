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

	"golang.org/x/sync/semaphore"
)

// Permit is a counting semaphore bounding how many build attempts may run
// concurrently across every job sharing it.
//
// A Generator hands the same *Permit to every Job it spawns, so capacity
// is global, not per-job.
type Permit struct {
	sem *semaphore.Weighted
}

// NewPermit creates a Permit with the given capacity. capacity must be at
// least 1; the generator is responsible for enforcing that.
func NewPermit(capacity int64) *Permit {
	return &Permit{sem: semaphore.NewWeighted(capacity)}
}

// Acquire blocks until a build slot is available or ctx is cancelled. It is
// meant to be called from inside the spawned build task, not at spawn time,
// so that spawning itself never blocks.
func (p *Permit) Acquire(ctx context.Context) error {
	return p.sem.Acquire(ctx, 1)
}

// Release gives the slot back. Must be called exactly once per successful
// Acquire, typically via defer.
func (p *Permit) Release() {
	p.sem.Release(1)
}
