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

// GoroutineSpawner is the default payload.TaskSpawner: it runs every task
// on its own goroutine rather than routing through a worker pool.
// Concurrency is bounded separately, by a Permit acquired inside the
// task itself.
type GoroutineSpawner struct{}

func (GoroutineSpawner) SpawnBlocking(task func()) {
	go task()
}
