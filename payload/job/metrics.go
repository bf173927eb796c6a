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
	"time"

	"github.com/ethereum/go-ethereum/metrics"
)

// Package-level registered meters, timers, and gauges for the job driver
// loop's build outcomes.
var (
	betterMeter    = metrics.NewRegisteredMeter("payload/job/better", nil)
	abortedMeter   = metrics.NewRegisteredMeter("payload/job/aborted", nil)
	failedMeter    = metrics.NewRegisteredMeter("payload/job/failed", nil)
	cancelledMeter = metrics.NewRegisteredMeter("payload/job/cancelled", nil)
	buildTimer     = metrics.NewRegisteredTimer("payload/job/build", nil)
	pendingGauge   = metrics.NewRegisteredGauge("payload/job/pending", nil)
)

func metricsRecordBuild(start time.Time) {
	buildTimer.Update(time.Since(start))
}

func metricsRecordBetter() {
	betterMeter.Mark(1)
}

func metricsRecordAborted() {
	abortedMeter.Mark(1)
}

func metricsRecordFailed() {
	failedMeter.Mark(1)
}

func metricsRecordCancelled() {
	cancelledMeter.Mark(1)
}

func metricsSetPending(n int64) {
	pendingGauge.Update(n)
}
