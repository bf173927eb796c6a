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

package payload

import (
	"github.com/holiman/uint256"
	"github.com/mantlenetworkio/payload-job/payload/cachedreads"
)

// OutcomeKind tags the three possible verdicts of a single build attempt.
// Go has no tagged union, so Outcome carries every field and callers
// switch on Kind.
type OutcomeKind int

const (
	// OutcomeBetter means the attempt produced a payload with strictly
	// higher fees than the job's current best.
	OutcomeBetter OutcomeKind = iota
	// OutcomeAborted means the attempt completed but did not strictly
	// improve on the current best.
	OutcomeAborted
	// OutcomeCancelled means the attempt observed its cancel token set
	// and returned early. This must never be produced for one of a
	// job's own regular builds; see job.go.
	OutcomeCancelled
)

// Outcome is the tagged result of one build attempt. CachedReads is always
// populated on Better and Aborted outcomes, even when the attempt did not
// improve on the best, so the job can recycle it into the next attempt.
type Outcome struct {
	Kind        OutcomeKind
	Payload     *Built             // set when Kind == OutcomeBetter
	Fees        *uint256.Int       // set when Kind == OutcomeAborted
	CachedReads *cachedreads.Reads // always set unless Kind == OutcomeCancelled
}

// BuildArguments bundles everything one build attempt needs: the immutable
// job config, the best payload seen so far (if any), the cache on loan from
// the job, and a read-only view of the attempt's cancel token.
type BuildArguments struct {
	Config      *Config
	BestPayload *Built
	CachedReads *cachedreads.Reads
	Cancel      CancelReader
}

// CancelReader is the read-only half of a cancellation token: builders may
// poll it but never set it. Concrete implementation lives in payload/job,
// this is the capability surface a Builder is allowed to depend on.
type CancelReader interface {
	IsCancelled() bool
}
