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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
)

// StateProviderFactory resolves a consistent state snapshot at a given
// block hash. Implementations must return a state that reflects exactly
// the post-state of that block.
type StateProviderFactory interface {
	StateByBlockHash(hash common.Hash) (*state.StateDB, error)
}

// BlockReaderIdExt resolves canonical blocks either by hash or by a tag
// such as "latest"/"finalized". Either method returns (nil, false) rather
// than an error when the block is simply not known yet.
type BlockReaderIdExt interface {
	FindBlockByHash(hash common.Hash) (*types.Block, bool)
	BlockByNumberOrTag(tag string) (*types.Block, bool)
}

// TransactionPool is intentionally left opaque to the scheduler core: only
// a concrete Builder implementation needs to know its shape. It must be
// cheap to clone/share across goroutines.
type TransactionPool interface{}

// TaskSpawner runs a task without blocking the caller. SpawnBlocking is
// meant for CPU-bound work; implementations typically hand off to a
// goroutine or a bounded worker pool.
type TaskSpawner interface {
	SpawnBlocking(task func())
}

// Builder is the capability interface a concrete block-assembly algorithm
// must satisfy to be driven by the scheduler. It is cheap to copy/share;
// TryBuild is CPU-bound and may take seconds.
type Builder interface {
	// TryBuild attempts to build a new payload from args. It must return
	// OutcomeCancelled only if it actually observed args.Cancel.IsCancelled()
	// return true; otherwise it must return OutcomeBetter or OutcomeAborted,
	// and in both cases the (possibly mutated) CachedReads must be present
	// on the returned Outcome.
	TryBuild(args BuildArguments) (Outcome, error)

	// OnMissingPayload lets a specialised builder synthesise a payload
	// synchronously when resolve is called before any attempt has
	// completed. The default behaviour (no override) is "no payload",
	// signalled by returning (nil, false).
	OnMissingPayload(args BuildArguments) (*Built, bool)
}
