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

// Package cachedreads implements a small read-through cache of state trie
// reads touched by a build attempt, so that successive attempts of the same
// job can amortise disk/trie I/O instead of re-fetching state they already
// saw. It is deliberately opaque to the scheduler core: a Reads value can be
// created empty, handed to exactly one build attempt, and returned by that
// attempt when it completes. Ownership never crosses goroutines
// concurrently, so no internal locking is required.
package cachedreads

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// storageKey identifies one storage slot of one account.
type storageKey struct {
	addr common.Address
	slot common.Hash
}

// Reads caches accounts and storage slots read by a build attempt. It is
// single-owner: the job owns it between attempts and lends it to exactly
// one build task, which returns it (mutated) via the build outcome.
type Reads struct {
	accounts map[common.Address]*types.StateAccount
	storage  map[storageKey]common.Hash
	code     map[common.Hash][]byte
}

// New returns an empty cache, ready to be handed to a build attempt.
func New() *Reads {
	return &Reads{
		accounts: make(map[common.Address]*types.StateAccount),
		storage:  make(map[storageKey]common.Hash),
		code:     make(map[common.Hash][]byte),
	}
}

// Account returns a cached account, if any was recorded for addr.
func (r *Reads) Account(addr common.Address) (*types.StateAccount, bool) {
	acc, ok := r.accounts[addr]
	return acc, ok
}

// RecordAccount remembers an account read so later attempts can reuse it.
func (r *Reads) RecordAccount(addr common.Address, acc *types.StateAccount) {
	r.accounts[addr] = acc
}

// Storage returns a cached storage slot, if any was recorded.
func (r *Reads) Storage(addr common.Address, slot common.Hash) (common.Hash, bool) {
	v, ok := r.storage[storageKey{addr, slot}]
	return v, ok
}

// RecordStorage remembers a storage slot read.
func (r *Reads) RecordStorage(addr common.Address, slot, value common.Hash) {
	r.storage[storageKey{addr, slot}] = value
}

// Code returns cached contract bytecode for a code hash, if recorded.
func (r *Reads) Code(hash common.Hash) ([]byte, bool) {
	code, ok := r.code[hash]
	return code, ok
}

// RecordCode remembers contract bytecode for a code hash.
func (r *Reads) RecordCode(hash common.Hash, code []byte) {
	r.code[hash] = code
}

// Len reports the number of distinct cached reads, for metrics/debugging.
func (r *Reads) Len() int {
	return len(r.accounts) + len(r.storage) + len(r.code)
}
