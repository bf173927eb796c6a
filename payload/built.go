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
	"github.com/ethereum/go-ethereum/beacon/engine"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// Built is a fully assembled payload: a sealed block plus its accumulated
// fee total and the identifier the consensus layer used to request it.
// Immutable once constructed.
type Built struct {
	ID    engine.PayloadID
	Block *types.Block
	Fees  *uint256.Int
}

// IsBetterPayload reports whether a candidate fee total would strictly
// improve on the current best. Ties never replace the current best.
func IsBetterPayload(current *Built, fees *uint256.Int) bool {
	if current == nil {
		return true
	}
	return fees.Cmp(current.Fees) > 0
}
