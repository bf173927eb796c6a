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
	"crypto/sha256"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/beacon/engine"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// Attributes are the per-slot parameters handed down by the consensus
// layer when it wants the execution layer to start assembling a payload.
// Check the engine-api specification for more details:
// https://github.com/ethereum/execution-apis/blob/main/src/engine/cancun.md#payloadattributesv3
type Attributes struct {
	Parent       common.Hash           // The parent block to build the payload on top of
	Timestamp    uint64                // The slot timestamp of the payload being generated
	FeeRecipient common.Address        // The address collecting the block's transaction fees
	Random       common.Hash           // The randomness value provided by the beacon chain
	Withdrawals  types.Withdrawals     // Withdrawals to include in the block (Shanghai)
	BeaconRoot   *common.Hash          // The parent beacon block root (Cancun)
	Version      engine.PayloadVersion // Versioning byte folded into the payload id
	ID           engine.PayloadID      // Opaque payload identifier, computed by Id() if zero
}

// Id computes an 8-byte identifier by hashing the components of the
// attributes.
func (a *Attributes) Id() engine.PayloadID {
	hasher := sha256.New()
	hasher.Write(a.Parent[:])
	binary.Write(hasher, binary.BigEndian, a.Timestamp)
	hasher.Write(a.Random[:])
	hasher.Write(a.FeeRecipient[:])
	rlp.Encode(hasher, a.Withdrawals)
	if a.BeaconRoot != nil {
		hasher.Write(a.BeaconRoot[:])
	}
	var out engine.PayloadID
	copy(out[:], hasher.Sum(nil)[:8])
	out[0] = byte(a.Version)
	return out
}

// IsZeroParent reports whether the parent hash names the zero hash, the
// engine-api convention for "build on the current chain head".
func (a *Attributes) IsZeroParent() bool {
	return a.Parent == (common.Hash{})
}
