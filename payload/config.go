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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/consensus/misc/eip1559"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// BlockEnv is the pre-derived block environment a job computes once, at
// generation time, from the parent header and the chain configuration.
// It is reused by every build attempt for the job's lifetime instead of
// being recomputed per attempt.
type BlockEnv struct {
	Number    uint64
	Timestamp uint64
	GasLimit  uint64
	BaseFee   *uint256.Int
}

// Config is the immutable input to a single payload job. It is built once
// by the generator and never mutated afterwards; every build attempt of the
// job receives the same Config plus whatever best payload/cached reads
// exist at the time the attempt is spawned.
type Config struct {
	Parent      *types.Block      // The sealed parent block every attempt builds on top of
	Env         BlockEnv          // Pre-computed block environment
	ChainConfig *params.ChainConfig
	ExtraData   []byte
	Attributes  Attributes
}

// NewConfig builds a Config from a sealed parent block and the attributes
// that triggered the job, deriving the block environment once up front.
func NewConfig(parent *types.Block, chainConfig *params.ChainConfig, extraData []byte, attrs Attributes) *Config {
	header := parent.Header()
	env := BlockEnv{
		Number:    header.Number.Uint64() + 1,
		Timestamp: attrs.Timestamp,
		GasLimit:  header.GasLimit,
	}
	if chainConfig.IsLondon(new(big.Int).SetUint64(env.Number)) {
		env.BaseFee = uint256.MustFromBig(eip1559.CalcBaseFee(chainConfig, header))
	}
	return &Config{
		Parent:      parent,
		Env:         env,
		ChainConfig: chainConfig,
		ExtraData:   extraData,
		Attributes:  attrs,
	}
}

// ParentHash is a convenience accessor used by builders that only need the
// hash and not the full sealed block.
func (c *Config) ParentHash() common.Hash {
	return c.Parent.Hash()
}
