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

// Package empty builds the zero-transaction fallback payload a job hands
// back when resolve is called (or BestPayload is read) before any attempt
// has produced a better one: a parent state, a header with no
// transactions, the EIP-4788 beacon-root call, Shanghai withdrawal balance
// increments, and a state commit, with finalization inlined directly since
// an empty payload has nothing left to finalize.
package empty

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/consensus/misc/eip4844"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/holiman/uint256"

	"github.com/mantlenetworkio/payload-job/payload"
)

// Build assembles and seals a payload containing no transactions, on top
// of the parent state named by config. It is the builder-of-last-resort:
// cheap enough to run synchronously off the job's driver goroutine, and
// always able to produce a result since it never touches the transaction
// pool.
func Build(client payload.StateProviderFactory, config *payload.Config) (*payload.Built, error) {
	statedb, err := client.StateByBlockHash(config.ParentHash())
	if err != nil {
		return nil, payload.NewInternalError("state at parent", err)
	}

	parentHeader := config.Parent.Header()
	header := &types.Header{
		ParentHash: config.ParentHash(),
		UncleHash:  types.EmptyUncleHash,
		Coinbase:   config.Attributes.FeeRecipient,
		Number:     new(big.Int).SetUint64(config.Env.Number),
		GasLimit:   config.Env.GasLimit,
		Time:       config.Env.Timestamp,
		Extra:      config.ExtraData,
		MixDigest:  config.Attributes.Random,
		Difficulty: new(big.Int),
	}
	if config.Env.BaseFee != nil {
		header.BaseFee = config.Env.BaseFee.ToBig()
	}
	if config.ChainConfig.IsCancun(header.Number, header.Time) {
		var excessBlobGas uint64
		if config.ChainConfig.IsCancun(parentHeader.Number, parentHeader.Time) {
			excessBlobGas = eip4844.CalcExcessBlobGas(config.ChainConfig, parentHeader, header.Time)
		}
		header.BlobGasUsed = new(uint64)
		header.ExcessBlobGas = &excessBlobGas
		header.ParentBeaconRoot = config.Attributes.BeaconRoot
	}

	blockCtx := vm.BlockContext{
		CanTransfer: core.CanTransfer,
		Transfer:    core.Transfer,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		Coinbase:    header.Coinbase,
		BlockNumber: new(big.Int).Set(header.Number),
		Time:        header.Time,
		Difficulty:  new(big.Int),
		GasLimit:    header.GasLimit,
		Random:      &config.Attributes.Random,
	}
	if header.BaseFee != nil {
		blockCtx.BaseFee = new(big.Int).Set(header.BaseFee)
	}
	evm := vm.NewEVM(blockCtx, statedb, config.ChainConfig, vm.Config{})
	if header.ParentBeaconRoot != nil {
		core.ProcessBeaconBlockRoot(*header.ParentBeaconRoot, evm)
	}

	withdrawals, withdrawalsRoot := applyWithdrawals(statedb, config, header)
	if withdrawalsRoot != nil {
		header.WithdrawalsHash = withdrawalsRoot
	}

	root, err := statedb.Commit(header.Number.Uint64(), config.ChainConfig.IsEIP158(header.Number))
	if err != nil {
		return nil, payload.NewInternalError("commit state", err)
	}
	header.Root = root
	header.TxHash = types.EmptyRootHash
	header.ReceiptHash = types.EmptyReceiptsHash

	body := &types.Body{Withdrawals: withdrawals}
	block := types.NewBlock(header, body, nil, trie.NewStackTrie(nil))

	return &payload.Built{
		ID:    config.Attributes.ID,
		Block: block,
		Fees:  uint256.NewInt(0),
	}, nil
}

// applyWithdrawals credits withdrawal balances directly to the state, the
// way the consensus engine's Finalize step does for every block once
// Shanghai activates, and derives the withdrawals trie root the header
// commits to. Pre-Shanghai it is a no-op and returns a nil root, leaving
// header.WithdrawalsHash unset.
func applyWithdrawals(statedb *state.StateDB, config *payload.Config, header *types.Header) (types.Withdrawals, *common.Hash) {
	if !config.ChainConfig.IsShanghai(header.Number, header.Time) {
		return nil, nil
	}
	withdrawals := config.Attributes.Withdrawals
	if withdrawals == nil {
		withdrawals = types.Withdrawals{}
	}
	for _, w := range withdrawals {
		amount := new(big.Int).Mul(new(big.Int).SetUint64(w.Amount), big.NewInt(params.GWei))
		statedb.AddBalance(w.Address, uint256.MustFromBig(amount), tracing.BalanceIncreaseWithdrawal)
	}
	root := types.DeriveSha(withdrawals, trie.NewStackTrie(nil))
	return withdrawals, &root
}
