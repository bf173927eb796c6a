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

	"github.com/ethereum/go-ethereum/beacon/engine"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/mantlenetworkio/payload-job/payload"
)

// Generator is the entry point of the scheduler: given a set of consensus-
// layer attributes, it resolves the parent block, builds a Config, and
// spawns a Job with its deadline/interval timers already running.
type Generator struct {
	client  payload.StateProviderFactory
	blocks  payload.BlockReaderIdExt
	pool    payload.TransactionPool
	tasks   payload.TaskSpawner
	builder payload.Builder

	chainConfig *params.ChainConfig
	config      GeneratorConfig
	permit      *Permit
}

// NewGenerator wires up a Generator. It panics if cfg.MaxPayloadTasks < 1,
// matching the documented "panic on 0" behaviour for max_payload_tasks.
func NewGenerator(
	client payload.StateProviderFactory,
	blocks payload.BlockReaderIdExt,
	pool payload.TransactionPool,
	tasks payload.TaskSpawner,
	builder payload.Builder,
	chainConfig *params.ChainConfig,
	cfg GeneratorConfig,
) *Generator {
	if cfg.MaxPayloadTasks < 1 {
		panic("payload: max_payload_tasks must be >= 1")
	}
	return &Generator{
		client:      client,
		blocks:      blocks,
		pool:        pool,
		tasks:       tasks,
		builder:     builder,
		chainConfig: chainConfig,
		config:      cfg,
		permit:      NewPermit(cfg.MaxPayloadTasks),
	}
}

// NewPayloadJob resolves the parent block named by attrs, builds the job's
// immutable Config, and starts a Job driven by a deadline timer and an
// interval timer.
func (g *Generator) NewPayloadJob(attrs payload.Attributes) (*Job, error) {
	parent, err := g.resolveParent(attrs)
	if err != nil {
		return nil, err
	}
	if attrs.ID == (engine.PayloadID{}) {
		attrs.ID = attrs.Id()
	}

	cfg := payload.NewConfig(parent, g.chainConfig, g.config.ExtraData, attrs)

	deadline := time.Now().Add(maxJobDuration(attrs.Timestamp, g.config.Deadline))
	j := &Job{
		client:     g.client,
		builder:    g.builder,
		tasks:      g.tasks,
		permit:     g.permit,
		config:     cfg,
		deadline:   deadline,
		interval:   g.config.Interval,
		bestReq:    make(chan chan bestResp),
		resolveReq: make(chan chan resolveResp),
		doneCh:     make(chan struct{}),
	}
	log.Info("Starting work on payload job", "id", attrs.ID, "parent", parent.Hash(), "deadline", deadline)
	go j.run()
	return j, nil
}

// resolveParent looks up the parent block named by attrs: the current
// chain head for the zero hash ("build on tip" convention), or an explicit
// hash otherwise. The resolved block's cached hash is already authoritative,
// so there is no separate sealing step to perform here.
func (g *Generator) resolveParent(attrs payload.Attributes) (*types.Block, error) {
	if attrs.IsZeroParent() {
		if block, ok := g.blocks.BlockByNumberOrTag("latest"); ok {
			return block, nil
		}
		return nil, payload.NewMissingParentBlockError(attrs.Parent)
	}
	block, ok := g.blocks.FindBlockByHash(attrs.Parent)
	if !ok {
		return nil, payload.NewMissingParentBlockError(attrs.Parent)
	}
	return block, nil
}

// maxJobDuration computes the job's absolute deadline offset:
//
//	until = max(0, slotTimestamp - wallNow)         // saturating
//	until = min(until, deadlineConfig * 3)          // clamp against bad clocks
//	return deadlineConfig + until
func maxJobDuration(slotTimestamp uint64, deadlineConfig time.Duration) time.Duration {
	until := durationUntil(slotTimestamp)
	if max := deadlineConfig * 3; until > max {
		until = max
	}
	return deadlineConfig + until
}

// durationUntil is a saturating "time until" helper: zero once the target
// timestamp has passed.
func durationUntil(slotTimestamp uint64) time.Duration {
	now := uint64(time.Now().Unix())
	if slotTimestamp <= now {
		return 0
	}
	return time.Duration(slotTimestamp-now) * time.Second
}
