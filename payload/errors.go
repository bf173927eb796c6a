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
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrChannelClosed is returned when a build task's result channel is closed
// or dropped before a result is posted, e.g. because the builder panicked.
var ErrChannelClosed = errors.New("payload: build task channel closed without a result")

// MissingParentBlockError is returned by the job generator when the parent
// block referenced by a set of attributes cannot be located.
type MissingParentBlockError struct {
	Hash common.Hash
}

func (e *MissingParentBlockError) Error() string {
	return fmt.Sprintf("payload: missing parent block %s", e.Hash)
}

// NewMissingParentBlockError wraps hash into a MissingParentBlockError.
func NewMissingParentBlockError(hash common.Hash) error {
	return &MissingParentBlockError{Hash: hash}
}

// InternalError wraps a failure surfaced by a collaborator (state provider,
// EVM execution, state-root computation) that the core treats opaquely.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("payload: internal error during %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// NewInternalError wraps err, tagging it with the operation that produced it.
func NewInternalError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InternalError{Op: op, Err: err}
}
