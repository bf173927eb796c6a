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
	"fmt"
	"time"
)

// defaultMaxGasLimit is the target gas ceiling used when a caller doesn't
// override it: the current Ethereum mainnet target gas limit.
const defaultMaxGasLimit = 30_000_000

// DefaultGeneratorConfig holds the tunables a Generator runs with when the
// caller doesn't supply its own GeneratorConfig.
var DefaultGeneratorConfig = GeneratorConfig{
	ExtraData:       defaultExtraData(),
	MaxGasLimit:     defaultMaxGasLimit,
	Interval:        time.Second,
	Deadline:        12 * time.Second,
	MaxPayloadTasks: 3,
}

// defaultExtraData encodes a short client-version string the way the
// engine-api recommends: a length-prefixed byte string placed verbatim in
// the header's extra-data field.
func defaultExtraData() []byte {
	const version = "payload-job"
	out := make([]byte, 0, len(version)+1)
	out = append(out, byte(len(version)))
	return append(out, version...)
}

// GeneratorConfig configures a Generator. MaxPayloadTasks must be >= 1;
// NewGenerator panics otherwise.
type GeneratorConfig struct {
	ExtraData       []byte        // Placed in the header's extra-data field
	MaxGasLimit     uint64        // Target gas ceiling; not read by the Generator, built blocks take the parent's gas limit
	Interval        time.Duration // Wait between attempts after a completed build
	Deadline        time.Duration // Base job duration
	MaxPayloadTasks int64         // Must be >= 1; bounds global concurrent builds
}

func (c GeneratorConfig) String() string {
	return fmt.Sprintf(
		"extradata=%x maxGasLimit=%d interval=%s deadline=%s maxPayloadTasks=%d",
		c.ExtraData, c.MaxGasLimit, c.Interval, c.Deadline, c.MaxPayloadTasks,
	)
}
