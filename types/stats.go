// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, NASD Inc. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	"cosmossdk.io/math"
)

const statsRecordSize = 40

// Stats aggregates ledger-wide counters for observability. TotalValueLocked
// is the sum of every vault's locked value and moves in lockstep with the
// per-vault aggregates.
type Stats struct {
	TotalVaults       uint64
	PositionsOpened   uint64
	PositionsClosed   uint64
	TotalValueLocked  math.Int
	TotalYieldAccrued math.Int
}

// Normalize replaces nil accumulators with zero so that zero-value stats can
// be used directly in arithmetic.
func (s Stats) Normalize() Stats {
	if s.TotalValueLocked.IsNil() {
		s.TotalValueLocked = math.ZeroInt()
	}
	if s.TotalYieldAccrued.IsNil() {
		s.TotalYieldAccrued = math.ZeroInt()
	}

	return s
}

var StatsValue collcodec.ValueCodec[Stats] = statsValueCodec{}

type statsValueCodec struct{}

func (statsValueCodec) Encode(value Stats) ([]byte, error) {
	value = value.Normalize()

	bz := make([]byte, statsRecordSize)
	binary.BigEndian.PutUint64(bz[0:8], value.TotalVaults)
	binary.BigEndian.PutUint64(bz[8:16], value.PositionsOpened)
	binary.BigEndian.PutUint64(bz[16:24], value.PositionsClosed)
	if _, err := putAmount(bz, 24, value.TotalValueLocked, "total value locked"); err != nil {
		return nil, err
	}
	if _, err := putAmount(bz, 32, value.TotalYieldAccrued, "total yield accrued"); err != nil {
		return nil, err
	}

	return bz, nil
}

func (statsValueCodec) Decode(b []byte) (Stats, error) {
	if len(b) != statsRecordSize {
		return Stats{}, fmt.Errorf("invalid stats record size: expected %d, got %d", statsRecordSize, len(b))
	}

	var stats Stats
	stats.TotalVaults = binary.BigEndian.Uint64(b[0:8])
	stats.PositionsOpened = binary.BigEndian.Uint64(b[8:16])
	stats.PositionsClosed = binary.BigEndian.Uint64(b[16:24])
	stats.TotalValueLocked, _ = getAmount(b, 24)
	stats.TotalYieldAccrued, _ = getAmount(b, 32)

	return stats, nil
}

func (statsValueCodec) EncodeJSON(value Stats) ([]byte, error) {
	return json.Marshal(value.Normalize())
}

func (statsValueCodec) DecodeJSON(b []byte) (Stats, error) {
	var stats Stats
	if err := json.Unmarshal(b, &stats); err != nil {
		return Stats{}, err
	}

	return stats.Normalize(), nil
}

func (statsValueCodec) Stringify(value Stats) string {
	value = value.Normalize()
	return fmt.Sprintf("Stats{vaults=%d, opened=%d, closed=%d, tvl=%s}", value.TotalVaults, value.PositionsOpened, value.PositionsClosed, value.TotalValueLocked)
}

func (statsValueCodec) ValueType() string {
	return "molusco.Stats"
}
