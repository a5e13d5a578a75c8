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
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	"cosmossdk.io/math"
)

// PositionRecordSize is the fixed size of an encoded position record:
// owner (1+32) + vault (32) + protocol (1+16) + strategy (1+20) +
// asset (1+10) + amount (8) + target apy (2) + opened at (8) +
// last update (8) + active (1) + accumulated yield (8) + slot (1).
const PositionRecordSize = 150

// Position is a single recorded deposit into an external yield-bearing
// strategy. Amount is fixed at open time; AccumulatedYield only grows while
// the position is active. A closed position is kept as an inactive tombstone
// so that later mutations can be rejected with a precise error.
type Position struct {
	Owner            []byte
	Vault            []byte
	Protocol         string
	Strategy         string
	Asset            string
	Amount           math.Int
	TargetApy        uint16
	OpenedAt         int64
	LastUpdate       int64
	Active           bool
	AccumulatedYield math.Int
	Slot             uint8
}

// BelongsTo reports whether the position references the given vault address.
func (p Position) BelongsTo(vault []byte) bool {
	return bytes.Equal(p.Vault, vault)
}

var PositionValue collcodec.ValueCodec[Position] = positionValueCodec{}

type positionValueCodec struct{}

func (positionValueCodec) Encode(value Position) ([]byte, error) {
	if len(value.Owner) == 0 {
		return nil, fmt.Errorf("position owner must not be empty")
	}
	if len(value.Vault) != RecordAddressLength {
		return nil, fmt.Errorf("position vault reference must be %d bytes: got %d", RecordAddressLength, len(value.Vault))
	}

	bz := make([]byte, PositionRecordSize)
	offset, err := putBounded(bz, 0, value.Owner, MaxOwnerLength, "owner")
	if err != nil {
		return nil, err
	}
	copy(bz[offset:offset+RecordAddressLength], value.Vault)
	offset += RecordAddressLength
	offset, err = putBounded(bz, offset, []byte(value.Protocol), MaxProtocolLength, "protocol")
	if err != nil {
		return nil, err
	}
	offset, err = putBounded(bz, offset, []byte(value.Strategy), MaxStrategyLength, "strategy")
	if err != nil {
		return nil, err
	}
	offset, err = putBounded(bz, offset, []byte(value.Asset), MaxAssetLength, "asset")
	if err != nil {
		return nil, err
	}
	offset, err = putAmount(bz, offset, value.Amount, "amount")
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint16(bz[offset:offset+2], value.TargetApy)
	offset += 2
	offset = putTimestamp(bz, offset, value.OpenedAt)
	offset = putTimestamp(bz, offset, value.LastUpdate)
	if value.Active {
		bz[offset] = 1
	}
	offset++
	offset, err = putAmount(bz, offset, value.AccumulatedYield, "accumulated yield")
	if err != nil {
		return nil, err
	}
	bz[offset] = value.Slot

	return bz, nil
}

func (positionValueCodec) Decode(b []byte) (Position, error) {
	if len(b) != PositionRecordSize {
		return Position{}, fmt.Errorf("invalid position record size: expected %d, got %d", PositionRecordSize, len(b))
	}

	var position Position
	owner, offset, err := getBounded(b, 0, MaxOwnerLength, "owner")
	if err != nil {
		return Position{}, err
	}
	position.Owner = owner
	position.Vault = make([]byte, RecordAddressLength)
	copy(position.Vault, b[offset:offset+RecordAddressLength])
	offset += RecordAddressLength
	protocol, offset, err := getBounded(b, offset, MaxProtocolLength, "protocol")
	if err != nil {
		return Position{}, err
	}
	position.Protocol = string(protocol)
	strategy, offset, err := getBounded(b, offset, MaxStrategyLength, "strategy")
	if err != nil {
		return Position{}, err
	}
	position.Strategy = string(strategy)
	asset, offset, err := getBounded(b, offset, MaxAssetLength, "asset")
	if err != nil {
		return Position{}, err
	}
	position.Asset = string(asset)
	position.Amount, offset = getAmount(b, offset)
	position.TargetApy = binary.BigEndian.Uint16(b[offset : offset+2])
	offset += 2
	position.OpenedAt, offset = getTimestamp(b, offset)
	position.LastUpdate, offset = getTimestamp(b, offset)
	position.Active = b[offset] == 1
	offset++
	position.AccumulatedYield, offset = getAmount(b, offset)
	position.Slot = b[offset]

	return position, nil
}

func (positionValueCodec) EncodeJSON(value Position) ([]byte, error) {
	return json.Marshal(value)
}

func (positionValueCodec) DecodeJSON(b []byte) (Position, error) {
	var position Position
	err := json.Unmarshal(b, &position)
	return position, err
}

func (positionValueCodec) Stringify(value Position) string {
	return fmt.Sprintf("Position{protocol=%s, asset=%s, amount=%s, active=%t}", value.Protocol, value.Asset, value.Amount, value.Active)
}

func (positionValueCodec) ValueType() string {
	return "molusco.Position"
}
