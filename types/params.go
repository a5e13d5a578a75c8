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
	"math"

	collcodec "cosmossdk.io/collections/codec"
)

// DefaultMaxTargetApy is the default upper bound for a position's target
// yield: 50_000 basis points (500% annualized). Targets above it are treated
// as sentinel or corrupted input.
const DefaultMaxTargetApy = 50_000

const paramsRecordSize = 8

// Params is the authority-tunable policy of the ledger.
type Params struct {
	// MaxTargetApy caps the target yield accepted at position open, in basis
	// points. Zero falls back to DefaultMaxTargetApy.
	MaxTargetApy uint32
	// MaxActivePositions caps the number of simultaneously active positions
	// per vault. Zero means unbounded (up to the slot space of the vault).
	MaxActivePositions uint32
}

// DefaultParams returns the policy applied before the authority has stored
// any.
func DefaultParams() Params {
	return Params{MaxTargetApy: DefaultMaxTargetApy}
}

// Validate rejects parameter sets the records cannot represent.
func (p Params) Validate() error {
	if p.MaxTargetApy > math.MaxUint16 {
		return fmt.Errorf("max target apy %d exceeds the 16-bit record field", p.MaxTargetApy)
	}

	return nil
}

var ParamsValue collcodec.ValueCodec[Params] = paramsValueCodec{}

type paramsValueCodec struct{}

func (paramsValueCodec) Encode(value Params) ([]byte, error) {
	bz := make([]byte, paramsRecordSize)
	binary.BigEndian.PutUint32(bz[0:4], value.MaxTargetApy)
	binary.BigEndian.PutUint32(bz[4:8], value.MaxActivePositions)
	return bz, nil
}

func (paramsValueCodec) Decode(b []byte) (Params, error) {
	if len(b) != paramsRecordSize {
		return Params{}, fmt.Errorf("invalid params record size: expected %d, got %d", paramsRecordSize, len(b))
	}

	return Params{
		MaxTargetApy:       binary.BigEndian.Uint32(b[0:4]),
		MaxActivePositions: binary.BigEndian.Uint32(b[4:8]),
	}, nil
}

func (paramsValueCodec) EncodeJSON(value Params) ([]byte, error) {
	return json.Marshal(value)
}

func (paramsValueCodec) DecodeJSON(b []byte) (Params, error) {
	var params Params
	err := json.Unmarshal(b, &params)
	return params, err
}

func (paramsValueCodec) Stringify(value Params) string {
	return fmt.Sprintf("Params{maxTargetApy=%d, maxActivePositions=%d}", value.MaxTargetApy, value.MaxActivePositions)
}

func (paramsValueCodec) ValueType() string {
	return "molusco.Params"
}
