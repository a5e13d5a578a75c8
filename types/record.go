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
	"fmt"

	"cosmossdk.io/math"
)

// Field bounds shared by the record codecs. Records are fixed-size, so every
// bounded byte field reserves its maximum up front: one length byte followed
// by the padded payload.
const (
	MaxOwnerLength     = 32
	MaxAgentNameLength = 32
	MaxProtocolLength  = 16
	MaxStrategyLength  = 20
	MaxAssetLength     = 10
)

// putBounded writes a length-prefixed, zero-padded byte field at the given
// offset and returns the offset just past it.
func putBounded(dst []byte, offset int, value []byte, max int, field string) (int, error) {
	if len(value) > max {
		return 0, fmt.Errorf("%s exceeds %d bytes: got %d", field, max, len(value))
	}

	dst[offset] = byte(len(value))
	copy(dst[offset+1:offset+1+max], value)
	return offset + 1 + max, nil
}

// getBounded reads a field written by putBounded.
func getBounded(src []byte, offset int, max int, field string) ([]byte, int, error) {
	length := int(src[offset])
	if length > max {
		return nil, 0, fmt.Errorf("%s length %d exceeds %d bytes", field, length, max)
	}

	value := make([]byte, length)
	copy(value, src[offset+1:offset+1+length])
	return value, offset + 1 + max, nil
}

// putAmount writes a math.Int constrained to the unsigned 64-bit range the
// record layout reserves for it.
func putAmount(dst []byte, offset int, value math.Int, field string) (int, error) {
	if value.IsNil() || value.IsNegative() || !value.IsUint64() {
		return 0, fmt.Errorf("%s must fit in an unsigned 64-bit field: got %s", field, value)
	}

	binary.BigEndian.PutUint64(dst[offset:offset+8], value.Uint64())
	return offset + 8, nil
}

func getAmount(src []byte, offset int) (math.Int, int) {
	return math.NewIntFromUint64(binary.BigEndian.Uint64(src[offset : offset+8])), offset + 8
}

func putTimestamp(dst []byte, offset int, value int64) int {
	binary.BigEndian.PutUint64(dst[offset:offset+8], uint64(value))
	return offset + 8
}

func getTimestamp(src []byte, offset int) (int64, int) {
	return int64(binary.BigEndian.Uint64(src[offset : offset+8])), offset + 8
}
