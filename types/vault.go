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

// VaultRecordSize is the fixed size of an encoded vault record:
// owner (1+32) + agent name (1+32) + total value locked (8) +
// position count (2) + created at (8) + last rebalance (8).
const VaultRecordSize = 92

// Vault is an agent's top-level record, aggregating its active positions.
// TotalValueLocked and PositionCount are maintained exclusively by the ledger
// operations and always reflect the sum and count of the vault's currently
// active positions.
type Vault struct {
	Owner            []byte
	AgentName        string
	TotalValueLocked math.Int
	PositionCount    uint16
	CreatedAt        int64
	LastRebalance    int64
}

var VaultValue collcodec.ValueCodec[Vault] = vaultValueCodec{}

type vaultValueCodec struct{}

func (vaultValueCodec) Encode(value Vault) ([]byte, error) {
	if len(value.Owner) == 0 {
		return nil, fmt.Errorf("vault owner must not be empty")
	}

	bz := make([]byte, VaultRecordSize)
	offset, err := putBounded(bz, 0, value.Owner, MaxOwnerLength, "owner")
	if err != nil {
		return nil, err
	}
	offset, err = putBounded(bz, offset, []byte(value.AgentName), MaxAgentNameLength, "agent name")
	if err != nil {
		return nil, err
	}
	offset, err = putAmount(bz, offset, value.TotalValueLocked, "total value locked")
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint16(bz[offset:offset+2], value.PositionCount)
	offset += 2
	offset = putTimestamp(bz, offset, value.CreatedAt)
	putTimestamp(bz, offset, value.LastRebalance)

	return bz, nil
}

func (vaultValueCodec) Decode(b []byte) (Vault, error) {
	if len(b) != VaultRecordSize {
		return Vault{}, fmt.Errorf("invalid vault record size: expected %d, got %d", VaultRecordSize, len(b))
	}

	var (
		vault Vault
		err   error
	)
	owner, offset, err := getBounded(b, 0, MaxOwnerLength, "owner")
	if err != nil {
		return Vault{}, err
	}
	vault.Owner = owner
	name, offset, err := getBounded(b, offset, MaxAgentNameLength, "agent name")
	if err != nil {
		return Vault{}, err
	}
	vault.AgentName = string(name)
	vault.TotalValueLocked, offset = getAmount(b, offset)
	vault.PositionCount = binary.BigEndian.Uint16(b[offset : offset+2])
	offset += 2
	vault.CreatedAt, offset = getTimestamp(b, offset)
	vault.LastRebalance, _ = getTimestamp(b, offset)

	return vault, nil
}

func (vaultValueCodec) EncodeJSON(value Vault) ([]byte, error) {
	return json.Marshal(value)
}

func (vaultValueCodec) DecodeJSON(b []byte) (Vault, error) {
	var vault Vault
	err := json.Unmarshal(b, &vault)
	return vault, err
}

func (vaultValueCodec) Stringify(value Vault) string {
	return fmt.Sprintf("Vault{agent=%s, tvl=%s, positions=%d}", value.AgentName, value.TotalValueLocked, value.PositionCount)
}

func (vaultValueCodec) ValueType() string {
	return "molusco.Vault"
}
