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
	"encoding/hex"
	"strings"

	"cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// Namespace tags for record address derivation. Vault and position records
// live in disjoint address spaces even when their derivation inputs overlap.
const (
	VaultNamespace    = "vault"
	PositionNamespace = "position"
)

// RecordAddressLength is the size of every derived record address.
const RecordAddressLength = 32

// VaultAddress derives the deterministic address of the vault owned by the
// given identity under the given agent name. The same (owner, agent name)
// pair always resolves to the same address, which is what enforces vault
// uniqueness at creation time.
func VaultAddress(owner []byte, agentName string) []byte {
	return address.Module(ModuleName, []byte(VaultNamespace), owner, []byte(agentName))
}

// PositionAddress derives the deterministic address of a position under the
// given vault. The slot discriminator is a single byte sourced from the
// vault's never-reused slot sequence, keeping addresses of closed positions
// permanently retired.
func PositionAddress(vault []byte, protocol, asset string, slot uint8) []byte {
	return address.Module(ModuleName, []byte(PositionNamespace), vault, []byte(protocol), []byte(asset), []byte{slot})
}

// ParseRecordAddress decodes the hex representation of a record address as
// carried in messages and queries. An optional 0x prefix is accepted.
func ParseRecordAddress(raw string) ([]byte, error) {
	trimmed := strings.TrimPrefix(raw, "0x")
	bz, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRequest, "invalid record address %q", raw)
	}
	if len(bz) != RecordAddressLength {
		return nil, errors.Wrapf(ErrInvalidRequest, "invalid record address length: expected %d, got %d", RecordAddressLength, len(bz))
	}

	return bz, nil
}

// FormatRecordAddress renders a record address the way messages and queries
// carry it.
func FormatRecordAddress(addr []byte) string {
	return hex.EncodeToString(addr)
}
