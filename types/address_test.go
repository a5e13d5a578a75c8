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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaults.molusco.xyz/types"
	"vaults.molusco.xyz/utils"
)

func TestVaultAddressDerivation(t *testing.T) {
	bob := utils.TestAccount()
	alice := utils.TestAccount()

	// ASSERT: Derivation is deterministic.
	first := types.VaultAddress(bob.Bytes, "momentum-bot")
	second := types.VaultAddress(bob.Bytes, "momentum-bot")
	assert.Equal(t, first, second)
	assert.Len(t, first, types.RecordAddressLength)

	// ASSERT: Owner and agent name both discriminate.
	assert.NotEqual(t, first, types.VaultAddress(alice.Bytes, "momentum-bot"))
	assert.NotEqual(t, first, types.VaultAddress(bob.Bytes, "arb-bot"))
}

func TestPositionAddressDerivation(t *testing.T) {
	bob := utils.TestAccount()
	vault := types.VaultAddress(bob.Bytes, "momentum-bot")
	other := types.VaultAddress(bob.Bytes, "arb-bot")

	first := types.PositionAddress(vault, "jito", "SOL", 0)
	assert.Len(t, first, types.RecordAddressLength)

	// ASSERT: Every derivation input discriminates.
	assert.Equal(t, first, types.PositionAddress(vault, "jito", "SOL", 0))
	assert.NotEqual(t, first, types.PositionAddress(other, "jito", "SOL", 0))
	assert.NotEqual(t, first, types.PositionAddress(vault, "kamino", "SOL", 0))
	assert.NotEqual(t, first, types.PositionAddress(vault, "jito", "USDC", 0))
	assert.NotEqual(t, first, types.PositionAddress(vault, "jito", "SOL", 1))

	// ASSERT: Vault and position spaces never collide.
	assert.NotEqual(t, vault, types.PositionAddress(vault, "jito", "SOL", 0))
}

func TestRecordAddressEncoding(t *testing.T) {
	bob := utils.TestAccount()
	address := types.VaultAddress(bob.Bytes, "momentum-bot")
	encoded := types.FormatRecordAddress(address)

	// ACT: Parse the canonical form.
	parsed, err := types.ParseRecordAddress(encoded)
	require.NoError(t, err)
	assert.Equal(t, address, parsed)

	// ACT: Parse with a 0x prefix.
	parsed, err = types.ParseRecordAddress("0x" + encoded)
	require.NoError(t, err)
	assert.Equal(t, address, parsed)

	// ACT: Parse garbage.
	_, err = types.ParseRecordAddress("not-hex")
	require.ErrorIs(t, err, types.ErrInvalidRequest)

	// ACT: Parse a truncated address.
	_, err = types.ParseRecordAddress(encoded[:10])
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}
