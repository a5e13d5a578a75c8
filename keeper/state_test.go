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

package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaults.molusco.xyz/types"
	"vaults.molusco.xyz/utils"
	"vaults.molusco.xyz/utils/mocks"
)

func TestParamsDefaults(t *testing.T) {
	k, ctx := mocks.VaultsKeeper(t)

	// ACT: Fetch params before any were stored.
	params, err := k.GetParams(ctx)

	// ASSERT: The defaults are returned.
	require.NoError(t, err)
	assert.Equal(t, uint32(types.DefaultMaxTargetApy), params.MaxTargetApy)
	assert.Equal(t, uint32(0), params.MaxActivePositions)

	// ACT: Store and fetch custom params.
	require.NoError(t, k.SetParams(ctx, types.Params{MaxTargetApy: 1_000, MaxActivePositions: 5}))
	params, err = k.GetParams(ctx)

	// ASSERT: The stored values are returned.
	require.NoError(t, err)
	assert.Equal(t, uint32(1_000), params.MaxTargetApy)
	assert.Equal(t, uint32(5), params.MaxActivePositions)
}

func TestPausedDefaults(t *testing.T) {
	k, ctx := mocks.VaultsKeeper(t)

	// ASSERT: The ledger starts unpaused.
	assert.False(t, k.GetPaused(ctx))

	// ACT: Pause and read back.
	require.NoError(t, k.SetPaused(ctx, true))
	assert.True(t, k.GetPaused(ctx))
}

func TestSlotSequence(t *testing.T) {
	k, ctx := mocks.VaultsKeeper(t)
	bob := utils.TestAccount()
	vault := types.VaultAddress(bob.Bytes, "momentum-bot")

	// ASSERT: The sequence starts at zero.
	peeked, err := k.PeekPositionSlot(ctx, vault)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), peeked)

	// ACT: Consume a few slots.
	for want := uint8(0); want < 3; want++ {
		slot, err := k.NextPositionSlot(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, want, slot)
	}

	// ASSERT: Peeking does not consume.
	peeked, err = k.PeekPositionSlot(ctx, vault)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), peeked)
	peeked, err = k.PeekPositionSlot(ctx, vault)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), peeked)

	// ASSERT: Sequences are independent per vault.
	other := types.VaultAddress(bob.Bytes, "arb-bot")
	slot, err := k.NextPositionSlot(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), slot)
}

func TestSlotSequenceExhaustion(t *testing.T) {
	k, ctx := mocks.VaultsKeeper(t)
	bob := utils.TestAccount()
	vault := types.VaultAddress(bob.Bytes, "momentum-bot")

	// ARRANGE: Burn through the whole slot space.
	for i := 0; i < 256; i++ {
		_, err := k.NextPositionSlot(ctx, vault)
		require.NoError(t, err)
	}

	// ACT: Consume one more slot.
	_, err := k.NextPositionSlot(ctx, vault)

	// ASSERT: The exhausted sequence is rejected, not wrapped.
	require.ErrorIs(t, err, types.ErrInvalidVaultState)
}

func TestVaultAggregateGuards(t *testing.T) {
	k, _ := mocks.VaultsKeeper(t)

	vault := types.Vault{
		TotalValueLocked: math.NewInt(100),
		PositionCount:    1,
	}

	// ACT: Close more value than the vault holds.
	err := k.DecrementVaultPosition(&vault, math.NewInt(200))

	// ASSERT: Rejected with the balance error, aggregates untouched.
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	assert.Equal(t, math.NewInt(100), vault.TotalValueLocked)
	assert.Equal(t, uint16(1), vault.PositionCount)

	// ACT: Close the exact remaining value.
	err = k.DecrementVaultPosition(&vault, math.NewInt(100))

	// ASSERT: The vault is drained.
	require.NoError(t, err)
	assert.Equal(t, math.ZeroInt(), vault.TotalValueLocked)
	assert.Equal(t, uint16(0), vault.PositionCount)

	// ACT: Close against an empty vault.
	err = k.DecrementVaultPosition(&vault, math.NewInt(1))

	// ASSERT: Rejected as inconsistent state.
	require.ErrorIs(t, err, types.ErrInvalidVaultState)

	// ACT: Open a value past the record field.
	vault.TotalValueLocked = math.NewIntFromUint64(^uint64(0))
	err = k.IncrementVaultPosition(&vault, math.NewInt(1))

	// ASSERT: Rejected as overflow.
	require.ErrorIs(t, err, types.ErrInvalidVaultState)
}

func TestVaultPositionIndex(t *testing.T) {
	k, ctx := mocks.VaultsKeeper(t)
	bob := utils.TestAccount()
	vault := types.VaultAddress(bob.Bytes, "momentum-bot")
	other := types.VaultAddress(bob.Bytes, "arb-bot")

	first := types.PositionAddress(vault, "jito", "SOL", 0)
	second := types.PositionAddress(vault, "kamino", "USDC", 1)
	foreign := types.PositionAddress(other, "jito", "SOL", 0)

	require.NoError(t, k.AddPositionToVaultIndex(ctx, vault, first))
	require.NoError(t, k.AddPositionToVaultIndex(ctx, vault, second))
	require.NoError(t, k.AddPositionToVaultIndex(ctx, other, foreign))

	// ACT: Walk the vault's active positions.
	var seen [][]byte
	err := k.IterateVaultPositions(ctx, vault, func(position []byte) (bool, error) {
		seen = append(seen, position)
		return false, nil
	})

	// ASSERT: Only the vault's own positions are visited.
	require.NoError(t, err)
	require.Len(t, seen, 2)

	// ACT: Retire one position and walk again.
	require.NoError(t, k.RemovePositionFromVaultIndex(ctx, vault, first))
	seen = nil
	err = k.IterateVaultPositions(ctx, vault, func(position []byte) (bool, error) {
		seen = append(seen, position)
		return false, nil
	})

	// ASSERT: The retired entry is gone.
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, second, seen[0])
}
