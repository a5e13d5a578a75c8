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

	"vaults.molusco.xyz/keeper"
	"vaults.molusco.xyz/types"
)

func TestQueryVault(t *testing.T) {
	k, server, ctx, bob := setupTest(t)
	query := keeper.NewQueryServer(k)
	vaultAddress := createTestVault(t, server, ctx, bob, "momentum-bot")

	_, err := server.OpenPosition(ctx, &types.MsgOpenPosition{
		Owner: bob.Address, Vault: vaultAddress,
		Protocol: "jito", Asset: "JitoSOL",
		Amount: math.NewInt(ONE), TargetApy: 800,
	})
	require.NoError(t, err)

	// ACT: Query the vault.
	resp, err := query.Vault(ctx, &types.QueryVaultRequest{Address: vaultAddress})

	// ASSERT: The view renders the stored record.
	require.NoError(t, err)
	assert.Equal(t, vaultAddress, resp.Vault.Address)
	assert.Equal(t, bob.Address, resp.Vault.Owner)
	assert.Equal(t, "momentum-bot", resp.Vault.AgentName)
	assert.Equal(t, "1000000000", resp.Vault.TotalValueLocked)
	assert.Equal(t, uint32(1), resp.Vault.PositionCount)

	// ACT: Query a vault that does not exist.
	_, err = query.Vault(ctx, &types.QueryVaultRequest{
		Address: types.FormatRecordAddress(types.VaultAddress(bob.Bytes, "ghost")),
	})
	// ASSERT: Reported as missing.
	require.ErrorIs(t, err, types.ErrNotFound)

	// ACT: Query with a nil request.
	_, err = query.Vault(ctx, nil)
	// ASSERT: Rejected.
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestQueryAddressDerivation(t *testing.T) {
	k, server, ctx, bob := setupTest(t)
	query := keeper.NewQueryServer(k)
	vaultAddress := createTestVault(t, server, ctx, bob, "momentum-bot")

	// ACT: Derive the vault address offline.
	vaultResp, err := query.VaultAddress(ctx, &types.QueryVaultAddressRequest{
		Owner:     bob.Address,
		AgentName: "momentum-bot",
	})

	// ASSERT: It matches the created vault.
	require.NoError(t, err)
	assert.Equal(t, vaultAddress, vaultResp.Address)

	// ARRANGE: An open position in slot 0.
	openResp, err := server.OpenPosition(ctx, &types.MsgOpenPosition{
		Owner: bob.Address, Vault: vaultAddress,
		Protocol: "jito", Asset: "JitoSOL",
		Amount: math.NewInt(ONE), TargetApy: 800,
	})
	require.NoError(t, err)

	// ACT: Derive the position address offline.
	positionResp, err := query.PositionAddress(ctx, &types.QueryPositionAddressRequest{
		Vault:    vaultAddress,
		Protocol: "jito",
		Asset:    "JitoSOL",
		Slot:     0,
	})

	// ASSERT: It matches the opened position.
	require.NoError(t, err)
	assert.Equal(t, openResp.Address, positionResp.Address)

	// ACT: Derive with a slot past the discriminator.
	_, err = query.PositionAddress(ctx, &types.QueryPositionAddressRequest{
		Vault: vaultAddress, Protocol: "jito", Asset: "JitoSOL", Slot: 256,
	})
	// ASSERT: Rejected.
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestQueryVaultPositions(t *testing.T) {
	k, server, ctx, bob := setupTest(t)
	query := keeper.NewQueryServer(k)
	vaultAddress := createTestVault(t, server, ctx, bob, "momentum-bot")

	first, err := server.OpenPosition(ctx, &types.MsgOpenPosition{
		Owner: bob.Address, Vault: vaultAddress,
		Protocol: "jito", Asset: "JitoSOL",
		Amount: math.NewInt(ONE), TargetApy: 800,
	})
	require.NoError(t, err)
	_, err = server.OpenPosition(ctx, &types.MsgOpenPosition{
		Owner: bob.Address, Vault: vaultAddress,
		Protocol: "kamino", Asset: "USDC",
		Amount: math.NewInt(2 * ONE), TargetApy: 1_000,
	})
	require.NoError(t, err)

	// ACT: List the vault's positions.
	resp, err := query.VaultPositions(ctx, &types.QueryVaultPositionsRequest{Vault: vaultAddress})

	// ASSERT: Both positions are listed.
	require.NoError(t, err)
	require.Len(t, resp.Positions, 2)

	// ARRANGE: Close the first position.
	_, err = server.ClosePosition(ctx, &types.MsgClosePosition{
		Owner: bob.Address, Vault: vaultAddress, Position: first.Address,
	})
	require.NoError(t, err)

	// ACT: List again.
	resp, err = query.VaultPositions(ctx, &types.QueryVaultPositionsRequest{Vault: vaultAddress})

	// ASSERT: The closed position left the index.
	require.NoError(t, err)
	require.Len(t, resp.Positions, 1)
	assert.Equal(t, "kamino", resp.Positions[0].Protocol)

	// ACT: List for an unknown vault.
	_, err = query.VaultPositions(ctx, &types.QueryVaultPositionsRequest{
		Vault: types.FormatRecordAddress(types.VaultAddress(bob.Bytes, "ghost")),
	})
	// ASSERT: Reported as missing.
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestQueryPosition(t *testing.T) {
	k, server, ctx, bob := setupTest(t)
	query := keeper.NewQueryServer(k)
	vaultAddress := createTestVault(t, server, ctx, bob, "momentum-bot")

	openResp, err := server.OpenPosition(ctx, &types.MsgOpenPosition{
		Owner: bob.Address, Vault: vaultAddress,
		Protocol: "jito", Strategy: "liquid-staking", Asset: "JitoSOL",
		Amount: math.NewInt(ONE), TargetApy: 800,
	})
	require.NoError(t, err)
	_, err = server.UpdatePosition(ctx, &types.MsgUpdatePosition{
		Owner: bob.Address, Position: openResp.Address, CurrentValue: math.NewInt(1_050_000_000),
	})
	require.NoError(t, err)

	// ACT: Query the position.
	resp, err := query.Position(ctx, &types.QueryPositionRequest{Address: openResp.Address})

	// ASSERT: The view renders the stored record.
	require.NoError(t, err)
	assert.Equal(t, openResp.Address, resp.Position.Address)
	assert.Equal(t, bob.Address, resp.Position.Owner)
	assert.Equal(t, vaultAddress, resp.Position.Vault)
	assert.Equal(t, "liquid-staking", resp.Position.Strategy)
	assert.Equal(t, "1000000000", resp.Position.Amount)
	assert.Equal(t, "50000000", resp.Position.AccumulatedYield)
	assert.True(t, resp.Position.Active)
}

func TestQueryStatsAndParams(t *testing.T) {
	k, server, ctx, bob := setupTest(t)
	query := keeper.NewQueryServer(k)
	vaultAddress := createTestVault(t, server, ctx, bob, "momentum-bot")

	openResp, err := server.OpenPosition(ctx, &types.MsgOpenPosition{
		Owner: bob.Address, Vault: vaultAddress,
		Protocol: "jito", Asset: "JitoSOL",
		Amount: math.NewInt(ONE), TargetApy: 800,
	})
	require.NoError(t, err)
	_, err = server.UpdatePosition(ctx, &types.MsgUpdatePosition{
		Owner: bob.Address, Position: openResp.Address, CurrentValue: math.NewInt(1_050_000_000),
	})
	require.NoError(t, err)
	_, err = server.ClosePosition(ctx, &types.MsgClosePosition{
		Owner: bob.Address, Vault: vaultAddress, Position: openResp.Address,
	})
	require.NoError(t, err)

	// ACT: Query the ledger stats.
	stats, err := query.Stats(ctx, &types.QueryStatsRequest{})

	// ASSERT: The lifecycle is reflected.
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.TotalVaults)
	assert.Equal(t, uint64(1), stats.PositionsOpened)
	assert.Equal(t, uint64(1), stats.PositionsClosed)
	assert.Equal(t, "0", stats.TotalValueLocked)
	assert.Equal(t, "50000000", stats.TotalYieldAccrued)

	// ACT: Query the params before any were stored.
	params, err := query.Params(ctx, &types.QueryParamsRequest{})

	// ASSERT: The defaults are served.
	require.NoError(t, err)
	assert.Equal(t, uint32(types.DefaultMaxTargetApy), params.Params.MaxTargetApy)
}
