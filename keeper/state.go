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

package keeper

import (
	"context"
	"errors"
	"math"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"vaults.molusco.xyz/types"
)

// GetParams returns the currently configured ledger parameters. When no
// parameters have been stored yet the defaults are returned without error.
func (k *Keeper) GetParams(ctx context.Context) (types.Params, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.DefaultParams(), nil
		}
		return types.Params{}, err
	}

	return params, nil
}

// SetParams persists the supplied params to state.
func (k *Keeper) SetParams(ctx context.Context, params types.Params) error {
	return k.Params.Set(ctx, params)
}

// GetPaused returns the current pause state of the ledger.
func (k *Keeper) GetPaused(ctx context.Context) bool {
	paused, err := k.Paused.Get(ctx)
	if err != nil {
		return false
	}

	return paused
}

// SetPaused updates the pause state of the ledger.
func (k *Keeper) SetPaused(ctx context.Context, paused bool) error {
	return k.Paused.Set(ctx, paused)
}

// GetStats returns the ledger-wide statistics, normalized so the accumulators
// are always usable in arithmetic.
func (k *Keeper) GetStats(ctx context.Context) (types.Stats, error) {
	stats, err := k.Stats.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Stats{}.Normalize(), nil
		}
		return types.Stats{}, err
	}

	return stats.Normalize(), nil
}

// SetStats persists the ledger-wide statistics.
func (k *Keeper) SetStats(ctx context.Context, stats types.Stats) error {
	return k.Stats.Set(ctx, stats.Normalize())
}

// GetVault returns the vault stored under the supplied address. The boolean
// flag indicates whether the vault existed in state.
func (k *Keeper) GetVault(ctx context.Context, address []byte) (types.Vault, bool, error) {
	vault, err := k.Vaults.Get(ctx, address)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Vault{}, false, nil
		}
		return types.Vault{}, false, err
	}

	return vault, true, nil
}

// SetVault writes the provided vault record to state.
func (k *Keeper) SetVault(ctx context.Context, address []byte, vault types.Vault) error {
	return k.Vaults.Set(ctx, address, vault)
}

// HasVault reports whether a vault record exists under the supplied address.
func (k *Keeper) HasVault(ctx context.Context, address []byte) (bool, error) {
	return k.Vaults.Has(ctx, address)
}

// GetPosition returns the position stored under the supplied address. The
// boolean flag indicates whether the position existed in state.
func (k *Keeper) GetPosition(ctx context.Context, address []byte) (types.Position, bool, error) {
	position, err := k.Positions.Get(ctx, address)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Position{}, false, nil
		}
		return types.Position{}, false, err
	}

	return position, true, nil
}

// SetPosition writes the provided position record to state.
func (k *Keeper) SetPosition(ctx context.Context, address []byte, position types.Position) error {
	return k.Positions.Set(ctx, address, position)
}

// PeekPositionSlot returns the slot the next opened position under the vault
// would receive, without mutating the sequence.
func (k *Keeper) PeekPositionSlot(ctx context.Context, vault []byte) (uint64, error) {
	slot, err := k.VaultSlotSequence.Get(ctx, vault)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return slot, nil
}

// NextPositionSlot consumes and returns the vault's next slot discriminator.
// Slots start at zero and are never reused, so the sequence keeps growing
// past closed positions. Slots beyond the single-byte record field are
// rejected rather than wrapped.
func (k *Keeper) NextPositionSlot(ctx context.Context, vault []byte) (uint8, error) {
	slot, err := k.PeekPositionSlot(ctx, vault)
	if err != nil {
		return 0, err
	}

	if slot > math.MaxUint8 {
		return 0, sdkerrors.Wrapf(types.ErrInvalidVaultState, "vault slot sequence exhausted at %d", slot)
	}

	if err := k.VaultSlotSequence.Set(ctx, vault, slot+1); err != nil {
		return 0, err
	}

	return uint8(slot), nil
}

// AddPositionToVaultIndex records the position as active under its vault.
func (k *Keeper) AddPositionToVaultIndex(ctx context.Context, vault, position []byte) error {
	return k.VaultPositionIndex.Set(ctx, collections.Join(vault, position))
}

// RemovePositionFromVaultIndex retires the position from its vault's active
// set.
func (k *Keeper) RemovePositionFromVaultIndex(ctx context.Context, vault, position []byte) error {
	return k.VaultPositionIndex.Remove(ctx, collections.Join(vault, position))
}

// IterateVaultPositions walks the addresses of every active position under
// the supplied vault and invokes the callback. Returning true from the
// callback stops the iteration early.
func (k *Keeper) IterateVaultPositions(ctx context.Context, vault []byte, fn func(position []byte) (bool, error)) error {
	rng := collections.NewPrefixedPairRange[[]byte, []byte](vault)
	return k.VaultPositionIndex.Walk(ctx, rng, func(key collections.Pair[[]byte, []byte]) (bool, error) {
		return fn(key.K2())
	})
}

// IncrementVaultPosition raises the vault's aggregates for a newly opened
// position of the given amount.
func (k *Keeper) IncrementVaultPosition(vault *types.Vault, amount sdkmath.Int) error {
	if vault.PositionCount == math.MaxUint16 {
		return sdkerrors.Wrapf(types.ErrInvalidVaultState, "vault position count exhausted at %d", vault.PositionCount)
	}

	total, err := vault.TotalValueLocked.SafeAdd(amount)
	if err != nil {
		return sdkerrors.Wrap(types.ErrInvalidVaultState, "vault total value locked overflow")
	}
	if !total.IsUint64() {
		return sdkerrors.Wrapf(types.ErrInvalidVaultState, "vault total value locked %s exceeds the record field", total)
	}

	vault.TotalValueLocked = total
	vault.PositionCount++

	return nil
}

// DecrementVaultPosition lowers the vault's aggregates for a closed position
// of the given amount.
func (k *Keeper) DecrementVaultPosition(vault *types.Vault, amount sdkmath.Int) error {
	if vault.PositionCount == 0 {
		return sdkerrors.Wrap(types.ErrInvalidVaultState, "vault has no positions to close")
	}
	if amount.GT(vault.TotalValueLocked) {
		return sdkerrors.Wrapf(
			types.ErrInsufficientBalance,
			"position amount %s exceeds vault total value locked %s",
			amount, vault.TotalValueLocked,
		)
	}

	vault.TotalValueLocked = vault.TotalValueLocked.Sub(amount)
	vault.PositionCount--

	return nil
}

// RecordVaultCreated bumps the ledger-wide vault counter.
func (k *Keeper) RecordVaultCreated(ctx context.Context) error {
	stats, err := k.GetStats(ctx)
	if err != nil {
		return err
	}

	stats.TotalVaults++

	return k.SetStats(ctx, stats)
}

// RecordPositionOpened raises the ledger-wide counters for a newly opened
// position of the given amount.
func (k *Keeper) RecordPositionOpened(ctx context.Context, amount sdkmath.Int) error {
	stats, err := k.GetStats(ctx)
	if err != nil {
		return err
	}

	stats.PositionsOpened++
	stats.TotalValueLocked = stats.TotalValueLocked.Add(amount)

	return k.SetStats(ctx, stats)
}

// RecordPositionClosed lowers the ledger-wide locked value for a closed
// position of the given amount.
func (k *Keeper) RecordPositionClosed(ctx context.Context, amount sdkmath.Int) error {
	stats, err := k.GetStats(ctx)
	if err != nil {
		return err
	}

	stats.PositionsClosed++
	stats.TotalValueLocked = stats.TotalValueLocked.Sub(amount)

	return k.SetStats(ctx, stats)
}

// RecordYieldAccrued raises the ledger-wide yield accumulator.
func (k *Keeper) RecordYieldAccrued(ctx context.Context, delta sdkmath.Int) error {
	if delta.IsZero() {
		return nil
	}

	stats, err := k.GetStats(ctx)
	if err != nil {
		return err
	}

	stats.TotalYieldAccrued = stats.TotalYieldAccrued.Add(delta)

	return k.SetStats(ctx, stats)
}
