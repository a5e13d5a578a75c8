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

	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"vaults.molusco.xyz/types"
)

// VerifyVaultIntegrity recomputes the supplied vault's aggregates from its
// active position records and compares them against the stored values. It
// returns an error describing the first mismatch found.
func (k *Keeper) VerifyVaultIntegrity(ctx context.Context, address []byte) error {
	vault, found, err := k.GetVault(ctx, address)
	if err != nil {
		return errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return errors.Wrapf(types.ErrNotFound, "vault %s does not exist", types.FormatRecordAddress(address))
	}

	var (
		count uint16
		total = sdkmath.ZeroInt()
	)
	err = k.IterateVaultPositions(ctx, address, func(positionAddress []byte) (bool, error) {
		position, exists, err := k.GetPosition(ctx, positionAddress)
		if err != nil {
			return true, err
		}
		if !exists {
			return true, errors.Wrapf(
				types.ErrInvalidVaultState,
				"indexed position %s has no record",
				types.FormatRecordAddress(positionAddress),
			)
		}
		if !position.Active {
			return true, errors.Wrapf(
				types.ErrInvalidVaultState,
				"closed position %s is still indexed as active",
				types.FormatRecordAddress(positionAddress),
			)
		}
		if !position.BelongsTo(address) {
			return true, errors.Wrapf(
				types.ErrInvalidVaultState,
				"indexed position %s references a different vault",
				types.FormatRecordAddress(positionAddress),
			)
		}

		count++
		total = total.Add(position.Amount)

		return false, nil
	})
	if err != nil {
		return err
	}

	if count != vault.PositionCount {
		return errors.Wrapf(
			types.ErrInvalidVaultState,
			"vault position count mismatch: stored %d, recomputed %d",
			vault.PositionCount, count,
		)
	}
	if !total.Equal(vault.TotalValueLocked) {
		return errors.Wrapf(
			types.ErrInvalidVaultState,
			"vault total value locked mismatch: stored %s, recomputed %s",
			vault.TotalValueLocked, total,
		)
	}

	return nil
}

// VerifyLedgerIntegrity checks every vault's aggregates and reconciles the
// ledger-wide statistics against the per-vault totals.
func (k *Keeper) VerifyLedgerIntegrity(ctx context.Context) error {
	var (
		vaults uint64
		total  = sdkmath.ZeroInt()
	)

	err := k.Vaults.Walk(ctx, nil, func(address []byte, vault types.Vault) (bool, error) {
		if err := k.VerifyVaultIntegrity(ctx, address); err != nil {
			return true, err
		}

		vaults++
		total = total.Add(vault.TotalValueLocked)

		return false, nil
	})
	if err != nil {
		return err
	}

	stats, err := k.GetStats(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to fetch stats")
	}

	if stats.TotalVaults != vaults {
		return errors.Wrapf(
			types.ErrInvalidVaultState,
			"ledger vault count mismatch: stored %d, recomputed %d",
			stats.TotalVaults, vaults,
		)
	}
	if !stats.TotalValueLocked.Equal(total) {
		return errors.Wrapf(
			types.ErrInvalidVaultState,
			"ledger total value locked mismatch: stored %s, recomputed %s",
			stats.TotalValueLocked, total,
		)
	}
	if stats.PositionsClosed > stats.PositionsOpened {
		return errors.Wrapf(
			types.ErrInvalidVaultState,
			"ledger closed more positions (%d) than it opened (%d)",
			stats.PositionsClosed, stats.PositionsOpened,
		)
	}

	return nil
}
