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

	"vaults.molusco.xyz/types"
)

var _ types.QueryServer = &queryServer{}

type queryServer struct {
	*Keeper
}

func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

func (q queryServer) Vault(ctx context.Context, req *types.QueryVaultRequest) (*types.QueryVaultResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	address, err := types.ParseRecordAddress(req.Address)
	if err != nil {
		return nil, err
	}

	vault, found, err := q.GetVault(ctx, address)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "vault %s does not exist", req.Address)
	}

	view, err := q.buildVaultView(address, vault)
	if err != nil {
		return nil, err
	}

	return &types.QueryVaultResponse{Vault: view}, nil
}

func (q queryServer) VaultAddress(ctx context.Context, req *types.QueryVaultAddressRequest) (*types.QueryVaultAddressResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	owner, err := q.address.StringToBytes(req.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", req.Owner)
	}
	if req.AgentName == "" {
		return nil, errors.Wrap(types.ErrInvalidRequest, "agent name cannot be empty")
	}

	address := types.VaultAddress(owner, req.AgentName)

	return &types.QueryVaultAddressResponse{Address: types.FormatRecordAddress(address)}, nil
}

func (q queryServer) Position(ctx context.Context, req *types.QueryPositionRequest) (*types.QueryPositionResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	address, err := types.ParseRecordAddress(req.Address)
	if err != nil {
		return nil, err
	}

	position, found, err := q.GetPosition(ctx, address)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch position")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "position %s does not exist", req.Address)
	}

	view, err := q.buildPositionView(address, position)
	if err != nil {
		return nil, err
	}

	return &types.QueryPositionResponse{Position: view}, nil
}

func (q queryServer) PositionAddress(ctx context.Context, req *types.QueryPositionAddressRequest) (*types.QueryPositionAddressResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	vault, err := types.ParseRecordAddress(req.Vault)
	if err != nil {
		return nil, err
	}
	if req.Slot > 0xFF {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "slot %d exceeds the single-byte discriminator", req.Slot)
	}

	address := types.PositionAddress(vault, req.Protocol, req.Asset, uint8(req.Slot))

	return &types.QueryPositionAddressResponse{Address: types.FormatRecordAddress(address)}, nil
}

func (q queryServer) VaultPositions(ctx context.Context, req *types.QueryVaultPositionsRequest) (*types.QueryVaultPositionsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	vaultAddress, err := types.ParseRecordAddress(req.Vault)
	if err != nil {
		return nil, err
	}

	found, err := q.HasVault(ctx, vaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "vault %s does not exist", req.Vault)
	}

	var views []types.PositionView
	err = q.IterateVaultPositions(ctx, vaultAddress, func(address []byte) (bool, error) {
		position, exists, err := q.GetPosition(ctx, address)
		if err != nil {
			return true, err
		}
		if !exists {
			return true, errors.Wrapf(types.ErrInvalidVaultState, "indexed position %s has no record", types.FormatRecordAddress(address))
		}
		if req.ActiveOnly && !position.Active {
			return false, nil
		}

		view, err := q.buildPositionView(address, position)
		if err != nil {
			return true, err
		}
		views = append(views, view)

		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.QueryVaultPositionsResponse{Positions: views}, nil
}

func (q queryServer) Stats(ctx context.Context, req *types.QueryStatsRequest) (*types.QueryStatsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	stats, err := q.GetStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch stats")
	}

	return &types.QueryStatsResponse{
		TotalVaults:       stats.TotalVaults,
		PositionsOpened:   stats.PositionsOpened,
		PositionsClosed:   stats.PositionsClosed,
		TotalValueLocked:  stats.TotalValueLocked.String(),
		TotalYieldAccrued: stats.TotalYieldAccrued.String(),
	}, nil
}

func (q queryServer) Params(ctx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	params, err := q.GetParams(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch params")
	}

	return &types.QueryParamsResponse{Params: params}, nil
}

func (q queryServer) buildVaultView(address []byte, vault types.Vault) (types.VaultView, error) {
	owner, err := q.address.BytesToString(vault.Owner)
	if err != nil {
		return types.VaultView{}, errors.Wrap(err, "unable to encode vault owner")
	}

	return types.VaultView{
		Address:          types.FormatRecordAddress(address),
		Owner:            owner,
		AgentName:        vault.AgentName,
		TotalValueLocked: vault.TotalValueLocked.String(),
		PositionCount:    uint32(vault.PositionCount),
		CreatedAt:        vault.CreatedAt,
		LastRebalance:    vault.LastRebalance,
	}, nil
}

func (q queryServer) buildPositionView(address []byte, position types.Position) (types.PositionView, error) {
	owner, err := q.address.BytesToString(position.Owner)
	if err != nil {
		return types.PositionView{}, errors.Wrap(err, "unable to encode position owner")
	}

	return types.PositionView{
		Address:          types.FormatRecordAddress(address),
		Owner:            owner,
		Vault:            types.FormatRecordAddress(position.Vault),
		Protocol:         position.Protocol,
		Strategy:         position.Strategy,
		Asset:            position.Asset,
		Amount:           position.Amount.String(),
		TargetApy:        uint32(position.TargetApy),
		OpenedAt:         position.OpenedAt,
		LastUpdate:       position.LastUpdate,
		Active:           position.Active,
		AccumulatedYield: position.AccumulatedYield.String(),
		Slot:             uint32(position.Slot),
	}, nil
}
