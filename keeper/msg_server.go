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
	"bytes"
	"context"
	"strconv"

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"vaults.molusco.xyz/types"
)

var _ types.MsgServer = &msgServer{}

type msgServer struct {
	*Keeper
}

func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

func (m msgServer) CreateVault(ctx context.Context, msg *types.MsgCreateVault) (*types.MsgCreateVaultResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", msg.Owner)
	}
	if len(owner) > types.MaxOwnerLength {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "owner address exceeds %d bytes", types.MaxOwnerLength)
	}

	if msg.AgentName == "" {
		return nil, errors.Wrap(types.ErrInvalidRequest, "agent name cannot be empty")
	}
	if len(msg.AgentName) > types.MaxAgentNameLength {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "agent name exceeds %d bytes", types.MaxAgentNameLength)
	}

	if m.GetPaused(ctx) {
		return nil, types.ErrPaused
	}

	vaultAddress := types.VaultAddress(owner, msg.AgentName)
	exists, err := m.HasVault(ctx, vaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to check for existing vault")
	}
	if exists {
		return nil, errors.Wrapf(types.ErrDuplicateVault, "vault for agent %s already exists", msg.AgentName)
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	vault := types.Vault{
		Owner:            owner,
		AgentName:        msg.AgentName,
		TotalValueLocked: sdkmath.ZeroInt(),
		PositionCount:    0,
		CreatedAt:        now,
		LastRebalance:    now,
	}

	if err := m.SetVault(ctx, vaultAddress, vault); err != nil {
		return nil, errors.Wrap(err, "unable to store vault")
	}
	if err := m.RecordVaultCreated(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to update ledger stats")
	}

	address := types.FormatRecordAddress(vaultAddress)
	if err := m.event.EventManager(ctx).EmitKV(
		ctx,
		types.EventTypeVaultCreated,
		event.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		event.NewAttribute(types.AttributeKeyVault, address),
		event.NewAttribute(types.AttributeKeyAgentName, msg.AgentName),
		event.NewAttribute(types.AttributeKeyTimestamp, strconv.FormatInt(now, 10)),
	); err != nil {
		return nil, err
	}

	m.logger.Info("created vault", "agent", msg.AgentName, "vault", address)

	return &types.MsgCreateVaultResponse{Address: address}, nil
}

func (m msgServer) OpenPosition(ctx context.Context, msg *types.MsgOpenPosition) (*types.MsgOpenPositionResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", msg.Owner)
	}
	vaultAddress, err := types.ParseRecordAddress(msg.Vault)
	if err != nil {
		return nil, err
	}

	if msg.Protocol == "" {
		return nil, errors.Wrap(types.ErrInvalidRequest, "protocol cannot be empty")
	}
	if len(msg.Protocol) > types.MaxProtocolLength {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "protocol exceeds %d bytes", types.MaxProtocolLength)
	}
	if len(msg.Strategy) > types.MaxStrategyLength {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "strategy exceeds %d bytes", types.MaxStrategyLength)
	}
	if msg.Asset == "" {
		return nil, errors.Wrap(types.ErrInvalidRequest, "asset cannot be empty")
	}
	if len(msg.Asset) > types.MaxAssetLength {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "asset exceeds %d bytes", types.MaxAssetLength)
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidRequest, "position amount must be positive")
	}
	if !msg.Amount.IsUint64() {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "position amount %s exceeds the record field", msg.Amount)
	}

	if m.GetPaused(ctx) {
		return nil, types.ErrPaused
	}

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch ledger params")
	}
	maxTargetApy := params.MaxTargetApy
	if maxTargetApy == 0 {
		maxTargetApy = types.DefaultMaxTargetApy
	}
	if msg.TargetApy > maxTargetApy {
		return nil, errors.Wrapf(types.ErrInvalidApy, "target apy %d exceeds maximum of %d", msg.TargetApy, maxTargetApy)
	}

	vault, found, err := m.GetVault(ctx, vaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "vault %s does not exist", msg.Vault)
	}
	if !bytes.Equal(vault.Owner, owner) {
		return nil, errors.Wrap(types.ErrUnauthorized, "vault is not owned by the signer")
	}
	if params.MaxActivePositions > 0 && uint32(vault.PositionCount) >= params.MaxActivePositions {
		return nil, errors.Wrapf(types.ErrInvalidVaultState, "vault already has %d active positions", vault.PositionCount)
	}

	if err := m.IncrementVaultPosition(&vault, msg.Amount); err != nil {
		return nil, err
	}

	// Resolve the slot before any state is written so that validation
	// failures leave the sequence untouched.
	peeked, err := m.PeekPositionSlot(ctx, vaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault slot sequence")
	}
	if peeked > 0xFF {
		return nil, errors.Wrapf(types.ErrInvalidVaultState, "vault slot sequence exhausted at %d", peeked)
	}

	slot, err := m.NextPositionSlot(ctx, vaultAddress)
	if err != nil {
		return nil, err
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	positionAddress := types.PositionAddress(vaultAddress, msg.Protocol, msg.Asset, slot)
	position := types.Position{
		Owner:            owner,
		Vault:            vaultAddress,
		Protocol:         msg.Protocol,
		Strategy:         msg.Strategy,
		Asset:            msg.Asset,
		Amount:           msg.Amount,
		TargetApy:        uint16(msg.TargetApy),
		OpenedAt:         now,
		LastUpdate:       now,
		Active:           true,
		AccumulatedYield: sdkmath.ZeroInt(),
		Slot:             slot,
	}

	if err := m.SetPosition(ctx, positionAddress, position); err != nil {
		return nil, errors.Wrap(err, "unable to store position")
	}
	if err := m.AddPositionToVaultIndex(ctx, vaultAddress, positionAddress); err != nil {
		return nil, errors.Wrap(err, "unable to index position")
	}
	if err := m.SetVault(ctx, vaultAddress, vault); err != nil {
		return nil, errors.Wrap(err, "unable to store vault")
	}
	if err := m.RecordPositionOpened(ctx, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "unable to update ledger stats")
	}

	address := types.FormatRecordAddress(positionAddress)
	if err := m.event.EventManager(ctx).EmitKV(
		ctx,
		types.EventTypePositionOpened,
		event.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		event.NewAttribute(types.AttributeKeyVault, msg.Vault),
		event.NewAttribute(types.AttributeKeyPosition, address),
		event.NewAttribute(types.AttributeKeyProtocol, msg.Protocol),
		event.NewAttribute(types.AttributeKeyStrategy, msg.Strategy),
		event.NewAttribute(types.AttributeKeyAsset, msg.Asset),
		event.NewAttribute(types.AttributeKeyAmount, msg.Amount.String()),
		event.NewAttribute(types.AttributeKeyTargetApy, strconv.FormatUint(uint64(msg.TargetApy), 10)),
		event.NewAttribute(types.AttributeKeySlot, strconv.FormatUint(uint64(slot), 10)),
	); err != nil {
		return nil, err
	}

	m.logger.Info("opened position", "protocol", msg.Protocol, "asset", msg.Asset, "amount", msg.Amount.String(), "position", address)

	return &types.MsgOpenPositionResponse{Address: address, Slot: uint32(slot)}, nil
}

func (m msgServer) UpdatePosition(ctx context.Context, msg *types.MsgUpdatePosition) (*types.MsgUpdatePositionResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", msg.Owner)
	}
	positionAddress, err := types.ParseRecordAddress(msg.Position)
	if err != nil {
		return nil, err
	}

	if msg.CurrentValue.IsNil() || msg.CurrentValue.IsNegative() {
		return nil, errors.Wrap(types.ErrInvalidRequest, "current value cannot be negative")
	}
	if !msg.CurrentValue.IsUint64() {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "current value %s exceeds the record field", msg.CurrentValue)
	}

	if m.GetPaused(ctx) {
		return nil, types.ErrPaused
	}

	position, found, err := m.GetPosition(ctx, positionAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch position")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "position %s does not exist", msg.Position)
	}
	if !bytes.Equal(position.Owner, owner) {
		return nil, errors.Wrap(types.ErrUnauthorized, "position is not owned by the signer")
	}
	if !position.Active {
		return nil, types.ErrPositionClosed
	}

	// Value below principal is treated as zero yield rather than a loss, so
	// the accumulator never decreases.
	yieldDelta := sdkmath.ZeroInt()
	if msg.CurrentValue.GT(position.Amount) {
		yieldDelta = msg.CurrentValue.Sub(position.Amount)
	}

	accumulated, err := position.AccumulatedYield.SafeAdd(yieldDelta)
	if err != nil {
		return nil, errors.Wrap(types.ErrInvalidVaultState, "accumulated yield overflow")
	}
	if !accumulated.IsUint64() {
		return nil, errors.Wrapf(types.ErrInvalidVaultState, "accumulated yield %s exceeds the record field", accumulated)
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	position.AccumulatedYield = accumulated
	position.LastUpdate = now

	if err := m.SetPosition(ctx, positionAddress, position); err != nil {
		return nil, errors.Wrap(err, "unable to store position")
	}
	if err := m.RecordYieldAccrued(ctx, yieldDelta); err != nil {
		return nil, errors.Wrap(err, "unable to update ledger stats")
	}

	if err := m.event.EventManager(ctx).EmitKV(
		ctx,
		types.EventTypePositionUpdated,
		event.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		event.NewAttribute(types.AttributeKeyPosition, msg.Position),
		event.NewAttribute(types.AttributeKeyYieldDelta, yieldDelta.String()),
		event.NewAttribute(types.AttributeKeyAccumulatedYield, accumulated.String()),
		event.NewAttribute(types.AttributeKeyTimestamp, strconv.FormatInt(now, 10)),
	); err != nil {
		return nil, err
	}

	return &types.MsgUpdatePositionResponse{
		YieldDelta:       yieldDelta,
		AccumulatedYield: accumulated,
	}, nil
}

func (m msgServer) ClosePosition(ctx context.Context, msg *types.MsgClosePosition) (*types.MsgClosePositionResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", msg.Owner)
	}
	vaultAddress, err := types.ParseRecordAddress(msg.Vault)
	if err != nil {
		return nil, err
	}
	positionAddress, err := types.ParseRecordAddress(msg.Position)
	if err != nil {
		return nil, err
	}

	if m.GetPaused(ctx) {
		return nil, types.ErrPaused
	}

	position, found, err := m.GetPosition(ctx, positionAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch position")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "position %s does not exist", msg.Position)
	}
	if !bytes.Equal(position.Owner, owner) {
		return nil, errors.Wrap(types.ErrUnauthorized, "position is not owned by the signer")
	}
	if !position.BelongsTo(vaultAddress) {
		return nil, errors.Wrap(types.ErrUnauthorized, "position does not belong to the supplied vault")
	}
	if !position.Active {
		return nil, types.ErrPositionClosed
	}

	vault, found, err := m.GetVault(ctx, vaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "vault %s does not exist", msg.Vault)
	}
	if !bytes.Equal(vault.Owner, owner) {
		return nil, errors.Wrap(types.ErrUnauthorized, "vault is not owned by the signer")
	}

	if err := m.DecrementVaultPosition(&vault, position.Amount); err != nil {
		return nil, err
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	position.Active = false
	position.LastUpdate = now

	if err := m.SetPosition(ctx, positionAddress, position); err != nil {
		return nil, errors.Wrap(err, "unable to store position")
	}
	if err := m.RemovePositionFromVaultIndex(ctx, vaultAddress, positionAddress); err != nil {
		return nil, errors.Wrap(err, "unable to remove position from index")
	}
	if err := m.SetVault(ctx, vaultAddress, vault); err != nil {
		return nil, errors.Wrap(err, "unable to store vault")
	}
	if err := m.RecordPositionClosed(ctx, position.Amount); err != nil {
		return nil, errors.Wrap(err, "unable to update ledger stats")
	}

	if err := m.event.EventManager(ctx).EmitKV(
		ctx,
		types.EventTypePositionClosed,
		event.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		event.NewAttribute(types.AttributeKeyVault, msg.Vault),
		event.NewAttribute(types.AttributeKeyPosition, msg.Position),
		event.NewAttribute(types.AttributeKeyAmount, position.Amount.String()),
		event.NewAttribute(types.AttributeKeyAccumulatedYield, position.AccumulatedYield.String()),
		event.NewAttribute(types.AttributeKeyTimestamp, strconv.FormatInt(now, 10)),
	); err != nil {
		return nil, err
	}

	m.logger.Info("closed position", "position", msg.Position, "yield", position.AccumulatedYield.String())

	return &types.MsgClosePositionResponse{AccumulatedYield: position.AccumulatedYield}, nil
}

func (m msgServer) RecordRebalance(ctx context.Context, msg *types.MsgRecordRebalance) (*types.MsgRecordRebalanceResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", msg.Owner)
	}
	vaultAddress, err := types.ParseRecordAddress(msg.Vault)
	if err != nil {
		return nil, err
	}

	if m.GetPaused(ctx) {
		return nil, types.ErrPaused
	}

	vault, found, err := m.GetVault(ctx, vaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "vault %s does not exist", msg.Vault)
	}
	if !bytes.Equal(vault.Owner, owner) {
		return nil, errors.Wrap(types.ErrUnauthorized, "vault is not owned by the signer")
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	vault.LastRebalance = now

	if err := m.SetVault(ctx, vaultAddress, vault); err != nil {
		return nil, errors.Wrap(err, "unable to store vault")
	}

	if err := m.event.EventManager(ctx).EmitKV(
		ctx,
		types.EventTypeRebalanceRecorded,
		event.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		event.NewAttribute(types.AttributeKeyVault, msg.Vault),
		event.NewAttribute(types.AttributeKeyTimestamp, strconv.FormatInt(now, 10)),
	); err != nil {
		return nil, err
	}

	return &types.MsgRecordRebalanceResponse{Timestamp: now}, nil
}

func (m msgServer) UpdateParams(ctx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	if msg.Authority != m.authority {
		return nil, errors.Wrapf(types.ErrUnauthorized, "expected authority %s, got %s", m.authority, msg.Authority)
	}

	if err := msg.Params.Validate(); err != nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	if err := m.SetParams(ctx, msg.Params); err != nil {
		return nil, errors.Wrap(err, "unable to store params")
	}

	if err := m.event.EventManager(ctx).EmitKV(
		ctx,
		types.EventTypeParamsUpdated,
		event.NewAttribute(types.AttributeKeyTargetApy, strconv.FormatUint(uint64(msg.Params.MaxTargetApy), 10)),
	); err != nil {
		return nil, err
	}

	m.logger.Info("updated params", "max_target_apy", msg.Params.MaxTargetApy, "max_active_positions", msg.Params.MaxActivePositions)

	return &types.MsgUpdateParamsResponse{}, nil
}

func (m msgServer) SetPaused(ctx context.Context, msg *types.MsgSetPaused) (*types.MsgSetPausedResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	if msg.Authority != m.authority {
		return nil, errors.Wrapf(types.ErrUnauthorized, "expected authority %s, got %s", m.authority, msg.Authority)
	}

	if err := m.Keeper.SetPaused(ctx, msg.Paused); err != nil {
		return nil, errors.Wrap(err, "unable to store pause state")
	}

	if err := m.event.EventManager(ctx).EmitKV(
		ctx,
		types.EventTypePausedSet,
		event.NewAttribute(types.AttributeKeyPaused, strconv.FormatBool(msg.Paused)),
	); err != nil {
		return nil, err
	}

	m.logger.Info("set paused", "paused", msg.Paused)

	return &types.MsgSetPausedResponse{}, nil
}
