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
	"context"

	"cosmossdk.io/math"
)

// MsgServer is the ledger's mutating surface. The host environment resolves
// and authenticates the signer of every message before it reaches these
// handlers; the handlers re-check that the signer matches the owner recorded
// on the targeted records.
type MsgServer interface {
	// CreateVault registers a new vault for the (owner, agent name) pair.
	CreateVault(ctx context.Context, msg *MsgCreateVault) (*MsgCreateVaultResponse, error)

	// OpenPosition records a new active position under a vault and raises the
	// vault's aggregates with it as one unit.
	OpenPosition(ctx context.Context, msg *MsgOpenPosition) (*MsgOpenPositionResponse, error)

	// UpdatePosition accrues observed yield on an active position. Vault
	// aggregates are untouched: value updates reflect yield, not principal.
	UpdatePosition(ctx context.Context, msg *MsgUpdatePosition) (*MsgUpdatePositionResponse, error)

	// ClosePosition terminates an active position and lowers the parent
	// vault's aggregates with it as one unit.
	ClosePosition(ctx context.Context, msg *MsgClosePosition) (*MsgClosePositionResponse, error)

	// RecordRebalance stamps the vault with the time of an out-of-band
	// strategy rebalance.
	RecordRebalance(ctx context.Context, msg *MsgRecordRebalance) (*MsgRecordRebalanceResponse, error)

	// UpdateParams replaces the ledger policy. Restricted to the authority.
	UpdateParams(ctx context.Context, msg *MsgUpdateParams) (*MsgUpdateParamsResponse, error)

	// SetPaused toggles the mutation kill switch. Restricted to the authority.
	SetPaused(ctx context.Context, msg *MsgSetPaused) (*MsgSetPausedResponse, error)
}

type MsgCreateVault struct {
	Owner     string
	AgentName string
}

type MsgCreateVaultResponse struct {
	// Address is the derived vault address, hex encoded.
	Address string
}

type MsgOpenPosition struct {
	Owner     string
	Vault     string
	Protocol  string
	Strategy  string
	Asset     string
	Amount    math.Int
	TargetApy uint32
}

type MsgOpenPositionResponse struct {
	// Address is the derived position address, hex encoded.
	Address string
	Slot    uint32
}

type MsgUpdatePosition struct {
	Owner    string
	Position string
	// CurrentValue is the position's observed current value, supplied by the
	// trusted caller.
	CurrentValue math.Int
}

type MsgUpdatePositionResponse struct {
	YieldDelta       math.Int
	AccumulatedYield math.Int
}

type MsgClosePosition struct {
	Owner    string
	Vault    string
	Position string
}

type MsgClosePositionResponse struct {
	AccumulatedYield math.Int
}

type MsgRecordRebalance struct {
	Owner string
	Vault string
}

type MsgRecordRebalanceResponse struct {
	// Timestamp is the recorded rebalance time, unix seconds.
	Timestamp int64
}

type MsgUpdateParams struct {
	Authority string
	Params    Params
}

type MsgUpdateParamsResponse struct{}

type MsgSetPaused struct {
	Authority string
	Paused    bool
}

type MsgSetPausedResponse struct{}
