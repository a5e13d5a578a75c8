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

import "context"

// QueryServer is the ledger's read surface.
type QueryServer interface {
	Vault(ctx context.Context, req *QueryVaultRequest) (*QueryVaultResponse, error)
	VaultAddress(ctx context.Context, req *QueryVaultAddressRequest) (*QueryVaultAddressResponse, error)
	Position(ctx context.Context, req *QueryPositionRequest) (*QueryPositionResponse, error)
	PositionAddress(ctx context.Context, req *QueryPositionAddressRequest) (*QueryPositionAddressResponse, error)
	VaultPositions(ctx context.Context, req *QueryVaultPositionsRequest) (*QueryVaultPositionsResponse, error)
	Stats(ctx context.Context, req *QueryStatsRequest) (*QueryStatsResponse, error)
	Params(ctx context.Context, req *QueryParamsRequest) (*QueryParamsResponse, error)
}

// VaultView is the external rendering of a vault record.
type VaultView struct {
	Address          string
	Owner            string
	AgentName        string
	TotalValueLocked string
	PositionCount    uint32
	CreatedAt        int64
	LastRebalance    int64
}

// PositionView is the external rendering of a position record.
type PositionView struct {
	Address          string
	Owner            string
	Vault            string
	Protocol         string
	Strategy         string
	Asset            string
	Amount           string
	TargetApy        uint32
	OpenedAt         int64
	LastUpdate       int64
	Active           bool
	AccumulatedYield string
	Slot             uint32
}

type QueryVaultRequest struct {
	Address string
}

type QueryVaultResponse struct {
	Vault VaultView
}

type QueryVaultAddressRequest struct {
	Owner     string
	AgentName string
}

type QueryVaultAddressResponse struct {
	Address string
}

type QueryPositionRequest struct {
	Address string
}

type QueryPositionResponse struct {
	Position PositionView
}

type QueryPositionAddressRequest struct {
	Vault    string
	Protocol string
	Asset    string
	Slot     uint32
}

type QueryPositionAddressResponse struct {
	Address string
}

type QueryVaultPositionsRequest struct {
	Vault string
	// ActiveOnly restricts the listing to currently active positions; closed
	// tombstones are skipped.
	ActiveOnly bool
}

type QueryVaultPositionsResponse struct {
	Positions []PositionView
}

type QueryStatsRequest struct{}

type QueryStatsResponse struct {
	TotalVaults       uint64
	PositionsOpened   uint64
	PositionsClosed   uint64
	TotalValueLocked  string
	TotalYieldAccrued string
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params
}
