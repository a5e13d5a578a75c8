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

// Event types emitted by the ledger operations.
const (
	EventTypeVaultCreated      = "molusco.vault_created"
	EventTypePositionOpened    = "molusco.position_opened"
	EventTypePositionUpdated   = "molusco.position_updated"
	EventTypePositionClosed    = "molusco.position_closed"
	EventTypeRebalanceRecorded = "molusco.rebalance_recorded"
	EventTypeParamsUpdated     = "molusco.params_updated"
	EventTypePausedSet         = "molusco.paused_set"
)

// Attribute keys shared across event types.
const (
	AttributeKeyOwner            = "owner"
	AttributeKeyVault            = "vault"
	AttributeKeyAgentName        = "agent_name"
	AttributeKeyPosition         = "position"
	AttributeKeyProtocol         = "protocol"
	AttributeKeyStrategy         = "strategy"
	AttributeKeyAsset            = "asset"
	AttributeKeyAmount           = "amount"
	AttributeKeyTargetApy        = "target_apy"
	AttributeKeySlot             = "slot"
	AttributeKeyYieldDelta       = "yield_delta"
	AttributeKeyAccumulatedYield = "accumulated_yield"
	AttributeKeyTimestamp        = "timestamp"
	AttributeKeyPaused           = "paused"
)
