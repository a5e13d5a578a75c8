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
	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"

	"vaults.molusco.xyz/types"
)

type Keeper struct {
	authority string

	store store.KVStoreService

	logger  log.Logger
	header  header.Service
	event   event.Service
	address address.Codec

	Paused collections.Item[bool]
	Params collections.Item[types.Params]
	Stats  collections.Item[types.Stats]

	Vaults    collections.Map[[]byte, types.Vault]
	Positions collections.Map[[]byte, types.Position]

	// VaultSlotSequence stores the next slot discriminator per vault. Slots
	// are never reused, so the address of a closed position stays retired.
	VaultSlotSequence collections.Map[[]byte, uint64]

	// VaultPositionIndex tracks (vault, position) pairs for every active
	// position. Closing a position removes its index entry while the record
	// itself is kept as a tombstone.
	VaultPositionIndex collections.KeySet[collections.Pair[[]byte, []byte]]
}

func NewKeeper(
	authority string,
	store store.KVStoreService,
	logger log.Logger,
	header header.Service,
	event event.Service,
	address address.Codec,
) *Keeper {
	builder := collections.NewSchemaBuilder(store)

	keeper := &Keeper{
		authority: authority,

		store: store,

		logger:  logger.With("module", types.ModuleName),
		header:  header,
		event:   event,
		address: address,

		Paused: collections.NewItem(builder, types.PausedKey, "paused", collections.BoolValue),
		Params: collections.NewItem(builder, types.ParamsKey, "params", types.ParamsValue),
		Stats:  collections.NewItem(builder, types.StatsKey, "stats", types.StatsValue),

		Vaults:    collections.NewMap(builder, types.VaultPrefix, "vaults", collections.BytesKey, types.VaultValue),
		Positions: collections.NewMap(builder, types.PositionPrefix, "positions", collections.BytesKey, types.PositionValue),

		VaultSlotSequence:  collections.NewMap(builder, types.VaultSlotSequencePrefix, "vault_slot_sequence", collections.BytesKey, collections.Uint64Value),
		VaultPositionIndex: collections.NewKeySet(builder, types.VaultPositionIndexPrefix, "vault_position_index", collections.PairKeyCodec(collections.BytesKey, collections.BytesKey)),
	}

	_, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return keeper
}

// GetAuthority is a utility that returns the configured authority address.
func (k *Keeper) GetAuthority() string {
	return k.authority
}
