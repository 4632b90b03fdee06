// Copyright 2025 PolyCrypt GmbH
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package channel

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	pchannel "perun.network/go-perun/channel"
	"perun.network/go-perun/log"

	"perun.network/perun-adjudicator/channel/types"
)

// Depositor is the part of an asset holder a participant funds a channel with.
type Depositor interface {
	Asset() types.Asset
	Deposit(ctx context.Context, fundingID pchannel.ID, amount, value *uint256.Int) error
}

// Funder deposits a participant's share of a channel's initial outcome.
type Funder struct {
	holders map[types.AssetMapKey]Depositor
	log     log.Embedding
}

// NewFunder returns a Funder that deposits into the given asset holders.
func NewFunder(holders ...Depositor) *Funder {
	f := &Funder{
		holders: make(map[types.AssetMapKey]Depositor, len(holders)),
		log:     log.MakeEmbedding(log.Default()),
	}
	for _, h := range holders {
		f.holders[h.Asset().MapKey()] = h
	}
	return f
}

// Fund deposits the balances of participant idx in state into the asset holders. Zero balances
// are skipped.
func (f *Funder) Fund(ctx context.Context, params *Params, state *State, idx int) error {
	if _, err := checkState(params, state); err != nil {
		return err
	}
	if idx < 0 || idx >= params.NumParts() {
		return fmt.Errorf("participant index %d out of range", idx)
	}
	fid, err := FundingID(state.ID, params.Parts[idx])
	if err != nil {
		return err
	}
	for _, asset := range state.Outcome.Assets {
		if _, ok := f.holders[asset.MapKey()]; !ok {
			return fmt.Errorf("%w: %v", ErrUnknownAsset, asset)
		}
	}
	for i, asset := range state.Outcome.Assets {
		bal := state.Outcome.Balances[i][idx]
		if bal.IsZero() {
			continue
		}
		f.log.Log().WithField("channel", state.ID).Debugf("Participant %d depositing %v of %v", idx, bal, asset)
		if err := f.holders[asset.MapKey()].Deposit(ctx, fid, bal, bal.Clone()); err != nil {
			return fmt.Errorf("depositing %v: %w", asset, err)
		}
	}
	return nil
}
