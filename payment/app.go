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


// Package payment provides the transition rules of plain payment channels.
package payment

import (
	"bytes"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"perun.network/perun-adjudicator/channel"
)

// AppID is the App value of the channel parameters of payment channels.
var AppID = []byte("payment")

// App accepts transitions in which the mover only gives away funds. Per asset the total stays
// the same, no participant other than the mover loses funds, and locked sub-allocations and app
// data do not change.
type App struct{}

var _ channel.App = App{}

// ValidTransition implements channel.App.
func (App) ValidTransition(params *channel.Params, from, to *channel.State, moverIdx uint64) error {
	if moverIdx >= uint64(params.NumParts()) {
		return errors.Errorf("mover %d out of range", moverIdx)
	}
	if !bytes.Equal(from.AppData, to.AppData) {
		return errors.New("app data changed")
	}
	if len(from.Outcome.Assets) != len(to.Outcome.Assets) {
		return errors.New("asset count changed")
	}
	for i, asset := range from.Outcome.Assets {
		if !asset.Equal(to.Outcome.Assets[i]) {
			return errors.Errorf("asset %d changed", i)
		}
		if err := checkBalances(from, to, i, moverIdx); err != nil {
			return errors.WithMessagef(err, "asset %v", asset)
		}
	}
	if len(from.Outcome.Locked) != len(to.Outcome.Locked) {
		return errors.New("locked funds changed")
	}
	for i, sub := range from.Outcome.Locked {
		other := to.Outcome.Locked[i]
		if sub.ID != other.ID || len(sub.Bals) != len(other.Bals) {
			return errors.New("locked funds changed")
		}
		for j, bal := range sub.Bals {
			if !bal.Eq(other.Bals[j]) {
				return errors.New("locked funds changed")
			}
		}
	}
	return nil
}

func checkBalances(from, to *channel.State, assetIdx int, moverIdx uint64) error {
	before, after := from.Outcome.Balances[assetIdx], to.Outcome.Balances[assetIdx]
	if len(before) != len(after) {
		return errors.New("participant count changed")
	}
	for j := range before {
		if uint64(j) != moverIdx && after[j].Lt(before[j]) {
			return errors.Errorf("participant %d lost funds", j)
		}
	}
	sumBefore, overflow := sum(before)
	if overflow {
		return errors.New("balance overflow")
	}
	sumAfter, overflow := sum(after)
	if overflow || !sumBefore.Eq(sumAfter) {
		return errors.New("total changed")
	}
	return nil
}

func sum(bals []*uint256.Int) (*uint256.Int, bool) {
	total := new(uint256.Int)
	for _, b := range bals {
		if _, overflow := total.AddOverflow(total, b); overflow {
			return nil, true
		}
	}
	return total, false
}
