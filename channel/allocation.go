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
	"fmt"

	"github.com/holiman/uint256"
	"github.com/stellar/go/xdr"
	pchannel "perun.network/go-perun/channel"

	"perun.network/perun-adjudicator/channel/types"
	"perun.network/perun-adjudicator/wire"
	"perun.network/perun-adjudicator/wire/scval"
)

type (
	// Allocation is the outcome of a channel. Balances[i][j] is the amount of Assets[i] that
	// participant j receives. Locked holds funds that are moved into sub-channels.
	Allocation struct {
		Assets   []types.Asset
		Balances [][]*uint256.Int
		Locked   []SubAlloc
	}

	// SubAlloc is a claim of a sub-channel on the outer channel, one amount per asset.
	SubAlloc struct {
		ID   pchannel.ID
		Bals []*uint256.Int
	}
)

// Valid checks the shape of the allocation for a channel with numParts participants.
func (a *Allocation) Valid(numParts int) error {
	if len(a.Assets) == 0 {
		return fmt.Errorf("%w: no assets", ErrInvalidState)
	}
	if len(a.Assets) != len(a.Balances) {
		return fmt.Errorf("%w: %d assets but %d balance vectors", ErrInvalidState, len(a.Assets), len(a.Balances))
	}
	seen := make(map[types.AssetMapKey]struct{}, len(a.Assets))
	for i, asset := range a.Assets {
		if _, ok := seen[asset.MapKey()]; ok {
			return fmt.Errorf("%w: duplicate asset %v", ErrInvalidState, asset)
		}
		seen[asset.MapKey()] = struct{}{}
		if len(a.Balances[i]) != numParts {
			return fmt.Errorf("%w: asset %d has %d balances, want %d", ErrInvalidState, i, len(a.Balances[i]), numParts)
		}
		if err := checkAmounts(a.Balances[i]); err != nil {
			return err
		}
	}
	subIDs := make(map[pchannel.ID]struct{}, len(a.Locked))
	for j, sub := range a.Locked {
		if _, ok := subIDs[sub.ID]; ok {
			return fmt.Errorf("%w: duplicate sub-allocation %x", ErrInvalidState, sub.ID)
		}
		subIDs[sub.ID] = struct{}{}
		if len(sub.Bals) != len(a.Assets) {
			return fmt.Errorf("%w: sub-allocation %d has %d balances, want %d", ErrInvalidState, j, len(sub.Bals), len(a.Assets))
		}
		if err := checkAmounts(sub.Bals); err != nil {
			return err
		}
	}
	return nil
}

func checkAmounts(amounts []*uint256.Int) error {
	for _, a := range amounts {
		if a == nil {
			return fmt.Errorf("%w: missing amount", ErrInvalidState)
		}
	}
	return nil
}

// SubAllocs returns the sub-allocation IDs and their amounts of the asset at index assetIdx.
func (a *Allocation) SubAllocs(assetIdx int) ([]pchannel.ID, []*uint256.Int) {
	ids := make([]pchannel.ID, len(a.Locked))
	bals := make([]*uint256.Int, len(a.Locked))
	for i, sub := range a.Locked {
		ids[i] = sub.ID
		bals[i] = sub.Bals[assetIdx]
	}
	return ids, bals
}

// Clone returns a deep copy of the allocation.
func (a Allocation) Clone() Allocation {
	clone := Allocation{
		Assets:   append([]types.Asset(nil), a.Assets...),
		Balances: make([][]*uint256.Int, len(a.Balances)),
		Locked:   make([]SubAlloc, len(a.Locked)),
	}
	for i, bals := range a.Balances {
		clone.Balances[i] = cloneAmounts(bals)
	}
	for i, sub := range a.Locked {
		clone.Locked[i] = SubAlloc{ID: sub.ID, Bals: cloneAmounts(sub.Bals)}
	}
	return clone
}

func cloneAmounts(amounts []*uint256.Int) []*uint256.Int {
	clone := make([]*uint256.Int, len(amounts))
	for i, a := range amounts {
		if a != nil {
			clone[i] = a.Clone()
		}
	}
	return clone
}

// ToWire converts the allocation into its canonical encoding.
func (a *Allocation) ToWire() (wire.Allocation, error) {
	w := wire.Allocation{
		Assets:   make([]xdr.ScAddress, len(a.Assets)),
		Balances: make([][]xdr.UInt256Parts, len(a.Balances)),
		Locked:   make([]wire.SubAlloc, len(a.Locked)),
	}
	for i, asset := range a.Assets {
		addr, err := asset.MakeScAddress()
		if err != nil {
			return wire.Allocation{}, err
		}
		w.Assets[i] = addr
	}
	for i, bals := range a.Balances {
		w.Balances[i] = makeAmounts(bals)
	}
	for i, sub := range a.Locked {
		id := sub.ID
		w.Locked[i] = wire.SubAlloc{ID: id[:], Balances: makeAmounts(sub.Bals)}
	}
	return w, nil
}

// AllocationFromWire decodes an allocation from its canonical encoding.
func AllocationFromWire(w wire.Allocation) (Allocation, error) {
	a := Allocation{
		Assets:   make([]types.Asset, len(w.Assets)),
		Balances: make([][]*uint256.Int, len(w.Balances)),
		Locked:   make([]SubAlloc, len(w.Locked)),
	}
	for i, addr := range w.Assets {
		asset, err := types.AssetFromScAddress(addr)
		if err != nil {
			return Allocation{}, err
		}
		a.Assets[i] = asset
	}
	for i, bals := range w.Balances {
		a.Balances[i] = toAmounts(bals)
	}
	for i, sub := range w.Locked {
		copy(a.Locked[i].ID[:], sub.ID)
		a.Locked[i].Bals = toAmounts(sub.Balances)
	}
	return a, nil
}

func makeAmounts(amounts []*uint256.Int) []xdr.UInt256Parts {
	parts := make([]xdr.UInt256Parts, len(amounts))
	for i, a := range amounts {
		parts[i] = scval.MakeUint256Parts(a)
	}
	return parts
}

func toAmounts(parts []xdr.UInt256Parts) []*uint256.Int {
	amounts := make([]*uint256.Int, len(parts))
	for i, p := range parts {
		amounts[i] = scval.Uint256FromParts(p)
	}
	return amounts
}
