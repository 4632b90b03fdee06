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

package wire

import (
	xdr3 "github.com/stellar/go-xdr/xdr3"
	"github.com/stellar/go/xdr"

	"perun.network/perun-adjudicator/wire/scval"
)

const (
	SymbolAllocationAssets   xdr.ScSymbol = "assets"
	SymbolAllocationBalances xdr.ScSymbol = "balances"
	SymbolAllocationLocked   xdr.ScSymbol = "locked"

	SymbolSubAllocID       xdr.ScSymbol = "id"
	SymbolSubAllocBalances xdr.ScSymbol = "balances"
)

// SubAlloc is the encoding of funds locked into a sub-channel, one amount per asset.
type SubAlloc struct {
	ID       xdr.ScBytes
	Balances []xdr.UInt256Parts
}

// Allocation is the encoding of a channel outcome. Balances[i][j] is the amount of Assets[i]
// owned by participant j.
type Allocation struct {
	Assets   []xdr.ScAddress
	Balances [][]xdr.UInt256Parts
	Locked   []SubAlloc
}

func (s SubAlloc) ToScVal() (xdr.ScVal, error) {
	if len(s.ID) != HashLength {
		return xdr.ScVal{}, ErrMalformed
	}
	id, err := scval.WrapScBytes(s.ID)
	if err != nil {
		return xdr.ScVal{}, err
	}
	bals, err := wrapAmounts(s.Balances)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{SymbolSubAllocID, SymbolSubAllocBalances},
		[]xdr.ScVal{id, bals},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

func (s *SubAlloc) FromScVal(v xdr.ScVal) error {
	m, err := symbolMap(v, 2, "SubAlloc") //nolint:gomnd
	if err != nil {
		return err
	}
	id, err := getHash(m, SymbolSubAllocID)
	if err != nil {
		return err
	}
	balsVal, err := GetScMapValueFromSymbol(SymbolSubAllocBalances, m)
	if err != nil {
		return err
	}
	bals, err := unwrapAmounts(balsVal, "sub-allocation balances")
	if err != nil {
		return err
	}
	s.ID = id
	s.Balances = bals
	return nil
}

func (a Allocation) ToScVal() (xdr.ScVal, error) {
	assets, err := wrapAddresses(a.Assets)
	if err != nil {
		return xdr.ScVal{}, err
	}
	balsVec := make(xdr.ScVec, len(a.Balances))
	for i, bals := range a.Balances {
		if balsVec[i], err = wrapAmounts(bals); err != nil {
			return xdr.ScVal{}, err
		}
	}
	bals, err := scval.WrapVec(balsVec)
	if err != nil {
		return xdr.ScVal{}, err
	}
	lockedVec := make(xdr.ScVec, len(a.Locked))
	for i, sub := range a.Locked {
		if lockedVec[i], err = sub.ToScVal(); err != nil {
			return xdr.ScVal{}, err
		}
	}
	locked, err := scval.WrapVec(lockedVec)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolAllocationAssets,
			SymbolAllocationBalances,
			SymbolAllocationLocked,
		},
		[]xdr.ScVal{assets, bals, locked},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

func (a *Allocation) FromScVal(v xdr.ScVal) error {
	m, err := symbolMap(v, 3, "Allocation") //nolint:gomnd
	if err != nil {
		return err
	}
	assetsVec, err := getVec(m, SymbolAllocationAssets)
	if err != nil {
		return err
	}
	assets, err := unwrapAddresses(assetsVec, string(SymbolAllocationAssets))
	if err != nil {
		return err
	}
	balsVec, err := getVec(m, SymbolAllocationBalances)
	if err != nil {
		return err
	}
	bals := make([][]xdr.UInt256Parts, len(balsVec))
	for i, b := range balsVec {
		if bals[i], err = unwrapAmounts(b, "balances"); err != nil {
			return err
		}
	}
	lockedVec, err := getVec(m, SymbolAllocationLocked)
	if err != nil {
		return err
	}
	locked := make([]SubAlloc, len(lockedVec))
	for i, l := range lockedVec {
		if err := locked[i].FromScVal(l); err != nil {
			return err
		}
	}
	a.Assets = assets
	a.Balances = bals
	a.Locked = locked
	return nil
}

func (a Allocation) EncodeTo(e *xdr3.Encoder) error {
	return encodeTo(e, a)
}

func (a *Allocation) DecodeFrom(d *xdr3.Decoder) (int, error) {
	return decodeFrom(d, a.FromScVal)
}

func (a Allocation) MarshalBinary() ([]byte, error) {
	return marshal(a)
}

func (a *Allocation) UnmarshalBinary(data []byte) error {
	return unmarshal(data, a.FromScVal)
}
