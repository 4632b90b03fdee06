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
	"github.com/pkg/errors"
	xdr3 "github.com/stellar/go-xdr/xdr3"
	"github.com/stellar/go/xdr"

	"perun.network/perun-adjudicator/wire/scval"
)

const (
	SymbolOutcomeAsset            xdr.ScSymbol = "asset"
	SymbolOutcomeBalances         xdr.ScSymbol = "balances"
	SymbolOutcomeChannelID        xdr.ScSymbol = "channel_id"
	SymbolOutcomeParticipants     xdr.ScSymbol = "participants"
	SymbolOutcomeSubAllocBalances xdr.ScSymbol = "sub_balances"
	SymbolOutcomeSubAllocIDs      xdr.ScSymbol = "sub_ids"
)

// Outcome is the encoding of the outcome of one channel in one asset. The adjudicator signs its
// binary form when it settles the channel in an asset holder.
type Outcome struct {
	Asset            xdr.ScAddress
	ChannelID        xdr.ScBytes
	Participants     []xdr.ScAddress
	Balances         []xdr.UInt256Parts
	SubAllocIDs      []xdr.ScBytes
	SubAllocBalances []xdr.UInt256Parts
}

func (o Outcome) ToScVal() (xdr.ScVal, error) {
	if len(o.ChannelID) != HashLength {
		return xdr.ScVal{}, errors.Wrap(ErrMalformed, "channel ID length")
	}
	asset, err := scval.WrapScAddress(o.Asset)
	if err != nil {
		return xdr.ScVal{}, err
	}
	balances, err := wrapAmounts(o.Balances)
	if err != nil {
		return xdr.ScVal{}, err
	}
	channelID, err := scval.WrapScBytes(o.ChannelID)
	if err != nil {
		return xdr.ScVal{}, err
	}
	parts, err := wrapAddresses(o.Participants)
	if err != nil {
		return xdr.ScVal{}, err
	}
	subBalances, err := wrapAmounts(o.SubAllocBalances)
	if err != nil {
		return xdr.ScVal{}, err
	}
	subIDs, err := wrapHashes(o.SubAllocIDs)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolOutcomeAsset,
			SymbolOutcomeBalances,
			SymbolOutcomeChannelID,
			SymbolOutcomeParticipants,
			SymbolOutcomeSubAllocBalances,
			SymbolOutcomeSubAllocIDs,
		},
		[]xdr.ScVal{asset, balances, channelID, parts, subBalances, subIDs},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

func (o *Outcome) FromScVal(v xdr.ScVal) error {
	m, err := symbolMap(v, 6, "Outcome") //nolint:gomnd
	if err != nil {
		return err
	}
	asset, err := getAddress(m, SymbolOutcomeAsset)
	if err != nil {
		return err
	}
	balancesVal, err := GetScMapValueFromSymbol(SymbolOutcomeBalances, m)
	if err != nil {
		return err
	}
	balances, err := unwrapAmounts(balancesVal, string(SymbolOutcomeBalances))
	if err != nil {
		return err
	}
	channelID, err := getHash(m, SymbolOutcomeChannelID)
	if err != nil {
		return err
	}
	partsVec, err := getVec(m, SymbolOutcomeParticipants)
	if err != nil {
		return err
	}
	parts, err := unwrapAddresses(partsVec, string(SymbolOutcomeParticipants))
	if err != nil {
		return err
	}
	subBalancesVal, err := GetScMapValueFromSymbol(SymbolOutcomeSubAllocBalances, m)
	if err != nil {
		return err
	}
	subBalances, err := unwrapAmounts(subBalancesVal, string(SymbolOutcomeSubAllocBalances))
	if err != nil {
		return err
	}
	subIDsVec, err := getVec(m, SymbolOutcomeSubAllocIDs)
	if err != nil {
		return err
	}
	subIDs, err := unwrapHashes(subIDsVec, string(SymbolOutcomeSubAllocIDs))
	if err != nil {
		return err
	}
	o.Asset = asset
	o.Balances = balances
	o.ChannelID = channelID
	o.Participants = parts
	o.SubAllocBalances = subBalances
	o.SubAllocIDs = subIDs
	return nil
}

func (o Outcome) EncodeTo(e *xdr3.Encoder) error {
	return encodeTo(e, o)
}

func (o *Outcome) DecodeFrom(d *xdr3.Decoder) (int, error) {
	return decodeFrom(d, o.FromScVal)
}

func (o Outcome) MarshalBinary() ([]byte, error) {
	return marshal(o)
}

func (o *Outcome) UnmarshalBinary(data []byte) error {
	return unmarshal(data, o.FromScVal)
}

func wrapHashes(hs []xdr.ScBytes) (xdr.ScVal, error) {
	vec := make(xdr.ScVec, len(hs))
	for i, h := range hs {
		if len(h) != HashLength {
			return xdr.ScVal{}, errors.Wrapf(ErrMalformed, "hash %d of length %d", i, len(h))
		}
		v, err := scval.WrapScBytes(h)
		if err != nil {
			return xdr.ScVal{}, err
		}
		vec[i] = v
	}
	return scval.WrapVec(vec)
}

func unwrapHashes(vec xdr.ScVec, what string) ([]xdr.ScBytes, error) {
	hs := make([]xdr.ScBytes, len(vec))
	for i, v := range vec {
		b, ok := v.GetBytes()
		if !ok || len(b) != HashLength {
			return nil, errors.Wrapf(ErrMalformed, "expected hash in %s[%d]", what, i)
		}
		hs[i] = b
	}
	return hs, nil
}
