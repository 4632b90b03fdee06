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
	SymbolStateAppData   xdr.ScSymbol = "app_data"
	SymbolStateChannelID xdr.ScSymbol = "channel_id"
	SymbolStateIsFinal   xdr.ScSymbol = "is_final"
	SymbolStateMoverIdx  xdr.ScSymbol = "mover_idx"
	SymbolStateOutcome   xdr.ScSymbol = "outcome"
	SymbolStateVersion   xdr.ScSymbol = "version"
)

// State is the encoding of a channel state. Participants sign its binary form.
type State struct {
	ChannelID xdr.ScBytes
	Version   xdr.Uint64
	MoverIdx  xdr.Uint64
	Outcome   Allocation
	AppData   xdr.ScBytes
	IsFinal   bool
}

func (s State) ToScVal() (xdr.ScVal, error) {
	if len(s.ChannelID) != HashLength {
		return xdr.ScVal{}, ErrMalformed
	}
	appData, err := scval.WrapScBytes(s.AppData)
	if err != nil {
		return xdr.ScVal{}, err
	}
	channelID, err := scval.WrapScBytes(s.ChannelID)
	if err != nil {
		return xdr.ScVal{}, err
	}
	isFinal, err := scval.WrapBool(s.IsFinal)
	if err != nil {
		return xdr.ScVal{}, err
	}
	moverIdx, err := scval.WrapUint64(s.MoverIdx)
	if err != nil {
		return xdr.ScVal{}, err
	}
	outcome, err := s.Outcome.ToScVal()
	if err != nil {
		return xdr.ScVal{}, err
	}
	version, err := scval.WrapUint64(s.Version)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolStateAppData,
			SymbolStateChannelID,
			SymbolStateIsFinal,
			SymbolStateMoverIdx,
			SymbolStateOutcome,
			SymbolStateVersion,
		},
		[]xdr.ScVal{appData, channelID, isFinal, moverIdx, outcome, version},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

func (s *State) FromScVal(v xdr.ScVal) error {
	m, err := symbolMap(v, 6, "State") //nolint:gomnd
	if err != nil {
		return err
	}
	appData, err := getBytes(m, SymbolStateAppData)
	if err != nil {
		return err
	}
	channelID, err := getHash(m, SymbolStateChannelID)
	if err != nil {
		return err
	}
	isFinal, err := getBool(m, SymbolStateIsFinal)
	if err != nil {
		return err
	}
	moverIdx, err := getUint64(m, SymbolStateMoverIdx)
	if err != nil {
		return err
	}
	outcomeVal, err := GetScMapValueFromSymbol(SymbolStateOutcome, m)
	if err != nil {
		return err
	}
	var outcome Allocation
	if err := outcome.FromScVal(outcomeVal); err != nil {
		return err
	}
	version, err := getUint64(m, SymbolStateVersion)
	if err != nil {
		return err
	}
	s.AppData = appData
	s.ChannelID = channelID
	s.IsFinal = isFinal
	s.MoverIdx = moverIdx
	s.Outcome = outcome
	s.Version = version
	return nil
}

func (s State) EncodeTo(e *xdr3.Encoder) error {
	return encodeTo(e, s)
}

func (s *State) DecodeFrom(d *xdr3.Decoder) (int, error) {
	return decodeFrom(d, s.FromScVal)
}

func (s State) MarshalBinary() ([]byte, error) {
	return marshal(s)
}

func (s *State) UnmarshalBinary(data []byte) error {
	return unmarshal(data, s.FromScVal)
}

func StateFromScVal(v xdr.ScVal) (State, error) {
	var s State
	err := (&s).FromScVal(v)
	return s, err
}
