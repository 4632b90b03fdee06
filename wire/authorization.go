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
	SymbolAuthAmount      xdr.ScSymbol = "amount"
	SymbolAuthChannelID   xdr.ScSymbol = "channel_id"
	SymbolAuthParticipant xdr.ScSymbol = "participant"
	SymbolAuthReceiver    xdr.ScSymbol = "receiver"
)

// Authorization is the encoding of a withdrawal authorization. The participant signs its binary
// form.
type Authorization struct {
	ChannelID   xdr.ScBytes
	Participant xdr.ScAddress
	Receiver    xdr.ScAddress
	Amount      xdr.UInt256Parts
}

func (a Authorization) ToScVal() (xdr.ScVal, error) {
	if len(a.ChannelID) != HashLength {
		return xdr.ScVal{}, ErrMalformed
	}
	amount, err := scval.WrapUint256Parts(a.Amount)
	if err != nil {
		return xdr.ScVal{}, err
	}
	channelID, err := scval.WrapScBytes(a.ChannelID)
	if err != nil {
		return xdr.ScVal{}, err
	}
	participant, err := scval.WrapScAddress(a.Participant)
	if err != nil {
		return xdr.ScVal{}, err
	}
	receiver, err := scval.WrapScAddress(a.Receiver)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolAuthAmount,
			SymbolAuthChannelID,
			SymbolAuthParticipant,
			SymbolAuthReceiver,
		},
		[]xdr.ScVal{amount, channelID, participant, receiver},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

func (a *Authorization) FromScVal(v xdr.ScVal) error {
	m, err := symbolMap(v, 4, "Authorization") //nolint:gomnd
	if err != nil {
		return err
	}
	amount, err := getUint256(m, SymbolAuthAmount)
	if err != nil {
		return err
	}
	channelID, err := getHash(m, SymbolAuthChannelID)
	if err != nil {
		return err
	}
	participant, err := getAddress(m, SymbolAuthParticipant)
	if err != nil {
		return err
	}
	receiver, err := getAddress(m, SymbolAuthReceiver)
	if err != nil {
		return err
	}
	a.Amount = amount
	a.ChannelID = channelID
	a.Participant = participant
	a.Receiver = receiver
	return nil
}

func (a Authorization) EncodeTo(e *xdr3.Encoder) error {
	return encodeTo(e, a)
}

func (a *Authorization) DecodeFrom(d *xdr3.Decoder) (int, error) {
	return decodeFrom(d, a.FromScVal)
}

func (a Authorization) MarshalBinary() ([]byte, error) {
	return marshal(a)
}

func (a *Authorization) UnmarshalBinary(data []byte) error {
	return unmarshal(data, a.FromScVal)
}
