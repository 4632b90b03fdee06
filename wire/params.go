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

const NonceLength = 32

const (
	SymbolParamsApp               xdr.ScSymbol = "app"
	SymbolParamsChallengeDuration xdr.ScSymbol = "challenge_duration"
	SymbolParamsNonce             xdr.ScSymbol = "nonce"
	SymbolParamsParticipants      xdr.ScSymbol = "participants"
)

// Params is the canonical encoding of the channel parameters. The channel ID is the hash of its
// binary form.
type Params struct {
	App               xdr.ScBytes
	ChallengeDuration xdr.Uint64
	Nonce             xdr.ScBytes
	Participants      []xdr.ScAddress
}

func (p Params) ToScVal() (xdr.ScVal, error) {
	if len(p.Nonce) != NonceLength {
		return xdr.ScVal{}, errors.New("invalid nonce length")
	}
	app, err := scval.WrapScBytes(p.App)
	if err != nil {
		return xdr.ScVal{}, err
	}
	challengeDuration, err := scval.WrapUint64(p.ChallengeDuration)
	if err != nil {
		return xdr.ScVal{}, err
	}
	nonce, err := scval.WrapScBytes(p.Nonce)
	if err != nil {
		return xdr.ScVal{}, err
	}
	parts, err := wrapAddresses(p.Participants)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolParamsApp,
			SymbolParamsChallengeDuration,
			SymbolParamsNonce,
			SymbolParamsParticipants,
		},
		[]xdr.ScVal{app, challengeDuration, nonce, parts},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

func (p *Params) FromScVal(v xdr.ScVal) error {
	m, err := symbolMap(v, 4, "Params") //nolint:gomnd
	if err != nil {
		return err
	}
	app, err := getBytes(m, SymbolParamsApp)
	if err != nil {
		return err
	}
	challengeDuration, err := getUint64(m, SymbolParamsChallengeDuration)
	if err != nil {
		return err
	}
	nonce, err := getHash(m, SymbolParamsNonce)
	if err != nil {
		return err
	}
	partsVec, err := getVec(m, SymbolParamsParticipants)
	if err != nil {
		return err
	}
	parts, err := unwrapAddresses(partsVec, string(SymbolParamsParticipants))
	if err != nil {
		return err
	}
	p.App = app
	p.ChallengeDuration = challengeDuration
	p.Nonce = nonce
	p.Participants = parts
	return nil
}

func (p Params) EncodeTo(e *xdr3.Encoder) error {
	return encodeTo(e, p)
}

func (p *Params) DecodeFrom(d *xdr3.Decoder) (int, error) {
	return decodeFrom(d, p.FromScVal)
}

func (p Params) MarshalBinary() ([]byte, error) {
	return marshal(p)
}

func (p *Params) UnmarshalBinary(data []byte) error {
	return unmarshal(data, p.FromScVal)
}

func ParamsFromScVal(v xdr.ScVal) (Params, error) {
	var p Params
	err := (&p).FromScVal(v)
	return p, err
}
