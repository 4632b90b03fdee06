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
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/stellar/go/xdr"
	pchannel "perun.network/go-perun/channel"

	wtypes "perun.network/perun-adjudicator/wallet/types"
	"perun.network/perun-adjudicator/wire"
)

// Params are the immutable parameters of a channel. The channel ID is derived from them.
type Params struct {
	App               []byte
	ChallengeDuration uint64 // seconds
	Nonce             *uint256.Int
	Parts             []*wtypes.Address
}

// NewParams validates and returns channel parameters.
func NewParams(app []byte, challengeDuration uint64, nonce *uint256.Int, parts []*wtypes.Address) (*Params, error) {
	p := &Params{
		App:               app,
		ChallengeDuration: challengeDuration,
		Nonce:             nonce,
		Parts:             parts,
	}
	return p, p.Valid()
}

// Valid checks that the parameters describe a usable channel.
func (p *Params) Valid() error {
	if len(p.Parts) == 0 {
		return errors.New("no participants")
	}
	for i, part := range p.Parts {
		if part == nil {
			return fmt.Errorf("participant %d is nil", i)
		}
		for _, other := range p.Parts[:i] {
			if part.Equal(other) {
				return fmt.Errorf("duplicate participant %v", part)
			}
		}
	}
	if p.Nonce == nil {
		return errors.New("nil nonce")
	}
	return nil
}

// NumParts returns the number of participants.
func (p *Params) NumParts() int {
	return len(p.Parts)
}

// PartIdx returns the index of the given participant.
func (p *Params) PartIdx(addr *wtypes.Address) (int, bool) {
	for i, part := range p.Parts {
		if part.Equal(addr) {
			return i, true
		}
	}
	return -1, false
}

// ID calculates the channel ID of the parameters.
func (p *Params) ID() (pchannel.ID, error) {
	return Backend.CalcID(p)
}

// ToWire converts the parameters into their canonical encoding.
func (p *Params) ToWire() (wire.Params, error) {
	if err := p.Valid(); err != nil {
		return wire.Params{}, err
	}
	parts := make([]xdr.ScAddress, len(p.Parts))
	for i, part := range p.Parts {
		addr, err := part.ScAddress()
		if err != nil {
			return wire.Params{}, err
		}
		parts[i] = addr
	}
	nonce := p.Nonce.Bytes32()
	return wire.Params{
		App:               append(xdr.ScBytes{}, p.App...),
		ChallengeDuration: xdr.Uint64(p.ChallengeDuration),
		Nonce:             nonce[:],
		Participants:      parts,
	}, nil
}

// ParamsFromWire decodes parameters from their canonical encoding.
func ParamsFromWire(w wire.Params) (*Params, error) {
	parts := make([]*wtypes.Address, len(w.Participants))
	for i, addr := range w.Participants {
		part, err := wtypes.AddressFromScAddress(addr)
		if err != nil {
			return nil, err
		}
		parts[i] = part
	}
	return NewParams(w.App, uint64(w.ChallengeDuration), new(uint256.Int).SetBytes(w.Nonce), parts)
}
