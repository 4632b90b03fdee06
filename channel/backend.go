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
	"github.com/stellar/go/hash"
	pchannel "perun.network/go-perun/channel"
	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/wallet"
	wtypes "perun.network/perun-adjudicator/wallet/types"
)

type backend struct{}

// Backend derives identifiers from the canonical encodings and signs and verifies states.
var Backend = backend{}

// CalcID returns the channel ID, the hash of the encoded parameters.
func (b backend) CalcID(params *Params) (pchannel.ID, error) {
	wp, err := params.ToWire()
	if err != nil {
		return pchannel.ID{}, err
	}
	bytes, err := wp.MarshalBinary()
	if err != nil {
		return pchannel.ID{}, err
	}
	return hash.Hash(bytes), nil
}

// Sign signs the encoding of the state.
func (b backend) Sign(account *wallet.Account, state *State) (pwallet.Sig, error) {
	bytes, err := EncodeState(state)
	if err != nil {
		return nil, err
	}
	return account.SignData(bytes)
}

// Verify checks that sig is a signature of addr over the encoding of the state.
func (b backend) Verify(addr *wtypes.Address, state *State, sig pwallet.Sig) (bool, error) {
	bytes, err := EncodeState(state)
	if err != nil {
		return false, err
	}
	return wallet.Backend.VerifySignature(bytes, sig, addr)
}

// EncodeState returns the canonical encoding of the state, the message participants sign.
func EncodeState(state *State) ([]byte, error) {
	ws, err := state.ToWire()
	if err != nil {
		return nil, err
	}
	return ws.MarshalBinary()
}

// HashState returns the hash of the encoded state as stored in a dispute record.
func HashState(state *State) (pchannel.ID, error) {
	bytes, err := EncodeState(state)
	if err != nil {
		return pchannel.ID{}, err
	}
	return hash.Hash(bytes), nil
}

// FundingID returns the key of a participant's holding in a channel.
func FundingID(channelID pchannel.ID, participant *wtypes.Address) (pchannel.ID, error) {
	addr, err := participant.ScAddress()
	if err != nil {
		return pchannel.ID{}, err
	}
	enc, err := addr.MarshalBinary()
	if err != nil {
		return pchannel.ID{}, err
	}
	return hash.Hash(append(channelID[:], enc...)), nil
}
