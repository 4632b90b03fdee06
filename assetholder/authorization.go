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

package assetholder

import (
	"fmt"

	"github.com/holiman/uint256"
	pchannel "perun.network/go-perun/channel"
	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/wallet"
	wtypes "perun.network/perun-adjudicator/wallet/types"
	"perun.network/perun-adjudicator/wire"
	"perun.network/perun-adjudicator/wire/scval"
)

// Authorization allows Receiver to withdraw Amount from Participant's holding in a settled
// channel. It must be signed by Participant.
type Authorization struct {
	ChannelID   pchannel.ID
	Participant *wtypes.Address
	Receiver    *wtypes.Address
	Amount      *uint256.Int
}

// ToWire converts the authorization into its canonical encoding.
func (a Authorization) ToWire() (wire.Authorization, error) {
	if a.Participant == nil || a.Receiver == nil || a.Amount == nil {
		return wire.Authorization{}, fmt.Errorf("incomplete authorization")
	}
	participant, err := a.Participant.ScAddress()
	if err != nil {
		return wire.Authorization{}, err
	}
	receiver, err := a.Receiver.ScAddress()
	if err != nil {
		return wire.Authorization{}, err
	}
	id := a.ChannelID
	return wire.Authorization{
		ChannelID:   id[:],
		Participant: participant,
		Receiver:    receiver,
		Amount:      scval.MakeUint256Parts(a.Amount),
	}, nil
}

// Encode returns the message the participant signs.
func (a Authorization) Encode() ([]byte, error) {
	w, err := a.ToWire()
	if err != nil {
		return nil, err
	}
	return w.MarshalBinary()
}

// Sign signs the authorization with the participant's account.
func (a Authorization) Sign(acc *wallet.Account) (pwallet.Sig, error) {
	msg, err := a.Encode()
	if err != nil {
		return nil, err
	}
	return acc.SignData(msg)
}

// Verify checks that sig is the participant's signature of the authorization.
func (a Authorization) Verify(sig pwallet.Sig) (bool, error) {
	msg, err := a.Encode()
	if err != nil {
		return false, err
	}
	return wallet.Backend.VerifySignature(msg, sig, a.Participant)
}
