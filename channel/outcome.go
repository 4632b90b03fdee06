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
	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/channel/types"
	"perun.network/perun-adjudicator/wallet"
	wtypes "perun.network/perun-adjudicator/wallet/types"
	"perun.network/perun-adjudicator/wire"
)

// Outcome is what the Adjudicator pushes into the asset holder of one asset when a channel
// concludes. Asset holders only accept it with the signature of the adjudicator they are bound to.
type Outcome struct {
	Asset            types.Asset
	ChannelID        pchannel.ID
	Parts            []*wtypes.Address
	Balances         []*uint256.Int
	SubAllocIDs      []pchannel.ID
	SubAllocBalances []*uint256.Int
}

// Valid checks that the outcome is complete: one balance per participant and one amount per
// sub-allocation.
func (o Outcome) Valid() error {
	if len(o.Parts) != len(o.Balances) {
		return fmt.Errorf("%d balances for %d participants", len(o.Balances), len(o.Parts))
	}
	if len(o.SubAllocIDs) != len(o.SubAllocBalances) {
		return fmt.Errorf("%d amounts for %d sub-allocations", len(o.SubAllocBalances), len(o.SubAllocIDs))
	}
	for i, p := range o.Parts {
		if p == nil || o.Balances[i] == nil {
			return fmt.Errorf("missing participant or balance %d", i)
		}
	}
	return checkAmounts(o.SubAllocBalances)
}

// ToWire converts the outcome into its canonical encoding.
func (o Outcome) ToWire() (wire.Outcome, error) {
	if err := o.Valid(); err != nil {
		return wire.Outcome{}, err
	}
	asset, err := o.Asset.MakeScAddress()
	if err != nil {
		return wire.Outcome{}, err
	}
	parts := make([]xdr.ScAddress, len(o.Parts))
	for i, p := range o.Parts {
		if parts[i], err = p.ScAddress(); err != nil {
			return wire.Outcome{}, err
		}
	}
	subIDs := make([]xdr.ScBytes, len(o.SubAllocIDs))
	for i := range o.SubAllocIDs {
		subIDs[i] = o.SubAllocIDs[i][:]
	}
	id := o.ChannelID
	return wire.Outcome{
		Asset:            asset,
		ChannelID:        id[:],
		Participants:     parts,
		Balances:         makeAmounts(o.Balances),
		SubAllocIDs:      subIDs,
		SubAllocBalances: makeAmounts(o.SubAllocBalances),
	}, nil
}

// Encode returns the message the adjudicator signs.
func (o Outcome) Encode() ([]byte, error) {
	w, err := o.ToWire()
	if err != nil {
		return nil, err
	}
	return w.MarshalBinary()
}

// Sign signs the outcome with the adjudicator's account.
func (o Outcome) Sign(acc *wallet.Account) (pwallet.Sig, error) {
	msg, err := o.Encode()
	if err != nil {
		return nil, err
	}
	return acc.SignData(msg)
}

// Verify checks that sig is a signature of signer over the outcome.
func (o Outcome) Verify(sig pwallet.Sig, signer *wtypes.Address) (bool, error) {
	if signer == nil {
		return false, errors.New("nil signer")
	}
	msg, err := o.Encode()
	if err != nil {
		return false, err
	}
	return wallet.Backend.VerifySignature(msg, sig, signer)
}
