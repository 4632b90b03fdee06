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

package test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	pchannel "perun.network/go-perun/channel"
	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/assetholder"
	"perun.network/perun-adjudicator/channel"
	"perun.network/perun-adjudicator/channel/types"
	"perun.network/perun-adjudicator/event"
	"perun.network/perun-adjudicator/wallet"
	wtest "perun.network/perun-adjudicator/wallet/test"
)

// StartTime is the unix time the manual clock of a Setup starts at.
const StartTime = 1_700_000_000

// Setup is an adjudicator with one bound asset holder per asset and a channel between freshly
// generated participants.
type Setup struct {
	t        *testing.T
	Accounts []*wallet.Account
	Params   *channel.Params
	ID       pchannel.ID
	Assets   []types.Asset
	Clock    *ManualClock
	Bus      *event.Bus
	Bank     *assetholder.Bank
	Holders  []*assetholder.AssetHolder
	Adj      *channel.Adjudicator
}

// NewSetup creates a Setup with numParts participants and numAssets assets.
func NewSetup(t *testing.T, rng *rand.Rand, numParts, numAssets int, challengeDuration uint64, opts ...channel.AdjudicatorOption) *Setup {
	t.Helper()
	accs, parts := wtest.NewRandomAccounts(t, rng, numParts)
	params, err := channel.NewParams([]byte{}, challengeDuration, NewRandomNonce(rng), parts)
	require.NoError(t, err)
	id, err := params.ID()
	require.NoError(t, err)

	s := &Setup{
		t:        t,
		Accounts: accs,
		Params:   params,
		ID:       id,
		Assets:   NewRandomAssets(rng, numAssets),
		Clock:    NewManualClock(StartTime),
		Bus:      event.NewBus(event.DefaultBufferSize),
		Bank:     assetholder.NewBank(),
	}
	identity := wtest.NewRandomAccount(t, rng)
	opts = append([]channel.AdjudicatorOption{channel.WithClock(s.Clock), channel.WithBus(s.Bus)}, opts...)
	s.Adj = channel.NewAdjudicator(identity, opts...)
	for _, asset := range s.Assets {
		h := assetholder.New(asset, identity.Address(), assetholder.WithPayer(s.Bank), assetholder.WithBus(s.Bus))
		require.NoError(t, s.Adj.Bind(h))
		s.Holders = append(s.Holders, h)
	}
	return s
}

// NewState returns a state of the channel. bals[i][j] is the balance of asset i of participant j.
func (s *Setup) NewState(version, mover uint64, bals ...[]uint64) *channel.State {
	require.Len(s.t, bals, len(s.Assets))
	outcome := channel.Allocation{
		Assets:   append([]types.Asset(nil), s.Assets...),
		Balances: make([][]*uint256.Int, len(bals)),
	}
	for i, b := range bals {
		outcome.Balances[i] = Amounts(b...)
	}
	return &channel.State{
		ID:       s.ID,
		Version:  version,
		MoverIdx: mover,
		Outcome:  outcome,
		AppData:  []byte{},
	}
}

// Sign returns the signatures of all participants on state.
func (s *Setup) Sign(state *channel.State) []pwallet.Sig {
	sigs := make([]pwallet.Sig, len(s.Accounts))
	for i := range s.Accounts {
		sigs[i] = s.SignBy(i, state)
	}
	return sigs
}

// SignBy returns the signature of participant idx on state.
func (s *Setup) SignBy(idx int, state *channel.State) pwallet.Sig {
	sig, err := channel.Backend.Sign(s.Accounts[idx], state)
	require.NoError(s.t, err)
	return sig
}

// FundingID returns the funding ID of participant idx.
func (s *Setup) FundingID(idx int) pchannel.ID {
	fid, err := channel.FundingID(s.ID, s.Params.Parts[idx])
	require.NoError(s.t, err)
	return fid
}

// Deposit deposits amount of asset assetIdx for participant idx.
func (s *Setup) Deposit(idx, assetIdx int, amount uint64) {
	a := uint256.NewInt(amount)
	require.NoError(s.t, s.Holders[assetIdx].Deposit(context.Background(), s.FundingID(idx), a, a.Clone()))
}

// Holding returns the holding of participant idx in asset assetIdx.
func (s *Setup) Holding(idx, assetIdx int) uint64 {
	return s.Holders[assetIdx].Holdings(s.FundingID(idx)).Uint64()
}

// Timeout returns the timeout of the channel's dispute record.
func (s *Setup) Timeout() uint64 {
	rec, ok := s.Adj.Dispute(s.ID)
	require.True(s.t, ok, "channel not registered")
	return rec.Timeout
}

// Withdraw withdraws amount of asset assetIdx of participant idx to their own address.
func (s *Setup) Withdraw(idx, assetIdx int, amount uint64) error {
	auth := assetholder.Authorization{
		ChannelID:   s.ID,
		Participant: s.Params.Parts[idx],
		Receiver:    s.Params.Parts[idx],
		Amount:      uint256.NewInt(amount),
	}
	sig, err := auth.Sign(s.Accounts[idx])
	require.NoError(s.t, err)
	return s.Holders[assetIdx].Withdraw(context.Background(), auth, sig)
}

// Paid returns the amount of asset assetIdx paid out to participant idx.
func (s *Setup) Paid(idx, assetIdx int) uint64 {
	return s.Bank.Balance(s.Assets[assetIdx], s.Params.Parts[idx]).Uint64()
}
