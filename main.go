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


package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	pchannel "perun.network/go-perun/channel"
	"perun.network/go-perun/log"
	plogrus "perun.network/go-perun/log/logrus"
	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/assetholder"
	"perun.network/perun-adjudicator/channel"
	"perun.network/perun-adjudicator/channel/types"
	"perun.network/perun-adjudicator/config"
	"perun.network/perun-adjudicator/event"
	"perun.network/perun-adjudicator/metrics"
	"perun.network/perun-adjudicator/payment"
	"perun.network/perun-adjudicator/wallet"
	wtypes "perun.network/perun-adjudicator/wallet/types"
)

// skewClock is the wall clock plus an offset the demo moves forward instead of sleeping through
// the challenge duration.
type skewClock struct {
	offset time.Duration
}

func (c *skewClock) Now() time.Time { return time.Now().Add(c.offset) }

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	lvl, err := cfg.Level()
	if err != nil {
		panic(err)
	}
	plogrus.Set(lvl, &logrus.TextFormatter{})

	adjKP, err := cfg.AdjudicatorKey()
	if err != nil {
		panic(err)
	}
	adjAcc, err := wallet.NewAccount(adjKP)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	clock := &skewClock{}
	bus := event.NewBus(event.DefaultBufferSize)
	m := metrics.NewWithRegistry(cfg.MetricsNamespace, prometheus.NewRegistry())
	bank := assetholder.NewBank()

	var contractID [types.HashLenXdr]byte
	rng.Read(contractID[:])
	asset := types.NewAsset(contractID)

	adj := channel.NewAdjudicator(adjAcc, channel.WithClock(clock), channel.WithBus(bus), channel.WithMetrics(m),
		channel.WithApp(payment.AppID, payment.App{}))
	holder := assetholder.New(asset, adjAcc.Address(),
		assetholder.WithPayer(bank), assetholder.WithBus(bus), assetholder.WithMetrics(m))
	if err := adj.Bind(holder); err != nil {
		panic(err)
	}

	w := wallet.NewEphemeralWallet()
	alice, err := w.AddNewAccount(rng)
	if err != nil {
		panic(err)
	}
	bob, err := w.AddNewAccount(rng)
	if err != nil {
		panic(err)
	}
	accs := []*wallet.Account{alice, bob}

	nonce := new(uint256.Int).SetUint64(rng.Uint64())
	params, err := channel.NewParams(payment.AppID, cfg.ChallengeDuration, nonce,
		[]*wtypes.Address{alice.Address(), bob.Address()})
	if err != nil {
		panic(err)
	}
	id, err := params.ID()
	if err != nil {
		panic(err)
	}
	log.WithField("channel", id).Info("Channel opened between Alice and Bob")

	sub, err := adj.Subscribe(ctx, id)
	if err != nil {
		panic(err)
	}
	go func() {
		for ev := sub.Next(); ev != nil; ev = sub.Next() {
			log.Infof("Adjudicator event: %T version %d", ev, ev.Version())
		}
	}()

	newState := func(version, mover, balA, balB uint64) *channel.State {
		return &channel.State{
			ID:       id,
			Version:  version,
			MoverIdx: mover,
			Outcome: channel.Allocation{
				Assets:   []types.Asset{asset},
				Balances: [][]*uint256.Int{{uint256.NewInt(balA), uint256.NewInt(balB)}},
			},
			AppData: []byte{},
		}
	}
	signAll := func(s *channel.State) []pwallet.Sig {
		sigs := make([]pwallet.Sig, len(accs))
		for i, acc := range accs {
			sig, err := channel.Backend.Sign(acc, s)
			if err != nil {
				panic(err)
			}
			sigs[i] = sig
		}
		return sigs
	}

	initial := newState(0, 0, 100, 100)
	funder := channel.NewFunder(holder)
	for i := range accs {
		if err := funder.Fund(ctx, params, initial, i); err != nil {
			panic(err)
		}
	}
	log.Info("Channel funded")

	// Bob registers an old state in his favor, Alice refutes with the latest one.
	v1 := newState(1, 0, 80, 120)
	if err := adj.Register(ctx, params, v1, signAll(v1)); err != nil {
		panic(err)
	}
	v2 := newState(2, 1, 130, 70)
	if err := adj.Refute(ctx, params, v1, timeoutOf(adj, id), v2, signAll(v2)); err != nil {
		panic(err)
	}

	// Alice pays Bob back on chain.
	v3 := newState(3, 0, 120, 80)
	sig, err := channel.Backend.Sign(alice, v3)
	if err != nil {
		panic(err)
	}
	if err := adj.Respond(ctx, params, v2, timeoutOf(adj, id), v3, sig); err != nil {
		panic(err)
	}

	timeout := timeoutOf(adj, id)
	clock.offset += time.Duration(cfg.ChallengeDuration+1) * time.Second
	if err := adj.ConcludeFromChallenge(ctx, params, v3, timeout); err != nil {
		panic(err)
	}

	for i, acc := range accs {
		amount := v3.Outcome.Balances[0][i]
		auth := assetholder.Authorization{
			ChannelID:   id,
			Participant: acc.Address(),
			Receiver:    acc.Address(),
			Amount:      amount.Clone(),
		}
		sig, err := auth.Sign(acc)
		if err != nil {
			panic(err)
		}
		if err := holder.Withdraw(ctx, auth, sig); err != nil {
			panic(err)
		}
		log.Infof("Participant %d withdrew %v", i, bank.Balance(asset, acc.Address()))
	}

	if err := sub.Close(); err != nil {
		log.Warnf("Closing subscription: %v", err)
	}
	log.Info("Channel settled")
}

func timeoutOf(adj *channel.Adjudicator, id pchannel.ID) uint64 {
	rec, ok := adj.Dispute(id)
	if !ok {
		panic("channel not registered")
	}
	return rec.Timeout
}
