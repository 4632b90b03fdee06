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

// Package assetholder implements the custody ledger of one asset. It holds the deposits of
// channel participants keyed by funding ID, accepts outcomes from exactly one adjudicator and
// pays out withdrawals authorized by the participants.
package assetholder

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	pchannel "perun.network/go-perun/channel"
	"perun.network/go-perun/log"
	pwallet "perun.network/go-perun/wallet"
	"polycry.pt/poly-go/sync"

	"perun.network/perun-adjudicator/channel"
	"perun.network/perun-adjudicator/channel/types"
	"perun.network/perun-adjudicator/event"
	"perun.network/perun-adjudicator/metrics"
	wtypes "perun.network/perun-adjudicator/wallet/types"
)

var (
	_ channel.AssetHolder = (*AssetHolder)(nil)
	_ channel.Depositor   = (*AssetHolder)(nil)
)

// AssetHolder is the ledger of one asset.
type AssetHolder struct {
	mu          sync.Mutex
	asset       types.Asset
	adjudicator *wtypes.Address
	payer       Payer
	bus         *event.Bus
	metrics     *metrics.Metrics
	holdings    *amountStore
	locked      *amountStore
	settled     *idSet
	log         log.Embedding
}

// Option configures an AssetHolder.
type Option func(*AssetHolder)

// WithPayer sets the Payer withdrawals are paid out with.
func WithPayer(p Payer) Option {
	return func(h *AssetHolder) { h.payer = p }
}

// WithBus sets the bus events are published on.
func WithBus(b *event.Bus) Option {
	return func(h *AssetHolder) { h.bus = b }
}

// WithMetrics sets the metrics operations are recorded in.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *AssetHolder) { h.metrics = m }
}

// New returns an AssetHolder for asset that only accepts outcomes from adjudicator.
func New(asset types.Asset, adjudicator *wtypes.Address, opts ...Option) *AssetHolder {
	h := &AssetHolder{
		asset:       asset,
		adjudicator: adjudicator,
		holdings:    newAmountStore(),
		locked:      newAmountStore(),
		settled:     newIDSet(),
		log:         log.MakeEmbedding(log.Default().WithField("asset", asset.String())),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.payer == nil {
		h.payer = NewBank()
	}
	return h
}

// Asset returns the asset held.
func (h *AssetHolder) Asset() types.Asset {
	return h.asset
}

// Adjudicator returns the address whose signature outcomes must carry.
func (h *AssetHolder) Adjudicator() *wtypes.Address {
	return h.adjudicator
}

// Payer returns the Payer withdrawals are paid out with.
func (h *AssetHolder) Payer() Payer {
	return h.payer
}

// Deposit credits amount to the holding of fundingID. value is the value transferred with the
// call and must equal amount.
func (h *AssetHolder) Deposit(ctx context.Context, fundingID pchannel.ID, amount, value *uint256.Int) (err error) {
	defer h.observe("deposit", &err)
	if amount == nil || value == nil || !value.Eq(amount) {
		return fmt.Errorf("%w: value %v for amount %v", ErrInsufficientValue, value, amount)
	}
	if !h.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer h.mu.Unlock()

	holding, overflow := new(uint256.Int).AddOverflow(h.holdings.get(fundingID[:]), amount)
	if overflow {
		return ErrBalanceOverflow
	}
	h.holdings.set(fundingID[:], holding)

	h.metrics.AddDeposited(h.asset.String(), amount)
	h.log.Log().WithField("funding", fundingID).Debugf("Deposited %v, holding %v", amount, holding)
	h.bus.Publish(event.DepositedEvent{Asset: h.asset, FundingID: fundingID, Amount: amount.Clone()})
	return nil
}

// SetOutcome settles a channel. The outcome must carry the signature of the bound adjudicator
// and is accepted only once per channel. If the holdings of the participants cover the outcome,
// every holding is replaced by the participant's balance and the sub-allocations are locked.
// Otherwise the holdings are left as deposited so that every participant can reclaim their
// deposit.
func (h *AssetHolder) SetOutcome(ctx context.Context, outcome channel.Outcome, sig pwallet.Sig) (err error) {
	defer h.observe("set_outcome", &err)
	if !outcome.Asset.Equal(h.asset) {
		return fmt.Errorf("%w: outcome for asset %v", ErrInvalidOutcome, outcome.Asset)
	}
	if err := outcome.Valid(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutcome, err)
	}
	if ok, err := outcome.Verify(sig, h.adjudicator); err != nil || !ok {
		return fmt.Errorf("%w: outcome not signed by the adjudicator", ErrUnauthorized)
	}
	channelID, parts, balances := outcome.ChannelID, outcome.Parts, outcome.Balances
	subAllocIDs, subAllocBalances := outcome.SubAllocIDs, outcome.SubAllocBalances
	if !h.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer h.mu.Unlock()

	if h.settled.has(channelID) {
		return ErrAlreadySettled
	}
	fids := make([]pchannel.ID, len(parts))
	held, owed := new(uint256.Int), new(uint256.Int)
	underfunded := false
	for i, part := range parts {
		if fids[i], err = channel.FundingID(channelID, part); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOutcome, err)
		}
		if _, overflow := held.AddOverflow(held, h.holdings.get(fids[i][:])); overflow {
			return ErrBalanceOverflow
		}
		if _, overflow := owed.AddOverflow(owed, balances[i]); overflow {
			underfunded = true
		}
	}
	for _, bal := range subAllocBalances {
		if _, overflow := owed.AddOverflow(owed, bal); overflow {
			underfunded = true
		}
	}
	underfunded = underfunded || owed.Gt(held)

	l := h.log.Log().WithField("channel", channelID)
	if underfunded {
		l.Infof("Outcome of %v exceeds holdings of %v, keeping deposits", owed, held)
	} else {
		for i, fid := range fids {
			h.holdings.set(fid[:], balances[i])
		}
		for i, subID := range subAllocIDs {
			h.locked.set(lockedKey(channelID, subID), subAllocBalances[i])
		}
		l.Info("Outcome set")
	}
	h.settled.add(channelID)
	h.bus.Publish(event.OutcomeSetEvent{Asset: h.asset, ID: channelID})
	return nil
}

// Withdraw pays auth.Amount from the participant's holding to auth.Receiver. The channel must be
// settled and sig must be the participant's signature of auth.
func (h *AssetHolder) Withdraw(ctx context.Context, auth Authorization, sig pwallet.Sig) (err error) {
	defer h.observe("withdraw", &err)
	ok, err := auth.Verify(sig)
	if err != nil || !ok {
		return fmt.Errorf("%w: invalid signature", ErrUnauthorized)
	}
	fid, err := channel.FundingID(auth.ChannelID, auth.Participant)
	if err != nil {
		return err
	}
	if !h.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer h.mu.Unlock()

	if !h.settled.has(auth.ChannelID) {
		return ErrNotSettled
	}
	holding := h.holdings.get(fid[:])
	if holding.Lt(auth.Amount) {
		return fmt.Errorf("%w: holding %v, requested %v", ErrInsufficientFunds, holding, auth.Amount)
	}
	if err := h.payer.Pay(ctx, h.asset, auth.Receiver, auth.Amount); err != nil {
		return fmt.Errorf("paying out: %w", err)
	}
	h.holdings.set(fid[:], holding.Sub(holding, auth.Amount))

	h.metrics.AddWithdrawn(h.asset.String(), auth.Amount)
	h.log.Log().WithField("channel", auth.ChannelID).Debugf("%v withdrew %v to %v", auth.Participant, auth.Amount, auth.Receiver)
	h.bus.Publish(event.WithdrawnEvent{
		Asset:       h.asset,
		ID:          auth.ChannelID,
		Participant: auth.Participant,
		Receiver:    auth.Receiver,
		Amount:      auth.Amount.Clone(),
	})
	return nil
}

// Holdings returns the amount held for fundingID.
func (h *AssetHolder) Holdings(fundingID pchannel.ID) *uint256.Int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.holdings.get(fundingID[:])
}

// Settled reports whether the outcome of the channel was set.
func (h *AssetHolder) Settled(channelID pchannel.ID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.settled.has(channelID)
}

// Locked returns the amount locked for sub-channel subID of the channel.
func (h *AssetHolder) Locked(channelID, subID pchannel.ID) *uint256.Int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.locked.get(lockedKey(channelID, subID))
}

func (h *AssetHolder) observe(op string, err *error) {
	h.metrics.ObserveOperation(metrics.ComponentAssetHolder, op, *err)
	if *err != nil {
		h.log.Log().WithField("op", op).Debugf("Rejected: %v", *err)
	}
}
