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
	"context"
	"fmt"

	pchannel "perun.network/go-perun/channel"
	"perun.network/go-perun/log"
	pwallet "perun.network/go-perun/wallet"
	"polycry.pt/poly-go/sync"

	"perun.network/perun-adjudicator/channel/types"
	"perun.network/perun-adjudicator/event"
	"perun.network/perun-adjudicator/metrics"
	"perun.network/perun-adjudicator/wallet"
	wtypes "perun.network/perun-adjudicator/wallet/types"
)

// AssetHolder is the part of an asset holder the Adjudicator pushes outcomes into.
type AssetHolder interface {
	Asset() types.Asset
	// Adjudicator returns the address whose signature SetOutcome requires.
	Adjudicator() *wtypes.Address
	Settled(channelID pchannel.ID) bool
	SetOutcome(ctx context.Context, outcome Outcome, sig pwallet.Sig) error
}

// Adjudicator resolves channel disputes. It keeps at most one dispute record per channel, lets
// newer states replace it during the challenge window and finally pushes the outcome of the
// surviving state into the bound asset holders. All operations are serialized.
type Adjudicator struct {
	mu       sync.Mutex
	account  *wallet.Account
	clock    Clock
	bus      *event.Bus
	metrics  *metrics.Metrics
	apps     map[string]App
	holders  map[types.AssetMapKey]AssetHolder
	records  *recordStore
	log      log.Embedding
}

// AdjudicatorOption configures an Adjudicator.
type AdjudicatorOption func(*Adjudicator)

// WithClock sets the clock deadlines are computed and checked with.
func WithClock(c Clock) AdjudicatorOption {
	return func(a *Adjudicator) { a.clock = c }
}

// WithBus sets the bus events are published on.
func WithBus(b *event.Bus) AdjudicatorOption {
	return func(a *Adjudicator) { a.bus = b }
}

// WithMetrics sets the metrics operations are recorded in.
func WithMetrics(m *metrics.Metrics) AdjudicatorOption {
	return func(a *Adjudicator) { a.metrics = m }
}

// WithApp registers the transition validator for channels with the given app.
func WithApp(appID []byte, app App) AdjudicatorOption {
	return func(a *Adjudicator) { a.apps[string(appID)] = app }
}

// NewAdjudicator returns a new Adjudicator that signs outcomes with account. Asset holders must be
// bound to the account's address.
func NewAdjudicator(account *wallet.Account, opts ...AdjudicatorOption) *Adjudicator {
	a := &Adjudicator{
		account:  account,
		clock:    SystemClock{},
		apps:     make(map[string]App),
		holders:  make(map[types.AssetMapKey]AssetHolder),
		records:  newRecordStore(),
		log:      log.MakeEmbedding(log.Default()),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.bus == nil {
		a.bus = event.NewBus(event.DefaultBufferSize)
	}
	return a
}

// Identity returns the address asset holders must be bound to.
func (a *Adjudicator) Identity() *wtypes.Address {
	return a.account.Address()
}

// Bus returns the bus the Adjudicator publishes on.
func (a *Adjudicator) Bus() *event.Bus {
	return a.bus
}

// Bind registers the asset holder responsible for its asset. There can only be one holder per
// asset and it must be bound to the Adjudicator's identity.
func (a *Adjudicator) Bind(holder AssetHolder) error {
	if !a.Identity().Equal(holder.Adjudicator()) {
		return fmt.Errorf("%w: holder of %v", ErrHolderMismatch, holder.Asset())
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	key := holder.Asset().MapKey()
	if _, ok := a.holders[key]; ok {
		return fmt.Errorf("asset holder for %v already bound", holder.Asset())
	}
	a.holders[key] = holder
	return nil
}

// Register starts a dispute with a state signed by all participants.
func (a *Adjudicator) Register(ctx context.Context, params *Params, state *State, sigs []pwallet.Sig) (err error) {
	defer a.observe("register", &err)
	if !a.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer a.mu.Unlock()

	id, err := checkState(params, state)
	if err != nil {
		return err
	}
	rec, ok, err := a.records.get(id)
	if err != nil {
		return err
	}
	if ok {
		if rec.Concluded {
			return ErrChannelConcluded
		}
		return ErrAlreadyRegistered
	}
	if err := verifyAll(params, state, sigs); err != nil {
		return err
	}
	return a.store(params, id, state)
}

// Refute replaces the registered state with a newer one signed by all participants.
func (a *Adjudicator) Refute(ctx context.Context, params *Params, oldState *State, oldTimeout uint64, newState *State, sigs []pwallet.Sig) (err error) {
	defer a.observe("refute", &err)
	if !a.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer a.mu.Unlock()

	id, err := a.checkChallenge(params, oldState, oldTimeout, newState)
	if err != nil {
		return err
	}
	if newState.Version <= oldState.Version {
		return fmt.Errorf("%w: %d <= %d", ErrVersionNotIncreased, newState.Version, oldState.Version)
	}
	if err := verifyAll(params, newState, sigs); err != nil {
		return err
	}
	return a.store(params, id, newState)
}

// Respond advances the registered state by exactly one version. Only the participant following
// the mover of the registered state has to sign.
func (a *Adjudicator) Respond(ctx context.Context, params *Params, oldState *State, oldTimeout uint64, newState *State, sig pwallet.Sig) (err error) {
	defer a.observe("respond", &err)
	if !a.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer a.mu.Unlock()

	id, err := a.checkChallenge(params, oldState, oldTimeout, newState)
	if err != nil {
		return err
	}
	if newState.Version != oldState.Version+1 {
		return fmt.Errorf("%w: got %d after %d", ErrVersionMismatch, newState.Version, oldState.Version)
	}
	mover := (oldState.MoverIdx + 1) % uint64(params.NumParts())
	if newState.MoverIdx != mover {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongMover, newState.MoverIdx, mover)
	}
	ok, err := Backend.Verify(params.Parts[mover], newState, sig)
	if err != nil || !ok {
		return fmt.Errorf("%w: mover %d", ErrSignatureVerificationFailed, mover)
	}
	if app, found := a.apps[string(params.App)]; found {
		if err := app.ValidTransition(params, oldState, newState, mover); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
	}
	return a.store(params, id, newState)
}

// RegisterFinalState concludes a channel immediately with a final state signed by all
// participants.
func (a *Adjudicator) RegisterFinalState(ctx context.Context, params *Params, state *State, sigs []pwallet.Sig) (err error) {
	defer a.observe("register_final", &err)
	if !a.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer a.mu.Unlock()

	id, err := checkState(params, state)
	if err != nil {
		return err
	}
	if !state.IsFinal {
		return ErrNotFinal
	}
	rec, ok, err := a.records.get(id)
	if err != nil {
		return err
	}
	if ok {
		if rec.Concluded {
			return ErrChannelConcluded
		}
		if state.Version < rec.Version {
			return fmt.Errorf("%w: %d < %d", ErrVersionNotIncreased, state.Version, rec.Version)
		}
	}
	if err := verifyAll(params, state, sigs); err != nil {
		return err
	}
	return a.conclude(ctx, params, id, state, unixNow(a.clock))
}

// ConcludeFromChallenge concludes a channel with its registered state once the challenge
// timeout has passed.
func (a *Adjudicator) ConcludeFromChallenge(ctx context.Context, params *Params, storedState *State, storedTimeout uint64) (err error) {
	defer a.observe("conclude", &err)
	if !a.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer a.mu.Unlock()

	id, err := checkState(params, storedState)
	if err != nil {
		return err
	}
	if _, err := a.matchRecord(id, storedState, storedTimeout); err != nil {
		return err
	}
	if now := unixNow(a.clock); now < storedTimeout {
		return fmt.Errorf("%w: %d seconds left", ErrTimeoutNotPassed, storedTimeout-now)
	}
	return a.conclude(ctx, params, id, storedState, storedTimeout)
}

// Dispute returns the record of the given channel.
func (a *Adjudicator) Dispute(id pchannel.ID) (DisputeRecord, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok, err := a.records.get(id)
	if err != nil {
		a.log.Log().WithField("channel", id).Errorf("Reading dispute record: %v", err)
		return DisputeRecord{}, false
	}
	return rec, ok
}

// Disputes returns the IDs of all channels the Adjudicator has a record for.
func (a *Adjudicator) Disputes() []pchannel.ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.records.ids()
}

// Subscribe returns a subscription on the adjudicator events of the given channel.
func (a *Adjudicator) Subscribe(ctx context.Context, id pchannel.ID) (*AdjEventSub, error) {
	return NewAdjudicatorSub(ctx, id, a.bus)
}

// checkChallenge runs the checks shared by Refute and Respond and returns the channel ID.
func (a *Adjudicator) checkChallenge(params *Params, oldState *State, oldTimeout uint64, newState *State) (pchannel.ID, error) {
	id, err := checkState(params, oldState)
	if err != nil {
		return id, err
	}
	if _, err := checkState(params, newState); err != nil {
		return id, err
	}
	if _, err := a.matchRecord(id, oldState, oldTimeout); err != nil {
		return id, err
	}
	if unixNow(a.clock) >= oldTimeout {
		return id, ErrTimeoutPassed
	}
	if oldState.IsFinal {
		return id, ErrFinalState
	}
	return id, nil
}

// matchRecord checks that state and timeout are the ones stored for the channel.
func (a *Adjudicator) matchRecord(id pchannel.ID, state *State, timeout uint64) (DisputeRecord, error) {
	rec, ok, err := a.records.get(id)
	if err != nil {
		return rec, err
	}
	if !ok {
		return rec, ErrNotRegistered
	}
	if rec.Concluded {
		return rec, ErrChannelConcluded
	}
	h, err := HashState(state)
	if err != nil {
		return rec, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if h != rec.StateHash || timeout != rec.Timeout {
		return rec, ErrStaleState
	}
	return rec, nil
}

// store records state as the channel's dispute and restarts the challenge window.
func (a *Adjudicator) store(params *Params, id pchannel.ID, state *State) error {
	h, err := HashState(state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	rec := DisputeRecord{
		StateHash: h,
		Timeout:   deadline(unixNow(a.clock), params.ChallengeDuration),
		Version:   state.Version,
	}
	if err := a.records.put(id, rec); err != nil {
		return err
	}
	a.metrics.SetDisputesOpen(a.records.openDisputes())
	a.log.Log().WithField("channel", id).Infof("Stored version %d, timeout %d", rec.Version, rec.Timeout)
	a.bus.Publish(event.StoredEvent{ID: id, Version: rec.Version, Timeout: rec.Timeout})
	return nil
}

// conclude pushes the outcome of state into the asset holders and marks the channel concluded.
func (a *Adjudicator) conclude(ctx context.Context, params *Params, id pchannel.ID, state *State, timeout uint64) error {
	if err := a.payout(ctx, params, id, state); err != nil {
		return err
	}
	h, err := HashState(state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	rec := DisputeRecord{StateHash: h, Timeout: timeout, Version: state.Version, Concluded: true}
	if err := a.records.put(id, rec); err != nil {
		return err
	}
	a.metrics.SetDisputesOpen(a.records.openDisputes())
	a.log.Log().WithField("channel", id).Infof("Concluded with version %d", state.Version)
	a.bus.Publish(event.PayoutEvent{ID: id, Version: state.Version})
	return nil
}

// payout sets the outcome in every asset holder. All holders are checked and all outcomes signed
// before the first holder is modified, and the pushes are not interrupted by ctx once started.
func (a *Adjudicator) payout(ctx context.Context, params *Params, id pchannel.ID, state *State) error {
	holders := make([]AssetHolder, len(state.Outcome.Assets))
	outcomes := make([]Outcome, len(state.Outcome.Assets))
	sigs := make([]pwallet.Sig, len(state.Outcome.Assets))
	for i, asset := range state.Outcome.Assets {
		h, ok := a.holders[asset.MapKey()]
		if !ok {
			return fmt.Errorf("%w: %v", ErrUnknownAsset, asset)
		}
		if h.Settled(id) {
			return fmt.Errorf("%w: asset %v", ErrAlreadySettled, asset)
		}
		subIDs, subBals := state.Outcome.SubAllocs(i)
		outcomes[i] = Outcome{
			Asset:            asset,
			ChannelID:        id,
			Parts:            params.Parts,
			Balances:         state.Outcome.Balances[i],
			SubAllocIDs:      subIDs,
			SubAllocBalances: subBals,
		}
		sig, err := outcomes[i].Sign(a.account)
		if err != nil {
			return fmt.Errorf("signing outcome for asset %v: %w", asset, err)
		}
		holders[i], sigs[i] = h, sig
	}
	ctx = context.WithoutCancel(ctx)
	for i, h := range holders {
		if err := h.SetOutcome(ctx, outcomes[i], sigs[i]); err != nil {
			return fmt.Errorf("setting outcome for asset %v: %w", h.Asset(), err)
		}
	}
	return nil
}

func (a *Adjudicator) observe(op string, err *error) {
	a.metrics.ObserveOperation(metrics.ComponentAdjudicator, op, *err)
	if *err != nil {
		a.log.Log().WithField("op", op).Debugf("Rejected: %v", *err)
	}
}

// checkState validates state against params and returns the channel ID.
func checkState(params *Params, state *State) (pchannel.ID, error) {
	if params == nil || state == nil {
		return pchannel.ID{}, fmt.Errorf("%w: missing params or state", ErrInvalidState)
	}
	if err := params.Valid(); err != nil {
		return pchannel.ID{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := state.ValidFor(params); err != nil {
		return pchannel.ID{}, err
	}
	return state.ID, nil
}

// verifyAll checks that sigs holds a valid signature of every participant, in order.
func verifyAll(params *Params, state *State, sigs []pwallet.Sig) error {
	if len(sigs) != params.NumParts() {
		return fmt.Errorf("%w: got %d signatures for %d participants", ErrSignatureVerificationFailed, len(sigs), params.NumParts())
	}
	for i, part := range params.Parts {
		ok, err := Backend.Verify(part, state, sigs[i])
		if err != nil || !ok {
			return fmt.Errorf("%w: participant %d", ErrSignatureVerificationFailed, i)
		}
	}
	return nil
}
