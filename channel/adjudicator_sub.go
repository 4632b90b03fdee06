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
	"errors"

	pchannel "perun.network/go-perun/channel"
	"perun.network/go-perun/log"
	pkgsync "polycry.pt/poly-go/sync"

	"perun.network/perun-adjudicator/event"
)

var _ pchannel.AdjudicatorSubscription = (*AdjEventSub)(nil)

// AdjEventSub implements the go-perun AdjudicatorSubscription for one channel. It translates the
// Stored and Payout events of the Adjudicator into RegisteredEvent and ConcludedEvent.
type AdjEventSub struct {
	cid    pchannel.ID
	sub    *event.Subscription
	events chan pchannel.AdjudicatorEvent
	err    error
	done   chan struct{}
	cancel context.CancelFunc
	closer *pkgsync.Closer
	log    log.Embedding
}

// NewAdjudicatorSub subscribes to the events of channel cid published on bus.
func NewAdjudicatorSub(ctx context.Context, cid pchannel.ID, bus *event.Bus) (*AdjEventSub, error) {
	if bus == nil {
		return nil, errors.New("nil event bus")
	}
	sub := &AdjEventSub{
		cid:    cid,
		sub:    bus.Subscribe(),
		events: make(chan pchannel.AdjudicatorEvent, event.DefaultBufferSize),
		done:   make(chan struct{}),
		closer: new(pkgsync.Closer),
		log:    log.MakeEmbedding(log.Default().WithField("channel", cid)),
	}

	ctx, sub.cancel = context.WithCancel(ctx)
	go sub.run(ctx)
	return sub, nil
}

func (s *AdjEventSub) run(ctx context.Context) {
	s.log.Log().Debug("Listening for adjudicator events")
	finish := func(err error) {
		s.err = err
		close(s.done)
		close(s.events)
	}
	for {
		select {
		case e, ok := <-s.sub.Events():
			if !ok {
				finish(s.sub.Err())
				return
			}
			adjEvent := s.translate(e)
			if adjEvent == nil {
				continue
			}
			select {
			case s.events <- adjEvent:
			case <-ctx.Done():
				s.closeSub()
				finish(nil)
				return
			}
		case <-ctx.Done():
			s.closeSub()
			finish(nil)
			return
		}
	}
}

func (s *AdjEventSub) closeSub() {
	if err := s.sub.Close(); err != nil {
		s.log.Log().Warnf("Closing event subscription: %v", err)
	}
}

// translate maps an event of this channel to its go-perun counterpart. Events of other channels
// and ledger events yield nil.
func (s *AdjEventSub) translate(e event.Event) pchannel.AdjudicatorEvent {
	switch e := e.(type) {
	case event.StoredEvent:
		if e.ID != s.cid {
			return nil
		}
		s.log.Log().Debugf("Stored event received, version %d", e.Version)
		return &pchannel.RegisteredEvent{
			AdjudicatorEventBase: pchannel.AdjudicatorEventBase{
				IDV:      e.ID,
				TimeoutV: event.MakeTimeout(e.Timeout),
				VersionV: e.Version,
			},
		}
	case event.PayoutEvent:
		if e.ID != s.cid {
			return nil
		}
		s.log.Log().Debugf("Payout event received, version %d", e.Version)
		return &pchannel.ConcludedEvent{
			AdjudicatorEventBase: pchannel.AdjudicatorEventBase{
				IDV:      e.ID,
				TimeoutV: &pchannel.ElapsedTimeout{},
				VersionV: e.Version,
			},
		}
	default:
		return nil
	}
}
