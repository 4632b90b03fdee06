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

package event

import (
	"errors"

	"perun.network/go-perun/log"
	"polycry.pt/poly-go/sync"
)

// DefaultBufferSize is the number of events a subscription buffers before it is dropped.
const DefaultBufferSize = 1024

// ErrSubscriptionOverflow ends a subscription that did not keep up with the published events.
var ErrSubscriptionOverflow = errors.New("subscription overflowed")

// Bus delivers published events to all current subscribers. Publishing never blocks: a
// subscriber whose buffer is full is closed with ErrSubscriptionOverflow.
type Bus struct {
	mu      sync.Mutex
	bufSize int
	nextID  uint64
	subs    map[uint64]*Subscription
}

// Subscription receives the events published after it was created.
type Subscription struct {
	sync.Closer
	bus    *Bus
	id     uint64
	events chan Event
	err    error
}

// NewBus creates a bus whose subscriptions buffer bufSize events. A non-positive size selects
// DefaultBufferSize.
func NewBus(bufSize int) *Bus {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &Bus{
		bufSize: bufSize,
		subs:    make(map[uint64]*Subscription),
	}
}

// Publish delivers e to every subscriber. A nil bus discards the event.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subs {
		select {
		case s.events <- e:
		default:
			delete(b.subs, id)
			s.terminate(ErrSubscriptionOverflow)
		}
	}
}

// Subscribe registers a new subscription.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &Subscription{
		bus:    b,
		id:     b.nextID,
		events: make(chan Event, b.bufSize),
	}
	b.nextID++
	b.subs[s.id] = s
	return s
}

// Events returns the channel events are delivered on. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Err returns why the subscription ended. It must only be called after Events was closed and is
// nil if the subscription was closed by its owner.
func (s *Subscription) Err() error {
	return s.err
}

// Close ends the subscription.
func (s *Subscription) Close() error {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if _, ok := s.bus.subs[s.id]; !ok {
		return errors.New("subscription already closed")
	}
	delete(s.bus.subs, s.id)
	s.terminate(nil)
	return nil
}

func (s *Subscription) terminate(err error) {
	s.err = err
	close(s.events)
	if err := s.Closer.Close(); err != nil {
		log.WithField("subscription", s.id).Warnf("Closing subscription: %v", err)
	}
}
