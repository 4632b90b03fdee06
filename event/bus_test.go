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

package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	pchannel "perun.network/go-perun/channel"

	"perun.network/perun-adjudicator/event"
)

func TestBusDelivers(t *testing.T) {
	bus := event.NewBus(0)
	a, b := bus.Subscribe(), bus.Subscribe()

	e := event.StoredEvent{ID: pchannel.ID{1}, Version: 4, Timeout: 30}
	bus.Publish(e)

	require.Equal(t, e, <-a.Events())
	require.Equal(t, e, <-b.Events())

	require.NoError(t, a.Close())
	require.Error(t, a.Close())
	_, ok := <-a.Events()
	require.False(t, ok)
	require.NoError(t, a.Err())
	require.True(t, a.IsClosed())

	bus.Publish(event.PayoutEvent{ID: pchannel.ID{1}})
	require.Equal(t, event.EventTypePayout, (<-b.Events()).Type())
}

func TestBusOverflow(t *testing.T) {
	bus := event.NewBus(2)
	sub := bus.Subscribe()
	for i := 0; i < 3; i++ {
		bus.Publish(event.PayoutEvent{Version: uint64(i)})
	}

	var got []event.Event
	for e := range sub.Events() {
		got = append(got, e)
	}
	require.Len(t, got, 2)
	require.ErrorIs(t, sub.Err(), event.ErrSubscriptionOverflow)
	select {
	case <-sub.Closed():
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
}

func TestNilBusDiscards(t *testing.T) {
	var bus *event.Bus
	require.NotPanics(t, func() { bus.Publish(event.PayoutEvent{}) })
}

func TestMakeTimeout(t *testing.T) {
	timeout, ok := event.MakeTimeout(1700000000).(*pchannel.TimeTimeout)
	require.True(t, ok)
	require.Equal(t, int64(1700000000), timeout.Unix())
	require.Equal(t, 30*time.Second, event.MakeTime(30))
}
