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
	pchannel "perun.network/go-perun/channel"
)

// Next returns the next event of the channel. It returns nil once the subscription is closed or
// failed.
func (s *AdjEventSub) Next() pchannel.AdjudicatorEvent {
	if s.closer.IsClosed() {
		return nil
	}
	select {
	case ev, ok := <-s.events:
		if !ok {
			return nil
		}
		return ev
	case <-s.closer.Closed():
		return nil
	}
}

// Close closes the subscription.
func (s *AdjEventSub) Close() error {
	if err := s.closer.Close(); err != nil {
		return err
	}
	s.cancel()
	return nil
}

// Err returns the error that ended the subscription. It is nil if the subscription was closed
// by its owner.
func (s *AdjEventSub) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}
