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

// App validates single-step transitions of channels that run application logic. Apps are
// registered with the Adjudicator under the App bytes of the channel parameters. Channels without
// a registered app accept every correctly signed transition.
type App interface {
	// ValidTransition checks that the participant at moverIdx may advance from to to.
	ValidTransition(params *Params, from, to *State, moverIdx uint64) error
}

// AppFunc adapts a function to the App interface.
type AppFunc func(params *Params, from, to *State, moverIdx uint64) error

// ValidTransition calls f.
func (f AppFunc) ValidTransition(params *Params, from, to *State, moverIdx uint64) error {
	return f(params, from, to, moverIdx)
}
