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


// Package channel implements the dispute side of state channels. The Adjudicator runs the
// register, refute and respond challenge over signed channel states and pushes the final outcome
// into the AssetHolders bound to it. The Funder deposits a participant's initial balances and
// AdjEventSub exposes the dispute events of a channel through the go-perun subscription
// interfaces.
package channel
