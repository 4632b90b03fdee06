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
	"math"
	"time"
)

// Clock supplies the current time to the adjudicator.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func unixNow(c Clock) uint64 {
	now := c.Now().Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

// deadline returns now + duration seconds, saturating at the maximum timeout.
func deadline(now, duration uint64) uint64 {
	if duration > math.MaxUint64-now {
		return math.MaxUint64
	}
	return now + duration
}
