// Copyright 2025 Meridian Ledger Foundation
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

package execution

import "time"

const (
	DefaultMaxAttempts = 10
	DefaultMinBackoff  = 250 * time.Millisecond
	DefaultMaxBackoff  = 8000 * time.Millisecond
)

// Backoff is the retry delay policy: strict doubling from Min, capped at
// Max
type Backoff struct {
	Min time.Duration
	Max time.Duration
}

// DefaultBackoff returns the default retry delay policy
func DefaultBackoff() Backoff {
	return Backoff{
		Min: DefaultMinBackoff,
		Max: DefaultMaxBackoff,
	}
}

// DelayFor returns the delay before the given 1-based attempt. The first
// attempt has no pre-wait; attempt 2 waits Min; each further attempt
// doubles until the delay reaches Max, where it stays
func (b Backoff) DelayFor(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	delay := b.Min
	for i := 2; i < attempt; i++ {
		delay *= 2
		if delay >= b.Max {
			return b.Max
		}
	}
	if delay > b.Max {
		return b.Max
	}
	return delay
}
