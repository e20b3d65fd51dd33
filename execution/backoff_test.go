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

import (
	"testing"
	"time"
)

func TestBackoffDefaultSequence(t *testing.T) {
	backoff := DefaultBackoff()
	expected := []time.Duration{
		0,
		250 * time.Millisecond,
		500 * time.Millisecond,
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
		8000 * time.Millisecond,
		8000 * time.Millisecond,
	}
	for i, expectedDelay := range expected {
		attempt := i + 1
		if delay := backoff.DelayFor(attempt); delay != expectedDelay {
			t.Fatalf(
				"unexpected delay for attempt %d: got %s, expected %s",
				attempt,
				delay,
				expectedDelay,
			)
		}
	}
}

func TestBackoffCapBelowDoubling(t *testing.T) {
	// A cap that is not a power-of-two multiple of the minimum still clamps
	backoff := Backoff{
		Min: 100 * time.Millisecond,
		Max: 300 * time.Millisecond,
	}
	expected := []time.Duration{
		0,
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		300 * time.Millisecond,
	}
	for i, expectedDelay := range expected {
		attempt := i + 1
		if delay := backoff.DelayFor(attempt); delay != expectedDelay {
			t.Fatalf(
				"unexpected delay for attempt %d: got %s, expected %s",
				attempt,
				delay,
				expectedDelay,
			)
		}
	}
}

func TestBackoffFirstAttemptImmediate(t *testing.T) {
	backoff := DefaultBackoff()
	if delay := backoff.DelayFor(0); delay != 0 {
		t.Fatalf("unexpected delay for attempt 0: %s", delay)
	}
	if delay := backoff.DelayFor(1); delay != 0 {
		t.Fatalf("unexpected delay for attempt 1: %s", delay)
	}
}
