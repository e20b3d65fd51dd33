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

// Package execution implements the generic request execution engine: the
// retry/backoff/failover loop shared by transactions and queries, the
// Executable contract they implement, and the error taxonomy surfaced to
// callers.
package execution

// State is the per-attempt classification of a response. It drives the
// engine's loop and is never persisted beyond one attempt
type State int

const (
	StateRetry State = iota
	StateFinished
	StateError
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateRetry:
		return "retry"
	case StateFinished:
		return "finished"
	case StateError:
		return "error"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}
