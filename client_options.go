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

package meridian

import (
	"log/slog"
	"time"

	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/types"
)

// ClientOption is a type that represents functions that modify the Client config
type ClientOption func(*Client)

// WithOperator specifies the operator identity used to pay for and sign
// requests
func WithOperator(accountID types.AccountID, key keys.PrivateKey) ClientOption {
	return func(c *Client) {
		c.operatorAccountID = accountID
		c.operatorKey = key
	}
}

// WithMaxAttempts specifies the attempt budget for request execution
func WithMaxAttempts(maxAttempts int) ClientOption {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
	}
}

// WithMinBackoff specifies the minimum delay between retry attempts
func WithMinBackoff(minBackoff time.Duration) ClientOption {
	return func(c *Client) {
		if minBackoff > 0 {
			c.minBackoff = minBackoff
		}
	}
}

// WithMaxBackoff specifies the maximum delay between retry attempts
func WithMaxBackoff(maxBackoff time.Duration) ClientOption {
	return func(c *Client) {
		if maxBackoff > 0 {
			c.maxBackoff = maxBackoff
		}
	}
}

// WithLogger specifies the logger to use. If none is provided,
// slog.Default() is used
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}
