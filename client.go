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

// Package meridian implements a client for submitting signed transactions
// and queries to the nodes of a Meridian ledger network and retrieving
// their outcome.
//
// A Client binds an operator identity and retry configuration to a network
// topology. Requests are built with the transaction and query packages,
// frozen against a Client, signed, and executed; execution retries, backs
// off, and fails over across nodes until a definitive outcome is reached.
//
// This package is the main entry point into this library. The other
// packages can be used outside of this one, but it's not a primary design
// goal.
package meridian

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/meridian-ledger/go-meridian/execution"
	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/network"
	"github.com/meridian-ledger/go-meridian/types"
)

const (
	defaultMaxAttempts = 10
	defaultMinBackoff  = 250 * time.Millisecond
	defaultMaxBackoff  = 8000 * time.Millisecond
)

// Client holds the operator identity, retry configuration, and network
// topology used to execute requests. A single client may be shared by
// concurrent callers issuing independent requests
type Client struct {
	net         *network.Network
	maxAttempts int
	minBackoff  time.Duration
	maxBackoff  time.Duration
	logger      *slog.Logger

	operatorMutex     sync.Mutex
	operatorAccountID types.AccountID
	operatorKey       keys.PrivateKey

	onceClose sync.Once
}

// NewClient returns a client for the given network with the specified
// options
func NewClient(net *network.Network, options ...ClientOption) (*Client, error) {
	if net == nil {
		return nil, errors.New("no network provided")
	}
	c := &Client{
		net:         net,
		maxAttempts: defaultMaxAttempts,
		minBackoff:  defaultMinBackoff,
		maxBackoff:  defaultMaxBackoff,
	}
	// Apply provided options functions
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// ClientForName returns a client for the named network profile. An error is
// returned for an unknown profile name
func ClientForName(name string, options ...ClientOption) (*Client, error) {
	profile := NetworkByName(name)
	if profile.Name == "" {
		return nil, errors.New("unknown network name: " + name)
	}
	net, err := profile.Network()
	if err != nil {
		return nil, err
	}
	return NewClient(net, options...)
}

// SetOperator sets the operator identity used to pay for and sign requests
func (c *Client) SetOperator(accountID types.AccountID, key keys.PrivateKey) {
	c.operatorMutex.Lock()
	defer c.operatorMutex.Unlock()
	c.operatorAccountID = accountID
	c.operatorKey = key
}

// OperatorAccountID returns the operator account identifier
func (c *Client) OperatorAccountID() types.AccountID {
	c.operatorMutex.Lock()
	defer c.operatorMutex.Unlock()
	return c.operatorAccountID
}

// OperatorKey returns the operator private key
func (c *Client) OperatorKey() keys.PrivateKey {
	c.operatorMutex.Lock()
	defer c.operatorMutex.Unlock()
	return c.operatorKey
}

// Network returns the client's network topology
func (c *Client) Network() *network.Network {
	return c.net
}

// MaxAttempts returns the attempt budget for request execution
func (c *Client) MaxAttempts() int {
	return c.maxAttempts
}

// MinBackoff returns the minimum delay between retry attempts
func (c *Client) MinBackoff() time.Duration {
	return c.minBackoff
}

// MaxBackoff returns the maximum delay between retry attempts
func (c *Client) MaxBackoff() time.Duration {
	return c.maxBackoff
}

// Logger returns the client's logger
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// ExecutionOptions returns the execution engine configuration derived from
// the client's retry policy, network, and logger
func (c *Client) ExecutionOptions() execution.Options {
	return execution.Options{
		Network:     c.net,
		MaxAttempts: c.maxAttempts,
		Backoff: execution.Backoff{
			Min: c.minBackoff,
			Max: c.maxBackoff,
		},
		Logger: c.logger,
	}
}

// Close releases the transport channels of all nodes in the client's
// network
func (c *Client) Close() error {
	var err error
	c.onceClose.Do(func() {
		err = c.net.Close()
	})
	return err
}
