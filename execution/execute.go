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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/meridian-ledger/go-meridian/network"
	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

// Options carries the execution configuration derived from the client
type Options struct {
	Network     *network.Network
	MaxAttempts int
	Backoff     Backoff
	Logger      *slog.Logger
}

// Execute drives an executable through up to MaxAttempts tries, backing off
// between attempts and failing over to a different node on transport
// failure. It returns the executable's mapped success value on a FINISHED
// outcome and a typed error on any terminal failure
func Execute(ctx context.Context, opts Options, exe Executable) (any, error) {
	if opts.Network == nil {
		return nil, errors.New("no network provided")
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	backoff := opts.Backoff
	if backoff.Min <= 0 || backoff.Max <= 0 {
		backoff = DefaultBackoff()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bound := exe.NodeAccountIDs()
	if len(bound) == 0 {
		return nil, errors.New("executable has no node bindings")
	}
	var lastErr error
	var lastNode types.AccountID
	var boundCursor int
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if delay := backoff.DelayFor(attempt); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, &MaxAttemptsError{
					Attempts:      attempt - 1,
					LastNode:      lastNode,
					LastErr:       ctx.Err(),
					TransactionID: exe.TransactionID(),
				}
			case <-timer.C:
			}
		}
		node, err := resolveNode(opts.Network, bound, attempt, &boundCursor, lastNode)
		if err != nil {
			return nil, err
		}
		logger.Debug("executing request",
			"transaction_id", exe.TransactionID().String(),
			"node", node.AccountID().String(),
			"attempt", attempt,
		)
		req, err := exe.RequestFor(node.AccountID())
		if err != nil {
			// A frozen request with no body for the resolved node is a
			// configuration problem, not a transport failure
			return nil, fmt.Errorf(
				"build request for node %s: %w",
				node.AccountID(),
				err,
			)
		}
		resp, err := callNode(ctx, node, exe.Method(), req)
		if err != nil {
			// Transport-level failure: record it and fail over to a
			// different node on the next attempt
			lastErr = err
			lastNode = node.AccountID()
			logger.Debug("request attempt failed",
				"transaction_id", exe.TransactionID().String(),
				"node", node.AccountID().String(),
				"attempt", attempt,
				"error", err,
			)
			if ctx.Err() != nil {
				return nil, &MaxAttemptsError{
					Attempts:      attempt,
					LastNode:      lastNode,
					LastErr:       lastErr,
					TransactionID: exe.TransactionID(),
				}
			}
			continue
		}
		state := exe.StateFor(resp)
		logger.Debug("request attempt complete",
			"transaction_id", exe.TransactionID().String(),
			"node", node.AccountID().String(),
			"attempt", attempt,
			"state", state.String(),
		)
		switch state {
		case StateFinished:
			return exe.ResultFor(resp, node.AccountID())
		case StateError:
			return nil, exe.ErrorFor(resp, node.AccountID())
		case StateExpired:
			return nil, &ExpiredError{
				TransactionID: exe.TransactionID(),
				NodeAccountID: node.AccountID(),
			}
		case StateRetry:
			lastErr = exe.ErrorFor(resp, node.AccountID())
			lastNode = node.AccountID()
		}
	}
	return nil, &MaxAttemptsError{
		Attempts:      maxAttempts,
		LastNode:      lastNode,
		LastErr:       lastErr,
		TransactionID: exe.TransactionID(),
	}
}

// resolveNode returns the target node for an attempt. The first attempt
// uses the first node bound at freeze time; later attempts rotate through
// the bound node list, skipping the node that just failed when another
// binding remains. Only bound nodes are ever selected, since the request
// carries a body for those nodes alone
func resolveNode(
	net *network.Network,
	bound []types.AccountID,
	attempt int,
	boundCursor *int,
	lastNode types.AccountID,
) (*network.Node, error) {
	target := bound[0]
	if attempt > 1 && len(bound) > 1 {
		target = bound[*boundCursor%len(bound)]
		*boundCursor++
		if target == lastNode {
			target = bound[*boundCursor%len(bound)]
			*boundCursor++
		}
	}
	node, ok := net.NodeForAccountID(target)
	if !ok {
		return nil, fmt.Errorf(
			"bound node %s is not in the network",
			target,
		)
	}
	return node, nil
}

// callNode performs the transport exchange for a single attempt. Any error
// returned here is treated as a transport-level failure by the engine
func callNode(
	ctx context.Context,
	node *network.Node,
	method uint16,
	req wire.Message,
) (wire.Message, error) {
	channel, err := node.Channel()
	if err != nil {
		return nil, err
	}
	resp, err := channel.Call(ctx, method, req)
	if err != nil {
		// The channel may be desynchronized after a failed exchange, so
		// release it and re-dial on next use
		_ = node.Close()
		return nil, err
	}
	return resp, nil
}
