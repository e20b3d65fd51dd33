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

package wire

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/meridian-ledger/go-meridian/cbor"
)

// Channel is a framed request/response connection to a single node. A
// channel serializes calls, so one in-flight request is allowed at a time
type Channel struct {
	conn  net.Conn
	mutex sync.Mutex
}

// Dial establishes a channel to the given TCP address
func Dial(address string, timeout time.Duration) (*Channel, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, err
	}
	return NewChannel(conn), nil
}

// NewChannel wraps an existing connection in a channel
func NewChannel(conn net.Conn) *Channel {
	return &Channel{
		conn: conn,
	}
}

// Call sends the message using the given transport method and waits for the
// node's response. A deadline on the provided context bounds the entire
// exchange
func (c *Channel) Call(ctx context.Context, method uint16, msg Message) (Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := cbor.Encode(msg)
	if err != nil {
		return nil, err
	}
	frame, err := NewFrame(method, data, false)
	if err != nil {
		return nil, err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.conn.SetDeadline(time.Time{}); err != nil {
			return nil, err
		}
	}
	if err := WriteFrame(c.conn, frame); err != nil {
		return nil, err
	}
	respFrame, err := ReadFrame(c.conn)
	if err != nil {
		return nil, err
	}
	if !respFrame.IsResponse() {
		return nil, fmt.Errorf("received frame that is not a response")
	}
	return MessageFromFrame(respFrame.Payload)
}

// Close shuts down the underlying connection
func (c *Channel) Close() error {
	return c.conn.Close()
}
