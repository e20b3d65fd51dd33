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

// Package mocknode provides an in-process node speaking the framed wire
// protocol, for exercising the client against scripted responses in tests
package mocknode

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/meridian-ledger/go-meridian/cbor"
	"github.com/meridian-ledger/go-meridian/wire"
)

// Handler produces the response for a single decoded request
type Handler func(method uint16, msg wire.Message) (wire.Message, error)

// MockNode is a TCP listener that decodes request frames and answers them
// through the configured handler. Handler errors tear down the connection
type MockNode struct {
	listener net.Listener
	handler  Handler

	connMutex sync.Mutex
	conns     []net.Conn

	requestCount atomic.Uint64
	onceClose    sync.Once
	closeErr     error
	done         sync.WaitGroup
}

// Start begins listening on an ephemeral local port
func Start(handler Handler) (*MockNode, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	m := &MockNode{
		listener: listener,
		handler:  handler,
	}
	m.done.Add(1)
	go m.acceptLoop()
	return m, nil
}

// Addr returns the listen address in host:port form
func (m *MockNode) Addr() string {
	return m.listener.Addr().String()
}

// RequestCount returns the number of request frames served so far
func (m *MockNode) RequestCount() uint64 {
	return m.requestCount.Load()
}

// Close stops the listener, closes open connections, and waits for the
// serving goroutines to finish
func (m *MockNode) Close() error {
	m.onceClose.Do(func() {
		m.closeErr = m.listener.Close()
		m.connMutex.Lock()
		for _, conn := range m.conns {
			conn.Close()
		}
		m.connMutex.Unlock()
		m.done.Wait()
	})
	return m.closeErr
}

func (m *MockNode) acceptLoop() {
	defer m.done.Done()
	for {
		conn, err := m.listener.Accept()
		if err != nil {
			return
		}
		m.connMutex.Lock()
		m.conns = append(m.conns, conn)
		m.connMutex.Unlock()
		m.done.Add(1)
		go m.serveConn(conn)
	}
}

func (m *MockNode) serveConn(conn net.Conn) {
	defer m.done.Done()
	defer conn.Close()
	for {
		frame, err := wire.ReadFrame(conn)
		if err != nil {
			return
		}
		if !frame.IsRequest() {
			return
		}
		msg, err := wire.MessageFromFrame(frame.Payload)
		if err != nil {
			return
		}
		m.requestCount.Add(1)
		resp, err := m.handler(frame.GetMethod(), msg)
		if err != nil {
			return
		}
		if err := m.writeResponse(conn, frame.GetMethod(), resp); err != nil {
			return
		}
	}
}

func (m *MockNode) writeResponse(conn net.Conn, method uint16, resp wire.Message) error {
	data, err := cbor.Encode(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	respFrame, err := wire.NewFrame(method, data, true)
	if err != nil {
		return err
	}
	return wire.WriteFrame(conn, respFrame)
}
