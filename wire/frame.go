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
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// Transport methods. Submit is the fire-and-forget acknowledgment shape
// used by transactions; Query returns the answer inline
const (
	MethodSubmit uint16 = 1
	MethodQuery  uint16 = 2

	FrameMethodResponseFlag uint16 = 0x8000
	FrameMaxPayloadLength          = 65535
)

type FrameHeader struct {
	Timestamp     uint32
	Method        uint16
	PayloadLength uint16
}

type Frame struct {
	FrameHeader
	Payload []byte
}

// NewFrame returns a frame for the given method and payload
func NewFrame(method uint16, payload []byte, isResponse bool) (*Frame, error) {
	if len(payload) > FrameMaxPayloadLength {
		return nil, fmt.Errorf(
			"frame payload too large: %d > %d",
			len(payload),
			FrameMaxPayloadLength,
		)
	}
	header := FrameHeader{
		Timestamp: uint32(time.Now().UnixNano() & 0xffffffff), // #nosec G115
		Method:    method,
	}
	if isResponse {
		header.Method = header.Method + FrameMethodResponseFlag
	}
	header.PayloadLength = uint16(len(payload)) // #nosec G115
	frame := &Frame{
		FrameHeader: header,
		Payload:     payload,
	}
	return frame, nil
}

func (h *FrameHeader) IsRequest() bool {
	return (h.Method & FrameMethodResponseFlag) == 0
}

func (h *FrameHeader) IsResponse() bool {
	return (h.Method & FrameMethodResponseFlag) > 0
}

func (h *FrameHeader) GetMethod() uint16 {
	if h.Method >= FrameMethodResponseFlag {
		return h.Method - FrameMethodResponseFlag
	}
	return h.Method
}

// WriteFrame writes a frame to the provided writer
func WriteFrame(w io.Writer, frame *Frame) error {
	if err := binary.Write(w, binary.BigEndian, frame.FrameHeader); err != nil {
		return err
	}
	if _, err := w.Write(frame.Payload); err != nil {
		return err
	}
	return nil
}

// ReadFrame reads a frame from the provided reader
func ReadFrame(r io.Reader) (*Frame, error) {
	frame := &Frame{}
	if err := binary.Read(r, binary.BigEndian, &frame.FrameHeader); err != nil {
		return nil, err
	}
	frame.Payload = make([]byte, frame.PayloadLength)
	if _, err := io.ReadFull(r, frame.Payload); err != nil {
		return nil, err
	}
	return frame, nil
}
