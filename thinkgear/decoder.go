// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package thinkgear decodes the NeuroSky ThinkGear serial protocol used by
// TGAM1-based EEG headsets.
package thinkgear

// Sync and framing constants for the ThinkGear protocol.
const (
	// syncByte is the byte that, doubled, marks the start of a frame.
	syncByte = 0xAA

	// maxPayloadLength is the largest payload length byte the protocol
	// permits (not counting the two sync bytes or the checksum byte).
	maxPayloadLength = 169
)

// syncState is the Frame Decoder's position in the 5-state sync machine.
type syncState int

const (
	stateSync0 syncState = iota
	stateSync1
	stateLength
	statePayload
	stateChecksum
)

// Frame is a validated, checksum-verified payload blob handed off to the
// payload parser.
type Frame struct {
	// Payload is the raw payload bytes of the frame. The slice is only
	// valid until the next call to Decoder.Push; callers that need to
	// retain it must copy it.
	Payload []byte
}

// Decoder is the ThinkGear Frame Decoder: a byte-at-a-time state machine
// that reconstructs checksum-verified payload frames from a noisy byte
// stream. A zero-value Decoder is ready to use.
//
// Decoder never blocks and never allocates: its payload buffer is a
// fixed-size array sized to the largest legal payload. It holds exactly one mutable state for the
// lifetime of the stream and silently resynchronises on any framing error.
type Decoder struct {
	state   syncState
	length  int
	index   int
	buf     [maxPayloadLength]byte
	resyncs int
}

// Push feeds a single byte from the stream into the decoder. It returns a
// Frame and true whenever a complete, checksum-verified frame has just been
// assembled; otherwise it returns a zero Frame and false.
//
// The returned Frame's Payload slice aliases the Decoder's internal buffer
// and is only valid until the next call to Push.
func (d *Decoder) Push(b byte) (Frame, bool) {
	switch d.state {
	case stateSync0:
		if b == syncByte {
			d.state = stateSync1
		}
	case stateSync1:
		if b == syncByte {
			d.state = stateLength
		} else {
			d.state = stateSync0
		}
	case stateLength:
		switch {
		case b == syncByte:
			// absorb extra sync bytes, stay in this state
		case b > maxPayloadLength:
			d.resyncs++
			d.state = stateSync0
		default:
			d.length = int(b)
			d.index = 0
			if d.length == 0 {
				d.state = stateChecksum
			} else {
				d.state = statePayload
			}
		}
	case statePayload:
		if d.index < len(d.buf) {
			d.buf[d.index] = b
			d.index++
		}
		if d.index >= d.length {
			d.state = stateChecksum
		}
	case stateChecksum:
		d.state = stateSync0
		if checksum(d.buf[:d.length]) == b {
			return Frame{Payload: d.buf[:d.length]}, true
		}
		d.resyncs++
	}
	return Frame{}, false
}

// Resyncs reports how many times the decoder has discarded an in-progress
// frame due to an invalid length byte or a checksum mismatch. It exists for
// diagnostics only; spec policy is that these events are expected on
// startup and after line noise and must never be logged individually.
func (d *Decoder) Resyncs() int {
	return d.resyncs
}

// checksum computes the ThinkGear checksum of payload: the one's complement
// of the low byte of the sum of all payload bytes.
func checksum(payload []byte) byte {
	var sum int
	for _, b := range payload {
		sum += int(b)
	}
	return ^byte(sum&0xFF) & 0xFF
}
