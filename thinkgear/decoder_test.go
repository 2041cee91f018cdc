// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package thinkgear_test

import (
	"testing"

	"github.com/openeeg/tgam-edf/thinkgear"
	"github.com/stretchr/testify/require"
)

// feed pushes every byte of raw into d and returns the payloads of every
// frame that came out, in order.
func feed(d *thinkgear.Decoder, raw []byte) [][]byte {
	var frames [][]byte
	for _, b := range raw {
		if f, ok := d.Push(b); ok {
			payload := make([]byte, len(f.Payload))
			copy(payload, f.Payload)
			frames = append(frames, payload)
		}
	}
	return frames
}

func TestDecoderMinimalFrame(t *testing.T) {
	var d thinkgear.Decoder
	// AA AA 02 02 00 FD : poor signal = 0
	frames := feed(&d, []byte{0xAA, 0xAA, 0x02, 0x02, 0x00, 0xFD})
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0x02, 0x00}, frames[0])
}

func TestDecoderAttentionFrame(t *testing.T) {
	var d thinkgear.Decoder
	frames := feed(&d, []byte{0xAA, 0xAA, 0x02, 0x04, 0x40, 0xBB})
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0x04, 0x40}, frames[0])
}

func TestDecoderBadChecksumRecovers(t *testing.T) {
	var d thinkgear.Decoder
	raw := []byte{
		0xAA, 0xAA, 0x02, 0x04, 0x40, 0x00, // bad checksum, discarded
		0xAA, 0xAA, 0x02, 0x04, 0x32, 0xC9, // good, Attention=50
	}
	frames := feed(&d, raw)
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0x04, 0x32}, frames[0])
	require.Equal(t, 1, d.Resyncs())
}

func TestDecoderInsertedGarbageBeforeSync(t *testing.T) {
	// Inserting arbitrary bytes before the first double-sync of a valid
	// frame must not change what comes out.
	garbage := []byte{0x01, 0x02, 0xAA, 0x03, 0xAA, 0xAA}
	good := []byte{0x02, 0x04, 0x40, 0xBB}

	var withGarbage, clean thinkgear.Decoder
	framesA := feed(&withGarbage, append(append([]byte{}, garbage...), good...))
	framesB := feed(&clean, append([]byte{0xAA, 0xAA}, good...))

	require.Equal(t, framesB, framesA)
}

func TestDecoderInvalidLengthResyncs(t *testing.T) {
	var d thinkgear.Decoder
	raw := []byte{
		0xAA, 0xAA, 0xFF, // length > 169, invalid: back to state 0
		0xAA, 0xAA, 0x02, 0x04, 0x32, 0xC9, // valid frame follows
	}
	frames := feed(&d, raw)
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0x04, 0x32}, frames[0])
}

func TestDecoderExtraSyncBytesAbsorbed(t *testing.T) {
	var d thinkgear.Decoder
	raw := []byte{0xAA, 0xAA, 0xAA, 0xAA, 0x02, 0x04, 0x32, 0xC9}
	frames := feed(&d, raw)
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0x04, 0x32}, frames[0])
}

func TestDecoderRawWaveFrame(t *testing.T) {
	var d thinkgear.Decoder
	frames := feed(&d, []byte{0xAA, 0xAA, 0x04, 0x80, 0x02, 0x12, 0x34, 0x37})
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0x80, 0x02, 0x12, 0x34}, frames[0])
}

func TestDecoderDoesNotAllocatePerByte(t *testing.T) {
	var d thinkgear.Decoder
	raw := []byte{0xAA, 0xAA, 0x02, 0x04, 0x40, 0xBB}
	allocs := testing.AllocsPerRun(1000, func() {
		for _, b := range raw {
			d.Push(b)
		}
	})
	require.Zero(t, allocs)
}
