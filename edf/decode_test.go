// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf_test

import (
	"bufio"
	"encoding/binary"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/openeeg/tgam-edf/edf"
	"github.com/stretchr/testify/require"
)

// decodedSignal is the subset of an EDF signal header this test package
// needs to locate and rescale one channel's samples.
type decodedSignal struct {
	label            string
	physicalMin      float64
	physicalMax      float64
	digitalMin       int
	digitalMax       int
	samplesPerRecord int
}

// decodedHeader is a read-only, test-only view of an EDF main header. Unlike
// a general-purpose reader it decodes exactly the fields the round-trip
// tests assert on and discards the rest.
type decodedHeader struct {
	headerBytes        int
	dataRecords        int
	dataRecordDuration time.Duration
	signals            []decodedSignal
}

// decodeHeader reads and parses the 256-byte main header plus the
// per-signal header block that follows it.
func decodeHeader(t *testing.T, r io.Reader) decodedHeader {
	t.Helper()

	br := bufio.NewReader(r)
	fixed := readFixed(t, br, 256)

	headerBytes, err := strconv.Atoi(strings.TrimSpace(fixed[184:192]))
	require.NoError(t, err)

	dataRecords, err := strconv.Atoi(strings.TrimSpace(fixed[236:244]))
	require.NoError(t, err)

	durationSeconds, err := strconv.ParseFloat(strings.TrimSpace(fixed[244:252]), 64)
	require.NoError(t, err)

	signalCount, err := strconv.Atoi(strings.TrimSpace(fixed[252:256]))
	require.NoError(t, err)

	hdr := decodedHeader{
		headerBytes:        headerBytes,
		dataRecords:        dataRecords,
		dataRecordDuration: time.Duration(durationSeconds * float64(time.Second)),
		signals:            make([]decodedSignal, signalCount),
	}

	labels := readFixedStrings(t, br, signalCount, 16)
	skipBytes(t, br, signalCount*80) // transducer type, always blank in this layout
	skipBytes(t, br, signalCount*8)  // physical dimension, not needed to rescale
	physMins := readFixedFloats(t, br, signalCount, 8)
	physMaxs := readFixedFloats(t, br, signalCount, 8)
	digMins := readFixedInts(t, br, signalCount, 8)
	digMaxs := readFixedInts(t, br, signalCount, 8)
	skipBytes(t, br, signalCount*80) // prefiltering, not needed to rescale
	samplesPerRecord := readFixedInts(t, br, signalCount, 8)
	skipBytes(t, br, signalCount*32) // reserved, always blank in this layout

	for i := range hdr.signals {
		hdr.signals[i] = decodedSignal{
			label:            labels[i],
			physicalMin:      physMins[i],
			physicalMax:      physMaxs[i],
			digitalMin:       digMins[i],
			digitalMax:       digMaxs[i],
			samplesPerRecord: samplesPerRecord[i],
		}
	}

	return hdr
}

// readSignalSamples seeks through the data records of an already-decoded
// file and returns the first want physical-value samples of signalIndex.
func readSignalSamples(t *testing.T, r io.ReadSeeker, hdr decodedHeader, signalIndex, want int) []float64 {
	t.Helper()

	sig := hdr.signals[signalIndex]

	var recordSize, offset int
	for i, s := range hdr.signals {
		if i < signalIndex {
			offset += s.samplesPerRecord * 2
		}
		recordSize += s.samplesPerRecord * 2
	}

	out := make([]float64, 0, want)
	buf := make([]byte, 2)
	for record := 0; len(out) < want; record++ {
		require.Less(t, record, hdr.dataRecords, "ran out of data records while reading signal %d", signalIndex)
		for sample := 0; sample < sig.samplesPerRecord && len(out) < want; sample++ {
			pos := int64(hdr.headerBytes) + int64(record)*int64(recordSize) + int64(offset) + int64(sample*2)
			_, err := r.Seek(pos, io.SeekStart)
			require.NoError(t, err)
			_, err = io.ReadFull(r, buf)
			require.NoError(t, err)

			digital := int16(binary.LittleEndian.Uint16(buf))
			out = append(out, edf.ToPhysical(digital, sig.digitalMin, sig.digitalMax, sig.physicalMin, sig.physicalMax))
		}
	}

	return out
}

func readFixed(t *testing.T, r io.Reader, n int) string {
	t.Helper()
	b := make([]byte, n)
	_, err := io.ReadFull(r, b)
	require.NoError(t, err)
	return string(b)
}

func readFixedStrings(t *testing.T, r io.Reader, count, width int) []string {
	t.Helper()
	raw := readFixed(t, r, count*width)
	out := make([]string, count)
	for i := range out {
		out[i] = strings.TrimSpace(raw[i*width : (i+1)*width])
	}
	return out
}

func readFixedFloats(t *testing.T, r io.Reader, count, width int) []float64 {
	t.Helper()
	strs := readFixedStrings(t, r, count, width)
	out := make([]float64, count)
	for i, s := range strs {
		v, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func readFixedInts(t *testing.T, r io.Reader, count, width int) []int {
	t.Helper()
	strs := readFixedStrings(t, r, count, width)
	out := make([]int, count)
	for i, s := range strs {
		v, err := strconv.Atoi(s)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func skipBytes(t *testing.T, r io.Reader, n int) {
	t.Helper()
	_, err := io.CopyN(io.Discard, r, int64(n))
	require.NoError(t, err)
}
