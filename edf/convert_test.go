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
	"testing"
	"time"

	"github.com/openeeg/tgam-edf/edf"
	"github.com/openeeg/tgam-edf/rowlog"
	"github.com/stretchr/testify/require"
)

func TestConvertRoundTrip(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)

	// Rows spaced exactly one second apart so every 1Hz resample window
	// (±0.5s around each integer second) contains exactly one row.
	rows := make([]rowlog.Row, 11)
	for i := range rows {
		rows[i] = rowlog.Row{
			Timestamp:     t0.Add(time.Duration(i) * time.Second),
			Attention:     uint8(10 * (i + 1)),
			Meditation:    50,
			SignalQuality: 255,
		}
	}

	sb := &seekBuffer{}
	err := edf.Convert(sb, rows, edf.ConvertOptions{
		DataRecordDuration: time.Second,
		RawRateHz:          512,
	})
	require.NoError(t, err)

	decoded := decodeHeader(t, sb.Reader())

	// Raw channel: 512Hz * 10.0s of declared span = 5120 samples,
	// one data record per second => 10 data records.
	require.Equal(t, 10, decoded.dataRecords)

	raw := readSignalSamples(t, sb.Reader(), decoded, 0, 5120)
	require.Len(t, raw, 5120)

	attention := readSignalSamples(t, sb.Reader(), decoded, 1, 10)
	for i, v := range attention {
		require.InDelta(t, float64(10*(i+1)), v, 0.5)
	}

	meditation := readSignalSamples(t, sb.Reader(), decoded, 2, 10)
	for _, v := range meditation {
		require.InDelta(t, 50, v, 0.5)
	}
}

func TestConvertRejectsEmptyRowLog(t *testing.T) {
	sb := &seekBuffer{}
	err := edf.Convert(sb, nil, edf.ConvertOptions{})
	require.Error(t, err)
}

func TestConvertDefaultsOptions(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	rows := []rowlog.Row{
		{Timestamp: t0, Attention: 10},
		{Timestamp: t0.Add(2 * time.Second), Attention: 20},
	}

	sb := &seekBuffer{}
	err := edf.Convert(sb, rows, edf.ConvertOptions{})
	require.NoError(t, err)

	decoded := decodeHeader(t, sb.Reader())
	require.Equal(t, time.Second, decoded.dataRecordDuration)
}
