// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import (
	"math"
	"time"

	"github.com/openeeg/tgam-edf/rowlog"
)

// Resampled holds one physical-value time series per signal, in the same
// order BuildSignals produces: raw, attention, meditation, signal quality,
// then the eight bands.
type Resampled struct {
	Raw           []float64
	Attention     []float64
	Meditation    []float64
	SignalQuality []float64
	Bands         [8][]float64
}

// Resample maps the asynchronous row timeline onto the fixed-rate grids
// spec'd for each channel: the raw channel is nearest-neighbour upsampled
// by index over [0, floor(duration*rawRate)), and every 1Hz-derived
// channel is averaged over a ±0.5s window centered on each integer second.
//
// An empty rows slice yields all-empty series.
func Resample(rows []rowlog.Row, rawRateHz float64) Resampled {
	var out Resampled
	if len(rows) == 0 {
		return out
	}

	t0 := rows[0].Timestamp
	tN := rows[len(rows)-1].Timestamp
	duration := tN.Sub(t0).Seconds()

	out.Raw = resampleRaw(rows, duration, rawRateHz)

	seconds := int(math.Ceil(duration))
	out.Attention = make([]float64, seconds)
	out.Meditation = make([]float64, seconds)
	out.SignalQuality = make([]float64, seconds)
	for i := range out.Bands {
		out.Bands[i] = make([]float64, seconds)
	}

	for s := 0; s < seconds; s++ {
		target := t0.Add(time.Duration(s) * time.Second)
		window := rowsInWindow(rows, target, 500*time.Millisecond)

		out.Attention[s] = meanUint8(window, func(r rowlog.Row) uint8 { return r.Attention })
		out.Meditation[s] = meanUint8(window, func(r rowlog.Row) uint8 { return r.Meditation })
		out.SignalQuality[s] = meanUint8(window, func(r rowlog.Row) uint8 { return r.SignalQuality })
		for i := range out.Bands {
			idx := i
			out.Bands[i][s] = meanInt64(window, func(r rowlog.Row) int64 { return bandValue(r, idx) })
		}
	}

	return out
}

// resampleRaw implements the nearest-neighbour-by-index upsampling of the
// raw channel over the declared rawRateHz grid.
func resampleRaw(rows []rowlog.Row, duration, rawRateHz float64) []float64 {
	m := int(math.Floor(duration * rawRateHz))
	if m <= 0 {
		return nil
	}

	out := make([]float64, m)
	n := len(rows)
	for i := 0; i < m; i++ {
		sourceIndex := int(math.Floor((float64(i) / float64(m)) * float64(n)))
		if sourceIndex >= n {
			sourceIndex = n - 1
		}
		out[i] = float64(rows[sourceIndex].RawWave)
	}
	return out
}

// rowsInWindow returns every row whose timestamp lies within ±radius of
// target.
func rowsInWindow(rows []rowlog.Row, target time.Time, radius time.Duration) []rowlog.Row {
	var window []rowlog.Row
	for _, r := range rows {
		delta := r.Timestamp.Sub(target)
		if delta < 0 {
			delta = -delta
		}
		if delta <= radius {
			window = append(window, r)
		}
	}
	return window
}

func meanUint8(window []rowlog.Row, field func(rowlog.Row) uint8) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, r := range window {
		sum += float64(field(r))
	}
	return sum / float64(len(window))
}

func meanInt64(window []rowlog.Row, field func(rowlog.Row) int64) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, r := range window {
		sum += float64(field(r))
	}
	return sum / float64(len(window))
}
