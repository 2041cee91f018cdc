// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import "github.com/openeeg/tgam-edf/rowlog"

// bandRange is a per-band [min, max] pair, in the eight-band order Delta,
// Theta, LowAlpha, HighAlpha, LowBeta, HighBeta, LowGamma, MidGamma.
type bandRange struct {
	min, max int64
}

// Ranges is the Range Analyser's output: per-channel min/max computed
// across a set of loaded rows. It is pure and deterministic, and defines a
// default for every channel that never received a sample.
type Ranges struct {
	RawMin, RawMax               int64
	AttentionMin, AttentionMax   int64
	MeditationMin, MeditationMax int64
	Bands                        [8]bandRange
}

// AnalyzeRanges computes Ranges over rows. Channels with no rows fall back
// to the documented defaults: raw [-500, 500], attention/meditation
// [0, 100], band powers [0, 1000].
func AnalyzeRanges(rows []rowlog.Row) Ranges {
	r := Ranges{
		RawMin: -500, RawMax: 500,
		AttentionMin: 0, AttentionMax: 100,
		MeditationMin: 0, MeditationMax: 100,
	}
	for i := range r.Bands {
		r.Bands[i] = bandRange{min: 0, max: 1000}
	}

	if len(rows) == 0 {
		return r
	}

	r.RawMin, r.RawMax = int64(rows[0].RawWave), int64(rows[0].RawWave)
	r.AttentionMin, r.AttentionMax = int64(rows[0].Attention), int64(rows[0].Attention)
	r.MeditationMin, r.MeditationMax = int64(rows[0].Meditation), int64(rows[0].Meditation)
	for i := range r.Bands {
		v := bandValue(rows[0], i)
		r.Bands[i] = bandRange{min: v, max: v}
	}

	for _, row := range rows[1:] {
		r.RawMin = min(r.RawMin, int64(row.RawWave))
		r.RawMax = max(r.RawMax, int64(row.RawWave))
		r.AttentionMin = min(r.AttentionMin, int64(row.Attention))
		r.AttentionMax = max(r.AttentionMax, int64(row.Attention))
		r.MeditationMin = min(r.MeditationMin, int64(row.Meditation))
		r.MeditationMax = max(r.MeditationMax, int64(row.Meditation))
		for i := range r.Bands {
			v := bandValue(row, i)
			r.Bands[i].min = min(r.Bands[i].min, v)
			r.Bands[i].max = max(r.Bands[i].max, v)
		}
	}

	return r
}

// bandValue returns the i'th band power (Delta=0 .. MidGamma=7) of row.
func bandValue(row rowlog.Row, i int) int64 {
	switch i {
	case 0:
		return row.Delta
	case 1:
		return row.Theta
	case 2:
		return row.LowAlpha
	case 3:
		return row.HighAlpha
	case 4:
		return row.LowBeta
	case 5:
		return row.HighBeta
	case 6:
		return row.LowGamma
	default:
		return row.MidGamma
	}
}
