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
	"fmt"
	"math"
	"strconv"
)

// RawRateHz and OneHzRate are the two sample rates the Signal Builder
// produces channels at.
const (
	RawRateHz = 512
	OneHzRate = 1
)

// band describes one of the eight spectral-power channels: its label and
// the frequency range used in its Prefiltering string.
type band struct {
	name   string
	lowHz  float64
	highHz float64
}

// bands is the fixed, ordered list of spectral bands the ASIC_EEG_POWER
// payload carries, using NeuroSky's standard eSense band-power ranges.
var bands = [8]band{
	{"Delta", 0.5, 2.75},
	{"Theta", 3.5, 6.75},
	{"LowAlpha", 7.5, 9.25},
	{"HighAlpha", 10.0, 11.75},
	{"LowBeta", 13.0, 16.75},
	{"HighBeta", 18.0, 29.75},
	{"LowGamma", 31.0, 39.75},
	{"MidGamma", 41.0, 49.75},
}

// BuildSignals produces the fixed ordered list of EdfSignals from the
// per-channel ranges computed by AnalyzeRanges. dataRecordDuration is in
// seconds; samplesPerRecord for each channel is rate * dataRecordDuration.
func BuildSignals(r Ranges, dataRecordDuration float64) []Signal {
	signals := make([]Signal, 0, 4+len(bands))

	signals = append(signals, Signal{
		Label:             "EEG Fpz",
		PhysicalDimension: "uV",
		PhysicalMin:       math.Floor(float64(r.RawMin) * 1.1),
		PhysicalMax:       math.Ceil(float64(r.RawMax) * 1.1),
		DigitalMin:        -32768,
		DigitalMax:        32767,
		Prefiltering:      "HP:0.5Hz LP:60Hz Notch:50Hz",
		SamplesPerRecord:  int(RawRateHz * dataRecordDuration),
	})

	signals = append(signals, Signal{
		Label:             "Attention",
		PhysicalDimension: "%",
		PhysicalMin:       0,
		PhysicalMax:       100,
		DigitalMin:        0,
		DigitalMax:        100,
		SamplesPerRecord:  int(OneHzRate * dataRecordDuration),
	})

	signals = append(signals, Signal{
		Label:             "Meditation",
		PhysicalDimension: "%",
		PhysicalMin:       0,
		PhysicalMax:       100,
		DigitalMin:        0,
		DigitalMax:        100,
		SamplesPerRecord:  int(OneHzRate * dataRecordDuration),
	})

	signals = append(signals, Signal{
		Label:             "Signal Quality",
		PhysicalDimension: "level",
		PhysicalMin:       0,
		PhysicalMax:       255,
		DigitalMin:        0,
		DigitalMax:        255,
		SamplesPerRecord:  int(OneHzRate * dataRecordDuration),
	})

	for i, b := range bands {
		br := r.Bands[i]
		signals = append(signals, Signal{
			Label:             "EEG " + b.name,
			PhysicalDimension: "uV^2/Hz",
			PhysicalMin:       math.Floor(float64(br.min) * 0.9),
			PhysicalMax:       math.Ceil(float64(br.max) * 1.1),
			DigitalMin:        0,
			DigitalMax:        32767,
			Prefiltering:      bandPrefilter(b),
			SamplesPerRecord:  int(OneHzRate * dataRecordDuration),
		})
	}

	return signals
}

func bandPrefilter(b band) string {
	return fmt.Sprintf("BP:%s-%sHz", formatHz(b.lowHz), formatHz(b.highHz))
}

func formatHz(hz float64) string {
	return strconv.FormatFloat(hz, 'f', -1, 64)
}
