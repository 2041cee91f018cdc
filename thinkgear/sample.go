// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package thinkgear

import "time"

// Sample is the aggregator's current-sample record: each field is the
// last-observed value since the stream began. The aggregator never
// invents values, so a field is zero until its first observation.
type Sample struct {
	Timestamp     time.Time
	Attention     uint8
	Meditation    uint8
	PoorSignal    uint8
	RawWave       int16
	SignalQuality uint8

	Delta      int64
	Theta      int64
	LowAlpha   int64
	HighAlpha  int64
	LowBeta    int64
	HighBeta   int64
	LowGamma   int64
	MidGamma   int64
}

// Aggregator maintains the single current Sample for a ThinkGear stream
// and decides, for each decoded Value, whether it should trigger a row
// emission. It holds no synchronization of its own; callers that expose
// the Sample across goroutines must guard it externally (see Device).
type Aggregator struct {
	sample Sample
}

// Apply updates the aggregator's state from a single decoded Value. It
// returns the updated Sample and whether this value is a "trigger value"
// that should cause a row to be emitted.
//
// Values with an ExtendedLevel other than 0 are recognised as valid but
// have no defined handler yet; they update nothing and never trigger an
// emission, matching spec policy that higher levels must be preserved by
// the parser but are inert until a handler is defined for them.
func (a *Aggregator) Apply(v Value) (Sample, bool) {
	if v.ExtendedLevel != 0 {
		return a.sample, false
	}

	emit := false
	switch v.Code {
	case CodePoorSignal:
		if len(v.Data) >= 1 {
			a.sample.PoorSignal = v.Data[0]
			a.sample.SignalQuality = 255 - a.sample.PoorSignal
			emit = true
		}
	case CodeAttention:
		if len(v.Data) >= 1 {
			a.sample.Attention = v.Data[0]
			emit = true
		}
	case CodeMeditation:
		if len(v.Data) >= 1 {
			a.sample.Meditation = v.Data[0]
			emit = true
		}
	case CodeRawWave16Bit:
		if len(v.Data) >= 2 {
			a.sample.RawWave = int16(uint16(v.Data[0])<<8 | uint16(v.Data[1]))
		}
	case CodeAsicEEGPower:
		if len(v.Data) >= 24 {
			bands := BandPowers(v.Data)
			a.sample.Delta = bands[0]
			a.sample.Theta = bands[1]
			a.sample.LowAlpha = bands[2]
			a.sample.HighAlpha = bands[3]
			a.sample.LowBeta = bands[4]
			a.sample.HighBeta = bands[5]
			a.sample.LowGamma = bands[6]
			a.sample.MidGamma = bands[7]
			emit = true
		}
	}

	if emit {
		a.sample.Timestamp = time.Now()
	}

	return a.sample, emit
}

// Sample returns a copy of the aggregator's current state.
func (a *Aggregator) Sample() Sample {
	return a.sample
}
