// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package rowlog reads and writes the semicolon-delimited row log that
// records decoded ThinkGear samples.
package rowlog

import "time"

// timestampLayout is the Row timestamp format: YYYY-MM-DD HH:MM:SS.fff.
const timestampLayout = "2006-01-02 15:04:05.000"

// Header is the fixed column schema's header line, in column order.
var Header = []string{
	"Timestamp", "Attention", "Meditation", "PoorSignal", "RawWave",
	"SignalQuality", "Delta", "Theta", "LowAlpha", "HighAlpha", "LowBeta",
	"HighBeta", "LowGamma", "MidGamma",
}

// Row is one persisted Sample: an ordered tuple mirroring the Sample
// schema. The timestamp is written in the YYYY-MM-DD HH:MM:SS.fff format.
type Row struct {
	Timestamp     time.Time
	Attention     uint8
	Meditation    uint8
	PoorSignal    uint8
	RawWave       int16
	SignalQuality uint8
	Delta         int64
	Theta         int64
	LowAlpha      int64
	HighAlpha     int64
	LowBeta       int64
	HighBeta      int64
	LowGamma      int64
	MidGamma      int64
}
