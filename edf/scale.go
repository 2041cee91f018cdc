// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import "math"

// ToDigital performs the Scaler's linear physical-to-digital conversion:
// it maps physical, which lies (nominally) in [physMin, physMax], onto the
// digital range [digMin, digMax], rounds to the nearest integer, and
// clamps the result to the digital range. If physMax == physMin the
// conversion is degenerate and digMin is returned.
func ToDigital(physical, physMin, physMax float64, digMin, digMax int) int16 {
	if physMax == physMin {
		return int16(digMin)
	}

	scaled := (physical-physMin)/(physMax-physMin)*float64(digMax-digMin) + float64(digMin)
	rounded := math.Round(scaled)

	switch {
	case rounded < float64(digMin):
		return int16(digMin)
	case rounded > float64(digMax):
		return int16(digMax)
	default:
		return int16(rounded)
	}
}

// ToPhysical performs the inverse conversion: a digital sample in
// [digMin, digMax] back to its physical value in [physMin, physMax]. If
// digMax == digMin the conversion is degenerate and 0 is returned.
func ToPhysical(digital int16, digMin, digMax int, physMin, physMax float64) float64 {
	if digMax == digMin {
		return 0
	}
	return physMin + (float64(digital)-float64(digMin))*(physMax-physMin)/float64(digMax-digMin)
}
