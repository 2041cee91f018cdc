// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package thinkgear

// ThinkGear payload codes (spec §3).
const (
	// excode is the extended-code prefix byte; one or more of these
	// preceding a code byte bump the extended-code level.
	excode = 0x55

	CodePoorSignal     = 0x02
	CodeAttention      = 0x04
	CodeMeditation     = 0x05
	CodeRawWave16Bit   = 0x80
	CodeAsicEEGPower   = 0x83
)

// bandCount is the number of spectral bands carried in an ASIC_EEG_POWER
// payload.
const bandCount = 8

// Value is a single tagged data value decoded from a payload, together
// with the extended-code level it was prefixed with. Only level 0 codes
// are defined by the current protocol, but the level is always forwarded
// so that future extended codes can be dispatched without touching the
// parser.
type Value struct {
	ExtendedLevel int
	Code          byte
	Data          []byte
}

// ParsePayload walks a single ThinkGear payload buffer and returns the
// ordered sequence of tagged values it contains. Unknown codes still
// consume their declared length so that a single unknown tag never
// desynchronises the remainder of the payload.
//
// Each returned Value's Data slice aliases payload; callers that need to
// retain it across the next Decoder.Push must copy it.
func ParsePayload(payload []byte) []Value {
	var values []Value

	i := 0
	for i < len(payload) {
		level := 0
		for i < len(payload) && payload[i] == excode {
			level++
			i++
		}
		if i >= len(payload) {
			break
		}

		code := payload[i]
		i++

		length := 1
		if code&0x80 != 0 {
			if i >= len(payload) {
				break // malformed: length byte missing
			}
			length = int(payload[i])
			i++
		}

		if i+length > len(payload) {
			break // malformed: declared length runs past the payload
		}

		values = append(values, Value{
			ExtendedLevel: level,
			Code:          code,
			Data:          payload[i : i+length],
		})
		i += length
	}

	return values
}

// BandPowers decodes eight consecutive 24-bit big-endian unsigned integers
// from an ASIC_EEG_POWER value's data, in the order Delta, Theta, LowAlpha,
// HighAlpha, LowBeta, HighBeta, LowGamma, MidGamma. data must be at least
// 24 bytes long.
func BandPowers(data []byte) [bandCount]int64 {
	var bands [bandCount]int64
	for i := 0; i < bandCount; i++ {
		p := i * 3
		bands[i] = int64(data[p])<<16 | int64(data[p+1])<<8 | int64(data[p+2])
	}
	return bands
}
