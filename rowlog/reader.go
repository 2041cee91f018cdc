// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package rowlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// parseTimestamp parses the Row timestamp format, tolerating the loss of
// the fractional-second component some producers omit.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}

// ReadAll reads every row out of r, skipping the header line and any row
// that fails to parse. Unlike csv.Reader.ReadAll, a malformed row never
// aborts the read; it is simply dropped.
func ReadAll(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	// consume the first line as the header; an empty input is not an error.
	if _, err := cr.Read(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("rowlog: reading header: %w", err)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a single malformed line (bad quoting, wrong delimiter
			// count) does not abort the rest of the read.
			continue
		}

		row, ok := parseRow(record)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(record []string) (Row, bool) {
	if len(record) != len(Header) {
		return Row{}, false
	}

	ts, err := parseTimestamp(record[0])
	if err != nil {
		return Row{}, false
	}

	u8 := func(s string) (uint8, bool) {
		n, err := strconv.ParseUint(s, 10, 8)
		return uint8(n), err == nil
	}
	i16 := func(s string) (int16, bool) {
		n, err := strconv.ParseInt(s, 10, 16)
		return int16(n), err == nil
	}
	i64 := func(s string) (int64, bool) {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	}

	attention, ok1 := u8(record[1])
	meditation, ok2 := u8(record[2])
	poorSignal, ok3 := u8(record[3])
	rawWave, ok4 := i16(record[4])
	signalQuality, ok5 := u8(record[5])
	delta, ok6 := i64(record[6])
	theta, ok7 := i64(record[7])
	lowAlpha, ok8 := i64(record[8])
	highAlpha, ok9 := i64(record[9])
	lowBeta, ok10 := i64(record[10])
	highBeta, ok11 := i64(record[11])
	lowGamma, ok12 := i64(record[12])
	midGamma, ok13 := i64(record[13])

	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8 && ok9 && ok10 && ok11 && ok12 && ok13) {
		return Row{}, false
	}

	return Row{
		Timestamp:     ts,
		Attention:     attention,
		Meditation:    meditation,
		PoorSignal:    poorSignal,
		RawWave:       rawWave,
		SignalQuality: signalQuality,
		Delta:         delta,
		Theta:         theta,
		LowAlpha:      lowAlpha,
		HighAlpha:     highAlpha,
		LowBeta:       lowBeta,
		HighBeta:      highBeta,
		LowGamma:      lowGamma,
		MidGamma:      midGamma,
	}, true
}
