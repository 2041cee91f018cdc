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

	"github.com/openeeg/tgam-edf/thinkgear"
)

// Writer appends Rows to an underlying io.Writer as a semicolon-delimited,
// CSV-quoted text log. It flushes after every row: durability is preferred
// over throughput, per the row sink's contract.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps w and writes the header line immediately.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("rowlog: writing header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("rowlog: flushing header: %w", err)
	}

	return &Writer{csv: cw}, nil
}

// WriteSample converts a thinkgear.Sample into a Row and appends it,
// flushing immediately. It satisfies thinkgear.RowSink.
func (w *Writer) WriteSample(s thinkgear.Sample) error {
	return w.WriteRow(Row{
		Timestamp:     s.Timestamp,
		Attention:     s.Attention,
		Meditation:    s.Meditation,
		PoorSignal:    s.PoorSignal,
		RawWave:       s.RawWave,
		SignalQuality: s.SignalQuality,
		Delta:         s.Delta,
		Theta:         s.Theta,
		LowAlpha:      s.LowAlpha,
		HighAlpha:     s.HighAlpha,
		LowBeta:       s.LowBeta,
		HighBeta:      s.HighBeta,
		LowGamma:      s.LowGamma,
		MidGamma:      s.MidGamma,
	})
}

// WriteRow appends a single Row and flushes.
func (w *Writer) WriteRow(r Row) error {
	record := []string{
		r.Timestamp.Format(timestampLayout),
		strconv.Itoa(int(r.Attention)),
		strconv.Itoa(int(r.Meditation)),
		strconv.Itoa(int(r.PoorSignal)),
		strconv.Itoa(int(r.RawWave)),
		strconv.Itoa(int(r.SignalQuality)),
		strconv.FormatInt(r.Delta, 10),
		strconv.FormatInt(r.Theta, 10),
		strconv.FormatInt(r.LowAlpha, 10),
		strconv.FormatInt(r.HighAlpha, 10),
		strconv.FormatInt(r.LowBeta, 10),
		strconv.FormatInt(r.HighBeta, 10),
		strconv.FormatInt(r.LowGamma, 10),
		strconv.FormatInt(r.MidGamma, 10),
	}

	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("rowlog: writing row: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("rowlog: flushing row: %w", err)
	}
	return nil
}
