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
	"io"
	"math"
	"time"

	"github.com/openeeg/tgam-edf/rowlog"
)

// ConvertOptions parameterizes the offline row-log-to-EDF conversion.
type ConvertOptions struct {
	// DataRecordDuration is the EDF data record duration; defaults to
	// one second if zero.
	DataRecordDuration time.Duration
	// RawRateHz is the declared rate of the raw EEG channel; defaults to
	// 512Hz if zero.
	RawRateHz float64
}

func (o ConvertOptions) withDefaults() ConvertOptions {
	if o.DataRecordDuration <= 0 {
		o.DataRecordDuration = time.Second
	}
	if o.RawRateHz <= 0 {
		o.RawRateHz = RawRateHz
	}
	return o
}

// Convert runs the full offline pipeline (Range Analyser → Signal Builder →
// Resampler → Scaler → EDF Emitter) over rows and writes the resulting EDF
// file to w. It is transactional at the coarse grain the spec requires: on
// any failure no usable EDF file is produced (the write to w may still
// contain partial bytes, since EDF readers tolerate truncation
// inconsistently and w is not truncated on error).
func Convert(w io.WriteSeeker, rows []rowlog.Row, opts ConvertOptions) error {
	if len(rows) == 0 {
		return fmt.Errorf("edf: cannot convert an empty row log")
	}
	opts = opts.withDefaults()

	ranges := AnalyzeRanges(rows)
	signals := BuildSignals(ranges, opts.DataRecordDuration.Seconds())
	signals[0].SamplesPerRecord = int(opts.RawRateHz * opts.DataRecordDuration.Seconds())
	resampled := Resample(rows, opts.RawRateHz)

	series := seriesInSignalOrder(resampled)
	if len(series[0]) == 0 {
		return fmt.Errorf("edf: row log spans zero duration, no raw samples to write")
	}

	hdr := Header{
		Version:            Version0,
		PatientID:          "NeuroSky EEG Recording",
		RecordingID:        fmt.Sprintf("StartDate: %s", rows[0].Timestamp.Format("02.01.2006")),
		StartTime:          rows[0].Timestamp,
		DataRecordDuration: opts.DataRecordDuration,
		SignalCount:        len(signals),
		Signals:            signals,
	}

	ew, err := Create(w, hdr)
	if err != nil {
		return fmt.Errorf("edf: creating writer: %w", err)
	}

	nRecords := int(math.Ceil(float64(len(series[0])) / float64(signals[0].SamplesPerRecord)))
	for r := 0; r < nRecords; r++ {
		record := make([][]float64, len(signals))
		for k, sig := range signals {
			record[k] = recordSlice(series[k], r, sig.SamplesPerRecord)
		}
		if err := ew.WriteRecord(record); err != nil {
			return fmt.Errorf("edf: writing record %d: %w", r, err)
		}
	}

	if err := ew.Close(); err != nil {
		return fmt.Errorf("edf: finalizing header: %w", err)
	}
	return nil
}

// seriesInSignalOrder flattens a Resampled into the same order BuildSignals
// emits its Signal descriptors in: raw, attention, meditation, signal
// quality, then the eight bands.
func seriesInSignalOrder(r Resampled) [][]float64 {
	series := make([][]float64, 0, 4+len(r.Bands))
	series = append(series, r.Raw, r.Attention, r.Meditation, r.SignalQuality)
	for _, b := range r.Bands {
		series = append(series, b)
	}
	return series
}

// recordSlice extracts the samplesPerRecord-length window [record*spr,
// (record+1)*spr) out of data, zero-padding the tail if data is short.
func recordSlice(data []float64, record, samplesPerRecord int) []float64 {
	start := record * samplesPerRecord
	end := start + samplesPerRecord

	out := make([]float64, samplesPerRecord)
	if start >= len(data) {
		return out
	}
	if end > len(data) {
		end = len(data)
	}
	copy(out, data[start:end])
	return out
}
