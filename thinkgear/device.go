// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package thinkgear

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// RowSink is the destination a Device appends emitted samples to. rowlog.Writer
// satisfies this interface; it is declared here, rather than importing
// rowlog, so that thinkgear has no dependency on the row log's on-disk
// format.
type RowSink interface {
	WriteSample(Sample) error
}

// Device is the live-path handle: it owns a Decoder, the payload parser
// dispatch, and an Aggregator, and exposes the current Sample as a
// snapshot-safe read regardless of what the producer goroutine is doing.
//
// A Device must be constructed with NewDevice and is safe for Status to be
// called concurrently with Run.
type Device struct {
	sink RowSink

	mu     sync.Mutex
	sample Sample

	decoder    Decoder
	aggregator Aggregator
}

// NewDevice returns a Device that appends emitted rows to sink.
func NewDevice(sink RowSink) *Device {
	return &Device{sink: sink}
}

// Status returns a snapshot of the current Sample. It is safe to call
// concurrently with Run.
func (d *Device) Status() Sample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sample
}

// Run reads bytes from r one at a time, decodes ThinkGear frames, and
// appends a row to the sink whenever a trigger value arrives, until ctx is
// cancelled (returning ctx.Err()) or r returns io.EOF (returning nil). Any
// other read error is logged and the loop continues.
//
// The only suspension points are the read from r and the sink write;
// cancellation is observed between frames, never in the middle of one, so
// that a partially decoded frame is always either completed or safely
// discarded before Run returns ctx.Err().
func (d *Device) Run(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 1)
	for {
		if d.decoder.state == stateSync0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		n, err := r.Read(buf)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			slog.Warn("thinkgear: transport read failed", "err", err)
			continue
		}
		if n == 0 {
			continue
		}

		frame, ok := d.decoder.Push(buf[0])
		if !ok {
			continue
		}

		for _, v := range ParsePayload(frame.Payload) {
			sample, emit := d.aggregator.Apply(v)

			d.mu.Lock()
			d.sample = sample
			d.mu.Unlock()

			if !emit {
				continue
			}
			if err := d.sink.WriteSample(sample); err != nil {
				slog.Error("thinkgear: row sink write failed", "err", err)
			}
		}
	}
}
