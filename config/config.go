// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package config loads the typed, YAML-backed runtime configuration for
// the tgam-edf recorder and converter.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full set of configuration options spec'd for this system.
type Config struct {
	Serial struct {
		BaudRate int `yaml:"baud_rate"`
	} `yaml:"serial"`

	EDF struct {
		// DataRecordDurationSeconds is the EDF data record duration, in
		// seconds (e.g. 1.0).
		DataRecordDurationSeconds float64 `yaml:"data_record_duration"`
		RawRateHz                 float64 `yaml:"raw_rate"`
	} `yaml:"edf"`

	OutputPath string `yaml:"output_path"`
}

// DataRecordDuration returns the configured EDF data record duration as a
// time.Duration.
func (c Config) DataRecordDuration() time.Duration {
	return time.Duration(c.EDF.DataRecordDurationSeconds * float64(time.Second))
}

// ResolveOutputPath returns the configured OutputPath, or the documented
// default naming (eeg_data_<timestamp>.csv) under dataDir if none was set.
func (c Config) ResolveOutputPath(dataDir string, at time.Time) string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return fmt.Sprintf("%s/eeg_data_%s.csv", dataDir, at.Format("20060102_150405"))
}

// Default returns a Config populated with the documented defaults: 57600
// baud, a 1.0 second EDF data record duration, a 512Hz raw rate, and no
// fixed output path (callers generate one from the current timestamp).
func Default() Config {
	var c Config
	c.Serial.BaudRate = 57600
	c.EDF.DataRecordDurationSeconds = 1.0
	c.EDF.RawRateHz = 512
	return c
}

// Load reads and parses a YAML configuration file at path, filling in any
// option the file omits with its documented default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}
