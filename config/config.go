// Copyright 2026 ditherpunker Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads and saves the JSON processing configuration that
// drives the command line tool: brightness and contrast deltas, the Bayer
// matrix order, the color map, and resize dimensions.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/durhenkd/ditherpunker/palette"
)

// Dithering selects the threshold matrix family and order.
type Dithering string

const (
	Bayer0 Dithering = "bayer_0"
	Bayer1 Dithering = "bayer_1"
	Bayer2 Dithering = "bayer_2"
	Bayer3 Dithering = "bayer_3"
)

// Order returns the power-of-two order of the Bayer matrix this value
// names, or an error for unknown values.
func (d Dithering) Order() (int, error) {
	switch d {
	case Bayer0:
		return 1, nil
	case Bayer1:
		return 2, nil
	case Bayer2:
		return 3, nil
	case Bayer3:
		return 4, nil
	}
	return 0, fmt.Errorf("config: unknown dithering type %q", string(d))
}

// ColorMapEntry is one palette stop. In JSON it is either a bare hex
// string or an object with optional per-entry threshold scale and offset.
type ColorMapEntry struct {
	Color  string  `json:"color"`
	Scale  float32 `json:"scale"`
	Offset float32 `json:"offset"`
}

// UnmarshalJSON accepts both "#rrggbb" and {"color": "#rrggbb", ...},
// defaulting scale to 1 and offset to 0.
func (e *ColorMapEntry) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		*e = ColorMapEntry{Color: hex, Scale: 1, Offset: 0}
		return nil
	}

	type entry ColorMapEntry
	raw := entry{Scale: 1, Offset: 0}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: color_map entry must be a hex string or an object: %w", err)
	}
	*e = ColorMapEntry(raw)
	return nil
}

// ProcessConfig describes a full processing run.
type ProcessConfig struct {
	BrightnessDelta  int             `json:"brightness_delta"`
	ContrastDelta    float32         `json:"contrast_delta"`
	DitheringType    Dithering       `json:"dithering_type"`
	ColorMap         []ColorMapEntry `json:"color_map,omitempty"`
	ProcessingWidth  int             `json:"processing_width"`
	ProcessingHeight int             `json:"processing_height"`
	OutputScale      int             `json:"output_scale"`
}

// Default returns the configuration used when no file is given: a 2x2
// Bayer matrix over a black and white palette at 480x480.
func Default() ProcessConfig {
	return ProcessConfig{
		BrightnessDelta:  0,
		ContrastDelta:    0,
		DitheringType:    Bayer1,
		ProcessingWidth:  480,
		ProcessingHeight: 480,
		OutputScale:      1,
	}
}

// Validate checks field ranges without touching the filesystem.
func (c *ProcessConfig) Validate() error {
	if _, err := c.DitheringType.Order(); err != nil {
		return err
	}
	if len(c.ColorMap) == 1 {
		return fmt.Errorf("config: color_map needs at least 2 colors, got 1")
	}
	if c.ProcessingWidth <= 0 || c.ProcessingHeight <= 0 {
		return fmt.Errorf("config: processing dimensions must be positive, got %dx%d", c.ProcessingWidth, c.ProcessingHeight)
	}
	if c.OutputScale < 1 {
		return fmt.Errorf("config: output_scale must be at least 1, got %d", c.OutputScale)
	}
	return nil
}

// Palette resolves the color map into dither palette entries, falling
// back to the default black and white ramp when the map is empty.
func (c *ProcessConfig) Palette() ([]palette.Entry, error) {
	if len(c.ColorMap) == 0 {
		return palette.Default(), nil
	}

	entries := make([]palette.Entry, len(c.ColorMap))
	for i, e := range c.ColorMap {
		col, err := palette.ParseHex(e.Color)
		if err != nil {
			return nil, fmt.Errorf("config: color_map[%d]: %w", i, err)
		}
		entries[i] = palette.Entry{Color: col, Scale: e.Scale, Offset: e.Offset}
	}
	return entries, nil
}

// Read loads and validates a configuration file.
func Read(path string) (ProcessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProcessConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg ProcessConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ProcessConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return ProcessConfig{}, err
	}
	return cfg, nil
}

// Write saves the configuration as indented JSON.
func (c *ProcessConfig) Write(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
