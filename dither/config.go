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

package dither

import (
	"fmt"

	"github.com/durhenkd/ditherpunker/palette"
)

// Config holds the threshold matrix and the ordered palette shared by every
// strategy built from it. It is immutable after construction and safe to
// share across strategies and goroutines.
type Config struct {
	matrix  []float32
	entries []palette.Entry
	order   int
	// side - 1, with side = 2^order. Because side is a power of two,
	// x & sideMask == x % side, which keeps the periodic tiling free of
	// divisions.
	sideMask int
}

// NewConfig validates and builds a Config. The matrix must be a flat
// row-major 2^order x 2^order tile, and the palette must have at least one
// entry (the last entry doubles as the fallback color).
func NewConfig(order int, matrix []float32, entries []palette.Entry) (*Config, error) {
	if order < 1 {
		return nil, fmt.Errorf("dither: matrix order %d must be at least 1", order)
	}
	side := 1 << order
	if len(matrix) != side*side {
		return nil, fmt.Errorf("dither: matrix length %d does not match order %d (want %d)",
			len(matrix), order, side*side)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("dither: palette must have at least one entry")
	}

	cfg := &Config{
		matrix:   make([]float32, len(matrix)),
		entries:  make([]palette.Entry, len(entries)),
		order:    order,
		sideMask: side - 1,
	}
	copy(cfg.matrix, matrix)
	copy(cfg.entries, entries)
	return cfg, nil
}

// Order returns the matrix order; the matrix side is 2^order.
func (c *Config) Order() int { return c.order }

// Side returns the matrix side length.
func (c *Config) Side() int { return c.sideMask + 1 }

// PaletteLen returns the number of palette entries.
func (c *Config) PaletteLen() int { return len(c.entries) }

// Palette returns the ordered palette. Callers must treat it as read-only.
func (c *Config) Palette() []palette.Entry { return c.entries }

// BayerIndex maps a pixel coordinate to its matrix index. Tiling is
// periodic in both axes with period Side().
func (c *Config) BayerIndex(x, y int) int {
	return ((y & c.sideMask) << c.order) + (x & c.sideMask)
}

// cacheTiledPattern materializes the complemented threshold pattern for one
// image width: side rows of width values, row phase y holding
// 1 - matrix[BayerIndex(x, y)] for every column x. Classification then reads
// thresholds sequentially per row instead of recomputing the matrix index
// per pixel, which keeps the inner loop free of the index dependency chain.
func (c *Config) cacheTiledPattern(width int) []float32 {
	side := c.sideMask + 1
	tiled := make([]float32, side*width)
	idx := 0
	for y := 0; y < side; y++ {
		for x := 0; x < width; x++ {
			tiled[idx] = 1 - c.matrix[c.BayerIndex(x, y)]
			idx++
		}
	}
	return tiled
}
