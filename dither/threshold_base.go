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
	"math/bits"

	"github.com/durhenkd/ditherpunker/palette"
)

//go:generate go run github.com/ajroetker/go-highway/cmd/hwygen -input threshold_base.go -output . -targets avx2,avx512,neon,fallback -dispatch threshold

// Dispatched row kernels. Generated z_* files replace these at init with
// CPU-feature-specialized variants; every variant must stay bit-exact with
// the Base bodies, which are the semantic reference.
var (
	thresholdScalarRows = BaseThresholdScalarRows
	thresholdFixedRows  = BaseThresholdFixedRows
	thresholdFitRows    = BaseThresholdFitRows
)

// fitPass holds the precomputed lane data for one palette chunk of the fit
// strategy. scale and offset have exactly the pass lane count; lanes past
// size are zero so they can never win a comparison against non-negative
// input.
type fitPass struct {
	// addressable lanes within the pass result
	size   int
	scale  []float32
	offset []float32
}

// BaseThresholdScalarRows classifies the rows [y0, y1): for each pixel it
// scans the palette in order and emits the first entry whose threshold band
// admits the pixel, falling back to the last entry. This is the canonical
// body every other kernel must match bit for bit.
func BaseThresholdScalarRows(cfg *Config, tiled []float32, in []float32, out []palette.Color, width, y0, y1 int) {
	entries := cfg.entries
	fallback := entries[len(entries)-1].Color

	for y := y0; y < y1; y++ {
		phase := y & cfg.sideMask
		tiledRow := tiled[phase*width : phase*width+width]
		inRow := in[y*width : (y+1)*width]
		outRow := out[y*width : (y+1)*width]

		for x := 0; x < width; x++ {
			v := inRow[x]
			t := tiledRow[x]

			color := fallback
			for i := range entries {
				if v < t*entries[i].Scale+entries[i].Offset {
					color = entries[i].Color
					break
				}
			}
			outRow[x] = color
		}
	}
}

// BaseThresholdFixedRows classifies the rows [y0, y1) with one lane per
// palette entry: the pixel and threshold are broadcast across lanes, every
// band is compared at once, and the lowest set lane wins, which preserves
// the scalar first-match order. len(scale) == len(offset) == lanes ==
// cfg.PaletteLen().
func BaseThresholdFixedRows(cfg *Config, tiled, scale, offset []float32, lanes int, in []float32, out []palette.Color, width, y0, y1 int) {
	entries := cfg.entries
	fallback := entries[len(entries)-1].Color

	for y := y0; y < y1; y++ {
		phase := y & cfg.sideMask
		tiledRow := tiled[phase*width : phase*width+width]
		inRow := in[y*width : (y+1)*width]
		outRow := out[y*width : (y+1)*width]

		for x := 0; x < width; x++ {
			v := inRow[x]
			t := tiledRow[x]

			var mask uint32
			for lane := 0; lane < lanes; lane++ {
				if v < t*scale[lane]+offset[lane] {
					mask |= 1 << lane
				}
			}

			color := fallback
			if mask != 0 {
				color = entries[bits.TrailingZeros32(mask)].Color
			}
			outRow[x] = color
		}
	}
}

// BaseThresholdFitRows classifies the rows [y0, y1) for arbitrary palette
// sizes by walking zero-padded lane-wide chunks in palette order and
// stopping at the first chunk with a set lane. The matching entry index is
// chunk*lanes + lane.
func BaseThresholdFitRows(cfg *Config, tiled []float32, passes []fitPass, lanes int, in []float32, out []palette.Color, width, y0, y1 int) {
	entries := cfg.entries
	fallback := entries[len(entries)-1].Color

	for y := y0; y < y1; y++ {
		phase := y & cfg.sideMask
		tiledRow := tiled[phase*width : phase*width+width]
		inRow := in[y*width : (y+1)*width]
		outRow := out[y*width : (y+1)*width]

		for x := 0; x < width; x++ {
			v := inRow[x]
			t := tiledRow[x]

			color := fallback
			for pi := range passes {
				p := &passes[pi]

				var mask uint32
				for lane := 0; lane < lanes; lane++ {
					if v < t*p.scale[lane]+p.offset[lane] {
						mask |= 1 << lane
					}
				}
				// only the first size lanes are addressable
				mask &= 1<<p.size - 1
				if mask != 0 {
					color = entries[pi*lanes+bits.TrailingZeros32(mask)].Color
					break
				}
			}
			outRow[x] = color
		}
	}
}
