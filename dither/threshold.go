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

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/durhenkd/ditherpunker/palette"
	"github.com/durhenkd/ditherpunker/texture"
)

// Rows grabbed per atomic pool operation in the parallel variants. Chunks
// stay row-aligned, so each task owns its output rows exclusively.
const rowBatch = 16

// thresholdState carries what every threshold strategy shares: the config,
// the optional worker pool, and the width-tiled threshold cache built by
// Prepare.
type thresholdState struct {
	cfg  *Config
	pool *workerpool.Pool

	// complemented per-phase threshold rows, sized side*width; valid only
	// for the width last prepared
	tiled         []float32
	preparedWidth int
}

// prepare rebuilds the tiled threshold cache for the input width.
func (st *thresholdState) prepare(in, out texture.Shape) {
	checkThresholdShapes(in, out)
	st.tiled = st.cfg.cacheTiledPattern(in.Width)
	st.preparedWidth = in.Width
}

// check validates the shape pair handed to Apply against the prepared
// state.
func (st *thresholdState) check(in, out texture.Shape) {
	checkThresholdShapes(in, out)
	if st.tiled == nil {
		panic("dither: Apply called before Prepare")
	}
	if in.Width != st.preparedWidth {
		panic(fmt.Sprintf("dither: prepared for width %d, applied to width %d", st.preparedWidth, in.Width))
	}
}

// run executes the row kernel sequentially or over the pool.
func (st *thresholdState) run(height int, fn func(y0, y1 int)) {
	if st.pool == nil {
		fn(0, height)
		return
	}
	st.pool.ParallelForAtomicBatched(height, rowBatch, fn)
}

func checkThresholdShapes(in, out texture.Shape) {
	if in.Planes != 1 {
		panic(fmt.Sprintf("dither: input must be single-plane grayscale, got %s", in))
	}
	if out != in {
		panic(fmt.Sprintf("dither: output shape %s does not match input shape %s", out, in))
	}
}

// scalarTransform is the sequential-scan reference strategy.
type scalarTransform struct {
	thresholdState
}

func newScalarTransform(cfg *Config, pool *workerpool.Pool) *scalarTransform {
	return &scalarTransform{thresholdState{cfg: cfg, pool: pool}}
}

func (t *scalarTransform) Prepare(in, out texture.Shape) { t.prepare(in, out) }

func (t *scalarTransform) Apply(in texture.Slice[float32], out texture.MutSlice[palette.Color]) (texture.Slice[float32], texture.MutSlice[palette.Color]) {
	shape := in.Shape()
	t.check(shape, out.Shape())

	inBuf, outBuf := in.Data(), out.Data()
	t.run(shape.Height, func(y0, y1 int) {
		thresholdScalarRows(t.cfg, t.tiled, inBuf, outBuf, shape.Width, y0, y1)
	})
	return in, out
}

// fixedTransform classifies with one lane per palette entry. Construction
// requires the palette length to equal the lane count.
type fixedTransform struct {
	thresholdState
	lanes  int
	scale  []float32
	offset []float32
}

func newFixedTransform(cfg *Config, lanes int, pool *workerpool.Pool) *fixedTransform {
	if cfg.PaletteLen() != lanes {
		panic(fmt.Sprintf("dither: fixed strategy needs palette length %d, got %d", lanes, cfg.PaletteLen()))
	}

	scale := make([]float32, lanes)
	offset := make([]float32, lanes)
	for i, e := range cfg.entries {
		scale[i] = e.Scale
		offset[i] = e.Offset
	}

	return &fixedTransform{
		thresholdState: thresholdState{cfg: cfg, pool: pool},
		lanes:          lanes,
		scale:          scale,
		offset:         offset,
	}
}

func (t *fixedTransform) Prepare(in, out texture.Shape) { t.prepare(in, out) }

func (t *fixedTransform) Apply(in texture.Slice[float32], out texture.MutSlice[palette.Color]) (texture.Slice[float32], texture.MutSlice[palette.Color]) {
	shape := in.Shape()
	t.check(shape, out.Shape())

	inBuf, outBuf := in.Data(), out.Data()
	t.run(shape.Height, func(y0, y1 int) {
		thresholdFixedRows(t.cfg, t.tiled, t.scale, t.offset, t.lanes, inBuf, outBuf, shape.Width, y0, y1)
	})
	return in, out
}

// fitTransform handles arbitrary palette lengths by chunking the palette
// into lane-wide passes, zero-padding the last one.
type fitTransform struct {
	thresholdState
	lanes  int
	passes []fitPass
}

func newFitTransform(cfg *Config, lanes int, pool *workerpool.Pool) *fitTransform {
	n := cfg.PaletteLen()
	iters := (n + lanes - 1) / lanes

	passes := make([]fitPass, iters)
	for pi := range passes {
		size := lanes
		if pi == iters-1 {
			if rem := n % lanes; rem != 0 {
				size = rem
			}
		}

		pass := fitPass{
			size:   size,
			scale:  make([]float32, lanes),
			offset: make([]float32, lanes),
		}
		for lane := 0; lane < size; lane++ {
			e := cfg.entries[pi*lanes+lane]
			pass.scale[lane] = e.Scale
			pass.offset[lane] = e.Offset
		}
		passes[pi] = pass
	}

	return &fitTransform{
		thresholdState: thresholdState{cfg: cfg, pool: pool},
		lanes:          lanes,
		passes:         passes,
	}
}

func (t *fitTransform) Prepare(in, out texture.Shape) { t.prepare(in, out) }

func (t *fitTransform) Apply(in texture.Slice[float32], out texture.MutSlice[palette.Color]) (texture.Slice[float32], texture.MutSlice[palette.Color]) {
	shape := in.Shape()
	t.check(shape, out.Shape())

	inBuf, outBuf := in.Data(), out.Data()
	t.run(shape.Height, func(y0, y1 int) {
		thresholdFitRows(t.cfg, t.tiled, t.passes, t.lanes, inBuf, outBuf, shape.Width, y0, y1)
	})
	return in, out
}
