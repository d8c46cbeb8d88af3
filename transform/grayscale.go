// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/durhenkd/ditherpunker/texture"
)

// Row batch size for parallel stages. Grabbing several rows per atomic
// operation keeps pool overhead negligible for narrow images.
const rowBatch = 16

// Below this pixel count a parallel stage runs sequentially anyway; pool
// dispatch costs more than the work saved.
const minParallelPixels = 450 * 450

// Grayscale converts an RGB(A)-interleaved float32 texture to a single-plane
// luma texture. With a non-nil pool, rows are processed in parallel.
type Grayscale struct {
	pool *workerpool.Pool
}

// NewGrayscale returns a sequential grayscale transform.
func NewGrayscale() *Grayscale { return &Grayscale{} }

// NewGrayscaleParallel returns a row-parallel grayscale transform. A nil
// pool degrades to sequential execution.
func NewGrayscaleParallel(pool *workerpool.Pool) *Grayscale {
	return &Grayscale{pool: pool}
}

// AutoGrayscale picks sequential or parallel execution from the image size,
// mirroring the strategy auto-selection: small images never pay for the pool.
func AutoGrayscale(shape texture.Shape, pool *workerpool.Pool) *Grayscale {
	if pool == nil || pool.NumWorkers() < 2 || shape.Width*shape.Height < minParallelPixels {
		return NewGrayscale()
	}
	return NewGrayscaleParallel(pool)
}

// Prepare validates the shape pair. Grayscale keeps no width-dependent
// state.
func (g *Grayscale) Prepare(in, out texture.Shape) {
	checkGrayscaleShapes(in, out)
}

// Apply converts every pixel of in to luma in out.
func (g *Grayscale) Apply(in texture.Slice[float32], out texture.MutSlice[float32]) (texture.Slice[float32], texture.MutSlice[float32]) {
	inShape, outShape := in.Shape(), out.Shape()
	checkGrayscaleShapes(inShape, outShape)

	inBuf, outBuf := in.Data(), out.Data()
	width, planes, height := inShape.Width, inShape.Planes, inShape.Height

	if g.pool == nil || height*width < minParallelPixels {
		grayscaleRows(inBuf, outBuf, width, planes, 0, height)
		return in, out
	}

	g.pool.ParallelForAtomicBatched(height, rowBatch, func(y0, y1 int) {
		grayscaleRows(inBuf, outBuf, width, planes, y0, y1)
	})
	return in, out
}

func checkGrayscaleShapes(in, out texture.Shape) {
	if in.Planes != 3 && in.Planes != 4 {
		panic(fmt.Sprintf("transform: grayscale input must have 3 or 4 planes, got %s", in))
	}
	want := texture.Shape{Width: in.Width, Height: in.Height, Planes: 1}
	checkShapes("grayscale output", want, out)
}
