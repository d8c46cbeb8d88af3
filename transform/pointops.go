// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/durhenkd/ditherpunker/texture"
)

// BrightnessContrast is a linear point operation on a single-plane float32
// texture: out = clamp01(in*Scale + Offset). It implements the brightness
// and contrast pre-processing applied between grayscale conversion and
// dithering.
type BrightnessContrast struct {
	Scale  float32
	Offset float32

	pool *workerpool.Pool
}

// NewBrightnessContrast builds the point op from a contrast adjustment in
// [-100, 100] and a brightness delta in 8-bit units. Contrast pivots around
// mid-gray; brightness shifts the result.
func NewBrightnessContrast(contrast float32, brightness int, pool *workerpool.Pool) *BrightnessContrast {
	// Standard 8-bit contrast factor, mapped onto the [0,1] pixel domain.
	factor := (259 * (contrast + 255)) / (255 * (259 - contrast))
	return &BrightnessContrast{
		Scale:  factor,
		Offset: 0.5 - factor*0.5 + float32(brightness)/255,
		pool:   pool,
	}
}

// Prepare validates the shape pair.
func (t *BrightnessContrast) Prepare(in, out texture.Shape) {
	checkShapes("brightness/contrast", in, out)
}

// Apply runs the point op over every pixel.
func (t *BrightnessContrast) Apply(in texture.Slice[float32], out texture.MutSlice[float32]) (texture.Slice[float32], texture.MutSlice[float32]) {
	shape := in.Shape()
	checkShapes("brightness/contrast", shape, out.Shape())

	inBuf, outBuf := in.Data(), out.Data()
	width, height := shape.Width*shape.Planes, shape.Height

	if t.pool == nil || height*width < minParallelPixels {
		scaleOffsetRows(inBuf, outBuf, width, 0, height, t.Scale, t.Offset)
		return in, out
	}

	t.pool.ParallelForAtomicBatched(height, rowBatch, func(y0, y1 int) {
		scaleOffsetRows(inBuf, outBuf, width, y0, y1, t.Scale, t.Offset)
	})
	return in, out
}
