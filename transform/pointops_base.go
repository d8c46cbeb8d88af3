// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"github.com/ajroetker/go-highway/hwy"
)

//go:generate go run github.com/ajroetker/go-highway/cmd/hwygen -input pointops_base.go -output . -targets avx2,avx512,neon,fallback -dispatch pointops

// scaleOffsetRows is the dispatched point-op kernel; generated z_* files
// replace it at init.
var scaleOffsetRows = BaseScaleOffsetRows

// BaseScaleOffsetRows applies out = clamp01(in*scale + offset) to the rows
// [y0, y1) of a single-plane buffer.
func BaseScaleOffsetRows(in, out []float32, width, y0, y1 int, scale, offset float32) {
	scaleVec := hwy.Set(scale)
	offsetVec := hwy.Set(offset)
	zero := hwy.Set[float32](0)
	one := hwy.Set[float32](1)
	lanes := hwy.MaxLanes[float32]()

	for y := y0; y < y1; y++ {
		inRow := in[y*width : (y+1)*width]
		outRow := out[y*width : (y+1)*width]

		x := 0
		for ; x+lanes <= width; x += lanes {
			v := hwy.Load(inRow[x:])
			v = hwy.FMA(v, scaleVec, offsetVec)
			v = hwy.Max(hwy.Min(v, one), zero)
			hwy.Store(v, outRow[x:])
		}

		if remaining := width - x; remaining > 0 {
			buf := make([]float32, lanes)
			copy(buf, inRow[x:])
			v := hwy.Load(buf)
			v = hwy.FMA(v, scaleVec, offsetVec)
			v = hwy.Max(hwy.Min(v, one), zero)
			hwy.Store(v, buf)
			copy(outRow[x:], buf[:remaining])
		}
	}
}
