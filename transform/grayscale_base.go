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

package transform

import (
	"github.com/ajroetker/go-highway/hwy"
)

//go:generate go run github.com/ajroetker/go-highway/cmd/hwygen -input grayscale_base.go -output . -targets avx2,avx512,neon,fallback -dispatch grayscale

// Rec.709 luma weights, applied to linear RGB.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// grayscaleRows is the dispatched row kernel. Generated z_* files replace it
// at init with a CPU-feature-specialized variant.
var grayscaleRows = BaseGrayscaleRows

// BaseGrayscaleRows converts the RGB(A)-interleaved rows [y0, y1) of in to
// single-plane luma in out. planes must be 3 or 4; extra planes (alpha) are
// ignored.
func BaseGrayscaleRows(in, out []float32, width, planes, y0, y1 int) {
	wr := hwy.Set[float32](lumaR)
	wg := hwy.Set[float32](lumaG)
	wb := hwy.Set[float32](lumaB)
	lanes := hwy.MaxLanes[float32]()

	for y := y0; y < y1; y++ {
		inRow := in[y*width*planes : (y+1)*width*planes]
		outRow := out[y*width : (y+1)*width]

		x := 0
		for ; x+lanes <= width; x += lanes {
			var r, g, b hwy.Vec[float32]
			if planes == 4 {
				r, g, b, _ = hwy.LoadInterleaved4(inRow[x*4:])
			} else {
				r, g, b = hwy.LoadInterleaved3(inRow[x*3:])
			}
			luma := hwy.Mul(r, wr)
			luma = hwy.Add(luma, hwy.Mul(g, wg))
			luma = hwy.Add(luma, hwy.Mul(b, wb))
			hwy.Store(luma, outRow[x:])
		}

		// Scalar tail, same arithmetic as the vector body.
		for ; x < width; x++ {
			px := inRow[x*planes:]
			outRow[x] = px[0]*lumaR + px[1]*lumaG + px[2]*lumaB
		}
	}
}
