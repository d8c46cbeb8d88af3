// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/durhenkd/ditherpunker/texture"
)

func TestGrayscale_PrimaryColors(t *testing.T) {
	in := texture.New[float32](4, 1, 3)
	// red, green, blue, white
	in.Set(0, 0, 0, 1)
	in.Set(1, 0, 1, 1)
	in.Set(2, 0, 2, 1)
	for p := range 3 {
		in.Set(3, 0, p, 1)
	}
	out := texture.New[float32](4, 1, 1)

	Once[float32, float32](NewGrayscale(), in.Slice(), out.MutSlice())

	want := []float32{lumaR, lumaG, lumaB, lumaR + lumaG + lumaB}
	for x, w := range want {
		if got := out.At(x, 0, 0); math.Abs(float64(got-w)) > 1e-6 {
			t.Errorf("pixel %d: got %v, want %v", x, got, w)
		}
	}
}

func TestGrayscale_IgnoresAlpha(t *testing.T) {
	rgb := texture.New[float32](5, 2, 3)
	rgba := texture.New[float32](5, 2, 4)
	rng := rand.New(rand.NewPCG(1, 1))
	for y := range 2 {
		for x := range 5 {
			for p := range 3 {
				v := rng.Float32()
				rgb.Set(x, y, p, v)
				rgba.Set(x, y, p, v)
			}
			rgba.Set(x, y, 3, rng.Float32())
		}
	}

	outRGB := texture.New[float32](5, 2, 1)
	outRGBA := texture.New[float32](5, 2, 1)
	Once[float32, float32](NewGrayscale(), rgb.Slice(), outRGB.MutSlice())
	Once[float32, float32](NewGrayscale(), rgba.Slice(), outRGBA.MutSlice())

	for i := range outRGB.Data() {
		if outRGB.Data()[i] != outRGBA.Data()[i] {
			t.Errorf("pixel %d: rgb %v vs rgba %v", i, outRGB.Data()[i], outRGBA.Data()[i])
		}
	}
}

func TestGrayscale_ParallelMatchesSequential(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	// large enough to take the parallel path
	const w, h = 512, 512
	in := texture.New[float32](w, h, 4)
	rng := rand.New(rand.NewPCG(2, 3))
	for i := range in.Data() {
		in.Data()[i] = rng.Float32()
	}

	seq := texture.New[float32](w, h, 1)
	par := texture.New[float32](w, h, 1)
	Once[float32, float32](NewGrayscale(), in.Slice(), seq.MutSlice())
	Once[float32, float32](NewGrayscaleParallel(pool), in.Slice(), par.MutSlice())

	for i := range seq.Data() {
		if seq.Data()[i] != par.Data()[i] {
			t.Fatalf("pixel %d: seq %v vs par %v", i, seq.Data()[i], par.Data()[i])
		}
	}
}

func TestAutoGrayscale(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	small := texture.Shape{Width: 64, Height: 64, Planes: 4}
	large := texture.Shape{Width: 1024, Height: 1024, Planes: 4}

	if g := AutoGrayscale(small, pool); g.pool != nil {
		t.Error("small image should run sequentially")
	}
	if g := AutoGrayscale(large, pool); g.pool == nil {
		t.Error("large image should use the pool")
	}
	if g := AutoGrayscale(large, nil); g.pool != nil {
		t.Error("nil pool must degrade to sequential")
	}
}

func TestGrayscale_RejectsSinglePlane(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for single-plane input")
		}
	}()
	in := texture.New[float32](2, 2, 1)
	out := texture.New[float32](2, 2, 1)
	Once[float32, float32](NewGrayscale(), in.Slice(), out.MutSlice())
}
