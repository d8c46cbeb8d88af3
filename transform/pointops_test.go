// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"math"
	"testing"

	"github.com/durhenkd/ditherpunker/texture"
)

func applyPointOp(t *testing.T, op *BrightnessContrast, values []float32) []float32 {
	t.Helper()
	in := texture.FromSlice(texture.Shape{Width: len(values), Height: 1, Planes: 1}, values)
	out := texture.New[float32](len(values), 1, 1)
	Once[float32, float32](op, in.Slice(), out.MutSlice())
	return out.Data()
}

func TestBrightnessContrast_Identity(t *testing.T) {
	op := NewBrightnessContrast(0, 0, nil)
	if op.Scale != 1 {
		t.Errorf("Scale: got %v, want 1", op.Scale)
	}
	if op.Offset != 0 {
		t.Errorf("Offset: got %v, want 0", op.Offset)
	}

	values := []float32{0, 0.25, 0.5, 0.75, 1}
	got := applyPointOp(t, op, values)
	for i, v := range values {
		if got[i] != v {
			t.Errorf("identity[%d]: got %v, want %v", i, got[i], v)
		}
	}
}

func TestBrightnessContrast_Brightness(t *testing.T) {
	// +51 in 8-bit units shifts by 0.2 in the unit domain
	op := NewBrightnessContrast(0, 51, nil)

	got := applyPointOp(t, op, []float32{0, 0.5, 0.9})
	want := []float32{0.2, 0.7, 1} // 1.1 clamps
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBrightnessContrast_ContrastPivotsAroundMidGray(t *testing.T) {
	op := NewBrightnessContrast(60, 0, nil)
	if op.Scale <= 1 {
		t.Fatalf("positive contrast should raise the scale, got %v", op.Scale)
	}

	got := applyPointOp(t, op, []float32{0.5, 0.25, 0.75})
	if math.Abs(float64(got[0]-0.5)) > 1e-6 {
		t.Errorf("mid-gray moved: got %v, want 0.5", got[0])
	}
	if got[1] >= 0.25 {
		t.Errorf("dark pixel should darken: got %v", got[1])
	}
	if got[2] <= 0.75 {
		t.Errorf("bright pixel should brighten: got %v", got[2])
	}
}

func TestBrightnessContrast_ClampsToUnitRange(t *testing.T) {
	op := NewBrightnessContrast(100, 100, nil)
	got := applyPointOp(t, op, []float32{0, 1})
	for i, v := range got {
		if v < 0 || v > 1 {
			t.Errorf("[%d]: %v outside [0,1]", i, v)
		}
	}
}

func TestBrightnessContrast_TailMatchesVectorBody(t *testing.T) {
	// width not a multiple of any lane count exercises the buffered tail
	op := NewBrightnessContrast(30, 10, nil)

	wide := make([]float32, 37)
	for i := range wide {
		wide[i] = float32(i) / 36
	}
	got := applyPointOp(t, op, wide)

	for i, v := range wide {
		want := v*op.Scale + op.Offset
		if want < 0 {
			want = 0
		}
		if want > 1 {
			want = 1
		}
		if math.Abs(float64(got[i]-want)) > 1e-5 {
			t.Errorf("[%d]: got %v, want %v", i, got[i], want)
		}
	}
}
