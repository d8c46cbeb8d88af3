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
	"testing"

	"github.com/durhenkd/ditherpunker/palette"
)

func TestBayer_Order1(t *testing.T) {
	want := []float32{0, 0.5, 0.75, 0.25}
	got := Bayer(1)
	if len(got) != 4 {
		t.Fatalf("len: got %d, want 4", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bayer(1)[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBayer_Order2(t *testing.T) {
	// classic 4x4 index matrix over 16
	idx := []int{
		0, 8, 2, 10,
		12, 4, 14, 6,
		3, 11, 1, 9,
		15, 7, 13, 5,
	}
	got := Bayer(2)
	if len(got) != 16 {
		t.Fatalf("len: got %d, want 16", len(got))
	}
	for i, v := range idx {
		want := float32(v) / 16
		if got[i] != want {
			t.Errorf("Bayer(2)[%d]: got %v, want %v", i, got[i], want)
		}
	}
}

func TestBayer_ValuesAreAPermutation(t *testing.T) {
	for order := 1; order <= 4; order++ {
		side := 1 << order
		m := Bayer(order)
		seen := make(map[float32]bool, side*side)
		for _, v := range m {
			if v < 0 || v >= 1 {
				t.Errorf("order %d: value %v outside [0,1)", order, v)
			}
			if seen[v] {
				t.Errorf("order %d: duplicate value %v", order, v)
			}
			seen[v] = true
		}
		if len(seen) != side*side {
			t.Errorf("order %d: got %d distinct values, want %d", order, len(seen), side*side)
		}
	}
}

func TestNewConfig_Validation(t *testing.T) {
	pal := palette.Default()

	tests := []struct {
		name    string
		order   int
		matrix  []float32
		entries []palette.Entry
	}{
		{"zero order", 0, []float32{0}, pal},
		{"matrix too short", 2, Bayer(1), pal},
		{"matrix too long", 1, Bayer(2), pal},
		{"empty palette", 1, Bayer(1), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewConfig(tc.order, tc.matrix, tc.entries); err == nil {
				t.Error("expected error")
			}
		})
	}

	cfg, err := NewConfig(3, Bayer(3), pal)
	if err != nil {
		t.Fatalf("valid config: %v", err)
	}
	if cfg.Order() != 3 || cfg.Side() != 8 || cfg.PaletteLen() != 2 {
		t.Errorf("accessors: order=%d side=%d palette=%d", cfg.Order(), cfg.Side(), cfg.PaletteLen())
	}
}

func TestNewConfig_CopiesInputs(t *testing.T) {
	matrix := Bayer(1)
	pal := palette.Default()
	cfg, err := NewConfig(1, matrix, pal)
	if err != nil {
		t.Fatal(err)
	}

	matrix[0] = 0.99
	pal[0].Scale = 42
	if cfg.matrix[0] == 0.99 {
		t.Error("config aliases caller matrix")
	}
	if cfg.entries[0].Scale == 42 {
		t.Error("config aliases caller palette")
	}
}

func TestConfig_BayerIndexPeriodicity(t *testing.T) {
	cfg, err := NewConfig(2, Bayer(2), palette.Default())
	if err != nil {
		t.Fatal(err)
	}
	side := cfg.Side()

	for y := range side {
		for x := range side {
			want := cfg.BayerIndex(x, y)
			if got := cfg.BayerIndex(x+side, y); got != want {
				t.Errorf("BayerIndex(%d+side,%d): got %d, want %d", x, y, got, want)
			}
			if got := cfg.BayerIndex(x, y+side); got != want {
				t.Errorf("BayerIndex(%d,%d+side): got %d, want %d", x, y, got, want)
			}
			if got := cfg.BayerIndex(x+3*side, y+7*side); got != want {
				t.Errorf("BayerIndex far tile (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestConfig_CacheTiledPattern(t *testing.T) {
	cfg, err := NewConfig(1, Bayer(1), palette.Default())
	if err != nil {
		t.Fatal(err)
	}

	const width = 5
	tiled := cfg.cacheTiledPattern(width)
	if len(tiled) != cfg.Side()*width {
		t.Fatalf("len: got %d, want %d", len(tiled), cfg.Side()*width)
	}

	// each cached value is the complement of the matrix value at the
	// tiled position, rows keyed by y phase with stride width
	for y := range cfg.Side() {
		for x := range width {
			want := 1 - cfg.matrix[cfg.BayerIndex(x, y)]
			if got := tiled[y*width+x]; got != want {
				t.Errorf("tiled[%d][%d]: got %v, want %v", y, x, got, want)
			}
		}
	}
}
