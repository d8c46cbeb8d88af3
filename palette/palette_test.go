// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package palette

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000000", Color{0, 0, 0, 1}},
		{"#ffffff", Color{1, 1, 1, 1}},
		{"FFFFFF", Color{1, 1, 1, 1}},
		{" #ff0000 ", Color{1, 0, 0, 1}},
		{"#00ff00", Color{0, 1, 0, 1}},
		{"#0000ff", Color{0, 0, 1, 1}},
	}
	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHex(%q): got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, s := range []string{"", "#fff", "#gggggg", "#12345", "#1234567"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q): expected error", s)
		}
	}
}

func TestHex_RoundTrip(t *testing.T) {
	for _, s := range []string{"#000000", "#ffffff", "#8040c0", "#123456"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", s, err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("Hex: got %q, want %q", got, s)
		}
	}
}

func TestFromBytes(t *testing.T) {
	c := FromBytes(255, 0, 51, 255)
	if c.R != 1 || c.G != 0 || c.A != 1 {
		t.Errorf("FromBytes: got %+v", c)
	}
	if c.B != 51.0/255 {
		t.Errorf("B: got %v, want %v", c.B, 51.0/255)
	}
}

func TestLuma_Ordering(t *testing.T) {
	blackL := (Color{0, 0, 0, 1}).Luma()
	grayL := (Color{0.5, 0.5, 0.5, 1}).Luma()
	whiteL := (Color{1, 1, 1, 1}).Luma()

	if !(blackL < grayL && grayL < whiteL) {
		t.Errorf("luma not monotone: %v %v %v", blackL, grayL, whiteL)
	}

	// green dominates the weighting
	if (Color{0, 1, 0, 1}).Luma() <= (Color{1, 0, 0, 1}).Luma() {
		t.Error("green should outweigh red")
	}
}

func TestDefault(t *testing.T) {
	pal := Default()
	if len(pal) != 2 {
		t.Fatalf("len: got %d, want 2", len(pal))
	}
	if pal[0].Color.Luma() >= pal[1].Color.Luma() {
		t.Error("default ramp should go dark to light")
	}
	for i, e := range pal {
		if e.Scale != 1 || e.Offset != 0 {
			t.Errorf("entry %d: scale %v offset %v, want 1/0", i, e.Scale, e.Offset)
		}
	}
}
