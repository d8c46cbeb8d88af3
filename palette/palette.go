// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

// Package palette defines the ordered output palette used by the dithering
// transforms. Entry order is significant: it fixes the scan order for
// first-match classification and, for the vectorized strategies, which lane
// owns which entry.
package palette

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 4-channel color with components normalized to [0, 1].
type Color struct {
	R, G, B, A float32
}

// FromBytes converts 8-bit channel values to a normalized Color.
func FromBytes(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// ParseHex parses a "#rrggbb" or "rrggbb" color string. The result is fully
// opaque.
func ParseHex(s string) (Color, error) {
	clean := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "#")
	if len(clean) != 6 {
		return Color{}, fmt.Errorf("palette: hex color %q must have 6 digits", s)
	}

	var channels [3]float32
	for i := range channels {
		v, err := strconv.ParseUint(clean[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("palette: hex color %q: %w", s, err)
		}
		channels[i] = float32(v) / 255
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: 1}, nil
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5),
		uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5))
}

// Luma returns the BT.601 luminance of the color.
func (c Color) Luma() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func (c Color) String() string { return c.Hex() }

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Entry is one palette color with its threshold band adjustment: a pixel
// classifies into the entry when value < threshold*Scale + Offset.
type Entry struct {
	Color  Color
	Scale  float32
	Offset float32
}

// Default returns the two-entry black/white ramp used when no palette is
// configured.
func Default() []Entry {
	return []Entry{
		{Color: Color{R: 0, G: 0, B: 0, A: 1}, Scale: 1, Offset: 0},
		{Color: Color{R: 1, G: 1, B: 1, A: 1}, Scale: 1, Offset: 0},
	}
}
