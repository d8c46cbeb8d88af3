// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

// Package dither implements ordered (matrix-threshold) dithering: it
// classifies every grayscale pixel against an ordered palette using a
// periodic threshold matrix, through interchangeable scalar and vectorized
// strategies with optional row parallelism.
//
// A Config bundles the threshold matrix and palette. Auto picks the best
// strategy for the palette size, the vector width go-highway reports for the
// running CPU, and the available worker count; Build turns the strategy into
// a transform.Transform that can be prepared once per image shape and
// applied repeatedly:
//
//	cfg, err := dither.NewConfig(2, dither.Bayer(2), entries)
//	...
//	t := dither.Auto(cfg, pool).Build(cfg, pool)
//	t.Prepare(input.Shape(), output.Shape())
//	t.Apply(input.Slice(), output.MutSlice())
//
// All strategies produce pixel-identical output for the same Config, and
// parallel variants match their sequential counterparts exactly.
package dither
