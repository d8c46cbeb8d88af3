// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package dither

// Quadrant offsets of the order-1 Bayer matrix; each doubling step nests
// them around the previous matrix.
var bayerQuadrants = [4]int{0, 2, 3, 1}

// Bayer returns the normalized threshold matrix of the given order as a flat
// row-major slice of side*side values in [0, 1), where side = 2^order.
// Order 1 is the classic 2x2 matrix [0, 0.5, 0.75, 0.25].
func Bayer(order int) []float32 {
	if order < 1 {
		panic("dither: bayer order must be at least 1")
	}
	side := 1 << order

	size := 1
	vals := []int{0}
	for size < side {
		double := 2 * size
		next := make([]int, double*double)
		for y := 0; y < double; y++ {
			for x := 0; x < double; x++ {
				next[y*double+x] = 4*vals[(y%size)*size+(x%size)] +
					bayerQuadrants[(y/size)*2+(x/size)]
			}
		}
		vals = next
		size = double
	}

	norm := float32(side * side)
	matrix := make([]float32, side*side)
	for i, v := range vals {
		matrix[i] = float32(v) / norm
	}
	return matrix
}
