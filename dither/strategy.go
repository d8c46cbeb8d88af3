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
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/durhenkd/ditherpunker/palette"
	"github.com/durhenkd/ditherpunker/transform"
)

// Kind selects a classification algorithm.
type Kind int

const (
	// KindScalar is the sequential-scan reference implementation.
	KindScalar Kind = iota

	// KindFixed compares all palette bands in one lane-wide operation;
	// it requires the palette length to equal the lane count.
	KindFixed

	// KindFit handles arbitrary palette lengths by iterating zero-padded
	// lane-wide chunks.
	KindFit
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindFixed:
		return "simd-fixed"
	case KindFit:
		return "simd-fit"
	default:
		return "unknown"
	}
}

// Strategy describes one concrete classification strategy. It is immutable;
// Build turns it into a transform instance.
type Strategy struct {
	Kind  Kind
	Lanes int
	// Parallel selects the row-parallel variant.
	Parallel bool
}

func (s Strategy) String() string {
	name := s.Kind.String()
	if s.Kind != KindScalar {
		name = fmt.Sprintf("%s%d", name, s.Lanes)
	}
	if s.Parallel {
		name += "-par"
	}
	return name
}

// ParseStrategy parses the textual form produced by Strategy.String, such
// as "scalar", "simd-fixed4" or "simd-fit8-par".
func ParseStrategy(s string) (Strategy, error) {
	var out Strategy
	if rest, ok := strings.CutSuffix(s, "-par"); ok {
		out.Parallel = true
		s = rest
	}

	if s == "scalar" {
		out.Kind = KindScalar
		return out, nil
	}

	var digits string
	switch {
	case strings.HasPrefix(s, "simd-fixed"):
		out.Kind = KindFixed
		digits = s[len("simd-fixed"):]
	case strings.HasPrefix(s, "simd-fit"):
		out.Kind = KindFit
		digits = s[len("simd-fit"):]
	default:
		return Strategy{}, fmt.Errorf("dither: unknown strategy %q", s)
	}

	lanes, err := strconv.Atoi(digits)
	if err != nil {
		return Strategy{}, fmt.Errorf("dither: strategy %q: bad lane count: %w", s, err)
	}
	switch lanes {
	case 2, 4, 8, 16:
		out.Lanes = lanes
	default:
		return Strategy{}, fmt.Errorf("dither: strategy %q: lane count must be 2, 4, 8 or 16", s)
	}
	return out, nil
}

// Auto picks the best-fit strategy for the palette size, the vector width
// go-highway reports for float32 on the running CPU, and the worker count of
// the given pool (nil selects the sequential variants).
func Auto(cfg *Config, pool *workerpool.Pool) Strategy {
	workers := 1
	if pool != nil {
		workers = pool.NumWorkers()
	}
	return autoStrategy(cfg.PaletteLen(), hwy.MaxLanes[float32](), workers)
}

// autoStrategy is the pure decision table behind Auto.
//
//	n < 2            -> scalar
//	n == width       -> fixed{width}
//	otherwise        -> fit{lanesFit(n) capped at width}, scalar when the
//	                    capped lane count leaves the supported [2,16] range
func autoStrategy(n, width, workers int) Strategy {
	par := workers > 1

	if n < 2 {
		return Strategy{Kind: KindScalar, Parallel: par}
	}
	if n == width {
		return Strategy{Kind: KindFixed, Lanes: width, Parallel: par}
	}

	lanes := lanesFit(n)
	for lanes > width {
		lanes >>= 1
	}
	if lanes < 2 || lanes > 16 {
		return Strategy{Kind: KindScalar, Parallel: par}
	}
	return Strategy{Kind: KindFit, Lanes: lanes, Parallel: par}
}

// lanesFit computes the lane count that wastes the fewest padding lanes for
// a palette of length n: the power of two closest to n, halved until it no
// longer exceeds n.
func lanesFit(n int) int {
	lanes := closestPow2(n)
	for lanes > n {
		lanes >>= 1
	}
	return lanes
}

// closestPow2 returns the power of two nearest to n, preferring the lower
// one on ties. closestPow2(0) == 1.
func closestPow2(n int) int {
	if n <= 0 {
		return 1
	}
	lower := 1 << (bits.Len(uint(n)) - 1)
	upper := lower << 1
	if n-lower <= upper-n {
		return lower
	}
	return upper
}

// Build constructs the transform for this strategy. The config is owned by
// the returned transform and must not be mutated afterwards. The pool is
// used only by parallel strategies; a nil pool degrades them to sequential
// execution.
//
// Build panics on contract violations: an unsupported lane count, or a
// fixed strategy whose lane count differs from the palette length. Those
// indicate a wiring bug in the caller, not a recoverable condition.
func (s Strategy) Build(cfg *Config, pool *workerpool.Pool) transform.Transform[float32, palette.Color] {
	if !s.Parallel {
		pool = nil
	}

	switch s.Kind {
	case KindScalar:
		return newScalarTransform(cfg, pool)
	case KindFixed:
		switch s.Lanes {
		case 2, 4, 8, 16:
			return newFixedTransform(cfg, s.Lanes, pool)
		}
	case KindFit:
		switch s.Lanes {
		case 2, 4, 8, 16:
			return newFitTransform(cfg, s.Lanes, pool)
		}
	}
	panic(fmt.Sprintf("dither: unsupported strategy %s", s))
}
