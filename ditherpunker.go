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

// Package ditherpunker turns images into ordered-dithered pixel art. It
// wires the texture, transform and dither packages into one Process call
// driven by a JSON configuration.
package ditherpunker

import (
	"fmt"
	"io"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/durhenkd/ditherpunker/config"
	"github.com/durhenkd/ditherpunker/dither"
	"github.com/durhenkd/ditherpunker/imageio"
	"github.com/durhenkd/ditherpunker/palette"
	"github.com/durhenkd/ditherpunker/texture"
	"github.com/durhenkd/ditherpunker/transform"
)

// Options tweaks a Process run beyond what the configuration file
// carries. The zero value picks the automatic strategy and a pool sized
// to GOMAXPROCS.
type Options struct {
	// Pool runs the row-parallel kernels. Nil creates a temporary pool
	// for the duration of the call.
	Pool *workerpool.Pool

	// Strategy overrides automatic strategy selection when non-nil.
	Strategy *dither.Strategy

	// GraySnapshot, when non-nil, receives a raw texture snapshot of the
	// brightness and contrast adjusted grayscale stage.
	GraySnapshot io.Writer
}

// Process resizes img to the configured processing dimensions, converts
// it to grayscale, applies brightness and contrast, classifies every
// pixel against the tiled Bayer thresholds, and upscales the result.
func Process(cfg config.ProcessConfig, img *texture.Texture[float32], opts Options) (*texture.Texture[palette.Color], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	order, err := cfg.DitheringType.Order()
	if err != nil {
		return nil, err
	}
	entries, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	dcfg, err := dither.NewConfig(order, dither.Bayer(order), entries)
	if err != nil {
		return nil, fmt.Errorf("ditherpunker: %w", err)
	}

	pool := opts.Pool
	if pool == nil {
		pool = workerpool.New(0)
		defer pool.Close()
	}

	log := Logger()

	resized := imageio.Fit(img, cfg.ProcessingWidth, cfg.ProcessingHeight)
	log.Debug("resized input",
		"from", img.Shape().String(),
		"to", resized.Shape().String())

	grayShape := texture.Shape{Width: resized.Width(), Height: resized.Height(), Planes: 1}

	strategy := dither.Auto(dcfg, pool)
	if opts.Strategy != nil {
		strategy = *opts.Strategy
	}
	log.Info("processing",
		"shape", grayShape.String(),
		"palette", dcfg.PaletteLen(),
		"order", order,
		"strategy", strategy.String(),
		"cpu", hwy.CurrentName())

	gray := transform.AutoGrayscale(resized.Shape(), pool)
	adjust := transform.NewBrightnessContrast(cfg.ContrastDelta, cfg.BrightnessDelta, pool)
	classify := strategy.Build(dcfg, pool)

	// front's buffer holds the raw grayscale, full's buffer the adjusted
	// grayscale that thresholds classify
	grayBuf := texture.NewWithShape[float32](grayShape)
	adjustedBuf := texture.NewWithShape[float32](grayShape)
	front := transform.ChainWithBuffer[float32, float32, float32](gray, adjust, grayBuf)
	full := transform.ChainWithBuffer[float32, float32, palette.Color](front, classify, adjustedBuf)

	out := texture.NewWithShape[palette.Color](grayShape)
	full.Prepare(resized.Shape(), grayShape)
	full.Apply(resized.Slice(), out.MutSlice())

	if opts.GraySnapshot != nil {
		if err := writeGraySnapshot(opts.GraySnapshot, full); err != nil {
			return nil, err
		}
	}

	if cfg.OutputScale > 1 {
		out = imageio.Upscale(out, cfg.OutputScale)
		log.Debug("upscaled output", "factor", cfg.OutputScale, "shape", out.Shape().String())
	}
	return out, nil
}

func writeGraySnapshot(w io.Writer, full *transform.Pipeline[float32, float32, palette.Color]) error {
	snap := full.Buffer()
	if err := texture.WriteRaw(w, snap); err != nil {
		return fmt.Errorf("ditherpunker: writing grayscale snapshot: %w", err)
	}
	return nil
}
