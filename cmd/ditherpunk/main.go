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

// ditherpunk converts an image into ordered-dithered pixel art.
//
// Usage:
//
//	ditherpunk -input photo.png -output art.png -config process.json
//
// Without -config a default black and white 2x2 Bayer run is used.
// -write-config dumps the default configuration as a starting point.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/durhenkd/ditherpunker"
	"github.com/durhenkd/ditherpunker/config"
	"github.com/durhenkd/ditherpunker/dither"
	"github.com/durhenkd/ditherpunker/imageio"
)

var (
	flagInput       = flag.String("input", "", "input image path (png, jpeg, gif, bmp, tiff, webp)")
	flagOutput      = flag.String("output", "", "output PNG path")
	flagConfig      = flag.String("config", "", "JSON processing configuration; defaults used when empty")
	flagWriteConfig = flag.String("write-config", "", "write the default configuration to this path and exit")
	flagStrategy    = flag.String("strategy", "", "force a strategy, e.g. scalar, simd-fixed4, simd-fit8-par")
	flagDumpGray    = flag.String("dump-gray", "", "write the adjusted grayscale stage as a raw texture snapshot")
	flagVerbose     = flag.Bool("v", false, "debug logging to stderr")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ditherpunk:", err)
		os.Exit(1)
	}
}

func run() error {
	if *flagWriteConfig != "" {
		cfg := config.Default()
		return cfg.Write(*flagWriteConfig)
	}

	if *flagInput == "" || *flagOutput == "" {
		flag.Usage()
		return fmt.Errorf("both -input and -output are required")
	}

	level := slog.LevelInfo
	if *flagVerbose {
		level = slog.LevelDebug
	}
	ditherpunker.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		cfg, err = config.Read(*flagConfig)
		if err != nil {
			return err
		}
	}

	var opts ditherpunker.Options
	if *flagStrategy != "" {
		s, err := dither.ParseStrategy(*flagStrategy)
		if err != nil {
			return err
		}
		opts.Strategy = &s
	}
	if *flagDumpGray != "" {
		f, err := os.Create(*flagDumpGray)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *flagDumpGray, err)
		}
		defer f.Close()
		opts.GraySnapshot = f
	}

	img, err := imageio.Load(*flagInput)
	if err != nil {
		return err
	}

	out, err := ditherpunker.Process(cfg, img, opts)
	if err != nil {
		return err
	}
	return imageio.Save(*flagOutput, out)
}
