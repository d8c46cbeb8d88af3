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

// Package imageio converts between image files and float32 textures.
// Decoding registers the standard formats plus BMP, TIFF and WebP.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/durhenkd/ditherpunker/palette"
	"github.com/durhenkd/ditherpunker/texture"
)

// Load decodes an image file into a 4-plane RGBA texture with channel
// values normalized to [0, 1].
func Load(path string) (*texture.Texture[float32], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image into a 4-plane RGBA texture.
func FromImage(img image.Image) *texture.Texture[float32] {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Going through NRGBA once beats per-pixel At on every decoder's
	// native type.
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	out := texture.New[float32](w, h, 4)
	buf := out.Data()
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		copyRowNormalized(buf[y*w*4:(y+1)*w*4], row)
	}
	return out
}

func copyRowNormalized(dst []float32, src []uint8) {
	for i, v := range src {
		dst[i] = float32(v) / 255
	}
}

// ToImage converts a palette color texture back into an NRGBA image.
func ToImage(t *texture.Texture[palette.Color]) *image.NRGBA {
	w, h := t.Width(), t.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	data := t.Data()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := data[y*w+x]
			i := y*img.Stride + x*4
			img.Pix[i+0] = channelByte(c.R)
			img.Pix[i+1] = channelByte(c.G)
			img.Pix[i+2] = channelByte(c.B)
			img.Pix[i+3] = channelByte(c.A)
		}
	}
	return img
}

func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Save writes a palette color texture as a PNG file.
func Save(path string, t *texture.Texture[palette.Color]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, ToImage(t)); err != nil {
		return fmt.Errorf("imageio: encoding %s: %w", path, err)
	}
	return f.Close()
}

// Fit resizes an RGBA texture to the target dimensions with Catmull-Rom
// interpolation, preserving aspect ratio by fitting inside the target.
func Fit(t *texture.Texture[float32], width, height int) *texture.Texture[float32] {
	if t.Planes() != 4 {
		panic(fmt.Sprintf("imageio: Fit needs a 4-plane texture, got %d planes", t.Planes()))
	}

	srcW, srcH := t.Width(), t.Height()
	dstW, dstH := fitDims(srcW, srcH, width, height)
	if dstW == srcW && dstH == srcH {
		return t.Clone()
	}

	src := toNRGBAFloat(t)
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// fitDims shrinks or grows (srcW, srcH) uniformly so the result fits
// inside (maxW, maxH) while keeping aspect ratio.
func fitDims(srcW, srcH, maxW, maxH int) (int, int) {
	rw := float64(maxW) / float64(srcW)
	rh := float64(maxH) / float64(srcH)
	r := rw
	if rh < r {
		r = rh
	}

	w := int(float64(srcW)*r + 0.5)
	h := int(float64(srcH)*r + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Upscale replicates every output pixel into a factor x factor block.
func Upscale(t *texture.Texture[palette.Color], factor int) *texture.Texture[palette.Color] {
	if factor <= 1 {
		return t
	}

	w, h := t.Width(), t.Height()
	out := texture.New[palette.Color](w*factor, h*factor, 1)

	src := t.Data()
	dst := out.Data()
	outW := w * factor
	for y := 0; y < h; y++ {
		base := (y * factor) * outW
		for x := 0; x < w; x++ {
			c := src[y*w+x]
			for dx := 0; dx < factor; dx++ {
				dst[base+x*factor+dx] = c
			}
		}
		// replicate the filled row for the remaining factor-1 rows
		first := dst[base : base+outW]
		for dy := 1; dy < factor; dy++ {
			copy(dst[base+dy*outW:base+(dy+1)*outW], first)
		}
	}
	return out
}

func toNRGBAFloat(t *texture.Texture[float32]) *image.NRGBA {
	w, h := t.Width(), t.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	data := t.Data()
	for i := 0; i < w*h*4; i++ {
		img.Pix[i] = channelByte(data[i])
	}
	return img
}
