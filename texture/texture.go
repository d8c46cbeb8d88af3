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

// Package texture provides the flat 2D/3D pixel buffers every processing
// stage exchanges.
//
// A Texture owns its storage; Slice and MutSlice are borrowing views over a
// texture (or over any caller-provided flat buffer) that carry the shape
// alongside the data. Transforms operate exclusively on views, so chaining
// stages never copies pixel data.
package texture

import "fmt"

// Shape describes the dimensions of a texture: width and height in pixels
// and the number of interleaved planes per pixel (1 for grayscale, 4 for
// RGBA).
type Shape struct {
	Width  int
	Height int
	Planes int
}

// Count returns the number of elements a flat buffer of this shape holds.
func (s Shape) Count() int {
	return s.Width * s.Height * s.Planes
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Width, s.Height, s.Planes)
}

// Texture is a 2D/3D pixel buffer with owned, flat storage of length
// Width*Height*Planes, laid out row-major with interleaved planes.
type Texture[T any] struct {
	shape Shape
	data  []T
}

// New creates a zero-initialized texture. Zero-filling makes a freshly
// allocated texture safe to read before the first write.
func New[T any](width, height, planes int) *Texture[T] {
	if width <= 0 || height <= 0 || planes <= 0 {
		return &Texture[T]{}
	}
	shape := Shape{Width: width, Height: height, Planes: planes}
	return &Texture[T]{
		shape: shape,
		data:  make([]T, shape.Count()),
	}
}

// NewWithShape creates a zero-initialized texture of the given shape.
func NewWithShape[T any](shape Shape) *Texture[T] {
	return New[T](shape.Width, shape.Height, shape.Planes)
}

// FromSlice creates a texture that copies the given flat buffer.
// The buffer length must equal shape.Count().
func FromSlice[T any](shape Shape, buf []T) *Texture[T] {
	if len(buf) != shape.Count() {
		panic(fmt.Sprintf("texture: buffer length %d does not match shape %s", len(buf), shape))
	}
	data := make([]T, len(buf))
	copy(data, buf)
	return &Texture[T]{shape: shape, data: data}
}

// Shape returns the texture dimensions.
func (t *Texture[T]) Shape() Shape { return t.shape }

// Width returns the texture width in pixels.
func (t *Texture[T]) Width() int { return t.shape.Width }

// Height returns the texture height in pixels.
func (t *Texture[T]) Height() int { return t.shape.Height }

// Planes returns the number of interleaved planes per pixel.
func (t *Texture[T]) Planes() int { return t.shape.Planes }

// Data returns the underlying flat buffer.
func (t *Texture[T]) Data() []T { return t.data }

// At returns the element at (x, y, plane).
func (t *Texture[T]) At(x, y, plane int) T {
	return t.data[(y*t.shape.Width+x)*t.shape.Planes+plane]
}

// Set writes the element at (x, y, plane).
func (t *Texture[T]) Set(x, y, plane int, v T) {
	t.data[(y*t.shape.Width+x)*t.shape.Planes+plane] = v
}

// Clone creates a deep copy of the texture.
func (t *Texture[T]) Clone() *Texture[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return &Texture[T]{shape: t.shape, data: data}
}

// Fill sets every element to the given value.
func (t *Texture[T]) Fill(v T) {
	for i := range t.data {
		t.data[i] = v
	}
}

// Slice returns a read-only borrowing view of the texture.
func (t *Texture[T]) Slice() Slice[T] {
	return Slice[T]{shape: t.shape, data: t.data}
}

// MutSlice returns a mutable borrowing view of the texture.
func (t *Texture[T]) MutSlice() MutSlice[T] {
	return MutSlice[T]{shape: t.shape, data: t.data}
}

// Slice is a read-only view over a flat pixel buffer.
type Slice[T any] struct {
	shape Shape
	data  []T
}

// NewSlice wraps a caller-owned flat buffer in a read-only view.
// The buffer length must equal shape.Count().
func NewSlice[T any](shape Shape, buf []T) Slice[T] {
	if len(buf) != shape.Count() {
		panic(fmt.Sprintf("texture: buffer length %d does not match shape %s", len(buf), shape))
	}
	return Slice[T]{shape: shape, data: buf}
}

// Shape returns the view dimensions.
func (s Slice[T]) Shape() Shape { return s.shape }

// Data returns the flat buffer behind the view.
func (s Slice[T]) Data() []T { return s.data }

// Row returns the elements of row y (all planes interleaved).
func (s Slice[T]) Row(y int) []T {
	stride := s.shape.Width * s.shape.Planes
	return s.data[y*stride : (y+1)*stride]
}

// MutSlice is a mutable view over a flat pixel buffer.
type MutSlice[T any] struct {
	shape Shape
	data  []T
}

// NewMutSlice wraps a caller-owned flat buffer in a mutable view.
// The buffer length must equal shape.Count().
func NewMutSlice[T any](shape Shape, buf []T) MutSlice[T] {
	if len(buf) != shape.Count() {
		panic(fmt.Sprintf("texture: buffer length %d does not match shape %s", len(buf), shape))
	}
	return MutSlice[T]{shape: shape, data: buf}
}

// Shape returns the view dimensions.
func (s MutSlice[T]) Shape() Shape { return s.shape }

// Data returns the flat buffer behind the view.
func (s MutSlice[T]) Data() []T { return s.data }

// Row returns the elements of row y (all planes interleaved).
func (s MutSlice[T]) Row(y int) []T {
	stride := s.shape.Width * s.shape.Planes
	return s.data[y*stride : (y+1)*stride]
}
