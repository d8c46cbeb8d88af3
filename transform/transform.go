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

// Package transform defines the prepare/apply contract shared by every
// processing stage and the Pipeline combinator that chains stages through a
// persistent intermediate buffer.
package transform

import (
	"fmt"

	"github.com/durhenkd/ditherpunker/texture"
)

// Transform converts an In-typed texture into an Out-typed texture.
//
// Prepare is called once per shape pair before repeated Apply calls; stages
// use it for one-time setup keyed on dimensions (sizing caches to the image
// width). Applying a shape different from the one last prepared is a contract
// violation and panics.
//
// Apply returns the views it was given so stages can be chained without
// copying. It must be invocable repeatedly without reallocation.
type Transform[In, Out any] interface {
	Prepare(in, out texture.Shape)
	Apply(in texture.Slice[In], out texture.MutSlice[Out]) (texture.Slice[In], texture.MutSlice[Out])
}

// Once prepares t for the given views' shapes and applies it a single time.
func Once[In, Out any](t Transform[In, Out], in texture.Slice[In], out texture.MutSlice[Out]) (texture.Slice[In], texture.MutSlice[Out]) {
	t.Prepare(in.Shape(), out.Shape())
	return t.Apply(in, out)
}

// Pipeline chains two transforms A->B and B->C into a single A->C transform.
// The B-shaped intermediate texture is owned by the pipeline and reused
// across invocations, so chaining allocates exactly once.
type Pipeline[A, B, C any] struct {
	first  Transform[A, B]
	second Transform[B, C]
	mid    *texture.Texture[B]
}

// Chain builds a pipeline with an intermediate buffer of the given shape.
func Chain[A, B, C any](first Transform[A, B], second Transform[B, C], mid texture.Shape) *Pipeline[A, B, C] {
	return &Pipeline[A, B, C]{
		first:  first,
		second: second,
		mid:    texture.NewWithShape[B](mid),
	}
}

// ChainWithBuffer builds a pipeline around a pre-allocated intermediate
// texture.
func ChainWithBuffer[A, B, C any](first Transform[A, B], second Transform[B, C], mid *texture.Texture[B]) *Pipeline[A, B, C] {
	return &Pipeline[A, B, C]{first: first, second: second, mid: mid}
}

// Buffer exposes the intermediate texture. After Apply it holds the
// output of the first stage, which callers can inspect or snapshot.
func (p *Pipeline[A, B, C]) Buffer() *texture.Texture[B] { return p.mid }

// Prepare cascades preparation through both stages via the intermediate
// shape.
func (p *Pipeline[A, B, C]) Prepare(in, out texture.Shape) {
	mid := p.mid.Shape()
	p.first.Prepare(in, mid)
	p.second.Prepare(mid, out)
}

// Apply runs both stages through the owned intermediate buffer.
func (p *Pipeline[A, B, C]) Apply(in texture.Slice[A], out texture.MutSlice[C]) (texture.Slice[A], texture.MutSlice[C]) {
	in, _ = p.first.Apply(in, p.mid.MutSlice())
	_, out = p.second.Apply(p.mid.Slice(), out)
	return in, out
}

// checkShapes panics when a stage is handed views whose shapes violate its
// contract. want/got describe the failing side for the panic message.
func checkShapes(stage string, want, got texture.Shape) {
	if want != got {
		panic(fmt.Sprintf("transform: %s shape mismatch: prepared for %s, applied to %s", stage, want, got))
	}
}
