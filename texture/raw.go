// Copyright 2026 ditherpunker Authors. SPDX-License-Identifier: Apache-2.0

package texture

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Raw snapshot format for float32 textures, used to dump intermediate
// grayscale buffers for debugging and to feed benchmarks without an image
// decoder. Layout: 5-byte magic, big-endian uint32 width/height/planes,
// then the zstd-compressed little-endian float32 payload.

const rawMagic = "DPTX\n"

// WriteRaw writes a compressed snapshot of the texture to w.
func WriteRaw(w io.Writer, t *Texture[float32]) error {
	if _, err := io.WriteString(w, rawMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}

	var header [12]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(t.shape.Width))
	binary.BigEndian.PutUint32(header[4:8], uint32(t.shape.Height))
	binary.BigEndian.PutUint32(header[8:12], uint32(t.shape.Planes))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	raw := make([]byte, 4*len(t.data))
	for i, v := range t.data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("zstd encoder: %w", err)
	}
	payload := enc.EncodeAll(raw, nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// ReadRaw reads a snapshot written by WriteRaw.
func ReadRaw(r io.Reader) (*Texture[float32], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) < len(rawMagic)+12 {
		return nil, fmt.Errorf("read header: snapshot truncated at %d bytes", len(data))
	}
	if string(data[:len(rawMagic)]) != rawMagic {
		return nil, fmt.Errorf("bad magic: %q", string(data[:len(rawMagic)]))
	}

	pos := len(rawMagic)
	shape := Shape{
		Width:  int(binary.BigEndian.Uint32(data[pos : pos+4])),
		Height: int(binary.BigEndian.Uint32(data[pos+4 : pos+8])),
		Planes: int(binary.BigEndian.Uint32(data[pos+8 : pos+12])),
	}
	pos += 12
	if shape.Width <= 0 || shape.Height <= 0 || shape.Planes <= 0 {
		return nil, fmt.Errorf("bad shape: %s", shape)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data[pos:], nil)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	if len(raw) != 4*shape.Count() {
		return nil, fmt.Errorf("payload length %d does not match shape %s", len(raw), shape)
	}

	t := NewWithShape[float32](shape)
	for i := range t.data {
		t.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return t, nil
}
