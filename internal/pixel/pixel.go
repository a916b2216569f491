// Package pixel defines the in-memory frame buffer exchanged between a
// widget, the compressor, and the snapshot renderer.
//
// A Buffer is a row-major array of uint8 samples with a (height, width)
// or (height, width, channels) shape. Buffers are read-only from the
// perspective of every consumer in this module: operations that need a
// different layout (e.g. dropping an alpha channel) return a new Buffer
// and leave the original untouched.
package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// DType identifies the sample type of a Buffer. Only 8-bit samples are
// supported by the encoders in this module; the field exists so callers
// holding other sample types fail with a clear error instead of
// producing garbage bytes.
type DType string

const (
	// Uint8 is one byte per sample.
	Uint8 DType = "uint8"
)

// Buffer is a pixel array plus its shape metadata.
type Buffer struct {
	// Data holds the samples in row-major order.
	Data []byte
	// Shape is (height, width) for grayscale, or
	// (height, width, channels) with channels 3 (RGB) or 4 (RGBA).
	Shape []int
	// DType is the sample type. The zero value is treated as Uint8.
	DType DType
}

// New creates a Buffer and validates data length against the shape.
func New(data []byte, shape ...int) (*Buffer, error) {
	b := &Buffer{Data: data, Shape: shape, DType: Uint8}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewGray allocates a zeroed (height, width) buffer.
func NewGray(width, height int) *Buffer {
	return &Buffer{Data: make([]byte, height*width), Shape: []int{height, width}, DType: Uint8}
}

// NewRGB allocates a zeroed (height, width, 3) buffer.
func NewRGB(width, height int) *Buffer {
	return &Buffer{Data: make([]byte, height*width*3), Shape: []int{height, width, 3}, DType: Uint8}
}

// NewRGBA allocates a zeroed (height, width, 4) buffer.
func NewRGBA(width, height int) *Buffer {
	return &Buffer{Data: make([]byte, height*width*4), Shape: []int{height, width, 4}, DType: Uint8}
}

// Height returns the first shape dimension, or 0 for an invalid shape.
func (b *Buffer) Height() int {
	if len(b.Shape) < 2 {
		return 0
	}
	return b.Shape[0]
}

// Width returns the second shape dimension, or 0 for an invalid shape.
func (b *Buffer) Width() int {
	if len(b.Shape) < 2 {
		return 0
	}
	return b.Shape[1]
}

// Channels returns the number of samples per pixel: 1 for a 2-D shape,
// the third dimension otherwise.
func (b *Buffer) Channels() int {
	if len(b.Shape) == 3 {
		return b.Shape[2]
	}
	if len(b.Shape) == 2 {
		return 1
	}
	return 0
}

// Validate checks shape, dtype and data length consistency.
func (b *Buffer) Validate() error {
	if b == nil || b.Data == nil {
		return fmt.Errorf("pixel: nil buffer")
	}
	if b.DType != "" && b.DType != Uint8 {
		return fmt.Errorf("pixel: unsupported dtype %q", b.DType)
	}
	switch len(b.Shape) {
	case 2:
	case 3:
		if c := b.Shape[2]; c != 1 && c != 3 && c != 4 {
			return fmt.Errorf("pixel: unsupported channel count %d", c)
		}
	default:
		return fmt.Errorf("pixel: shape must have 2 or 3 dimensions, got %d", len(b.Shape))
	}
	h, w := b.Shape[0], b.Shape[1]
	if h <= 0 || w <= 0 {
		return fmt.Errorf("pixel: invalid dimensions %dx%d", w, h)
	}
	want := h * w * b.Channels()
	if len(b.Data) != want {
		return fmt.Errorf("pixel: data length %d does not match shape %v (want %d)", len(b.Data), b.Shape, want)
	}
	return nil
}

// DropAlpha returns a buffer without an alpha channel. A (h, w, 4)
// buffer yields a new (h, w, 3) copy; any other shape is returned
// as-is. The receiver is never modified.
func (b *Buffer) DropAlpha() *Buffer {
	if len(b.Shape) != 3 || b.Shape[2] != 4 {
		return b
	}
	h, w := b.Shape[0], b.Shape[1]
	out := NewRGB(w, h)
	for i := 0; i < h*w; i++ {
		copy(out.Data[i*3:i*3+3], b.Data[i*4:i*4+3])
	}
	return out
}

// Image converts the buffer to a stdlib image for encoding. Grayscale
// buffers become *image.Gray; RGB and RGBA buffers become *image.NRGBA
// (RGB pixels get an opaque alpha). The pixel data is copied.
func (b *Buffer) Image() (image.Image, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	h, w := b.Height(), b.Width()
	switch b.Channels() {
	case 1:
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+w], b.Data[y*w:(y+1)*w])
		}
		return img, nil
	case 3:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src := (y*w + x) * 3
				dst := y*img.Stride + x*4
				img.Pix[dst] = b.Data[src]
				img.Pix[dst+1] = b.Data[src+1]
				img.Pix[dst+2] = b.Data[src+2]
				img.Pix[dst+3] = 0xff
			}
		}
		return img, nil
	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+w*4], b.Data[y*w*4:(y+1)*w*4])
		}
		return img, nil
	default:
		return nil, fmt.Errorf("pixel: unsupported channel count %d", b.Channels())
	}
}

// FromImage converts a decoded image into a (h, w, 4) buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b := NewRGBA(w, h)
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			copy(b.Data[y*w*4:(y+1)*w*4], src.Pix[y*src.Stride:y*src.Stride+w*4])
		}
		return b
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 4
			b.Data[i] = c.R
			b.Data[i+1] = c.G
			b.Data[i+2] = c.B
			b.Data[i+3] = c.A
		}
	}
	return b
}
