// Package codec converts pixel buffers into compressed image bytes for
// transmission to the notebook front-end.
//
// Format selection, in order:
//
//  1. JPEG-XL, when an encoder has been registered (lossless at
//     quality >= 100, lossy below).
//  2. PNG for quality >= 100 (lossless).
//  3. JPEG at the requested quality, falling back to PNG when the
//     JPEG encoder cannot handle the buffer.
//
// An alpha channel is always dropped before encoding; the input buffer
// is never modified.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/vispy/rfbkit/internal/pixel"
)

// MIME types returned by Compress.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeJXL  = "image/jxl"
)

// Encoder holds the codec callbacks used by Compress. The zero value is
// not usable; Default() wires the stdlib PNG/JPEG encoders and the
// registered JPEG-XL encoder, if any. Tests substitute individual
// callbacks to exercise the fallback chain.
type Encoder struct {
	// JXL is the optional JPEG-XL encoder. Nil means unavailable.
	JXL JXLEncoder
	// PNG encodes an image losslessly. Must not be nil.
	PNG func(image.Image) ([]byte, error)
	// JPEG encodes an image at the given quality. An error means the
	// encoder cannot handle this image and PNG is used instead.
	JPEG func(image.Image, int) ([]byte, error)
}

// Default returns an Encoder using the stdlib codecs and the registered
// JPEG-XL encoder.
func Default() *Encoder {
	return &Encoder{
		JXL:  registeredJXL(),
		PNG:  encodePNG,
		JPEG: encodeJPEG,
	}
}

// Compress encodes buf using the Default encoder.
// It returns the mimetype of the chosen format and the encoded bytes.
func Compress(buf *pixel.Buffer, quality int) (string, []byte, error) {
	return Default().Compress(buf, quality)
}

// Compress encodes buf with the selection policy described in the
// package comment. A (h, w, 4) buffer has its alpha channel dropped
// first, so RGBA and RGB input with identical color samples produce
// identical output.
func (e *Encoder) Compress(buf *pixel.Buffer, quality int) (string, []byte, error) {
	if err := buf.Validate(); err != nil {
		return "", nil, err
	}
	buf = buf.DropAlpha()

	if e.JXL != nil {
		data, err := e.JXL.Encode(buf, quality >= 100, jxlEffort, jxlThreads)
		if err != nil {
			return "", nil, fmt.Errorf("jxl encode: %w", err)
		}
		return MimeJXL, data, nil
	}

	img, err := buf.Image()
	if err != nil {
		return "", nil, err
	}

	if quality >= 100 {
		data, err := e.PNG(img)
		if err != nil {
			return "", nil, fmt.Errorf("png encode: %w", err)
		}
		return MimePNG, data, nil
	}

	data, err := e.JPEG(img, quality)
	if err != nil {
		// JPEG could not handle this image; PNG always can.
		data, err = e.PNG(img)
		if err != nil {
			return "", nil, fmt.Errorf("png encode: %w", err)
		}
		return MimePNG, data, nil
	}
	return MimeJPEG, data, nil
}

// encodeJPEG encodes via the stdlib JPEG encoder.
func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
