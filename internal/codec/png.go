package codec

import (
	"bytes"
	"image"
	"image/png"

	"github.com/vispy/rfbkit/internal/pixel"
)

// EncodePNG encodes a pixel buffer losslessly as PNG, keeping any
// alpha channel. This is the static snapshot path; live frame
// transmission goes through Compress instead.
func EncodePNG(buf *pixel.Buffer) ([]byte, error) {
	img, err := buf.Image()
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// pngEncoder is the shared PNG encoder for frame encoding.
// It is not safe for concurrent use.
var pngEncoder = &png.Encoder{
	CompressionLevel: png.BestSpeed,
	BufferPool:       &pngPool{},
}

// encodePNG encodes an image losslessly as PNG.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pngPool implements png.EncoderBufferPool, letting consecutive frame
// encodes reuse the same scratch buffer. All encoding happens in a
// single goroutine, so nothing as sophisticated as a sync.Pool is
// needed.
type pngPool struct {
	b *png.EncoderBuffer
}

func (p *pngPool) Get() *png.EncoderBuffer   { return p.b }
func (p *pngPool) Put(eb *png.EncoderBuffer) { p.b = eb }
