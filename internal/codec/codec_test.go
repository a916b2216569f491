package codec

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/vispy/rfbkit/internal/pixel"
)

// testRGB returns a small deterministic RGB buffer.
func testRGB(t *testing.T) *pixel.Buffer {
	t.Helper()
	buf := pixel.NewRGB(4, 3)
	for i := range buf.Data {
		buf.Data[i] = byte(i * 5)
	}
	return buf
}

// withAlpha returns the same color samples as buf plus an alpha channel.
func withAlpha(t *testing.T, buf *pixel.Buffer, alpha byte) *pixel.Buffer {
	t.Helper()
	out := pixel.NewRGBA(buf.Width(), buf.Height())
	for i := 0; i < buf.Width()*buf.Height(); i++ {
		copy(out.Data[i*4:i*4+3], buf.Data[i*3:i*3+3])
		out.Data[i*4+3] = alpha
	}
	return out
}

func TestCompressDropsAlpha(t *testing.T) {
	rgb := testRGB(t)
	rgba := withAlpha(t, rgb, 128)

	for _, quality := range []int{50, 100} {
		mimeRGB, dataRGB, err := Compress(rgb, quality)
		if err != nil {
			t.Fatalf("Compress(rgb, %d): %v", quality, err)
		}
		mimeRGBA, dataRGBA, err := Compress(rgba, quality)
		if err != nil {
			t.Fatalf("Compress(rgba, %d): %v", quality, err)
		}
		if mimeRGB != mimeRGBA {
			t.Errorf("quality %d: mimetype %q != %q", quality, mimeRGBA, mimeRGB)
		}
		if !bytes.Equal(dataRGB, dataRGBA) {
			t.Errorf("quality %d: rgba output differs from pre-stripped rgb output", quality)
		}
	}
}

func TestCompressLossless(t *testing.T) {
	buf := testRGB(t)

	mimetype, data, err := Compress(buf, 100)
	if err != nil {
		t.Fatal(err)
	}
	if mimetype != MimePNG {
		t.Fatalf("mimetype = %q, want %q", mimetype, MimePNG)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	back := pixel.FromImage(img).DropAlpha()
	if !bytes.Equal(back.Data, buf.Data) {
		t.Errorf("lossless round trip changed pixel data")
	}
}

func TestCompressLossy(t *testing.T) {
	mimetype, data, err := Compress(testRGB(t), 80)
	if err != nil {
		t.Fatal(err)
	}
	if mimetype != MimeJPEG {
		t.Errorf("mimetype = %q, want %q", mimetype, MimeJPEG)
	}
	if len(data) == 0 {
		t.Errorf("empty output")
	}
}

func TestCompressJPEGFallback(t *testing.T) {
	e := &Encoder{
		PNG: encodePNG,
		JPEG: func(image.Image, int) ([]byte, error) {
			return nil, errors.New("unsupported subsampling")
		},
	}

	mimetype, data, err := e.Compress(testRGB(t), 80)
	if err != nil {
		t.Fatal(err)
	}
	if mimetype != MimePNG {
		t.Errorf("mimetype = %q, want %q after jpeg failure", mimetype, MimePNG)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("fallback output is not valid png: %v", err)
	}
}

// fakeJXL records the lossless flag it was called with.
type fakeJXL struct {
	lossless   bool
	effort     int
	numThreads int
}

func (f *fakeJXL) Encode(buf *pixel.Buffer, lossless bool, effort, numThreads int) ([]byte, error) {
	f.lossless = lossless
	f.effort = effort
	f.numThreads = numThreads
	return []byte{0xff, 0x0a}, nil
}

func TestCompressPrefersJXL(t *testing.T) {
	tests := []struct {
		name         string
		quality      int
		wantLossless bool
	}{
		{"lossy below 100", 90, false},
		{"lossless at 100", 100, true},
		{"lossless above 100", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jxl := &fakeJXL{}
			e := &Encoder{JXL: jxl, PNG: encodePNG, JPEG: encodeJPEG}

			mimetype, data, err := e.Compress(testRGB(t), tt.quality)
			if err != nil {
				t.Fatal(err)
			}
			if mimetype != MimeJXL {
				t.Errorf("mimetype = %q, want %q", mimetype, MimeJXL)
			}
			if len(data) == 0 {
				t.Errorf("empty output")
			}
			if jxl.lossless != tt.wantLossless {
				t.Errorf("lossless = %v, want %v", jxl.lossless, tt.wantLossless)
			}
			if jxl.effort != jxlEffort || jxl.numThreads != jxlThreads {
				t.Errorf("tuning = (%d, %d), want (%d, %d)", jxl.effort, jxl.numThreads, jxlEffort, jxlThreads)
			}
		})
	}
}

func TestCompressInvalidBuffer(t *testing.T) {
	if _, _, err := Compress(&pixel.Buffer{Data: []byte{1}, Shape: []int{1}}, 90); err == nil {
		t.Errorf("Compress accepted an invalid buffer")
	}
}

func TestRegisterJXL(t *testing.T) {
	defer RegisterJXL(nil)

	if JXLAvailable() {
		t.Fatal("no encoder registered yet")
	}
	RegisterJXL(&fakeJXL{})
	if !JXLAvailable() {
		t.Fatal("encoder registered but not reported available")
	}

	mimetype, _, err := Compress(testRGB(t), 90)
	if err != nil {
		t.Fatal(err)
	}
	if mimetype != MimeJXL {
		t.Errorf("mimetype = %q, want %q with registered encoder", mimetype, MimeJXL)
	}
}
