package codec

import (
	"fmt"
	"os"
	"sync"

	"github.com/vispy/rfbkit/internal/pixel"
)

// Fixed JPEG-XL tuning. Effort 1 is the fastest preset; four threads
// matches the front-end's decode parallelism. Neither is exposed.
const (
	jxlEffort  = 1
	jxlThreads = 4
)

// JXLEncoder is the boundary to an external JPEG-XL implementation.
// This module deliberately implements no codec itself: a build that
// links one (typically cgo against libjxl) registers it via
// RegisterJXL from an init function.
type JXLEncoder interface {
	Encode(buf *pixel.Buffer, lossless bool, effort, numThreads int) ([]byte, error)
}

var (
	jxlMu   sync.Mutex
	jxl     JXLEncoder
	jxlNote sync.Once
)

// RegisterJXL installs the JPEG-XL encoder used by Default and
// Compress. Intended to be called once during initialization.
func RegisterJXL(e JXLEncoder) {
	jxlMu.Lock()
	defer jxlMu.Unlock()
	jxl = e
}

// JXLAvailable reports whether a JPEG-XL encoder has been registered.
func JXLAvailable() bool {
	jxlMu.Lock()
	defer jxlMu.Unlock()
	return jxl != nil
}

// registeredJXL returns the registered encoder, printing a one-time
// notice on first use without one. Absence is not an error: the
// PNG/JPEG chain covers every buffer.
func registeredJXL() JXLEncoder {
	jxlMu.Lock()
	defer jxlMu.Unlock()
	if jxl == nil {
		jxlNote.Do(func() {
			fmt.Fprintln(os.Stderr, "rfbkit: no jpeg-xl encoder registered, falling back to jpeg/png")
		})
	}
	return jxl
}
