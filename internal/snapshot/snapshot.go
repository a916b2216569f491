// Package snapshot renders a static image of a widget's last frame as
// an HTML fragment, for notebook front-ends that display rich output
// by MIME type.
//
// The fragment embeds the frame as a base64 PNG data URI inside an
// <img> sized to the widget's logical pixel size, wrapped in a
// positioned <div> with a small title overlay. Offline renderers (and
// the notebook pruner) recognize snapshots by the class attribute on
// that outer div.
package snapshot

import (
	"encoding/base64"
	"fmt"

	"github.com/vispy/rfbkit/internal/codec"
	"github.com/vispy/rfbkit/internal/pixel"
)

// HTMLMIME is the MIME type of the rendered representation.
const HTMLMIME = "text/html"

// Snapshot wraps a frame buffer plus display metadata. It holds a
// reference to the buffer, not a copy: re-rendering after the caller
// mutates the buffer in place reflects the new contents. The metadata
// is fixed at construction.
type Snapshot struct {
	// Data is the frame buffer. Shared with the caller, never modified.
	Data *pixel.Buffer
	// Width and Height are the CSS pixel size of the rendered image,
	// independent of the buffer's resolution.
	Width  int
	Height int
	// Title is shown in the overlay. Defaults to "snapshot".
	Title string
	// ClassName is the optional class attribute of the outer div.
	ClassName string
}

// New creates a Snapshot. An empty title defaults to "snapshot".
// The buffer must be a valid pixel array; passing anything else is a
// programming error, reported here rather than at render time.
func New(data *pixel.Buffer, width, height int, title, className string) (*Snapshot, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid display size %dx%d", width, height)
	}
	if title == "" {
		title = "snapshot"
	}
	return &Snapshot{Data: data, Width: width, Height: height, Title: title, ClassName: className}, nil
}

// HTML renders the snapshot as a single-line HTML fragment. Rendering
// is deterministic for unchanged buffer contents; nothing is cached.
func (s *Snapshot) HTML() (string, error) {
	data, err := codec.EncodePNG(s.Data)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	classStr := ""
	if s.ClassName != "" {
		classStr = fmt.Sprintf("class='%s'", s.ClassName)
	}
	imgStyle := fmt.Sprintf("width:%dpx;height:%dpx;", s.Width, s.Height)
	ttStyle := "position: absolute; top:0; left:0; padding:1px 3px; " +
		"background: #777; color:#fff; font-size: 90%; font-family:sans-serif; "

	return fmt.Sprintf("<div %s style='position:relative;'>"+
		"<img src='%s' style='%s' />"+
		"<div style='%s'>%s</div>"+
		"</div>", classStr, src, imgStyle, ttStyle, s.Title), nil
}

// MIMEBundle returns the display representations keyed by MIME type,
// the form consumed by a notebook display host.
func (s *Snapshot) MIMEBundle() (map[string]string, error) {
	html, err := s.HTML()
	if err != nil {
		return nil, err
	}
	return map[string]string{HTMLMIME: html}, nil
}
