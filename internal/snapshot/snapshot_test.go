package snapshot

import (
	"strings"
	"testing"

	"github.com/vispy/rfbkit/internal/pixel"
)

func testBuffer(t *testing.T) *pixel.Buffer {
	t.Helper()
	buf := pixel.NewGray(2, 2)
	buf.Data = []byte{0, 85, 170, 255}
	return buf
}

func TestHTML(t *testing.T) {
	s, err := New(testBuffer(t), 10, 10, "t", "")
	if err != nil {
		t.Fatal(err)
	}
	html, err := s.HTML()
	if err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(html, "<img"); n != 1 {
		t.Errorf("got %d <img> tags, want 1", n)
	}
	if !strings.Contains(html, "width:10px;height:10px;") {
		t.Errorf("missing sized img style in %q", html)
	}
	if !strings.Contains(html, ">t</div>") {
		t.Errorf("missing title overlay in %q", html)
	}
	if !strings.Contains(html, "src='data:image/png;base64,") {
		t.Errorf("missing png data uri in %q", html)
	}
	if strings.ContainsAny(html, "\n") {
		t.Errorf("fragment is not a single line")
	}
}

func TestHTMLDeterministic(t *testing.T) {
	s, err := New(testBuffer(t), 10, 10, "t", "")
	if err != nil {
		t.Fatal(err)
	}
	first, err := s.HTML()
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.HTML()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("rendering twice produced different output")
	}
}

func TestHTMLReflectsBufferMutation(t *testing.T) {
	buf := testBuffer(t)
	s, err := New(buf, 10, 10, "t", "")
	if err != nil {
		t.Fatal(err)
	}
	first, err := s.HTML()
	if err != nil {
		t.Fatal(err)
	}
	buf.Data[0] = 99
	second, err := s.HTML()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("render did not reflect in-place buffer mutation")
	}
}

func TestClassName(t *testing.T) {
	s, err := New(testBuffer(t), 10, 10, "t", "snapshot-abc123")
	if err != nil {
		t.Fatal(err)
	}
	html, err := s.HTML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<div class='snapshot-abc123' style='position:relative;'>") {
		t.Errorf("missing class attribute on outer div in %q", html)
	}
}

func TestDefaultTitle(t *testing.T) {
	s, err := New(testBuffer(t), 10, 10, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Title != "snapshot" {
		t.Errorf("Title = %q, want %q", s.Title, "snapshot")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		data   *pixel.Buffer
		width  int
		height int
	}{
		{"nil buffer", &pixel.Buffer{}, 10, 10},
		{"bad shape", &pixel.Buffer{Data: []byte{1, 2}, Shape: []int{2}}, 10, 10},
		{"zero width", pixel.NewGray(2, 2), 0, 10},
		{"negative height", pixel.NewGray(2, 2), 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.data, tt.width, tt.height, "t", ""); err == nil {
				t.Errorf("New accepted invalid input")
			}
		})
	}
}

func TestMIMEBundle(t *testing.T) {
	s, err := New(testBuffer(t), 10, 10, "t", "")
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := s.MIMEBundle()
	if err != nil {
		t.Fatal(err)
	}
	html, ok := bundle[HTMLMIME]
	if !ok {
		t.Fatalf("bundle %v missing %q", bundle, HTMLMIME)
	}
	if !strings.HasPrefix(html, "<div ") {
		t.Errorf("bundle html does not start with the outer div: %q", html)
	}
}
