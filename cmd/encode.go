package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vispy/rfbkit/internal/codec"
	"github.com/vispy/rfbkit/internal/pixel"
)

var flagEncodeOut string

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Compress an image with the live-frame policy",
	Long: `Decode a PNG or JPEG file and re-encode it with the same selection
policy the widget uses for live frames: JPEG-XL when an encoder is
registered, PNG for --quality 100, otherwise JPEG with a PNG fallback.

The output path defaults to the input with the extension of the chosen
format. The alpha channel, if present, is dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}

		buf := pixel.FromImage(img)

		start := time.Now()
		mimetype, data, err := codec.Compress(buf, flagQuality)
		if err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
		elapsed := time.Since(start)
		telemetry.Metrics.RecordEncode(cmd.Context(), mimetype, int64(len(data)), float64(elapsed.Microseconds())/1000)

		out := flagEncodeOut
		if out == "" {
			out = replaceExt(path, extForMime(mimetype))
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%s %s %s\n",
			styleName.Render(out),
			styleOK.Render(mimetype),
			styleDim.Render(fmt.Sprintf("%d bytes, %s", len(data), elapsed.Round(time.Millisecond))))
		return nil
	},
}

// extForMime maps a Compress mimetype to a file extension.
func extForMime(mimetype string) string {
	switch mimetype {
	case codec.MimeJPEG:
		return ".jpg"
	case codec.MimeJXL:
		return ".jxl"
	default:
		return ".png"
	}
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		path = path[:i]
	}
	return path + ext
}

func init() {
	encodeCmd.Flags().StringVarP(&flagEncodeOut, "out", "o", "", "output path (default: input path with new extension)")
	rootCmd.AddCommand(encodeCmd)
}
