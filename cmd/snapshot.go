package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/vispy/rfbkit/internal/pixel"
	"github.com/vispy/rfbkit/internal/snapshot"
)

var (
	flagSnapWidth  int
	flagSnapHeight int
	flagSnapTitle  string
	flagSnapClass  string
	flagSnapOut    string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <image>",
	Short: "Render the static HTML snapshot for an image",
	Long: `Render the HTML fragment the widget emits as its static snapshot:
a base64 PNG data URI in a sized <img>, wrapped in a positioned <div>
with a title overlay.

--width/--height set the CSS pixel size and default to the image's own
resolution.`,
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
		width, height := flagSnapWidth, flagSnapHeight
		if width == 0 {
			width = buf.Width()
		}
		if height == 0 {
			height = buf.Height()
		}

		s, err := snapshot.New(buf, width, height, flagSnapTitle, flagSnapClass)
		if err != nil {
			return err
		}
		html, err := s.HTML()
		if err != nil {
			return err
		}
		telemetry.Metrics.RecordSnapshot(cmd.Context())

		if flagSnapOut != "" {
			return os.WriteFile(flagSnapOut, []byte(html+"\n"), 0o644)
		}
		fmt.Fprintln(os.Stdout, html)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().IntVar(&flagSnapWidth, "width", 0, "display width in CSS pixels (default: image width)")
	snapshotCmd.Flags().IntVar(&flagSnapHeight, "height", 0, "display height in CSS pixels (default: image height)")
	snapshotCmd.Flags().StringVar(&flagSnapTitle, "title", "", `overlay title (default: "snapshot")`)
	snapshotCmd.Flags().StringVar(&flagSnapClass, "class", "", "class attribute for the outer div")
	snapshotCmd.Flags().StringVarP(&flagSnapOut, "out", "o", "", "write the fragment to a file instead of stdout")
	rootCmd.AddCommand(snapshotCmd)
}
