package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vispy/rfbkit/internal/notebook"
)

var flagPruneStdout bool

var pruneCmd = &cobra.Command{
	Use:   "prune <notebook.ipynb>...",
	Short: "Remove widget-view outputs shadowed by a snapshot",
	Long: `Remove the live widget-view output from notebook files wherever the
same output also carries a static text/html snapshot.

Documentation renderers prefer the widget-view representation over the
text/html sibling, which leaves a dead widget in offline pages. After
pruning, the snapshot is the only representation left and renders
everywhere.

Files are rewritten in place unless --stdout is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		total := 0
		for _, path := range args {
			doc, err := notebook.ReadFile(path)
			if err != nil {
				return err
			}

			removed := notebook.Prune(doc)
			total += removed
			telemetry.Metrics.RecordPruned(cmd.Context(), int64(removed))

			if flagPruneStdout {
				data, err := notebook.Marshal(doc)
				if err != nil {
					return err
				}
				os.Stdout.Write(data)
			} else if removed > 0 {
				if err := notebook.WriteFile(path, doc); err != nil {
					return err
				}
			}

			label := styleDim.Render("unchanged")
			if removed > 0 {
				label = styleOK.Render(fmt.Sprintf("pruned %d", removed))
			}
			fmt.Fprintf(os.Stderr, "%s %s\n", styleName.Render(path), label)
		}
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "%s\n", styleDim.Render(fmt.Sprintf("%d widget-view outputs removed", total)))
		}
		return nil
	},
}

func init() {
	pruneCmd.Flags().BoolVar(&flagPruneStdout, "stdout", false, "print pruned documents instead of rewriting files")
	rootCmd.AddCommand(pruneCmd)
}
