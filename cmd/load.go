package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tidyset-cli/internal/quality"
	"github.com/KaramelBytes/tidyset-cli/internal/source"
)

var loadCmd = &cobra.Command{
	Use:   "load <file|url|sample>",
	Short: "Load a raw dataset into the workspace, discarding the current session",
	Long: `Load reads a CSV/TSV or XLSX file, an http(s) URL, or the bundled sample ("sample")
and stores it as the raw table. Any previously loaded or cleaned data is discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		raw, err := source.Load(cmd.Context(), args[0], newFetcher())
		if err != nil {
			return err
		}
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		st, err := sess.Load(cmd.Context(), raw)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printOK(out, "Loaded %s: %d rows, %d columns (session %s)", raw.Name, raw.Len(), len(raw.Columns), st.ID)
		if missing := quality.MissingColumns(raw.Columns); len(missing) > 0 {
			printWarn(out, "missing required columns %v; cleaning will fail until they are present", missing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
