package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

var previewLimit int

var previewCmd = &cobra.Command{
	Use:       "preview [raw|cleaned]",
	Short:     "Show the first rows of the raw or cleaned table",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{dataset.RawTableName, dataset.CleanedTableName},
	RunE: func(cmd *cobra.Command, args []string) error {
		table := dataset.CleanedTableName
		if len(args) == 1 {
			table = args[0]
		}
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		limit := cfg.PreviewRows
		if cmd.Flags().Changed("limit") {
			limit = previewLimit
		}
		rs, err := sess.Preview(cmd.Context(), table, limit)
		if err != nil {
			return explain(err)
		}
		out := cmd.OutOrStdout()
		if limit > 0 {
			fmt.Fprintf(out, "%s (first %d rows)\n", table, limit)
		} else {
			fmt.Fprintln(out, table)
		}
		renderResultSet(out, rs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&previewLimit, "limit", 0, "rows to show; 0 shows all (default preview_rows)")
}
