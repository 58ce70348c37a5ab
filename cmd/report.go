package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tidyset-cli/internal/report"
	"github.com/KaramelBytes/tidyset-cli/internal/utils"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a Markdown insights report for the cleaned table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		ctx := cmd.Context()
		st, err := sess.State(ctx)
		if err != nil {
			return explain(err)
		}
		recs, err := sess.Cleaned(ctx)
		if err != nil {
			return explain(err)
		}
		rawRows := len(recs)
		if st.Stats != nil {
			rawRows = st.Stats.Raw
		}
		md := report.Build(st.Source, rawRows, st.Params, recs).Markdown()
		if reportOutput == "" {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(reportOutput, []byte(md)); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Wrote insights to %s", reportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
}
