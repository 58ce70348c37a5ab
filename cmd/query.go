package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queryFormat string

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a read-only SQL query against the raw and cleaned tables",
	Example: `  tidyset query "SELECT department, avg(salary_usd) FROM cleaned GROUP BY department"
  tidyset query --format csv "SELECT * FROM raw WHERE salary IS NULL"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryFormat != "table" && queryFormat != "csv" {
			return fmt.Errorf("unsupported --format: %s (use table|csv)", queryFormat)
		}
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		rs, err := sess.Query(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if queryFormat == "csv" {
			return writeResultSetCSV(cmd.OutOrStdout(), rs)
		}
		renderResultSet(cmd.OutOrStdout(), rs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryFormat, "format", "table", "output format: table|csv")
}
