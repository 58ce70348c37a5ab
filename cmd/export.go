package cmd

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tidyset-cli/internal/export"
	"github.com/KaramelBytes/tidyset-cli/internal/utils"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the cleaned table to a CSV or Parquet file",
	Long: `Export writes the cleaned table with columns
employee_id, age, department, years_experience, remote, hired_date, salary_usd.
Use -o - to write CSV to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		recs, err := sess.Cleaned(cmd.Context())
		if err != nil {
			return explain(err)
		}
		if exportOutput == "-" && format == export.FormatCSV {
			return export.WriteCSV(cmd.OutOrStdout(), recs)
		}
		path := exportOutput
		if path == "" || path == "-" {
			path = "cleaned_dataset." + string(format)
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, format, recs); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Exported %d rows to %s", len(recs), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default cleaned_dataset.<format>)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv|parquet")
}
