package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tidyset-cli/internal/utils"
)

var metricsJSON bool

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show raw/cleaned row counts and the number of departments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		m, err := sess.Metrics(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if metricsJSON {
			b, err := utils.PrettyJSON(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		renderTable(out, []string{"metric", "value"}, [][]string{
			{"raw rows", formatCount(m.RawCount)},
			{"cleaned rows", formatCount(m.CleanedCount)},
			{"departments", formatCount(m.DepartmentCount)},
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "print metrics as JSON (absent values are null)")
}
