package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tidyset-cli/internal/session"
	"github.com/KaramelBytes/tidyset-cli/internal/utils"
)

var (
	chartsSample int
	chartsSeed   uint64
	chartsJSON   bool
	chartsPoints bool
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Show grouped salary averages, the salary histogram and a scatter sample",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		size := cfg.ScatterSampleSize
		if cmd.Flags().Changed("sample") {
			size = chartsSample
		}
		out := cmd.OutOrStdout()
		ch, err := sess.Charts(cmd.Context(), size, chartsSeed)
		if errors.Is(err, session.ErrNoCleanedTable) {
			printWarn(out, "charts unavailable: %v (run: tidyset clean)", err)
			return nil
		}
		if err != nil {
			return err
		}
		if chartsJSON {
			b, err := utils.PrettyJSON(ch)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		printHeading(out, "Average salary by department")
		rows := make([][]string, len(ch.Averages))
		for i, a := range ch.Averages {
			rows[i] = []string{string(a.Department), strconv.Itoa(a.Count), formatMoney(a.Mean)}
		}
		renderTable(out, []string{"department", "count", "avg_salary_usd"}, rows)

		printHeading(out, "Salary distribution")
		maxCount := 0
		for _, b := range ch.Histogram {
			maxCount = max(maxCount, b.Count)
		}
		rows = make([][]string, len(ch.Histogram))
		for i, b := range ch.Histogram {
			rows[i] = []string{strconv.Itoa(b.Index), formatMoney(b.Start), formatMoney(b.End), strconv.Itoa(b.Count), bar(b.Count, maxCount, 30)}
		}
		renderTable(out, []string{"bucket", "start", "end", "count", ""}, rows)

		printHeading(out, "Experience vs salary")
		fmt.Fprintf(out, "%d point(s) sampled (cap %d)\n", len(ch.Scatter), ch.SampleCap)
		if chartsPoints {
			rows = make([][]string, len(ch.Scatter))
			for i, p := range ch.Scatter {
				rows[i] = []string{strconv.FormatFloat(p.X, 'f', -1, 64), formatMoney(p.Y)}
			}
			renderTable(out, []string{"years_experience", "salary_usd"}, rows)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().IntVar(&chartsSample, "sample", 0, "scatter sample cap, at most 400 (default scatter_sample_size)")
	chartsCmd.Flags().Uint64Var(&chartsSeed, "seed", 0, "scatter sampling seed; 0 draws a fresh sample")
	chartsCmd.Flags().BoolVar(&chartsJSON, "json", false, "print chart data as JSON")
	chartsCmd.Flags().BoolVar(&chartsPoints, "points", false, "list the sampled scatter points")
}
