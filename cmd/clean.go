package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cleanAgeMin float64
	cleanAgeMax float64
	cleanExpMin float64
	cleanExpMax float64
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the cleaning pipeline over the loaded raw table",
	Long: `Clean coerces the raw fields, keeps rows whose age and years_experience fall inside the
inclusive bounds, imputes missing salaries with the department median (falling back to the
overall median) and stores the ordered result as the cleaned table.

Bounds default to the configured age_min/age_max/exp_min/exp_max. Inverted bounds are not
rejected; they simply match no rows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		p := cfg.CleaningParameters()
		f := cmd.Flags()
		if f.Changed("age-min") {
			p.AgeMin = cleanAgeMin
		}
		if f.Changed("age-max") {
			p.AgeMax = cleanAgeMax
		}
		if f.Changed("exp-min") {
			p.ExpMin = cleanExpMin
		}
		if f.Changed("exp-max") {
			p.ExpMax = cleanExpMax
		}

		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		res, err := sess.Clean(cmd.Context(), p)
		if err != nil {
			return explain(err)
		}
		out := cmd.OutOrStdout()
		printOK(out, "Cleaned %d of %d rows (age %g–%g, experience %g–%g); imputed %d salaries",
			len(res.Records), res.Raw, p.AgeMin, p.AgeMax, p.ExpMin, p.ExpMax, res.Imputed)
		if p.AgeMin > p.AgeMax || p.ExpMin > p.ExpMax {
			printWarn(out, "inverted bounds match no rows")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().Float64Var(&cleanAgeMin, "age-min", 0, "minimum age, inclusive (overrides config)")
	cleanCmd.Flags().Float64Var(&cleanAgeMax, "age-max", 0, "maximum age, inclusive (overrides config)")
	cleanCmd.Flags().Float64Var(&cleanExpMin, "exp-min", 0, "minimum years_experience, inclusive (overrides config)")
	cleanCmd.Flags().Float64Var(&cleanExpMax, "exp-max", 0, "maximum years_experience, inclusive (overrides config)")
}
