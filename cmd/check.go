package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tidyset-cli/internal/quality"
	"github.com/KaramelBytes/tidyset-cli/internal/session"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the raw columns and audit the cleaned table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		raw, err := sess.Raw(ctx)
		if err != nil {
			return explain(err)
		}
		if err := quality.ValidateRaw(raw); err != nil {
			printWarn(out, "%v", err)
		} else {
			printOK(out, "Raw table has all required columns")
		}

		st, err := sess.State(ctx)
		if err != nil {
			return explain(err)
		}
		recs, err := sess.Cleaned(ctx)
		if errors.Is(err, session.ErrNoCleanedTable) {
			printWarn(out, "cleaned table unavailable (run: tidyset clean)")
			return nil
		}
		if err != nil {
			return err
		}
		p := cfg.CleaningParameters()
		if st.Params != nil {
			p = *st.Params
		}
		issues := quality.CheckCleaned(recs, p)
		if len(issues) == 0 {
			printOK(out, "Cleaned table passed all checks (%d rows)", len(recs))
			return nil
		}
		for _, is := range issues {
			if is.Severity == quality.Warning {
				printWarn(out, "%s: %s", is.Check, is.Message)
			} else {
				fmt.Fprintf(out, "• %s: %s\n", is.Check, is.Message)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
