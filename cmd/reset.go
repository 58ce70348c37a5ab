package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the raw and cleaned tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession()
		if err != nil {
			return err
		}
		defer closeFn()
		if err := sess.Reset(cmd.Context()); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Session reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
