package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset [bank-id]",
	Short: "Delete saved progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !resetAll {
			return fmt.Errorf("pass a bank id, or --all to delete everything")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := cliLogger(cfg)

		st, err := openStore(cfg, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		if resetAll {
			ids, err := st.Banks()
			if err != nil {
				return fmt.Errorf("list saved banks: %w", err)
			}
			for _, id := range ids {
				if err := st.Reset(id); err != nil {
					return fmt.Errorf("reset %s: %w", id, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted progress for %d bank(s).\n", len(ids))
			return nil
		}

		if err := st.Reset(args[0]); err != nil {
			return fmt.Errorf("reset %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted progress for %s.\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Delete progress for every bank")
}
