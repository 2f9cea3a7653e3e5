package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List available question banks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := cliLogger(cfg)

		manifest, err := newLoader(cfg).Manifest(cmd.Context())
		if err != nil {
			return fmt.Errorf("load bank index: %w", err)
		}

		st, err := openStore(cfg, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tQUESTIONS\tANSWERED\tCORRECT")
		for _, info := range manifest.Banks {
			answered, correct := 0, 0
			if state := st.Load(info.ID); state != nil {
				sum := state.Summarize()
				answered, correct = sum.Answered, sum.Correct
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", info.ID, info.Name, info.Count, answered, correct)
		}
		return w.Flush()
	},
}
