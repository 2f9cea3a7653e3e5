package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziyan/shuati/internal/progress"
	"github.com/ziyan/shuati/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export saved progress as JSON",
	Long: "Writes all saved bank progress as a single JSON document, to the\n" +
		"given file or to stdout. Import the document on another device with\n" +
		"'shuati import'.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		ids, err := st.Banks()
		if err != nil {
			return fmt.Errorf("list saved banks: %w", err)
		}

		states := make(map[string]*progress.State, len(ids))
		for _, id := range ids {
			if state := st.Load(id); state != nil {
				states[id] = state
			}
		}

		// Bank names are cosmetic in the payload; skip them when the
		// bank base is unreachable rather than failing the export.
		names := map[string]string{}
		if manifest, err := newLoader(cfg).Manifest(cmd.Context()); err == nil {
			for _, info := range manifest.Banks {
				names[info.ID] = info.Name
			}
		}

		data, err := transfer.Export(states, names, time.Now()).Marshal()
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}

		if len(args) == 1 {
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bank(s) to %s\n", len(states), args[0])
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
