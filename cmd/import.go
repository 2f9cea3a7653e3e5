package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziyan/shuati/internal/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import progress exported on another device",
	Long: "Reads a JSON document produced by 'shuati export' (from the given\n" +
		"file or stdin) and merges it into the local progress. Answers\n" +
		"recorded on either device are kept; a question marked wrong on\n" +
		"either side stays in the wrong-answer set.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := cliLogger(cfg)

		var data []byte
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}

		payload, err := transfer.Decode(data)
		if err != nil {
			if errors.Is(err, transfer.ErrMalformed) {
				fmt.Fprintln(cmd.OutOrStdout(), "Import failed: malformed text.")
				return err
			}
			return err
		}

		st, err := openStore(cfg, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		report := transfer.Apply(st, payload, log)
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bank(s), skipped %d.\n", report.Imported, report.Skipped)
		return nil
	},
}
