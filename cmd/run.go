package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyan/shuati/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, logFile, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	st, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	return app.Run(app.Options{
		Loader: newLoader(cfg),
		Store:  st,
		Log:    log,
	})
}
