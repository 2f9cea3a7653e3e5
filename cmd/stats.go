package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziyan/shuati/internal/bank"
	"github.com/ziyan/shuati/internal/config"
	"github.com/ziyan/shuati/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [bank-id]",
	Short: "Show answer statistics",
	Long: "Without arguments, prints a per-bank summary of saved progress.\n" +
		"With a bank id, breaks the numbers down by question type.",
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

		if len(args) == 1 {
			return bankStats(cmd, cfg, st, args[0])
		}

		ids, err := st.Banks()
		if err != nil {
			return fmt.Errorf("list saved banks: %w", err)
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved progress yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BANK\tANSWERED\tCORRECT\tWRONG\tACCURACY")
		for _, id := range ids {
			state := st.Load(id)
			if state == nil {
				continue
			}
			sum := state.Summarize()
			fmt.Fprintf(w, "%s\t%d/%d\t%d\t%d\t%.0f%%\n",
				id, sum.Answered, sum.Total, sum.Correct, sum.Wrong, sum.Accuracy*100)
		}
		return w.Flush()
	},
}

// bankStats prints a per-question-type breakdown for one bank. The
// bank file is needed to know each question's type, so this only works
// when the bank base is reachable.
func bankStats(cmd *cobra.Command, cfg *config.Config, st *store.Store, bankID string) error {
	state := st.Load(bankID)
	if state == nil {
		return fmt.Errorf("no saved progress for bank %q", bankID)
	}

	loader := newLoader(cfg)
	manifest, err := loader.Manifest(cmd.Context())
	if err != nil {
		return fmt.Errorf("load bank index: %w", err)
	}

	var info *bank.Info
	for i := range manifest.Banks {
		if manifest.Banks[i].ID == bankID {
			info = &manifest.Banks[i]
			break
		}
	}
	if info == nil {
		return fmt.Errorf("bank %q not found in index", bankID)
	}

	file, err := loader.Questions(cmd.Context(), *info)
	if err != nil {
		return fmt.Errorf("load bank %q: %w", bankID, err)
	}
	byID := file.ByID()

	type bucket struct{ total, answered, correct int }
	buckets := map[bank.QuestionType]*bucket{}
	order := []bank.QuestionType{bank.TypeSingle, bank.TypeMultiple, bank.TypeJudge, bank.TypeBlank}
	for _, qt := range order {
		buckets[qt] = &bucket{}
	}

	for _, id := range state.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			continue
		}
		b, ok := buckets[q.Type]
		if !ok {
			b = &bucket{}
			buckets[q.Type] = b
			order = append(order, q.Type)
		}
		b.total++
		rec, ok := state.Answers[id]
		if !ok {
			continue
		}
		b.answered++
		if rec.Correct {
			b.correct++
		}
	}

	sum := state.Summarize()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", info.Name, info.ID)
	fmt.Fprintf(out, "answered %d/%d, correct %d, wrong %d\n\n", sum.Answered, sum.Total, sum.Correct, sum.Wrong)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tANSWERED\tCORRECT")
	for _, qt := range order {
		b := buckets[qt]
		if b.total == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%d/%d\t%d\n", qt, b.answered, b.total, b.correct)
	}
	return w.Flush()
}
