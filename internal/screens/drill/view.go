package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ziyan/shuati/internal/bank"
	"github.com/ziyan/shuati/internal/progress"
	"github.com/ziyan/shuati/internal/ui/components"
	"github.com/ziyan/shuati/internal/ui/theme"
)

var typeLabels = map[bank.QuestionType]string{
	bank.TypeSingle:   "single choice",
	bank.TypeMultiple: "multiple choice",
	bank.TypeJudge:    "true / false",
	bank.TypeBlank:    "fill in the blank",
}

func (d *DrillScreen) View(width, height int) string {
	switch d.phase {
	case phaseLoading:
		return centered(width, theme.Hint.Render("Loading questions..."))
	case phaseFailed:
		return centered(width, theme.Incorrect.Render("Failed to load questions.")+"\n\n"+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(d.errMsg))
	case phaseEmpty:
		return d.renderEmpty(width)
	case phaseComplete:
		return d.renderComplete(width)
	default:
		return d.renderQuestion(width)
	}
}

func (d *DrillScreen) renderEmpty(width int) string {
	if d.state != nil && d.state.Mode == progress.ModeWrong {
		return centered(width, theme.Correct.Render("No wrong answers to review.")+"\n\n"+
			theme.Hint.Render("Press W to go back to all questions."))
	}
	return centered(width, theme.Hint.Render("This bank has no questions."))
}

func (d *DrillScreen) renderComplete(width int) string {
	sum := d.state.Summarize()
	mode := "all questions"
	if d.state.Mode == progress.ModeWrong {
		mode = "wrong answers"
	}

	lines := []string{
		theme.Title.Render("Round complete"),
		"",
		theme.Body.Render(fmt.Sprintf("You finished this pass over %s.", mode)),
		"",
		theme.Body.Render(fmt.Sprintf("Answered %d of %d · %d correct · %d wrong",
			sum.Answered, sum.Total, sum.Correct, sum.Wrong)),
	}
	if sum.Answered > 0 {
		lines = append(lines,
			theme.Hint.Render(fmt.Sprintf("Accuracy %.0f%%", sum.Accuracy*100)))
	}
	return centered(width, strings.Join(lines, "\n"))
}

func (d *DrillScreen) renderQuestion(width int) string {
	q := d.currentQuestion()
	if q == nil {
		return centered(width, theme.Hint.Render("Nothing to show."))
	}

	seq := d.state.ActiveSequence()
	idx := d.state.ActiveIndex()

	var b strings.Builder

	// Position line with a pass progress bar.
	info := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %d / %d", idx+1, len(seq)))
	info += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  " + typeLabels[q.Type])
	if d.state.Mode == progress.ModeWrong {
		info += lipgloss.NewStyle().Foreground(theme.Accent).Render("  [wrong-only]")
	}
	b.WriteString(info)
	b.WriteString("\n")

	percent := float64(idx) / float64(len(seq))
	bar := components.NewProgressBar("", percent, false, width-6)
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n\n")

	// Stem.
	stem := lipgloss.NewStyle().
		Width(width - 4).
		Foreground(theme.Text).
		Bold(true).
		Render("  " + q.Stem)
	b.WriteString(stem)
	b.WriteString("\n\n")

	// Input area.
	if q.Type == bank.TypeBlank {
		b.WriteString("  Answer: " + d.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(d.options.View())
	}

	// Outcome panel.
	if d.phase == phaseFeedback || d.phase == phaseReview {
		b.WriteString("\n")
		b.WriteString(d.renderOutcome(q, width))
	}

	return b.String()
}

func (d *DrillScreen) renderOutcome(q *bank.Question, width int) string {
	var b strings.Builder

	if d.lastCorrect {
		b.WriteString(theme.Correct.Render("  Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("  Wrong."))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
			Render("  Answer: " + q.Answer))
	}
	if d.phase == phaseReview {
		if rec, ok := d.state.Answers[q.ID]; ok {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("  (you answered " + rec.Response.String() + ")"))
		}
	}
	b.WriteString("\n")

	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width - 4).
			Foreground(theme.TextDim).
			Render("  " + q.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

func centered(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + content)
}
