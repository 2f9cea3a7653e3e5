package components

import (
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ziyan/shuati/internal/ui/theme"
)

// OptionList is a lettered option selector. In single mode enter
// submits the cursor's letter; in multi mode space toggles letters
// and enter submits the toggled set in toggle order. After submission
// the list renders the grading outcome: canonical letters green, a
// chosen non-canonical letter red.
type OptionList struct {
	Labels    []string          // sorted option letters
	Options   map[string]string // letter -> option text
	Multi     bool
	Cursor    int
	Chosen    []string // toggle order preserved
	Submitted bool
	Answer    string // canonical letters, set at submission for display
}

// NewOptionList creates an option list from a question's options map.
func NewOptionList(options map[string]string, multi bool) OptionList {
	labels := make([]string, 0, len(options))
	for l := range options {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return OptionList{
		Labels:  labels,
		Options: options,
		Multi:   multi,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection. It reports submitted=true
// once enter fires with a non-empty choice.
func (o OptionList) Update(msg tea.Msg) (OptionList, bool) {
	if o.Submitted {
		return o, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Labels)-1 {
			o.Cursor++
		}
	case " ":
		if o.Multi && o.Cursor < len(o.Labels) {
			o.toggle(o.Labels[o.Cursor])
		}
	case "enter":
		if o.Multi {
			if len(o.Chosen) == 0 {
				return o, false
			}
			return o, true
		}
		if o.Cursor < len(o.Labels) {
			o.Chosen = []string{o.Labels[o.Cursor]}
			return o, true
		}
	default:
		// Direct letter keys jump the cursor (and toggle in multi).
		if len(key) == 1 {
			letter := string(key[0] &^ 0x20) // uppercase ASCII
			for i, l := range o.Labels {
				if l == letter {
					o.Cursor = i
					if o.Multi {
						o.toggle(letter)
					}
					break
				}
			}
		}
	}
	return o, false
}

func (o *OptionList) toggle(letter string) {
	for i, c := range o.Chosen {
		if c == letter {
			o.Chosen = append(o.Chosen[:i], o.Chosen[i+1:]...)
			return
		}
	}
	o.Chosen = append(o.Chosen, letter)
}

func (o OptionList) chosen(letter string) bool {
	for _, c := range o.Chosen {
		if c == letter {
			return true
		}
	}
	return false
}

func (o OptionList) inAnswer(letter string) bool {
	for _, r := range o.Answer {
		if string(r) == letter {
			return true
		}
	}
	return false
}

// View renders the option list.
func (o OptionList) View() string {
	var s string
	for i, letter := range o.Labels {
		mark := " "
		if o.Multi && o.chosen(letter) {
			mark = "×"
		}
		prefix := "  "
		if i == o.Cursor && !o.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s[%s] %s. %s", prefix, mark, letter, o.Options[letter])

		switch {
		case o.Submitted && o.inAnswer(letter):
			s += theme.Correct.Render(line)
		case o.Submitted && o.chosen(letter):
			s += theme.Incorrect.Render(line)
		case o.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		case i == o.Cursor:
			s += theme.Selected.Render(line)
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line)
		}
		s += "\n"
	}
	return s
}
