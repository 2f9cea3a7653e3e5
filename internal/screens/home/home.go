package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rs/zerolog"

	"github.com/ziyan/shuati/internal/bank"
	"github.com/ziyan/shuati/internal/router"
	"github.com/ziyan/shuati/internal/screen"
	"github.com/ziyan/shuati/internal/screens/drill"
	"github.com/ziyan/shuati/internal/store"
	"github.com/ziyan/shuati/internal/ui/components"
	"github.com/ziyan/shuati/internal/ui/theme"
)

// HomeScreen lists the available banks with their saved progress. The
// manifest is fetched before anything renders; a fetch failure shows
// an error panel and touches no stored state.
type HomeScreen struct {
	loader *bank.Loader
	st     *store.Store
	log    zerolog.Logger

	menu    components.Menu
	loaded  bool
	loadErr string
}

var _ screen.Screen = (*HomeScreen)(nil)

// manifestMsg delivers the awaited manifest fetch.
type manifestMsg struct {
	Manifest *bank.Manifest
	Err      error
}

// New creates the home screen.
func New(loader *bank.Loader, st *store.Store, log zerolog.Logger) *HomeScreen {
	return &HomeScreen{loader: loader, st: st, log: log}
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		m, err := h.loader.Manifest(context.Background())
		return manifestMsg{Manifest: m, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Banks"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case manifestMsg:
		if msg.Err != nil {
			h.log.Error().Err(msg.Err).Msg("manifest load failed")
			h.loadErr = msg.Err.Error()
			return h, nil
		}
		h.buildMenu(msg.Manifest)
		h.loaded = true
		return h, nil
	}

	if h.loaded {
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) buildMenu(m *bank.Manifest) {
	items := make([]components.MenuItem, 0, len(m.Banks)+1)
	for _, info := range m.Banks {
		info := info
		detail := fmt.Sprintf("%d questions", info.Count)
		if st := h.st.Load(info.ID); st != nil {
			sum := st.Summarize()
			detail = fmt.Sprintf("%d questions · %d answered · %d wrong", info.Count, sum.Answered, sum.Wrong)
		}
		items = append(items, components.MenuItem{
			Label:  info.Name,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: drill.New(h.loader, h.st, info, h.log)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) View(width, height int) string {
	if h.loadErr != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\nFailed to load banks.\n\n" + h.loadErr)
	}
	if !h.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nLoading banks...")
	}
	if len(h.menu.Items) <= 1 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nNo banks available.")
	}

	title := theme.Title.Width(width).Render("Pick a bank")
	return "\n" + title + "\n\n" + h.menu.View()
}
