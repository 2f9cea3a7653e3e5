package drill

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ziyan/shuati/internal/bank"
	"github.com/ziyan/shuati/internal/grader"
	"github.com/ziyan/shuati/internal/progress"
	"github.com/ziyan/shuati/internal/screen"
	"github.com/ziyan/shuati/internal/store"
	"github.com/ziyan/shuati/internal/ui/components"
	"github.com/ziyan/shuati/internal/ui/layout"
)

// phase is the drill screen's display state.
type phase int

const (
	phaseLoading  phase = iota
	phaseFailed         // question fetch failed; stored state untouched
	phaseEmpty          // active sequence is empty
	phaseAnswer         // unanswered question, input widgets active
	phaseFeedback       // just-graded submission
	phaseReview         // previously answered question, read-only
	phaseComplete       // advanced past the end of the active sequence
)

// DrillScreen steps through one bank's active sequence. Answered
// questions are immutable: revisiting one (a wrong-mode pass, or
// resuming mid-bank) shows the recorded result instead of an input.
type DrillScreen struct {
	loader    *bank.Loader
	st        *store.Store
	info      bank.Info
	log       zerolog.Logger
	sessionID string

	file  *bank.File
	byID  map[string]*bank.Question
	state *progress.State

	phase  phase
	errMsg string

	input   components.TextInput
	options components.OptionList

	lastCorrect bool
}

var (
	_ screen.Screen          = (*DrillScreen)(nil)
	_ screen.KeyHintProvider = (*DrillScreen)(nil)
	_ screen.ProgressCounter = (*DrillScreen)(nil)
)

// New creates a drill screen for one bank.
func New(loader *bank.Loader, st *store.Store, info bank.Info, log zerolog.Logger) *DrillScreen {
	sessionID := uuid.New().String()
	return &DrillScreen{
		loader:    loader,
		st:        st,
		info:      info,
		log:       log.With().Str("bank", info.ID).Str("session", sessionID).Logger(),
		sessionID: sessionID,
		phase:     phaseLoading,
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	return func() tea.Msg {
		f, err := d.loader.Questions(context.Background(), d.info)
		return questionsMsg{File: f, Err: err}
	}
}

func (d *DrillScreen) Title() string {
	return d.info.Name
}

// ProgressCounts feeds the header counters.
func (d *DrillScreen) ProgressCounts() (int, int) {
	if d.state == nil {
		return 0, 0
	}
	sum := d.state.Summarize()
	return sum.Answered, sum.Correct
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	switch d.phase {
	case phaseAnswer:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
		if d.currentQuestion() != nil && d.currentQuestion().Type == bank.TypeMultiple {
			hints = append([]layout.KeyHint{{Key: "Space", Description: "Toggle"}}, hints...)
		}
		return append(hints,
			layout.KeyHint{Key: "W", Description: "Wrong-only"},
			layout.KeyHint{Key: "Esc", Description: "Back"},
		)
	case phaseFeedback, phaseReview:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "W", Description: "Toggle mode"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseComplete, phaseEmpty:
		return []layout.KeyHint{
			{Key: "R", Description: "Restart pass"},
			{Key: "W", Description: "Toggle mode"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		return d.handleQuestions(msg)
	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	if d.phase == phaseAnswer && d.isTextQuestion() {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

// handleQuestions finishes initialization once the question file has
// been awaited. A fetch failure leaves all stored state untouched.
func (d *DrillScreen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		d.log.Error().Err(msg.Err).Msg("question load failed")
		d.errMsg = msg.Err.Error()
		d.phase = phaseFailed
		return d, nil
	}

	d.file = msg.File
	d.byID = msg.File.ByID()
	ids := msg.File.IDs()

	d.state = d.st.Load(d.info.ID)
	switch {
	case d.state == nil:
		// First visit to this bank.
		d.state = progress.New(ids)
		d.save()
	case !d.state.MatchesBank(ids):
		// The bank's question set changed since progress was saved.
		d.log.Info().Msg("bank id set changed, rebuilding state")
		d.state.Rebuild(ids)
		d.save()
	}
	d.state.ClampCursors()

	d.presentCurrent()
	return d, d.inputInit()
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Mode toggle is available in every settled phase.
	if (key == "w" || key == "W") && d.state != nil && d.phase != phaseLoading && d.phase != phaseFailed {
		if d.phase != phaseAnswer || !d.isTextQuestion() {
			d.toggleMode()
			return d, d.inputInit()
		}
	}

	switch d.phase {
	case phaseAnswer:
		return d.handleAnswerKey(msg)

	case phaseFeedback, phaseReview:
		if key == "enter" {
			d.advance()
			return d, d.inputInit()
		}

	case phaseComplete, phaseEmpty:
		if key == "r" || key == "R" {
			d.state.SetActiveIndex(0)
			d.save()
			d.presentCurrent()
			return d, d.inputInit()
		}
	}
	return d, nil
}

func (d *DrillScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := d.currentQuestion()
	if q == nil {
		return d, nil
	}

	if d.isTextQuestion() {
		if msg.String() == "enter" && d.input.Value() != "" {
			d.submit(progress.TextResponse(d.input.Value()))
			return d, nil
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	var submitted bool
	d.options, submitted = d.options.Update(msg)
	if submitted {
		if q.Type == bank.TypeMultiple {
			d.submit(progress.LetterResponse(d.options.Chosen...))
		} else {
			d.submit(progress.TextResponse(d.options.Chosen[0]))
		}
	}
	return d, nil
}

// submit grades the response, records it, and persists the state.
func (d *DrillScreen) submit(resp progress.Response) {
	q := d.currentQuestion()
	if q == nil {
		return
	}

	correct := grader.Grade(q, resp)
	if err := d.state.Record(q.ID, resp, correct, time.Now().UnixMilli()); err != nil {
		d.log.Warn().Err(err).Str("question", q.ID).Msg("record refused")
		return
	}
	d.save()

	d.lastCorrect = correct
	d.options.Submitted = true
	d.options.Answer = q.Answer
	d.input.Submit(correct)
	d.phase = phaseFeedback
}

// advance steps the cursor. Past the end of the active sequence the
// pass is complete; that is a presentation state, not an error.
func (d *DrillScreen) advance() {
	if d.state.Advance() {
		d.save()
		d.presentCurrent()
		return
	}
	d.phase = phaseComplete
}

func (d *DrillScreen) toggleMode() {
	if d.state.Mode == progress.ModeWrong {
		d.state.SetMode(progress.ModeAll)
	} else {
		d.state.SetMode(progress.ModeWrong)
	}
	d.save()
	d.presentCurrent()
}

// presentCurrent derives the display state for the current cursor
// position: an input for an unanswered question, a read-only review
// for an answered one, or the empty panel.
func (d *DrillScreen) presentCurrent() {
	seq := d.state.ActiveSequence()
	if len(seq) == 0 {
		d.phase = phaseEmpty
		return
	}
	d.state.ClampCursors()

	q := d.currentQuestion()
	if q == nil {
		d.phase = phaseEmpty
		return
	}

	if rec, ok := d.state.Answers[q.ID]; ok {
		d.options = components.NewOptionList(q.Options, q.Type == bank.TypeMultiple)
		d.options.Submitted = true
		d.options.Answer = q.Answer
		if rec.Response.Multi {
			d.options.Chosen = rec.Response.Letters
		} else if q.Type != bank.TypeBlank {
			d.options.Chosen = []string{rec.Response.Text}
		}
		d.lastCorrect = rec.Correct
		d.phase = phaseReview
		return
	}

	switch q.Type {
	case bank.TypeBlank:
		d.input = components.NewTextInput("Type the answer...", 120)
	case bank.TypeMultiple:
		d.options = components.NewOptionList(q.Options, true)
	default:
		d.options = components.NewOptionList(q.Options, false)
	}
	d.phase = phaseAnswer
}

func (d *DrillScreen) currentQuestion() *bank.Question {
	seq := d.state.ActiveSequence()
	idx := d.state.ActiveIndex()
	if idx < 0 || idx >= len(seq) {
		return nil
	}
	return d.byID[seq[idx]]
}

func (d *DrillScreen) isTextQuestion() bool {
	q := d.currentQuestion()
	return q != nil && q.Type == bank.TypeBlank
}

func (d *DrillScreen) inputInit() tea.Cmd {
	if d.phase == phaseAnswer && d.isTextQuestion() {
		return d.input.Init()
	}
	return nil
}

func (d *DrillScreen) save() {
	if err := d.st.Save(d.info.ID, d.state); err != nil {
		d.log.Error().Err(err).Msg("progress not persisted")
	}
}
