package progress

// Mode selects which question sequence a drill steps through.
type Mode string

const (
	// ModeAll steps through every question in bank order.
	ModeAll Mode = "all"
	// ModeWrong steps through only previously-wrong questions.
	ModeWrong Mode = "wrong"
)

// valid reports whether m is a known mode. Unknown values come from
// foreign or damaged states and fall back to ModeAll.
func (m Mode) valid() bool {
	return m == ModeAll || m == ModeWrong
}

// WrongSequence is the ordered subsequence of QuestionIDs whose record
// is flagged wrong. It is recomputed on every call so it can never
// drift from Answers.
func (s *State) WrongSequence() []string {
	var ids []string
	for _, id := range s.QuestionIDs {
		if rec, ok := s.Answers[id]; ok && !rec.Correct {
			ids = append(ids, id)
		}
	}
	return ids
}

// ActiveSequence is the question order for the current mode.
func (s *State) ActiveSequence() []string {
	if s.Mode == ModeWrong {
		return s.WrongSequence()
	}
	return s.QuestionIDs
}

// ActiveIndex reads the cursor belonging to the current mode.
func (s *State) ActiveIndex() int {
	if s.Mode == ModeWrong {
		return s.CurrentIndexWrong
	}
	return s.CurrentIndexAll
}

// SetActiveIndex writes the current mode's cursor, leaving the other
// mode's cursor untouched.
func (s *State) SetActiveIndex(i int) {
	if s.Mode == ModeWrong {
		s.CurrentIndexWrong = i
		return
	}
	s.CurrentIndexAll = i
}

// SetMode switches modes. Entering wrong mode restarts the review
// from the first wrong item; switching back to all resumes where the
// learner left off.
func (s *State) SetMode(m Mode) {
	s.Mode = m
	if m == ModeWrong {
		s.CurrentIndexWrong = 0
	}
}

// ClampCursors bounds both cursors to their sequences. Callers run
// this after a load or a merge, before display; the merge step itself
// never re-clamps.
func (s *State) ClampCursors() {
	s.CurrentIndexAll = clamp(s.CurrentIndexAll, len(s.QuestionIDs))
	s.CurrentIndexWrong = clamp(s.CurrentIndexWrong, len(s.WrongSequence()))
}

// Advance moves the active cursor forward. It returns false without
// moving when the cursor is at the last item: the end of a pass is a
// round-complete condition for the caller, not an error.
func (s *State) Advance() bool {
	seq := s.ActiveSequence()
	idx := s.ActiveIndex()
	if idx+1 >= len(seq) {
		return false
	}
	s.SetActiveIndex(idx + 1)
	return true
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
