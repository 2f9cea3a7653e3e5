package progress

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion tags the persisted state layout. Any other value
// invalidates the record.
const SchemaVersion = 1

var (
	ErrInvalidState    = errors.New("structurally invalid quiz state")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrUnknownQuestion = errors.New("question id not in bank")
)

// AnswerRecord is one graded submission. Correct is computed once at
// submission time and never recomputed; TS is epoch milliseconds and
// serves only as a merge tie-breaker.
type AnswerRecord struct {
	Response Response `json:"response"`
	Correct  bool     `json:"correct"`
	TS       int64    `json:"ts"`
}

// State is the progress record for one bank, the unit of persistence.
// QuestionIDs defines the "all" order; Answers keys are always a
// subset of ids the state has seen. The wrong-answer sequence is
// derived from Answers on demand, never stored.
type State struct {
	Version           int                      `json:"version"`
	Mode              Mode                     `json:"mode"`
	CurrentIndexAll   int                      `json:"currentIndexAll"`
	CurrentIndexWrong int                      `json:"currentIndexWrong"`
	QuestionIDs       []string                 `json:"questionIds"`
	Answers           map[string]*AnswerRecord `json:"answers"`
}

// New creates the initial state for a bank: nothing answered, all
// mode, cursors at zero.
func New(questionIDs []string) *State {
	ids := make([]string, len(questionIDs))
	copy(ids, questionIDs)
	return &State{
		Version:     SchemaVersion,
		Mode:        ModeAll,
		QuestionIDs: ids,
		Answers:     make(map[string]*AnswerRecord),
	}
}

// Valid reports structural validity: the schema version matches and
// the questionIds array and answers object are present. Invalid
// states are treated as absent by every caller, never as a crash.
func (s *State) Valid() bool {
	return s != nil &&
		s.Version == SchemaVersion &&
		s.QuestionIDs != nil &&
		s.Answers != nil
}

// Decode parses a persisted state and checks it structurally.
func Decode(raw []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if !s.Valid() {
		return nil, ErrInvalidState
	}
	return &s, nil
}

// Encode serializes the state for persistence or export.
func (s *State) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// MatchesBank reports whether the state's id set equals ids. Order is
// ignored here; an order-only change is not a structural change.
func (s *State) MatchesBank(ids []string) bool {
	if len(s.QuestionIDs) != len(ids) {
		return false
	}
	seen := make(map[string]struct{}, len(s.QuestionIDs))
	for _, id := range s.QuestionIDs {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

// Rebuild refits the state to a bank whose id set changed: ids are
// replaced, answers for ids no longer present are pruned, cursors
// zeroed and mode reset. This is a structural change, not a merge.
func (s *State) Rebuild(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	s.QuestionIDs = make([]string, len(ids))
	for i, id := range ids {
		s.QuestionIDs[i] = id
		keep[id] = struct{}{}
	}
	for id := range s.Answers {
		if _, ok := keep[id]; !ok {
			delete(s.Answers, id)
		}
	}
	s.Mode = ModeAll
	s.CurrentIndexAll = 0
	s.CurrentIndexWrong = 0
}

// Record stores a graded submission. An existing record is immutable
// to everything but the merge engine, and unknown ids are refused.
func (s *State) Record(id string, resp Response, correct bool, ts int64) error {
	if _, ok := s.Answers[id]; ok {
		return ErrAlreadyAnswered
	}
	if !s.contains(id) {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	s.Answers[id] = &AnswerRecord{Response: resp, Correct: correct, TS: ts}
	return nil
}

func (s *State) contains(id string) bool {
	for _, qid := range s.QuestionIDs {
		if qid == id {
			return true
		}
	}
	return false
}

// Clone deep-copies the state.
func (s *State) Clone() *State {
	out := &State{
		Version:           s.Version,
		Mode:              s.Mode,
		CurrentIndexAll:   s.CurrentIndexAll,
		CurrentIndexWrong: s.CurrentIndexWrong,
	}
	if s.QuestionIDs != nil {
		out.QuestionIDs = make([]string, len(s.QuestionIDs))
		copy(out.QuestionIDs, s.QuestionIDs)
	}
	if s.Answers != nil {
		out.Answers = make(map[string]*AnswerRecord, len(s.Answers))
		for id, rec := range s.Answers {
			c := *rec
			if rec.Response.Letters != nil {
				c.Response.Letters = make([]string, len(rec.Response.Letters))
				copy(c.Response.Letters, rec.Response.Letters)
			}
			out.Answers[id] = &c
		}
	}
	return out
}

// Summary aggregates answer counts for one bank.
type Summary struct {
	Total    int
	Answered int
	Correct  int
	Wrong    int
	Accuracy float64
}

// Summarize computes answer statistics over the state.
func (s *State) Summarize() Summary {
	sum := Summary{Total: len(s.QuestionIDs)}
	for _, id := range s.QuestionIDs {
		rec, ok := s.Answers[id]
		if !ok {
			continue
		}
		sum.Answered++
		if rec.Correct {
			sum.Correct++
		} else {
			sum.Wrong++
		}
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered)
	}
	return sum
}
