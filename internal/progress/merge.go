package progress

// Merge reconciles two states for the same bank: the local one and one
// carried over from another device (or left over from an older visit).
// If either side is structurally invalid the other wins outright.
//
// Field rules:
//   - questionIds: existing order is authoritative; incoming ids not
//     already present are appended in their incoming relative order.
//   - answers: per-question via mergeAnswer (wrong is sticky, newest
//     correct wins, ties favor incoming).
//   - mode and cursors: existing wins when well-formed, else incoming,
//     else defaults. Cursors are NOT re-clamped here; the caller must
//     run ClampCursors before display.
//
// Neither input is mutated.
func Merge(existing, incoming *State) *State {
	if !existing.Valid() {
		if !incoming.Valid() {
			return New(nil)
		}
		return incoming.Clone()
	}
	if !incoming.Valid() {
		return existing.Clone()
	}

	merged := New(nil)
	merged.QuestionIDs = mergeIDs(existing.QuestionIDs, incoming.QuestionIDs)

	for _, id := range merged.QuestionIDs {
		if rec := mergeAnswer(existing.Answers[id], incoming.Answers[id]); rec != nil {
			merged.Answers[id] = rec
		}
	}

	merged.Mode = pickMode(existing.Mode, incoming.Mode)
	merged.CurrentIndexAll = pickCursor(existing.CurrentIndexAll, incoming.CurrentIndexAll)
	merged.CurrentIndexWrong = pickCursor(existing.CurrentIndexWrong, incoming.CurrentIndexWrong)
	return merged
}

// mergeIDs keeps existing order and appends unseen incoming ids in
// their incoming relative order. Existing ids are never reordered or
// removed.
func mergeIDs(existing, incoming []string) []string {
	out := make([]string, len(existing))
	copy(out, existing)

	seen := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	for _, id := range incoming {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// mergeAnswer resolves one question's records. A wrong answer recorded
// anywhere is sticky: it survives any merge with a correct record,
// regardless of timestamps. Only a fresh submission through Record can
// clear it. When both sides agree on correctness the newer record
// wins, with ties (including both zero) going to incoming.
func mergeAnswer(existing, incoming *AnswerRecord) *AnswerRecord {
	if existing == nil && incoming == nil {
		return nil
	}
	if existing == nil {
		return copyRecord(incoming)
	}
	if incoming == nil {
		return copyRecord(existing)
	}

	if !existing.Correct || !incoming.Correct {
		var src *AnswerRecord
		switch {
		case !existing.Correct && !incoming.Correct:
			src = newer(existing, incoming)
		case !existing.Correct:
			src = existing
		default:
			src = incoming
		}
		rec := copyRecord(src)
		rec.Correct = false
		return rec
	}

	return copyRecord(newer(existing, incoming))
}

func newer(existing, incoming *AnswerRecord) *AnswerRecord {
	if incoming.TS >= existing.TS {
		return incoming
	}
	return existing
}

func copyRecord(rec *AnswerRecord) *AnswerRecord {
	c := *rec
	if rec.Response.Letters != nil {
		c.Response.Letters = make([]string, len(rec.Response.Letters))
		copy(c.Response.Letters, rec.Response.Letters)
	}
	return &c
}

func pickMode(existing, incoming Mode) Mode {
	if existing.valid() {
		return existing
	}
	if incoming.valid() {
		return incoming
	}
	return ModeAll
}

func pickCursor(existing, incoming int) int {
	if existing >= 0 {
		return existing
	}
	if incoming >= 0 {
		return incoming
	}
	return 0
}
