// Package transfer moves progress between devices as a user-carried
// JSON blob. There is no live sync: the learner exports on one device,
// carries the text over, and imports on the other; divergent progress
// is reconciled by the merge engine.
package transfer

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/ziyan/shuati/internal/progress"
)

const (
	// SchemaName identifies the canonical export payload.
	SchemaName = "quiz-progress-export"
	// SchemaVersion is the payload layout version.
	SchemaVersion = 1
)

// ErrMalformed is returned when imported text is neither a canonical
// payload nor a bare bankId-to-state map. The import is refused whole;
// no partial effects occur.
var ErrMalformed = errors.New("malformed import payload")

// Payload is a multi-bank progress export.
type Payload struct {
	Schema        string               `json:"schema"`
	SchemaVersion int                  `json:"schemaVersion"`
	ExportedAt    int64                `json:"exportedAt"`
	Banks         map[string]BankEntry `json:"banks"`
}

// BankEntry pairs one bank's display name with its state.
type BankEntry struct {
	Name  string          `json:"name"`
	State *progress.State `json:"state"`
}

// Export builds a payload from all saved states. Structurally invalid
// states are left out; names fall back to the bank id when unknown.
func Export(states map[string]*progress.State, names map[string]string, now time.Time) *Payload {
	p := &Payload{
		Schema:        SchemaName,
		SchemaVersion: SchemaVersion,
		ExportedAt:    now.UnixMilli(),
		Banks:         make(map[string]BankEntry),
	}
	for id, st := range states {
		if !st.Valid() {
			continue
		}
		p.Banks[id] = BankEntry{Name: names[id], State: st}
	}
	return p
}

// Marshal serializes the payload as indented JSON, friendly to
// copy/paste transport.
func (p *Payload) Marshal() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// rawEntry defers state decoding so one malformed entry can be
// dropped without refusing the rest.
type rawEntry struct {
	Name  string          `json:"name"`
	State json.RawMessage `json:"state"`
}

type rawPayload struct {
	Schema        string              `json:"schema"`
	SchemaVersion int                 `json:"schemaVersion"`
	ExportedAt    int64               `json:"exportedAt"`
	Banks         map[string]rawEntry `json:"banks"`
}

// Decode parses imported text. It is an explicit two-variant parse:
// the canonical schema first, then a bare bankId-to-state map wrapped
// with empty names, then refusal. Within an accepted payload,
// individual entries with unusable states are dropped rather than
// failing the whole import.
func Decode(raw []byte) (*Payload, error) {
	var canonical rawPayload
	if err := json.Unmarshal(raw, &canonical); err == nil && canonical.Schema == SchemaName {
		if canonical.SchemaVersion != SchemaVersion || canonical.Banks == nil {
			return nil, ErrMalformed
		}
		p := &Payload{
			Schema:        canonical.Schema,
			SchemaVersion: canonical.SchemaVersion,
			ExportedAt:    canonical.ExportedAt,
			Banks:         make(map[string]BankEntry),
		}
		for id, entry := range canonical.Banks {
			st, err := progress.Decode(entry.State)
			if err != nil {
				continue
			}
			p.Banks[id] = BankEntry{Name: entry.Name, State: st}
		}
		return p, nil
	}

	// Compatibility fallback: a bare { bankId: state } mapping.
	var bare map[string]json.RawMessage
	if err := json.Unmarshal(raw, &bare); err != nil || bare == nil {
		return nil, ErrMalformed
	}
	p := &Payload{
		Schema:        SchemaName,
		SchemaVersion: SchemaVersion,
		Banks:         make(map[string]BankEntry),
	}
	for id, rawState := range bare {
		st, err := progress.Decode(rawState)
		if err != nil {
			continue
		}
		p.Banks[id] = BankEntry{State: st}
	}
	return p, nil
}
