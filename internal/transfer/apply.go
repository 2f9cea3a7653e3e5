package transfer

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/ziyan/shuati/internal/progress"
	"github.com/ziyan/shuati/internal/store"
)

// Report summarizes an import: partial success is reported, not
// silently swallowed.
type Report struct {
	Imported int
	Skipped  int
}

// Apply merges each bank entry of a decoded payload into the store.
// A failure on one bank is counted as skipped and does not abort the
// remaining banks.
func Apply(st *store.Store, p *Payload, log zerolog.Logger) Report {
	var rep Report

	ids := make([]string, 0, len(p.Banks))
	for id := range p.Banks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := p.Banks[id]
		if !entry.State.Valid() {
			rep.Skipped++
			log.Warn().Str("bank", id).Msg("import entry skipped: invalid state")
			continue
		}

		merged := progress.Merge(st.Load(id), entry.State)
		if err := st.Save(id, merged); err != nil {
			rep.Skipped++
			log.Warn().Err(err).Str("bank", id).Msg("import entry skipped: save failed")
			continue
		}
		rep.Imported++
	}
	return rep
}
