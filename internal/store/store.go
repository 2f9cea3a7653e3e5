package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ziyan/shuati/internal/progress"
)

// Store is the persistence layer for per-bank progress. Every read
// and write goes through Load/Save with the primary+backup contract;
// nothing else touches the slots, so the backend can be swapped
// without touching merge or grading logic.
type Store struct {
	kv  KV
	log zerolog.Logger
}

// ErrBadBankID rejects ids that cannot be embedded in a slot key.
var ErrBadBankID = errors.New("invalid bank id")

// New wraps a slot backend.
func New(kv KV, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Load returns the saved state for bankID, or nil when nothing usable
// is stored. It reads primary first; when primary is missing or fails
// to decode it falls back to backup, and a good backup is rewritten
// into primary (self-heal) before being returned. A corrupt pair is
// logged and reported as absent, never as an error: the bank then
// behaves as freshly initialized.
func (s *Store) Load(bankID string) *progress.State {
	if !validBankID(bankID) {
		s.log.Warn().Str("bank", bankID).Msg("unsafe bank id refused")
		return nil
	}
	if st := s.loadSlot(primaryKey(bankID)); st != nil {
		return st
	}

	st := s.loadSlot(backupKey(bankID))
	if st == nil {
		return nil
	}

	// Self-heal: primary was missing or corrupt, backup is good.
	raw, err := st.Encode()
	if err == nil {
		if err := s.kv.Set(primaryKey(bankID), string(raw)); err != nil {
			s.log.Warn().Err(err).Str("bank", bankID).Msg("self-heal rewrite of primary slot failed")
		} else {
			s.log.Info().Str("bank", bankID).Msg("restored primary slot from backup")
		}
	}
	return st
}

func (s *Store) loadSlot(key string) *progress.State {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("slot read failed")
		return nil
	}
	if !ok {
		return nil
	}
	st, err := progress.Decode([]byte(raw))
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("slot holds unusable state")
		return nil
	}
	return st
}

// Save writes state to both slots. Each write is attempted
// independently: a failure on one slot (storage quota, I/O error) is
// logged and must not prevent the other. The returned error is
// non-nil only when both writes failed and the state is not durably
// stored anywhere.
func (s *Store) Save(bankID string, state *progress.State) error {
	if !validBankID(bankID) {
		return fmt.Errorf("save %q: %w", bankID, ErrBadBankID)
	}
	raw, err := state.Encode()
	if err != nil {
		return fmt.Errorf("encode state for %s: %w", bankID, err)
	}

	primaryErr := s.kv.Set(primaryKey(bankID), string(raw))
	if primaryErr != nil {
		s.log.Warn().Err(primaryErr).Str("bank", bankID).Msg("primary slot write failed")
	}
	backupErr := s.kv.Set(backupKey(bankID), string(raw))
	if backupErr != nil {
		s.log.Warn().Err(backupErr).Str("bank", bankID).Msg("backup slot write failed")
	}

	if primaryErr != nil && backupErr != nil {
		return fmt.Errorf("save %s: both slots failed: %w", bankID, primaryErr)
	}
	return nil
}

// Banks lists the bank ids with saved progress, sorted.
func (s *Store) Banks() ([]string, error) {
	keys, err := s.kv.Keys(keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	var ids []string
	for _, k := range keys {
		if id, ok := bankIDFromKey(k); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Reset deletes both slots for bankID.
func (s *Store) Reset(bankID string) error {
	if !validBankID(bankID) {
		return fmt.Errorf("reset %q: %w", bankID, ErrBadBankID)
	}
	if err := s.kv.Delete(primaryKey(bankID)); err != nil {
		return fmt.Errorf("delete primary slot: %w", err)
	}
	if err := s.kv.Delete(backupKey(bankID)); err != nil {
		return fmt.Errorf("delete backup slot: %w", err)
	}
	return nil
}

// Close closes the slot backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
