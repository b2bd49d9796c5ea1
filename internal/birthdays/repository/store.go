package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/domain"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/storage"
	"go.uber.org/zap"
)

// Store is the in-memory birthday collection mirrored to a storage slot.
// It is loaded once by Open and rewritten in full on every mutation.
type Store struct {
	mu      sync.RWMutex
	slot    storage.Slot
	logger  *zap.Logger
	records []domain.Birthday
}

// Open loads the collection from slot. An empty slot or undecodable data
// yields an empty collection; only slot read failures are returned.
func Open(ctx context.Context, slot storage.Slot, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{slot: slot, logger: logger}

	data, err := slot.Load(ctx)
	if errors.Is(err, storage.ErrSlotEmpty) {
		logger.Info("birthday storage empty, starting fresh", zap.String("key", slot.Key()))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load birthdays: %w", err)
	}

	records, err := decode(slot.Key(), data)
	if err != nil {
		logger.Error("failed to parse birthdays, starting with empty collection", zap.Error(err))
		return s, nil
	}

	s.records = records
	logger.Info("birthdays loaded", zap.String("key", slot.Key()), zap.Int("count", len(records)))
	return s, nil
}

func decode(key string, data []byte) ([]domain.Birthday, error) {
	var records []domain.Birthday
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &domain.StorageParseError{Key: key, Err: err}
	}
	return records, nil
}

// Add appends a record and flushes the collection.
func (s *Store) Add(ctx context.Context, b domain.Birthday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.records), b)
	if err := s.flush(ctx, next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// Delete removes every record with the given id and flushes. It returns
// how many records were removed; nothing is written when none match.
func (s *Store) Delete(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.records), func(b domain.Birthday) bool {
		return b.ID == id
	})
	removed := len(s.records) - len(next)
	if removed == 0 {
		return 0, nil
	}

	if err := s.flush(ctx, next); err != nil {
		return 0, err
	}
	s.records = next
	return removed, nil
}

// Get returns the first record with the given id.
func (s *Store) Get(id string) (domain.Birthday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.records {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Birthday{}, domain.ErrBirthdayNotFound
}

// List returns every record with its occurrence relative to now, sorted
// by days remaining. Ties keep insertion order.
func (s *Store) List(now time.Time) []domain.Entry {
	s.mu.RLock()
	entries := make([]domain.Entry, 0, len(s.records))
	for _, b := range s.records {
		entries = append(entries, domain.Entry{
			Birthday:   b,
			Occurrence: domain.NextOccurrence(b.Date, now),
		})
	}
	s.mu.RUnlock()

	slices.SortStableFunc(entries, func(a, b domain.Entry) int {
		return a.Occurrence.DaysRemaining - b.Occurrence.DaysRemaining
	})
	return entries
}

// Len returns the number of stored records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Ping checks the underlying slot
func (s *Store) Ping(ctx context.Context) error {
	return s.slot.Ping(ctx)
}

func (s *Store) flush(ctx context.Context, records []domain.Birthday) error {
	if records == nil {
		records = []domain.Birthday{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal birthdays: %w", err)
	}
	if err := s.slot.Save(ctx, data); err != nil {
		s.logger.Error("failed to persist birthdays", zap.String("key", s.slot.Key()), zap.Error(err))
		return fmt.Errorf("failed to persist birthdays: %w", err)
	}
	return nil
}
