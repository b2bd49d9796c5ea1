package service

import (
	"context"
	"strings"
	"time"

	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/domain"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/repository"
	"github.com/cyberbirth/cyberbirth-backend/internal/logging"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WishClient is the part of wishes.Client the service depends on
type WishClient interface {
	GenerateWish(ctx context.Context, p wishes.Params) wishes.Result
}

// Stats summarizes the stored collection
type Stats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming_week"`
}

// BirthdayService handles business logic for birthday records
type BirthdayService struct {
	store  *repository.Store
	wishes WishClient
	now    func() time.Time
	newID  func() string
}

// Option customizes a BirthdayService
type Option func(*BirthdayService)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *BirthdayService) { s.now = now }
}

// WithIDGenerator overrides record id generation
func WithIDGenerator(newID func() string) Option {
	return func(s *BirthdayService) { s.newID = newID }
}

// NewBirthdayService creates a new BirthdayService
func NewBirthdayService(store *repository.Store, wishClient WishClient, opts ...Option) *BirthdayService {
	s := &BirthdayService{
		store:  store,
		wishes: wishClient,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates input and stores a new record
func (s *BirthdayService) Create(ctx context.Context, req domain.CreateBirthdayRequest) (domain.Birthday, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Birthday{}, domain.ErrNameRequired
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return domain.Birthday{}, err
	}
	if domain.DateOf(s.now()).Before(date) {
		return domain.Birthday{}, domain.ErrDateInFuture
	}

	relationship := strings.TrimSpace(req.Relationship)
	if relationship == "" {
		relationship = domain.DefaultRelationship
	}

	b := domain.Birthday{
		ID:           s.newID(),
		Name:         name,
		Date:         date,
		Relationship: relationship,
	}
	if err := s.store.Add(ctx, b); err != nil {
		return domain.Birthday{}, err
	}

	logging.FromContext(ctx).Info("birthday created", zap.String("id", b.ID))
	return b, nil
}

// List returns every record sorted by days until its next occurrence
func (s *BirthdayService) List(ctx context.Context) []domain.Entry {
	return s.store.List(s.now())
}

// Get returns one record with its occurrence
func (s *BirthdayService) Get(ctx context.Context, id string) (domain.Entry, error) {
	b, err := s.store.Get(id)
	if err != nil {
		return domain.Entry{}, err
	}
	return domain.Entry{Birthday: b, Occurrence: domain.NextOccurrence(b.Date, s.now())}, nil
}

// Delete removes all records with id. It reports ErrBirthdayNotFound when
// nothing matched.
func (s *BirthdayService) Delete(ctx context.Context, id string) (int, error) {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if removed == 0 {
		return 0, domain.ErrBirthdayNotFound
	}

	logging.FromContext(ctx).Info("birthday deleted", zap.String("id", id), zap.Int("removed", removed))
	return removed, nil
}

// GenerateWish produces a greeting for a stored record. The age is the one
// reached at the next occurrence.
func (s *BirthdayService) GenerateWish(ctx context.Context, id string, tone wishes.Tone) (wishes.Result, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return wishes.Result{}, err
	}

	return s.wishes.GenerateWish(ctx, wishes.Params{
		Name:         entry.Birthday.Name,
		Age:          entry.Occurrence.Age,
		Relationship: entry.Birthday.Relationship,
		Tone:         tone,
	}), nil
}

// Stats counts stored records and those due today or this week
func (s *BirthdayService) Stats(ctx context.Context) Stats {
	var st Stats
	for _, e := range s.List(ctx) {
		st.Total++
		switch {
		case e.Occurrence.IsToday:
			st.Today++
		case e.Occurrence.IsSoon:
			st.Upcoming++
		}
	}
	return st
}
