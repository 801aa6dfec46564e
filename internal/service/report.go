package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xolan/hours/internal/entry"
	"github.com/xolan/hours/internal/filter"
	"github.com/xolan/hours/internal/remote"
	"github.com/xolan/hours/internal/storage"
)

// ReportService owns the report set shown to the user together with the
// selection state around it: active month, filter text, last validation
// message and whether the startup load has finished.
//
// A ReportService is not safe for concurrent use.
type ReportService struct {
	store    storage.Store
	fetcher  remote.Fetcher
	cacheKey string
	logger   *slog.Logger

	collection   entry.MonthlyCollection
	activeMonth  string
	filterText   string
	errorMessage string
	loaded       bool
	loadResult   *LoadResult
}

// NewReportService creates a ReportService with an empty collection.
// activeMonth is the month selected until a cached snapshot says otherwise.
func NewReportService(store storage.Store, fetcher remote.Fetcher, cacheKey, activeMonth string, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		store:       store,
		fetcher:     fetcher,
		cacheKey:    cacheKey,
		logger:      logger,
		collection:  entry.NewMonthlyCollection(),
		activeMonth: activeMonth,
	}
}

// Load fills the collection on startup. A stored snapshot wins and selects
// its first month; otherwise the remote source is fetched once and the result
// written to the cache. A failed fetch is logged and leaves the collection
// empty. Load runs only once: later calls return the first result.
func (s *ReportService) Load(ctx context.Context) LoadResult {
	if s.loadResult != nil {
		return *s.loadResult
	}

	result := s.load(ctx)
	s.loadResult = &result
	s.loaded = true
	return result
}

func (s *ReportService) load(ctx context.Context) LoadResult {
	cached, found, err := storage.LoadSnapshot(s.store, s.cacheKey)
	if err != nil {
		s.logger.Warn("ignoring unusable cache snapshot", "key", s.cacheKey, "error", err)
	}
	if found {
		s.collection = cached
		if months := cached.Months(); len(months) > 0 {
			s.activeMonth = months[0]
		}
		s.logger.Debug("reports loaded", "source", SourceCache.String(), "months", cached.Len(), "month", s.activeMonth)
		return LoadResult{Source: SourceCache}
	}

	fetched, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error("failed to fetch reports", "error", err)
		return LoadResult{Source: SourceNone, Err: err}
	}

	s.collection = fetched
	if err := storage.SaveSnapshot(s.store, s.cacheKey, fetched); err != nil {
		s.logger.Error("failed to write cache", "key", s.cacheKey, "error", err)
	}
	s.logger.Debug("reports loaded", "source", SourceRemote.String(), "months", fetched.Len(), "month", s.activeMonth)
	return LoadResult{Source: SourceRemote}
}

// Refresh re-fetches the report set and replaces both the collection and the
// cached snapshot. The active month and filter are kept.
func (s *ReportService) Refresh(ctx context.Context) error {
	fetched, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error("failed to fetch reports", "error", err)
		return err
	}

	s.collection = fetched
	s.loaded = true
	s.logger.Debug("reports refreshed", "months", fetched.Len())

	if err := storage.SaveSnapshot(s.store, s.cacheKey, fetched); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// EditStart sets the start time of the entry dated date
func (s *ReportService) EditStart(date, value string) error {
	return s.Edit(date, entry.FieldStart, value)
}

// EditEnd sets the end time of the entry dated date
func (s *ReportService) EditEnd(date, value string) error {
	return s.Edit(date, entry.FieldEnd, value)
}

// Edit sets one time field of the entry dated date, in the month the date
// belongs to. An invalid value stores its validation message and leaves the
// collection untouched. A successful edit clears the message and writes the
// whole collection to the cache.
func (s *ReportService) Edit(date string, field entry.Field, value string) error {
	month := entry.MonthKey(date)

	next, err := entry.ApplyEdit(s.collection, month, date, field, value)
	if err != nil {
		var validationErr *entry.ValidationError
		if errors.As(err, &validationErr) {
			s.errorMessage = validationErr.Message
			s.logger.Debug("edit rejected", "date", date, "field", string(validationErr.Field), "error", err)
		}
		return err
	}

	s.collection = next
	s.errorMessage = ""
	s.logger.Debug("entry edited", "month", month, "date", date, "field", string(field))

	if err := storage.SaveSnapshot(s.store, s.cacheKey, next); err != nil {
		s.logger.Error("failed to write cache", "key", s.cacheKey, "error", err)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Find returns the entry dated date
func (s *ReportService) Find(date string) (entry.Entry, bool) {
	entries, _ := s.collection.Get(entry.MonthKey(date))
	for _, e := range entries {
		if e.Date == date {
			return e, true
		}
	}
	return entry.Entry{}, false
}

// SelectMonth makes month the active month. Any string is accepted; a month
// that does not exist yields an empty view.
func (s *ReportService) SelectMonth(month string) {
	s.activeMonth = month
}

// SetFilter sets the date filter text
func (s *ReportService) SetFilter(text string) {
	s.filterText = text
}

// ActiveMonth returns the selected month key
func (s *ReportService) ActiveMonth() string {
	return s.activeMonth
}

// Filter returns the current filter text
func (s *ReportService) Filter() string {
	return s.filterText
}

// Months returns the month keys of the collection in order
func (s *ReportService) Months() []string {
	return s.collection.Months()
}

// Collection returns the full report set
func (s *ReportService) Collection() entry.MonthlyCollection {
	return s.collection
}

// ErrorMessage returns the message of the last rejected edit, or "" when the
// last edit succeeded.
func (s *ReportService) ErrorMessage() string {
	return s.errorMessage
}

// Loaded reports whether the startup load has finished
func (s *ReportService) Loaded() bool {
	return s.loaded
}

// View returns the part of the collection to display for the current month
// and filter.
func (s *ReportService) View() entry.MonthlyCollection {
	return filter.DeriveView(s.collection, s.activeMonth, s.filterText)
}
