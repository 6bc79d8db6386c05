package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
	"github.com/medqueue/medqueue-go/pkg/debounce"
)

// HospitalSource supplies the listing snapshot; in production this is the
// freshness cache.
type HospitalSource interface {
	Get(ctx context.Context) []entities.Hospital
}

// DefaultDebounceQuiet is the quiet period applied to keystroke-driven
// recomputation.
const DefaultDebounceQuiet = 220 * time.Millisecond

// Filter derives the displayed subset of a hospital snapshot: records whose
// name, address, or category contains the query (case-insensitively),
// intersected with the category filter. Snapshot order is preserved. Pure:
// no I/O, no mutation of the snapshot.
func Filter(hospitals []entities.Hospital, filter entities.ListingFilter) []entities.Hospital {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	matched := make([]entities.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if query != "" && !matchesQuery(h, query) {
			continue
		}
		if filter.Type != "" && filter.Type != entities.FilterTypeAll && h.Type != filter.Type {
			continue
		}
		matched = append(matched, h)
	}
	return matched
}

func matchesQuery(h entities.Hospital, query string) bool {
	return strings.Contains(strings.ToLower(h.Name), query) ||
		strings.Contains(strings.ToLower(h.Address), query) ||
		strings.Contains(strings.ToLower(h.Type), query)
}

// ListingService is the view model behind the hospital listing. Search input
// updates the filter on every keystroke, but the recompute itself is
// debounced: rapid keystrokes coalesce into one recompute fired after input
// settles, and that recompute reads the filter as it stands at fire time, so
// the delivered result always reflects the latest query.
type ListingService struct {
	source    HospitalSource
	debouncer *debounce.Debouncer
	onResult  func([]entities.Hospital)

	mu     sync.Mutex
	filter entities.ListingFilter
}

// NewListingService creates a listing view model. Results are delivered to
// onResult; quiet <= 0 selects the default debounce period.
func NewListingService(source HospitalSource, quiet time.Duration, onResult func([]entities.Hospital)) *ListingService {
	if quiet <= 0 {
		quiet = DefaultDebounceQuiet
	}
	return &ListingService{
		source:    source,
		debouncer: debounce.New(quiet),
		onResult:  onResult,
		filter:    entities.ListingFilter{Type: entities.FilterTypeAll},
	}
}

// Search records the query text and schedules a debounced recompute,
// superseding any recompute still pending.
func (s *ListingService) Search(ctx context.Context, query string) {
	s.mu.Lock()
	s.filter.Query = query
	s.mu.Unlock()

	s.debouncer.Trigger(func() {
		s.recompute(ctx)
	})
}

// SetType switches the category filter and recomputes immediately.
func (s *ListingService) SetType(ctx context.Context, hospitalType string) {
	s.mu.Lock()
	s.filter.Type = hospitalType
	s.mu.Unlock()

	s.recompute(ctx)
}

// Refresh recomputes immediately with the current filter, e.g. after the
// cache has been invalidated by a booking.
func (s *ListingService) Refresh(ctx context.Context) {
	s.recompute(ctx)
}

// Close cancels any pending debounced recompute.
func (s *ListingService) Close() {
	s.debouncer.Stop()
}

func (s *ListingService) recompute(ctx context.Context) {
	snapshot := s.source.Get(ctx)

	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	s.onResult(Filter(snapshot, filter))
}
