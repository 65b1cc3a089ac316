package tool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vira-library/catalog/internal/domain"
)

// Suggester serializes overlapping suggestion refreshes with last-request-wins
// ordering. Each refresh is tagged with a monotonically increasing generation;
// a refresh whose generation is no longer current when its lookup resolves
// still answers its own caller with its own result, but must not persist it,
// so a slow response can never overwrite the state of a later keystroke.
type Suggester struct {
	svc domain.ToolService

	gen     atomic.Uint64
	mu      sync.Mutex
	current []domain.Suggestion
}

// NewSuggester creates a Suggester backed by the given service.
func NewSuggester(svc domain.ToolService) *Suggester {
	return &Suggester{svc: svc}
}

// Refresh fetches suggestions for query and returns them to the caller.
// The result also becomes the current state unless a newer refresh
// superseded this one in flight; a superseded refresh still answers with
// the candidates for its own query, never another request's.
func (s *Suggester) Refresh(ctx context.Context, query string) []domain.Suggestion {
	gen := s.gen.Add(1)

	suggestions, err := s.svc.Suggest(ctx, query)
	if err != nil {
		// The service already degrades failures to empty; treat any
		// residual error the same way.
		suggestions = []domain.Suggestion{}
	}

	s.mu.Lock()
	if gen == s.gen.Load() {
		s.current = suggestions
	}
	s.mu.Unlock()

	out := make([]domain.Suggestion, len(suggestions))
	copy(out, suggestions)
	return out
}

// Current returns the most recently applied suggestion list.
func (s *Suggester) Current() []domain.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Suggester) snapshot() []domain.Suggestion {
	out := make([]domain.Suggestion, len(s.current))
	copy(out, s.current)
	return out
}
