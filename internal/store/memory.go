package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"gamereviews/backend/internal/models"
)

// MemoryStore keeps the tables in slices. Every lookup is a linear scan,
// which is fine for the handful of rows the service is seeded with.
type MemoryStore struct {
	mu      sync.RWMutex
	games   []models.Game
	authors []models.Author
	reviews []models.Review

	ids     IDGenerator
	cascade bool
}

var _ Store = (*MemoryStore)(nil)

type Option func(*MemoryStore)

func WithIDGenerator(g IDGenerator) Option {
	return func(s *MemoryStore) {
		s.ids = g
	}
}

// WithCascadeDelete makes DeleteGame also drop the reviews of the deleted game.
func WithCascadeDelete(enabled bool) Option {
	return func(s *MemoryStore) {
		s.cascade = enabled
	}
}

// NewMemoryStore returns a store holding the seed rows.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		ids: &NumericGenerator{Intn: rand.IntN},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

func (s *MemoryStore) seed() {
	s.games = models.SeedGames()
	s.authors = models.SeedAuthors()
	s.reviews = models.SeedReviews()
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed()
	return nil
}

func (s *MemoryStore) Games(_ context.Context) ([]models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneGames(s.games), nil
}

func (s *MemoryStore) Game(_ context.Context, id string) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.gameIndex(id); i >= 0 {
		g := s.games[i].Clone()
		return &g, nil
	}
	return nil, nil
}

func (s *MemoryStore) Authors(_ context.Context) ([]models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Author(nil), s.authors...), nil
}

func (s *MemoryStore) Author(_ context.Context, id string) (*models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.authors {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Reviews(_ context.Context) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Review(nil), s.reviews...), nil
}

func (s *MemoryStore) Review(_ context.Context, id string) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ReviewsByGame(_ context.Context, gameID string) ([]models.Review, error) {
	return s.filterReviews(func(r models.Review) bool { return r.GameID == gameID }), nil
}

func (s *MemoryStore) ReviewsByAuthor(_ context.Context, authorID string) ([]models.Review, error) {
	return s.filterReviews(func(r models.Review) bool { return r.AuthorID == authorID }), nil
}

func (s *MemoryStore) filterReviews(keep func(models.Review) bool) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *MemoryStore) AddGame(_ context.Context, input models.GameInput) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.ids.NewID(func(id string) bool { return s.gameIndex(id) >= 0 })
	if err != nil {
		return nil, fmt.Errorf("generate game id: %w", err)
	}
	game := models.Game{
		ID:       id,
		Title:    input.Title,
		Platform: append([]string{}, input.Platform...),
	}
	s.games = append(s.games, game)

	out := game.Clone()
	return &out, nil
}

func (s *MemoryStore) DeleteGame(_ context.Context, id string) ([]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.games[:0:0]
	for _, g := range s.games {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.games = kept

	if s.cascade {
		reviews := s.reviews[:0:0]
		for _, r := range s.reviews {
			if r.GameID != id {
				reviews = append(reviews, r)
			}
		}
		s.reviews = reviews
	}
	return cloneGames(s.games), nil
}

func (s *MemoryStore) UpdateGame(_ context.Context, id string, edits models.GameEdits) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *models.Game
	for i, g := range s.games {
		if g.ID != id {
			continue
		}
		s.games[i] = edits.Apply(g)
		if updated == nil {
			out := s.games[i].Clone()
			updated = &out
		}
	}
	return updated, nil
}

// gameIndex expects s.mu to be held.
func (s *MemoryStore) gameIndex(id string) int {
	for i, g := range s.games {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func cloneGames(games []models.Game) []models.Game {
	out := make([]models.Game, len(games))
	for i, g := range games {
		out[i] = g.Clone()
	}
	return out
}
