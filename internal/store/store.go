// Package store holds the games, authors and reviews tables behind the
// GraphQL resolvers.
//
// Lookups by id never fail for unknown ids: they return a nil row.
package store

import (
	"context"

	"gamereviews/backend/internal/models"
)

// Store is the single source of truth for the three tables. Only games can
// be written; authors and reviews are fixed after seeding.
type Store interface {
	Games(ctx context.Context) ([]models.Game, error)
	Game(ctx context.Context, id string) (*models.Game, error)
	Authors(ctx context.Context) ([]models.Author, error)
	Author(ctx context.Context, id string) (*models.Author, error)
	Reviews(ctx context.Context) ([]models.Review, error)
	Review(ctx context.Context, id string) (*models.Review, error)

	ReviewsByGame(ctx context.Context, gameID string) ([]models.Review, error)
	ReviewsByAuthor(ctx context.Context, authorID string) ([]models.Review, error)

	AddGame(ctx context.Context, input models.GameInput) (*models.Game, error)
	// DeleteGame removes every game with the id and returns the remaining table.
	DeleteGame(ctx context.Context, id string) ([]models.Game, error)
	// UpdateGame returns nil when no game has the id.
	UpdateGame(ctx context.Context, id string, edits models.GameEdits) (*models.Game, error)

	// Reset restores the seed rows.
	Reset(ctx context.Context) error
}
