package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gamereviews/backend/internal/models"
	"gamereviews/backend/internal/store"
)

// Rows carry a position so tables come back in insertion order.

type gameRow struct {
	models.Game `gorm:"embedded"`
	Position    int64 `gorm:"index"`
}

func (gameRow) TableName() string { return "games" }

type authorRow struct {
	models.Author `gorm:"embedded"`
	Position      int64 `gorm:"index"`
}

func (authorRow) TableName() string { return "authors" }

type reviewRow struct {
	models.Review `gorm:"embedded"`
	Position      int64 `gorm:"index"`
}

func (reviewRow) TableName() string { return "reviews" }

// Store implements store.Store on top of gorm.
type Store struct {
	db      *gorm.DB
	ids     store.IDGenerator
	cascade bool
}

var _ store.Store = (*Store)(nil)

// NewStore wraps db and seeds it when all three tables are empty.
func NewStore(ctx context.Context, db *gorm.DB, ids store.IDGenerator, cascadeDelete bool) (*Store, error) {
	s := &Store{db: db, ids: ids, cascade: cascadeDelete}

	var total int64
	for _, model := range []any{&gameRow{}, &authorRow{}, &reviewRow{}} {
		var n int64
		if err := db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count rows: %w", err)
		}
		total += n
	}
	if total == 0 {
		if err := db.WithContext(ctx).Transaction(seed); err != nil {
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}
	return s, nil
}

func seed(tx *gorm.DB) error {
	games := models.SeedGames()
	gameRows := make([]gameRow, len(games))
	for i, g := range games {
		gameRows[i] = gameRow{Game: g, Position: int64(i + 1)}
	}
	authors := models.SeedAuthors()
	authorRows := make([]authorRow, len(authors))
	for i, a := range authors {
		authorRows[i] = authorRow{Author: a, Position: int64(i + 1)}
	}
	reviews := models.SeedReviews()
	reviewRows := make([]reviewRow, len(reviews))
	for i, r := range reviews {
		reviewRows[i] = reviewRow{Review: r, Position: int64(i + 1)}
	}

	if err := tx.Create(&gameRows).Error; err != nil {
		return err
	}
	if err := tx.Create(&authorRows).Error; err != nil {
		return err
	}
	return tx.Create(&reviewRows).Error
}

func (s *Store) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&reviewRow{}, &authorRow{}, &gameRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return seed(tx)
	})
}

func (s *Store) Games(ctx context.Context) ([]models.Game, error) {
	return listGames(s.db.WithContext(ctx))
}

func listGames(db *gorm.DB) ([]models.Game, error) {
	var rows []gameRow
	if err := db.Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	games := make([]models.Game, len(rows))
	for i, row := range rows {
		games[i] = row.Game
	}
	return games, nil
}

func (s *Store) Game(ctx context.Context, id string) (*models.Game, error) {
	var row gameRow
	if err := first(s.db.WithContext(ctx), &row, id); err != nil || row.ID == "" {
		return nil, err
	}
	return &row.Game, nil
}

func (s *Store) Authors(ctx context.Context) ([]models.Author, error) {
	var rows []authorRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	authors := make([]models.Author, len(rows))
	for i, row := range rows {
		authors[i] = row.Author
	}
	return authors, nil
}

func (s *Store) Author(ctx context.Context, id string) (*models.Author, error) {
	var row authorRow
	if err := first(s.db.WithContext(ctx), &row, id); err != nil || row.ID == "" {
		return nil, err
	}
	return &row.Author, nil
}

func (s *Store) Reviews(ctx context.Context) ([]models.Review, error) {
	return s.reviews(s.db.WithContext(ctx))
}

func (s *Store) Review(ctx context.Context, id string) (*models.Review, error) {
	var row reviewRow
	if err := first(s.db.WithContext(ctx), &row, id); err != nil || row.ID == "" {
		return nil, err
	}
	return &row.Review, nil
}

func (s *Store) ReviewsByGame(ctx context.Context, gameID string) ([]models.Review, error) {
	return s.reviews(s.db.WithContext(ctx).Where("game_id = ?", gameID))
}

func (s *Store) ReviewsByAuthor(ctx context.Context, authorID string) ([]models.Review, error) {
	return s.reviews(s.db.WithContext(ctx).Where("author_id = ?", authorID))
}

func (s *Store) reviews(db *gorm.DB) ([]models.Review, error) {
	var rows []reviewRow
	if err := db.Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	reviews := make([]models.Review, len(rows))
	for i, row := range rows {
		reviews[i] = row.Review
	}
	return reviews, nil
}

func (s *Store) AddGame(ctx context.Context, input models.GameInput) (*models.Game, error) {
	var created gameRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lookupErr error
		id, err := s.ids.NewID(func(id string) bool {
			var n int64
			if err := tx.Model(&gameRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
				lookupErr = err
				return true
			}
			return n > 0
		})
		if lookupErr != nil {
			return lookupErr
		}
		if err != nil {
			return fmt.Errorf("generate game id: %w", err)
		}

		var last int64
		if err := tx.Model(&gameRow{}).Select("COALESCE(MAX(position), 0)").Scan(&last).Error; err != nil {
			return err
		}

		platform := append([]string{}, input.Platform...)
		created = gameRow{
			Game:     models.Game{ID: id, Title: input.Title, Platform: platform},
			Position: last + 1,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created.Game, nil
}

func (s *Store) DeleteGame(ctx context.Context, id string) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&gameRow{}).Error; err != nil {
			return err
		}
		if s.cascade {
			if err := tx.Where("game_id = ?", id).Delete(&reviewRow{}).Error; err != nil {
				return err
			}
		}
		var err error
		games, err = listGames(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) UpdateGame(ctx context.Context, id string, edits models.GameEdits) (*models.Game, error) {
	var updated *models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row gameRow
		if err := first(tx, &row, id); err != nil || row.ID == "" {
			return err
		}
		row.Game = edits.Apply(row.Game)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		updated = &row.Game
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// first loads the row with id into dest. A missing row leaves dest zeroed
// and is not an error.
func first(db *gorm.DB, dest any, id string) error {
	err := db.Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
