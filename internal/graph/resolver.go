package graph

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"gamereviews/backend/internal/auth"
	"gamereviews/backend/internal/hub"
	"gamereviews/backend/internal/models"
	"gamereviews/backend/internal/store"
)

var ErrUnauthorized = errors.New("unauthorized")

const (
	EventGameAdded   = "game.added"
	EventGameDeleted = "game.deleted"
	EventGameUpdated = "game.updated"
)

// Publisher receives an event after every successful mutation.
type Publisher interface {
	Broadcast(event hub.Event)
}

// Resolver holds the dependencies of every resolve function in the schema.
type Resolver struct {
	Store  store.Store
	Events Publisher
	Logger *zap.Logger
	// RequireAuth rejects mutations from requests without an authenticated subject.
	RequireAuth bool
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Resolver) publish(eventType string, payload any) {
	if r.Events != nil {
		r.Events.Broadcast(hub.Event{Type: eventType, Payload: payload})
	}
}

func (r *Resolver) authorize(ctx context.Context) error {
	if !r.RequireAuth {
		return nil
	}
	if _, ok := auth.SubjectFromContext(ctx); !ok {
		return ErrUnauthorized
	}
	return nil
}

// region --- Query ---

func (r *Resolver) games(p graphql.ResolveParams) (interface{}, error) {
	games, err := r.Store.Games(p.Context)
	if err != nil {
		return nil, err
	}
	return gamePtrs(paginate(games, p.Args)), nil
}

func (r *Resolver) game(p graphql.ResolveParams) (interface{}, error) {
	g, err := r.Store.Game(p.Context, stringArg(p, "id"))
	if err != nil || g == nil {
		return nil, err
	}
	return g, nil
}

func (r *Resolver) authors(p graphql.ResolveParams) (interface{}, error) {
	authors, err := r.Store.Authors(p.Context)
	if err != nil {
		return nil, err
	}
	return authorPtrs(paginate(authors, p.Args)), nil
}

func (r *Resolver) author(p graphql.ResolveParams) (interface{}, error) {
	a, err := r.Store.Author(p.Context, stringArg(p, "id"))
	if err != nil || a == nil {
		return nil, err
	}
	return a, nil
}

func (r *Resolver) reviews(p graphql.ResolveParams) (interface{}, error) {
	reviews, err := r.Store.Reviews(p.Context)
	if err != nil {
		return nil, err
	}
	return reviewPtrs(paginate(reviews, p.Args)), nil
}

func (r *Resolver) review(p graphql.ResolveParams) (interface{}, error) {
	rv, err := r.Store.Review(p.Context, stringArg(p, "id"))
	if err != nil || rv == nil {
		return nil, err
	}
	return rv, nil
}

// endregion

// region --- Relationships ---

func (r *Resolver) gameReviews(p graphql.ResolveParams) (interface{}, error) {
	g := p.Source.(*models.Game)
	reviews, err := r.Store.ReviewsByGame(p.Context, g.ID)
	if err != nil {
		return nil, err
	}
	return reviewPtrs(reviews), nil
}

func (r *Resolver) authorReviews(p graphql.ResolveParams) (interface{}, error) {
	a := p.Source.(*models.Author)
	reviews, err := r.Store.ReviewsByAuthor(p.Context, a.ID)
	if err != nil {
		return nil, err
	}
	return reviewPtrs(reviews), nil
}

// reviewGame resolves to null when the game was deleted after the review was written.
func (r *Resolver) reviewGame(p graphql.ResolveParams) (interface{}, error) {
	rv := p.Source.(*models.Review)
	g, err := r.Store.Game(p.Context, rv.GameID)
	if err != nil || g == nil {
		return nil, err
	}
	return g, nil
}

func (r *Resolver) reviewAuthor(p graphql.ResolveParams) (interface{}, error) {
	rv := p.Source.(*models.Review)
	a, err := r.Store.Author(p.Context, rv.AuthorID)
	if err != nil || a == nil {
		return nil, err
	}
	return a, nil
}

// endregion

// region --- Mutation ---

func (r *Resolver) addGame(p graphql.ResolveParams) (interface{}, error) {
	if err := r.authorize(p.Context); err != nil {
		return nil, err
	}
	in, _ := p.Args["game"].(map[string]interface{})
	input := models.GameInput{
		Title:    stringValue(in["title"]),
		Platform: stringList(in["platform"]),
	}

	g, err := r.Store.AddGame(p.Context, input)
	if err != nil {
		r.logger().Error("Failed to add game", zap.Error(err))
		return nil, err
	}
	r.logger().Info("Game added", zap.String("id", g.ID), zap.String("title", g.Title))
	r.publish(EventGameAdded, g)
	return g, nil
}

func (r *Resolver) deleteGame(p graphql.ResolveParams) (interface{}, error) {
	if err := r.authorize(p.Context); err != nil {
		return nil, err
	}
	id := stringArg(p, "id")

	games, err := r.Store.DeleteGame(p.Context, id)
	if err != nil {
		r.logger().Error("Failed to delete game", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	r.logger().Info("Game deleted", zap.String("id", id))
	r.publish(EventGameDeleted, map[string]string{"id": id})
	return gamePtrs(games), nil
}

func (r *Resolver) updateGame(p graphql.ResolveParams) (interface{}, error) {
	if err := r.authorize(p.Context); err != nil {
		return nil, err
	}
	id := stringArg(p, "id")
	in, _ := p.Args["edits"].(map[string]interface{})

	var edits models.GameEdits
	if title, ok := in["title"].(string); ok {
		edits.Title = &title
	}
	if platform, ok := in["platform"]; ok && platform != nil {
		edits.Platform = stringList(platform)
	}

	g, err := r.Store.UpdateGame(p.Context, id, edits)
	if err != nil {
		r.logger().Error("Failed to update game", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	r.logger().Info("Game updated", zap.String("id", id))
	r.publish(EventGameUpdated, g)
	return g, nil
}

// endregion

func stringArg(p graphql.ResolveParams, name string) string {
	return stringValue(p.Args[name])
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func stringList(v interface{}) []string {
	items, _ := v.([]interface{})
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func gamePtrs(games []models.Game) []*models.Game {
	out := make([]*models.Game, len(games))
	for i := range games {
		out[i] = &games[i]
	}
	return out
}

func authorPtrs(authors []models.Author) []*models.Author {
	out := make([]*models.Author, len(authors))
	for i := range authors {
		out[i] = &authors[i]
	}
	return out
}

func reviewPtrs(reviews []models.Review) []*models.Review {
	out := make([]*models.Review, len(reviews))
	for i := range reviews {
		out[i] = &reviews[i]
	}
	return out
}
