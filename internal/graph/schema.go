// Package graph declares the GraphQL type graph and maps each (type, field)
// pair to the resolve function that produces it.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"gamereviews/backend/internal/models"
)

// NewSchema builds the executable schema backed by r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	var gameType, authorType, reviewType *graphql.Object

	gameType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Game",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: gameField(func(g *models.Game) any { return g.ID })},
				"title":    &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: gameField(func(g *models.Game) any { return g.Title })},
				"platform": &graphql.Field{Type: nonNullStringList(), Resolve: gameField(platform)},
				"reviews":  &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(reviewType)), Resolve: r.gameReviews},
			}
		}),
	})

	authorType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: authorField(func(a *models.Author) any { return a.ID })},
				"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: authorField(func(a *models.Author) any { return a.Name })},
				"verified": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean), Resolve: authorField(func(a *models.Author) any { return a.Verified })},
				"reviews":  &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(reviewType)), Resolve: r.authorReviews},
			}
		}),
	})

	// game and author are nullable: a review may outlive the game it points at.
	reviewType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Review",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: reviewField(func(rv *models.Review) any { return rv.ID })},
				"rating":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: reviewField(func(rv *models.Review) any { return rv.Rating })},
				"content": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: reviewField(func(rv *models.Review) any { return rv.Content })},
				"game":    &graphql.Field{Type: gameType, Resolve: r.reviewGame},
				"author":  &graphql.Field{Type: authorType, Resolve: r.reviewAuthor},
			}
		}),
	})

	idArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
	pageArgs := graphql.FieldConfigArgument{
		"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
		"offset": &graphql.ArgumentConfig{Type: graphql.Int},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"reviews": &graphql.Field{Type: graphql.NewList(reviewType), Args: pageArgs, Resolve: r.reviews},
			"review":  &graphql.Field{Type: reviewType, Args: idArgs, Resolve: r.review},
			"games":   &graphql.Field{Type: graphql.NewList(gameType), Args: pageArgs, Resolve: r.games},
			"game":    &graphql.Field{Type: gameType, Args: idArgs, Resolve: r.game},
			"authors": &graphql.Field{Type: graphql.NewList(authorType), Args: pageArgs, Resolve: r.authors},
			"author":  &graphql.Field{Type: authorType, Args: idArgs, Resolve: r.author},
		},
	})

	addGameInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddGameInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"platform": &graphql.InputObjectFieldConfig{Type: nonNullStringList()},
		},
	})
	editGameInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EditGameInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"platform": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addGame": &graphql.Field{
				Type: gameType,
				Args: graphql.FieldConfigArgument{
					"game": &graphql.ArgumentConfig{Type: graphql.NewNonNull(addGameInput)},
				},
				Resolve: r.addGame,
			},
			"deleteGame": &graphql.Field{
				Type:    graphql.NewList(gameType),
				Args:    idArgs,
				Resolve: r.deleteGame,
			},
			"updateGame": &graphql.Field{
				Type: gameType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"edits": &graphql.ArgumentConfig{Type: graphql.NewNonNull(editGameInput)},
				},
				Resolve: r.updateGame,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}

func nonNullStringList() *graphql.NonNull {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))
}

func platform(g *models.Game) any {
	if g.Platform == nil {
		return []string{}
	}
	return g.Platform
}

func gameField(get func(*models.Game) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return get(p.Source.(*models.Game)), nil
	}
}

func authorField(get func(*models.Author) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return get(p.Source.(*models.Author)), nil
	}
}

func reviewField(get func(*models.Review) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return get(p.Source.(*models.Review)), nil
	}
}
