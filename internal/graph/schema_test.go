package graph

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamereviews/backend/internal/auth"
	"gamereviews/backend/internal/hub"
	"gamereviews/backend/internal/store"
)

type recordedEvents struct {
	events []hub.Event
}

func (r *recordedEvents) Broadcast(event hub.Event) {
	r.events = append(r.events, event)
}

func newTestSchema(t *testing.T, opts ...store.Option) (graphql.Schema, *Resolver, *recordedEvents) {
	t.Helper()
	events := &recordedEvents{}
	r := &Resolver{Store: store.NewMemoryStore(opts...), Events: events}
	schema, err := NewSchema(r)
	require.NoError(t, err)
	return schema, r, events
}

func exec(t *testing.T, ctx context.Context, schema graphql.Schema, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func execJSON(t *testing.T, schema graphql.Schema, query string, vars map[string]interface{}) string {
	t.Helper()
	result := exec(t, context.Background(), schema, query, vars)
	require.False(t, result.HasErrors(), "%v", result.Errors)
	out, err := json.Marshal(result.Data)
	require.NoError(t, err)
	return string(out)
}

func TestQuery_Lists(t *testing.T) {
	schema, _, _ := newTestSchema(t)

	got := execJSON(t, schema, `{ games { id } authors { name verified } }`, nil)
	assert.JSONEq(t, `{
		"games": [{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":"5"}],
		"authors": [
			{"name":"mario","verified":true},
			{"name":"yoshi","verified":false},
			{"name":"peach","verified":true},
			{"name":"farras","verified":true}
		]
	}`, got)

	got = execJSON(t, schema, `{ reviews { id rating } }`, nil)
	assert.JSONEq(t, `{"reviews":[
		{"id":"1","rating":9},{"id":"2","rating":10},{"id":"3","rating":7},{"id":"4","rating":5},
		{"id":"5","rating":8},{"id":"6","rating":7},{"id":"7","rating":10}
	]}`, got)
}

func TestQuery_Pagination(t *testing.T) {
	schema, _, _ := newTestSchema(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "limit", query: `{ games(limit: 2) { id } }`, want: `{"games":[{"id":"1"},{"id":"2"}]}`},
		{name: "offset", query: `{ games(offset: 3) { id } }`, want: `{"games":[{"id":"4"},{"id":"5"}]}`},
		{name: "both", query: `{ reviews(offset: 1, limit: 2) { id } }`, want: `{"reviews":[{"id":"2"},{"id":"3"}]}`},
		{name: "offset past end", query: `{ authors(offset: 10) { id } }`, want: `{"authors":[]}`},
		{name: "zero limit", query: `{ authors(limit: 0) { id } }`, want: `{"authors":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, execJSON(t, schema, tt.query, nil))
		})
	}
}

func TestQuery_ByID(t *testing.T) {
	schema, _, _ := newTestSchema(t)

	got := execJSON(t, schema, `{
		game(id: "2") { id title platform }
		author(id: "3") { id name verified }
		review(id: "1") { id rating content }
	}`, nil)
	assert.JSONEq(t, `{
		"game": {"id":"2","title":"Final Fantasy 7 Remake","platform":["PS5","Xbox"]},
		"author": {"id":"3","name":"peach","verified":true},
		"review": {"id":"1","rating":9,"content":"lorem ipsum"}
	}`, got)

	got = execJSON(t, schema, `{ game(id: "99") { id } author(id: "99") { id } review(id: "99") { id } }`, nil)
	assert.JSONEq(t, `{"game":null,"author":null,"review":null}`, got)
}

func TestQuery_Relationships(t *testing.T) {
	schema, _, _ := newTestSchema(t)

	got := execJSON(t, schema, `{
		game(id: "1") { reviews { id author { name } } }
		author(id: "4") { reviews { id } }
		review(id: "6") { game { title } author { name } }
	}`, nil)
	assert.JSONEq(t, `{
		"game": {"reviews": [{"id":"2","author":{"name":"yoshi"}},{"id":"7","author":{"name":"peach"}}]},
		"author": {"reviews": []},
		"review": {"game":{"title":"Final Fantasy 7 Remake"},"author":{"name":"mario"}}
	}`, got)

	got = execJSON(t, schema, `{ author(id: "2") { reviews { id game { id } } } }`, nil)
	assert.JSONEq(t, `{"author":{"reviews":[
		{"id":"2","game":{"id":"1"}},
		{"id":"4","game":{"id":"4"}},
		{"id":"5","game":{"id":"5"}}
	]}}`, got)
}

func TestMutation_AddGame(t *testing.T) {
	schema, _, events := newTestSchema(t)

	result := exec(t, context.Background(), schema, `mutation Add($game: AddGameInput!) {
		addGame(game: $game) { id title platform }
	}`, map[string]interface{}{
		"game": map[string]interface{}{"title": "Hades", "platform": []interface{}{"PC", "Switch"}},
	})
	require.False(t, result.HasErrors(), "%v", result.Errors)

	added := result.Data.(map[string]interface{})["addGame"].(map[string]interface{})
	id, _ := added["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Hades", added["title"])

	got := execJSON(t, schema, `query ($id: ID!) { game(id: $id) { title platform } }`, map[string]interface{}{"id": id})
	assert.JSONEq(t, `{"game":{"title":"Hades","platform":["PC","Switch"]}}`, got)

	var list struct {
		Games []struct{ ID string } `json:"games"`
	}
	require.NoError(t, json.Unmarshal([]byte(execJSON(t, schema, `{ games { id } }`, nil)), &list))
	assert.Len(t, list.Games, 6)

	require.Len(t, events.events, 1)
	assert.Equal(t, EventGameAdded, events.events[0].Type)
}

func TestMutation_AddGameRequiresInput(t *testing.T) {
	schema, _, _ := newTestSchema(t)

	result := exec(t, context.Background(), schema, `mutation { addGame(game: {title: "No platform"}) { id } }`, nil)
	assert.True(t, result.HasErrors())
}

func TestMutation_DeleteGame(t *testing.T) {
	schema, _, events := newTestSchema(t)

	const del = `mutation { deleteGame(id: "4") { id } }`
	want := `{"deleteGame":[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"5"}]}`
	assert.JSONEq(t, want, execJSON(t, schema, del, nil))
	assert.JSONEq(t, want, execJSON(t, schema, del, nil))

	got := execJSON(t, schema, `{ review(id: "4") { id game { id } author { name } } }`, nil)
	assert.JSONEq(t, `{"review":{"id":"4","game":null,"author":{"name":"yoshi"}}}`, got)

	require.Len(t, events.events, 2)
	assert.Equal(t, EventGameDeleted, events.events[0].Type)
}

func TestMutation_DeleteGameCascade(t *testing.T) {
	schema, _, _ := newTestSchema(t, store.WithCascadeDelete(true))

	execJSON(t, schema, `mutation { deleteGame(id: "4") { id } }`, nil)

	got := execJSON(t, schema, `{ review(id: "4") { id } author(id: "2") { reviews { id } } }`, nil)
	assert.JSONEq(t, `{"review":null,"author":{"reviews":[{"id":"2"},{"id":"5"}]}}`, got)
}

func TestMutation_UpdateGame(t *testing.T) {
	schema, _, events := newTestSchema(t)

	got := execJSON(t, schema, `mutation { updateGame(id: "1", edits: {title: "Zelda: TOTK"}) { id title platform } }`, nil)
	assert.JSONEq(t, `{"updateGame":{"id":"1","title":"Zelda: TOTK","platform":["Switch"]}}`, got)

	got = execJSON(t, schema, `mutation { updateGame(id: "3", edits: {title: "Elden Ring", platform: ["PC"]}) { platform } }`, nil)
	assert.JSONEq(t, `{"updateGame":{"platform":["PC"]}}`, got)

	got = execJSON(t, schema, `mutation { updateGame(id: "404", edits: {title: "X"}) { id } }`, nil)
	assert.JSONEq(t, `{"updateGame":null}`, got)

	got = execJSON(t, schema, `{ games { title } }`, nil)
	assert.JSONEq(t, `{"games":[
		{"title":"Zelda: TOTK"},{"title":"Final Fantasy 7 Remake"},{"title":"Elden Ring"},
		{"title":"Mario Kart"},{"title":"Pokemon Scarlet"}
	]}`, got)

	require.Len(t, events.events, 2)
	assert.Equal(t, EventGameUpdated, events.events[1].Type)
}

func TestMutation_RequireAuth(t *testing.T) {
	schema, r, events := newTestSchema(t)
	r.RequireAuth = true

	result := exec(t, context.Background(), schema, `mutation { deleteGame(id: "1") { id } }`, nil)
	require.True(t, result.HasErrors())
	assert.Equal(t, ErrUnauthorized.Error(), result.Errors[0].Message)
	assert.Empty(t, events.events)

	// the table is untouched
	assert.JSONEq(t, `{"game":{"id":"1"}}`, execJSON(t, schema, `{ game(id: "1") { id } }`, nil))

	ctx := auth.WithSubject(context.Background(), "mario")
	result = exec(t, ctx, schema, `mutation { deleteGame(id: "1") { id } }`, nil)
	require.False(t, result.HasErrors(), "%v", result.Errors)
	assert.Len(t, events.events, 1)
}
