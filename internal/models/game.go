package models

// Game represents a game in the catalogue.
type Game struct {
	ID       string   `json:"id" gorm:"primaryKey;size:64"`
	Title    string   `json:"title" gorm:"size:255;not null"`
	Platform []string `json:"platform" gorm:"type:text;serializer:json"`
}

// Clone returns a copy of the game that shares no memory with the receiver.
func (g Game) Clone() Game {
	g.Platform = append([]string(nil), g.Platform...)
	return g
}

// GameInput is the payload used to create a game.
type GameInput struct {
	Title    string   `json:"title"`
	Platform []string `json:"platform"`
}

// GameEdits holds the fields to merge into an existing game.
// A nil field is left untouched.
type GameEdits struct {
	Title    *string  `json:"title,omitempty"`
	Platform []string `json:"platform,omitempty"`
}

// Apply merges the edits over g and returns the result.
func (e GameEdits) Apply(g Game) Game {
	g = g.Clone()
	if e.Title != nil {
		g.Title = *e.Title
	}
	if e.Platform != nil {
		g.Platform = append([]string{}, e.Platform...)
	}
	return g
}
