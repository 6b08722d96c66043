package models

// Review is an author's rating of a game. AuthorID and GameID are not
// checked against their tables and may point at rows that no longer exist.
type Review struct {
	ID       string `json:"id" gorm:"primaryKey;size:64"`
	Rating   int    `json:"rating"`
	Content  string `json:"content"`
	AuthorID string `json:"author_id" gorm:"size:64;index"`
	GameID   string `json:"game_id" gorm:"size:64;index"`
}
