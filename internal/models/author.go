package models

// Author represents someone who writes reviews.
type Author struct {
	ID       string `json:"id" gorm:"primaryKey;size:64"`
	Name     string `json:"name" gorm:"size:255;not null"`
	Verified bool   `json:"verified"`
}
