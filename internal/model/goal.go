package model

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Text      string    `db:"text" json:"text"`
	Category  string    `db:"category" json:"category"`
	Color     string    `db:"color" json:"color"`
	Done      bool      `db:"done" json:"done"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
