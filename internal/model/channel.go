package model

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Category string    `db:"category" json:"category"`
}

type CommunityMessage struct {
	ID          int64     `db:"id" json:"id"`
	ChannelID   uuid.UUID `db:"channel_id" json:"channel_id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	UserName    string    `db:"user_name" json:"user_name"`
	Content     string    `db:"content" json:"content"`
	MessageType string    `db:"message_type" json:"type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
