package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry accumulates logged hours per user per calendar day.
// At most one row exists per (user, date); repeated logs merge into it.
type ActivityEntry struct {
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	ActivityDate time.Time `db:"activity_date" json:"date"`
	Hours        float64   `db:"hours" json:"hours"`
	Level        int       `db:"level" json:"level"`
}
