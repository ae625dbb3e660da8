package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Profile is one analysis snapshot for a user. A user accumulates a history
// of profiles; the newest row by created_at is the current one.
type Profile struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	UserID              uuid.UUID       `db:"user_id" json:"user_id"`
	Role                string          `db:"role" json:"role"`
	Analysis            json.RawMessage `db:"analysis" json:"analysis"`
	SuggestedProjects   json.RawMessage `db:"suggested_projects" json:"suggested_projects"`
	JobMatches          json.RawMessage `db:"job_matches" json:"job_matches,omitempty"`
	JobMatchesUpdatedAt *time.Time      `db:"job_matches_updated_at" json:"job_matches_updated_at,omitempty"`
	GrowthStage         string          `db:"growth_stage" json:"growth_stage"`
	DisplayName         *string         `db:"display_name" json:"display_name,omitempty"`
	DisplayEmail        *string         `db:"display_email" json:"display_email,omitempty"`
	Location            *string         `db:"location" json:"location,omitempty"`
	AvatarURL           *string         `db:"avatar_url" json:"avatar_url,omitempty"`
	Bio                 *string         `db:"bio" json:"bio,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
}

// ProfileSummary is the shape returned by the history sidebar listing.
type ProfileSummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"date"`
}
