package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Phase is one ordered unit of work in a project curriculum. Only the fields
// the phase logic reads are typed; anything else the generator returns is
// dropped at the storage boundary.
type Phase struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tasks       []string `json:"tasks"`
	Resources   []string `json:"resources,omitempty"`
}

// PhaseList stores the ordered phase curriculum as a JSONB document.
type PhaseList []Phase

func (p PhaseList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PhaseList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("unsupported type for PhaseList")
}

type Project struct {
	ID           string     `db:"id" json:"id"`
	UserID       *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Title        string     `db:"title" json:"title"`
	Tech         string     `db:"tech" json:"tech_stack"`
	Description  string     `db:"description" json:"description"`
	Phases       PhaseList  `db:"phases" json:"phases"`
	TotalPhases  int        `db:"total_phases" json:"total_phases"`
	CurrentPhase int        `db:"current_phase" json:"current_phase"`
	Code         *string    `db:"code" json:"code,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"started_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
