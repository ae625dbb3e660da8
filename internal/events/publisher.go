package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type EventPublisher interface {
	PublishPhaseUnlocked(project *model.Project, newStage string) error
	PublishCommunityMessage(channelName string, msg *model.CommunityMessage) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type PhaseUnlockedEvent struct {
	EventType    string     `json:"event_type"`
	ProjectID    string     `json:"project_id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	CurrentPhase int        `json:"current_phase"`
	GrowthStage  string     `json:"growth_stage"`
	UnlockedAt   time.Time  `json:"unlocked_at"`
}

type CommunityMessagePostedEvent struct {
	EventType string    `json:"event_type"`
	Channel   string    `json:"channel"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	PostedAt  time.Time `json:"posted_at"`
}

func (p *NatsPublisher) PublishPhaseUnlocked(project *model.Project, newStage string) error {
	event := PhaseUnlockedEvent{
		EventType:    "project.phase.unlocked",
		ProjectID:    project.ID,
		UserID:       project.UserID,
		CurrentPhase: project.CurrentPhase,
		GrowthStage:  newStage,
		UnlockedAt:   time.Now(),
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	subject := "project.phase.unlocked"
	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	return nil
}

func (p *NatsPublisher) PublishCommunityMessage(channelName string, msg *model.CommunityMessage) error {
	event := CommunityMessagePostedEvent{
		EventType: "community.message.posted",
		Channel:   channelName,
		UserID:    msg.UserID,
		Type:      msg.MessageType,
		PostedAt:  time.Now(),
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		return err
	}

	subject := "community.message.posted"
	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)

		return err
	}

	return nil
}

// NoopPublisher keeps the event path optional when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPhaseUnlocked(*model.Project, string) error { return nil }
func (NoopPublisher) PublishCommunityMessage(string, *model.CommunityMessage) error { return nil }
