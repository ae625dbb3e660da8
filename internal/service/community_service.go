package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PrajithS20/SENTINEL/internal/events"
	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/repository"
)

var ErrChannelNotFound = errors.New("channel not found")

// recentMessageLimit caps a channel read to the newest messages; older ones
// are retained but not served.
const recentMessageLimit = 50

type CommunityService interface {
	ListChannels(ctx context.Context) ([]model.Channel, error)
	Messages(ctx context.Context, channelName string) ([]model.CommunityMessage, error)
	Post(ctx context.Context, userID uuid.UUID, channelName, content string) (*model.CommunityMessage, error)
}

type communityService struct {
	channelRepo repository.ChannelRepository
	publisher   events.EventPublisher
}

func NewCommunityService(channelRepo repository.ChannelRepository, publisher events.EventPublisher) CommunityService {
	return &communityService{
		channelRepo: channelRepo,
		publisher:   publisher,
	}
}

func (s *communityService) ListChannels(ctx context.Context) ([]model.Channel, error) {
	return s.channelRepo.ListChannels(ctx)
}

// Messages returns up to the newest fifty messages of a channel, oldest
// first so clients can render top-down.
func (s *communityService) Messages(ctx context.Context, channelName string) ([]model.CommunityMessage, error) {
	channel, err := s.channelRepo.FindChannelByName(ctx, channelName)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	return s.channelRepo.RecentMessages(ctx, channel.ID, recentMessageLimit)
}

func (s *communityService) Post(ctx context.Context, userID uuid.UUID, channelName, content string) (*model.CommunityMessage, error) {
	channel, err := s.channelRepo.FindChannelByName(ctx, channelName)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	msg := &model.CommunityMessage{
		ChannelID:   channel.ID,
		UserID:      userID,
		Content:     content,
		MessageType: "text",
		CreatedAt:   time.Now(),
	}

	if err := s.channelRepo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	go func(m model.CommunityMessage) {
		if err := s.publisher.PublishCommunityMessage(channelName, &m); err != nil {
			slog.Warn("failed to publish community message event", "channel", channelName, "error", err)
		}
	}(*msg)

	return msg, nil
}
