package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type ChannelRepository interface {
	ListChannels(ctx context.Context) ([]model.Channel, error)
	FindChannelByName(ctx context.Context, name string) (*model.Channel, error)
	InsertMessage(ctx context.Context, msg *model.CommunityMessage) error
	RecentMessages(ctx context.Context, channelID uuid.UUID, limit int) ([]model.CommunityMessage, error)
}

type postgresChannelRepository struct {
	db *sqlx.DB
}

func NewPostgresChannelRepository(db *sqlx.DB) ChannelRepository {
	return &postgresChannelRepository{db: db}
}

func (r *postgresChannelRepository) ListChannels(ctx context.Context) ([]model.Channel, error) {
	var channels []model.Channel
	query := `SELECT id, name, category FROM channels ORDER BY name`
	err := r.db.SelectContext(ctx, &channels, query)
	return channels, err
}

func (r *postgresChannelRepository) FindChannelByName(ctx context.Context, name string) (*model.Channel, error) {
	var channel model.Channel
	query := `SELECT id, name, category FROM channels WHERE name = $1`
	err := r.db.GetContext(ctx, &channel, query, name)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &channel, nil
}

func (r *postgresChannelRepository) InsertMessage(ctx context.Context, msg *model.CommunityMessage) error {
	query := `INSERT INTO community_messages (channel_id, user_id, content, message_type) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, msg.ChannelID, msg.UserID, msg.Content, msg.MessageType)
	return err
}

// RecentMessages returns the newest `limit` messages reordered oldest first,
// so the client renders a tail of the channel in reading order.
func (r *postgresChannelRepository) RecentMessages(ctx context.Context, channelID uuid.UUID, limit int) ([]model.CommunityMessage, error) {
	var messages []model.CommunityMessage
	query := `
		SELECT m.id, m.channel_id, m.user_id, COALESCE(u.name, '') as user_name, m.content, m.message_type, m.created_at
		FROM (
			SELECT * FROM community_messages WHERE channel_id = $1 ORDER BY id DESC LIMIT $2
		) m
		LEFT JOIN users u ON m.user_id = u.id
		ORDER BY m.id ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, channelID, limit)

	if messages == nil {
		messages = []model.CommunityMessage{}
	}

	return messages, err
}
