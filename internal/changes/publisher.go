// Package changes carries record change notices between the gateway and its
// listeners over Redis pub/sub.
package changes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notice types.
const (
	EventCreated   = "event.created"
	EventUpdated   = "event.updated"
	EventDeleted   = "event.deleted"
	GalleryCreated = "gallery.created"
	GalleryUpdated = "gallery.updated"
	GalleryDeleted = "gallery.deleted"
)

// Notice is one record change.
type Notice struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Publisher announces record changes.
type Publisher interface {
	Publish(ctx context.Context, noticeType string, payload any) error
}

// RedisPublisher publishes notices as JSON on a single channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger.Named("changes"),
	}
}

// Publish publishes a notice of the given type carrying payload.
func (p *RedisPublisher) Publish(ctx context.Context, noticeType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	notice := Notice{
		ID:        uuid.New().String(),
		Type:      noticeType,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}
	data, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish notice: %w", err)
	}

	p.logger.Debug("Published notice",
		zap.String("channel", p.channel),
		zap.String("type", noticeType),
		zap.String("notice_id", notice.ID))
	return nil
}

// NopPublisher drops every notice. It stands in when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
