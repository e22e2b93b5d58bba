package changes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Handler processes one notice. Errors are logged and do not stop the
// subscription.
type Handler func(ctx context.Context, notice Notice) error

// Subscribe delivers every notice published on channel to handler until ctx
// is cancelled. Malformed messages are skipped.
func Subscribe(ctx context.Context, client *redis.Client, channel string, logger *zap.Logger, handler Handler) error {
	pubsub := client.Subscribe(ctx, channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", channel, err)
	}
	logger.Info("Subscribed to channel", zap.String("channel", channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var notice Notice
			if err := json.Unmarshal([]byte(msg.Payload), &notice); err != nil {
				logger.Warn("Dropping malformed notice",
					zap.String("channel", channel),
					zap.Error(err))
				continue
			}

			if err := handler(ctx, notice); err != nil {
				logger.Error("Notice handler failed",
					zap.String("type", notice.Type),
					zap.String("notice_id", notice.ID),
					zap.Error(err))
			}
		}
	}
}
