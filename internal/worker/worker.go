// Package worker consumes domain events published by the API server.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jungle-shop/storefront/internal/mq"
	"github.com/jungle-shop/storefront/internal/services"
)

// Subscriber is the consuming side of the message queue.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler mq.Handler) error
}

// Run consumes user registration events until ctx is cancelled.
func Run(ctx context.Context, sub Subscriber) error {
	slog.InfoContext(ctx, "worker subscribed", "channel", services.UserRegisteredChannel)

	err := sub.Subscribe(ctx, services.UserRegisteredChannel, HandleUserRegistered)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HandleUserRegistered records a completed sign-up. Malformed payloads are
// logged and acknowledged so they are not redelivered.
func HandleUserRegistered(ctx context.Context, msg mq.Message) error {
	var event services.UserRegisteredEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.WarnContext(ctx, "dropping malformed user registration", "message_id", msg.ID, "error", err)
		return nil
	}
	if event.UserID < 1 {
		slog.WarnContext(ctx, "dropping user registration without id", "message_id", msg.ID)
		return nil
	}

	slog.InfoContext(ctx, "user registered",
		"message_id", msg.ID,
		"user_id", event.UserID,
		"email", event.Email,
	)
	return nil
}
