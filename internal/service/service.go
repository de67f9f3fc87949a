package service

import (
	"context"
	"log/slog"

	"github.com/Skotchmaster/bargain_shop/pkg/events"
)

// publish sends an event and only logs a failure; the write it describes has already happened.
func publish(ctx context.Context, l *slog.Logger, p events.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, event); err != nil {
		l.Error("publish_event_error", "topic", topic, "type", event["type"], "error", err)
	}
}
