package push

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"context"
	"log/slog"
)

var _ contract.IPusher = (*LogPusher)(nil)

// LogPusher stands in for a real push gateway: it only logs what would be sent.
type LogPusher struct {
	log *slog.Logger
}

func NewLogPusher(log *slog.Logger) *LogPusher {
	return &LogPusher{log: log}
}

func (p *LogPusher) Push(_ context.Context, deviceToken string, payload domain.PushPayload) error {
	p.log.Info("Push notification", "device", deviceToken, "title", payload.Title, "body", payload.Body)
	return nil
}
