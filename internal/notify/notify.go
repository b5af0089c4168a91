package notify

import (
	"context"
	"log/slog"

	"github.com/pacewatch/pacewatch/internal/config"
	"github.com/pacewatch/pacewatch/internal/fetch"
)

// Notifier sends one composed text report to each configured webhook target.
type Notifier struct {
	webhooks []config.WebhookConfig
	fetch    *fetch.Client
}

// New creates a Notifier. An empty target list is valid — Deliver becomes a
// no-op.
func New(cfg config.NotifyConfig, fc *fetch.Client) *Notifier {
	return &Notifier{webhooks: cfg.Webhooks, fetch: fc}
}

// Deliver posts text to every configured target and returns how many
// deliveries succeeded. Failures are logged per target.
func (n *Notifier) Deliver(ctx context.Context, text string) int {
	delivered := 0
	for _, wh := range n.webhooks {
		url := wh.URL()
		if url == "" {
			slog.Warn("notify: webhook url not set — skipping", "type", wh.Type, "env", wh.URLEnv)
			continue
		}

		var ok bool
		switch wh.Type {
		case "slack":
			ok = n.sendSlack(ctx, url, wh.Channel, text)
		case "teams":
			ok = n.sendTeams(ctx, url, text)
		case "http":
			ok = n.sendHTTP(ctx, url, wh.Channel, text)
		default:
			slog.Warn("notify: unknown webhook type — skipping", "type", wh.Type)
			continue
		}

		if ok {
			delivered++
			slog.Debug("notify: report delivered", "type", wh.Type, "channel", wh.Channel)
		} else {
			slog.Error("notify: delivery failed", "type", wh.Type, "channel", wh.Channel)
		}
	}
	return delivered
}

func (n *Notifier) sendSlack(ctx context.Context, url, channel, text string) bool {
	payload := map[string]string{"text": text}
	if channel != "" {
		payload["channel"] = channel
	}
	_, ok := n.fetch.PostJSON(ctx, url, nil, payload)
	return ok
}

func (n *Notifier) sendTeams(ctx context.Context, url, text string) bool {
	payload := map[string]interface{}{
		"@type":    "MessageCard",
		"@context": "http://schema.org/extensions",
		"summary":  "Revenue pace report",
		"text":     text,
	}
	_, ok := n.fetch.PostJSON(ctx, url, nil, payload)
	return ok
}

func (n *Notifier) sendHTTP(ctx context.Context, url, channel, text string) bool {
	_, ok := n.fetch.PostJSON(ctx, url, nil, map[string]string{
		"channel": channel,
		"report":  text,
	})
	return ok
}
