package revenue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pacewatch/pacewatch/internal/config"
	"github.com/pacewatch/pacewatch/internal/fetch"
	"github.com/pacewatch/pacewatch/pkg/types"
)

// FallbackClient talks to the natural-language assistant source. It accepts a
// plain-English question and returns free text that usually contains a
// currency figure.
type FallbackClient struct {
	cfg   config.FallbackConfig
	fetch *fetch.Client
}

// NewFallback builds an assistant client.
func NewFallback(cfg config.FallbackConfig, fc *fetch.Client) *FallbackClient {
	return &FallbackClient{cfg: cfg, fetch: fc}
}

// Ask sends prompt and returns the assistant's free-text answer.
// A structured {"answer": ...} response is unwrapped; anything else is
// returned as raw text, since the contract is free text either way.
func (f *FallbackClient) Ask(ctx context.Context, prompt string) (string, bool) {
	header := http.Header{}
	if key := f.cfg.Key(); key != "" {
		header.Set("Authorization", "Bearer "+key)
	}

	body, ok := f.fetch.PostJSON(ctx, f.cfg.Endpoint, header, map[string]string{
		"prompt": prompt,
	})
	if !ok {
		return "", false
	}

	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Answer != "" {
		return resp.Answer, true
	}
	return string(body), len(body) > 0
}

// revenuePrompt phrases the monthly-revenue question for one customer.
func revenuePrompt(customer types.CustomerRef, month types.YearMonth) string {
	return fmt.Sprintf(
		"What was the total revenue for customer %s (account key %s) in %s? Reply with a single dollar figure.",
		customer.Display(), customer.QueryKey, month.Label(),
	)
}
