package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/seedcampus/seed-client/internal/config"
)

// Gateway is the single-endpoint wrapper every feature calls through. The
// whole wire contract is one POST with {"action": ..., fields...} and a
// JSON reply; there is no retry, dedup or rate limiting here, and a
// business-level failure (success:false) still resolves normally. Callers
// branch on the success field themselves.
type Gateway struct {
	url       string
	authToken string
	client    *http.Client
}

func New(cfg *config.Config) *Gateway {
	return &Gateway{
		url:       cfg.Gateway.URL,
		authToken: cfg.Gateway.AuthToken,
		client:    &http.Client{Timeout: cfg.Gateway.Timeout},
	}
}

// Call posts one action. It returns an error only on transport failure or a
// non-JSON body.
func (g *Gateway) Call(ctx context.Context, action string, params map[string]any) (Response, error) {
	body := make(map[string]any, len(params)+1)
	for k, v := range params {
		body[k] = v
	}
	body["action"] = action

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if g.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.authToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", action, err)
	}

	if !parsed.OK() {
		slog.Debug("backend rejected action",
			slog.String("action", action),
			slog.String("message", parsed.Message()))
	}

	return parsed, nil
}
