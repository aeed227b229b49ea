package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tarot/internal/app"
	"tarot/internal/ports"
)

const gameLogsTable = "game_logs"

// Sink implements ports.GameLogSink against a Supabase PostgREST
// endpoint. Writes authenticate with short-lived HS256 service tokens
// minted by the app's StorageTokenService.
type Sink struct {
	baseURL string
	tokens  *app.StorageTokenService
	client  *http.Client
}

// NewSink builds a sink for the given project base URL, e.g.
// "https://xyzcompany.supabase.co".
func NewSink(baseURL string, tokens *app.StorageTokenService) *Sink {
	return &Sink{
		baseURL: baseURL,
		tokens:  tokens,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WriteGameRecord inserts one finished game row.
func (s *Sink) WriteGameRecord(ctx context.Context, record ports.GameRecord) error {
	token, err := s.tokens.GenerateToken(app.StorageRoleService)
	if err != nil {
		return fmt.Errorf("failed to mint storage token: %w", err)
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, gameLogsTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", token)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to insert game record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("game record insert returned status %d", resp.StatusCode)
	}
	return nil
}
