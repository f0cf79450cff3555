package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

// Client calls the narrative generation service. The provider is slow and
// unreliable, so every call is time-boxed and callers treat failure as a
// degraded stage, never as a failed submission.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

// Generate produces the per-zone diagnosis texts for a scored assessment.
func (c *Client) Generate(ctx context.Context, intake domain.Intake, enrichment *domain.EnrichmentResult, scores *domain.ScoreSet) (map[string]string, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("diagnosis service not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]any{
		"intake":     intake,
		"enrichment": enrichment,
		"scores":     scores,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal diagnosis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/diagnose", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diagnosis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("diagnosis returned status %d", resp.StatusCode)
	}

	var out struct {
		Diagnoses map[string]string `json:"diagnoses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode diagnosis response: %w", err)
	}

	return out.Diagnoses, nil
}
