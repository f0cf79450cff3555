package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

// Client talks to the external enrichment service (site analysis, competitor
// and market search). Contract: returns a result or an error, never panics
// past this boundary; callers treat any error as a degraded stage.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		// The research backend rate-limits aggressively; stay under it.
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// Enrich runs external data collection for an intake.
func (c *Client) Enrich(ctx context.Context, intake domain.Intake) (*domain.EnrichmentResult, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("enrichment service not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("enrichment rate limit: %w", err)
	}

	payload, err := json.Marshal(map[string]any{
		"company_name": intake.CompanyName,
		"website":      intake.Website,
		"email":        intake.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal enrichment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enrich", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("enrichment returned status %d", resp.StatusCode)
	}

	var result domain.EnrichmentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode enrichment response: %w", err)
	}

	return &result, nil
}
