package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/models"
)

const defaultRequestTimeout = 5 * time.Second

// Responses larger than this are junk, not vitals.
const maxEnvelopeBytes = 1 << 20

// Fetcher is the upstream read dependency of a Session.
type Fetcher interface {
	LatestVitals(ctx context.Context, subjectID string) (models.VitalsResponse, error)
}

// NodeClient reads the latest-vitals envelope from a clinical node over
// plain HTTP.
type NodeClient struct {
	baseURL string
	http    *http.Client
}

func NewNodeClient(baseURL string, timeout time.Duration) *NodeClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &NodeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// LatestVitals performs one upstream read. Transport failures, non-2xx
// statuses and undecodable bodies are returned as errors; a decodable 2xx
// envelope is returned as-is even when it carries an application error,
// which the caller inspects.
func (c *NodeClient) LatestVitals(ctx context.Context, subjectID string) (models.VitalsResponse, error) {
	endpoint := c.baseURL + "/api/get_latest_vital?patient_id=" + url.QueryEscape(subjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.VitalsResponse{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.VitalsResponse{}, fmt.Errorf("node request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEnvelopeBytes))
	if err != nil {
		return models.VitalsResponse{}, fmt.Errorf("read node response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies are still JSON envelopes when the node itself
		// answered; surface their message instead of raw bytes.
		var envelope models.VitalsResponse
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			return models.VitalsResponse{}, fmt.Errorf("node returned %d: %s", resp.StatusCode, envelope.Error)
		}
		return models.VitalsResponse{}, fmt.Errorf("node returned %d", resp.StatusCode)
	}

	var envelope models.VitalsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.VitalsResponse{}, fmt.Errorf("decode node response: %w", err)
	}
	return envelope, nil
}
