// Package remote forwards console commands to an optional backend core
// over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

// Backend paths.
const (
	HealthPath  = "/health"
	ProcessPath = "/api/v1/console"
)

// processRequest is the body posted to the backend.
type processRequest struct {
	Text string      `json:"text"`
	User userPayload `json:"user"`
}

type userPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Clearance   int    `json:"clearance"`
	LegalStatus string `json:"legal_status"`
	Vessel      string `json:"vessel,omitempty"`
}

// Client implements secondary.RemoteCore.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL. A nil httpClient
// uses http.DefaultClient; deadlines come from the caller's context.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Healthy reports whether the backend answers its health check with 2xx.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Process posts a command to the backend.
func (c *Client) Process(ctx context.Context, text string, user models.UserProfile) (*secondary.RemoteResponse, error) {
	body, err := json.Marshal(processRequest{
		Text: text,
		User: userPayload{
			ID:          user.ID,
			Name:        user.Name,
			Role:        string(user.Role),
			Clearance:   user.ClearanceLevel,
			LegalStatus: user.LegalStatus,
			Vessel:      user.VesselName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ProcessPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("backend returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var out secondary.RemoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode backend response: %w", err)
	}
	return &out, nil
}
