// Package chartclient reads the HR dashboard chart endpoint and shapes the
// result into labelled series for display.
package chartclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-hr-dashboard-backend/internal/domain"
)

const chartsPath = "/api/hr/dashboard/charts"

// Client calls the chart endpoint with a Supabase access token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status  int
	Message string `json:"error"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error (%d): %s [%s]", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Monthly fetches per-month application counts, oldest month first.
func (c *Client) Monthly(ctx context.Context) ([]domain.MonthlyCount, error) {
	var rows []domain.MonthlyCount
	if err := c.chart(ctx, domain.ChartMonthly, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByJob fetches per-job application counts, busiest job first.
func (c *Client) ByJob(ctx context.Context) ([]domain.JobApplicationCount, error) {
	var rows []domain.JobApplicationCount
	if err := c.chart(ctx, domain.ChartByJob, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) chart(ctx context.Context, chartType domain.ChartType, result interface{}) error {
	endpoint := c.BaseURL + chartsPath + "?" + url.Values{"type": {string(chartType)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !env.Success || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Error, Code: env.Code}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		env.Data = json.RawMessage("[]")
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to parse chart data: %w", err)
	}
	return nil
}
