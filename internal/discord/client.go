package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/utils"
)

// APIClient handles communication with the wheel API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// APIError is a non-2xx answer from the wheel API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %s", e.Message)
	}
	return fmt.Sprintf("API returned status: %d", e.StatusCode)
}

// ProbabilitiesResponse mirrors the probabilities endpoint
type ProbabilitiesResponse struct {
	WheelID       uuid.UUID                `json:"wheel_id"`
	Probabilities []domain.ParticipantOdds `json:"probabilities"`
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// doRequest performs an HTTP request with retry logic.
// Reads retry on transport errors and any 5xx. Writes only retry when the
// gateway or server reports it never handled the request, so an applied spin
// is never repeated.
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := c.BaseURL + path
	idempotent := method == http.MethodGet

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(rand.Int64N(int64(MaxRetryJitter)))
			delay := c.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info(LogMsgRetryingRequest, "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt)
			if !idempotent {
				break
			}
			continue
		}

		if !shouldRetry(idempotent, resp.StatusCode) {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = &APIError{StatusCode: resp.StatusCode}
		slog.Warn(LogMsgServerErrorRetry, "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func shouldRetry(idempotent bool, status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return idempotent && status >= http.StatusInternalServerError
}

// doJSON performs a request and decodes a 200 response into out
func (c *APIClient) doJSON(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListWheels returns every wheel
func (c *APIClient) ListWheels() ([]domain.Wheel, error) {
	var wheels []domain.Wheel
	if err := c.doJSON(http.MethodGet, PathWheels, nil, &wheels); err != nil {
		return nil, err
	}
	return wheels, nil
}

// ResolveWheel finds a wheel by ID or by case-insensitive name
func (c *APIClient) ResolveWheel(ref string) (*domain.Wheel, error) {
	id, idErr := uuid.Parse(ref)

	wheels, err := c.ListWheels()
	if err != nil {
		return nil, err
	}
	for i := range wheels {
		if (idErr == nil && wheels[i].ID == id) || utils.SameName(wheels[i].Name, ref) {
			return &wheels[i], nil
		}
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: domain.ErrMsgWheelNotFound}
}

// Spin spins a wheel, applying the result unless preview is set
func (c *APIClient) Spin(wheelID uuid.UUID, preview bool) (*domain.SpinResult, error) {
	var result domain.SpinResult
	body := map[string]bool{"apply_changes": !preview}
	if err := c.doJSON(http.MethodPost, fmt.Sprintf(PathSpin, wheelID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Probabilities returns the current odds of each participant
func (c *APIClient) Probabilities(wheelID uuid.UUID) ([]domain.ParticipantOdds, error) {
	var resp ProbabilitiesResponse
	if err := c.doJSON(http.MethodGet, fmt.Sprintf(PathProbabilities, wheelID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Probabilities, nil
}

// Reset restores a wheel's baseline weights
func (c *APIClient) Reset(wheelID uuid.UUID) (*domain.Wheel, error) {
	var w domain.Wheel
	if err := c.doJSON(http.MethodPost, fmt.Sprintf(PathReset, wheelID), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Healthy reports whether the API answers its liveness probe
func (c *APIClient) Healthy() bool {
	resp, err := c.Client.Get(c.BaseURL + PathHealthz)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// statusOf extracts the API status code from err, or 0
func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

