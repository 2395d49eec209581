// Package client is a Go SDK for the Gatherly API. It bundles a thin HTTP
// agent with a reactive in-memory store that front-end layers can render
// from and mutate through.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gatherly-api/models"
)

// APIError carries the status code and server-provided message of a
// rejected request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Agent performs the raw HTTP calls against the activities API.
type Agent struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewAgent(baseURL string) *Agent {
	return &Agent{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token sent with subsequent requests.
func (a *Agent) SetToken(token string) {
	a.token = token
}

func (a *Agent) List(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := a.do(ctx, http.MethodGet, "/activities", nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (a *Agent) Get(ctx context.Context, id string) (models.Activity, error) {
	var activity models.Activity
	if err := a.do(ctx, http.MethodGet, "/activities/"+id, nil, &activity); err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

func (a *Agent) Create(ctx context.Context, activity models.Activity) error {
	return a.do(ctx, http.MethodPost, "/activities", activity, nil)
}

func (a *Agent) Update(ctx context.Context, activity models.Activity) error {
	return a.do(ctx, http.MethodPut, "/activities/"+activity.ID, activity, nil)
}

func (a *Agent) Delete(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/activities/"+id, nil, nil)
}

func (a *Agent) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Error == "" {
		return "request failed"
	}
	return payload.Error
}
