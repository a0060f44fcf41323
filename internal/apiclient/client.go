// Package apiclient calls a running interviewq server.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/abhisek/interviewq/internal/interview"
)

// Client talks to the /api/generate endpoint.
type Client struct {
	http *resty.Client
}

// New returns a Client for the server at baseURL, e.g.
// "http://localhost:3000".
func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// APIError is a non-200 reply from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type envelope struct {
	Questions []interview.QuestionItem `json:"questions"`
	Error     string                   `json:"error"`
}

// Generate posts req and returns the questions, or an *APIError carrying
// the server's status and message.
func (c *Client) Generate(ctx context.Context, req interview.GenerationRequest) ([]interview.QuestionItem, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/generate")
	if err != nil {
		return nil, fmt.Errorf("POST /api/generate: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, &APIError{Status: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}
	if resp.IsError() || env.Error != "" {
		return nil, &APIError{Status: resp.StatusCode(), Message: env.Error}
	}
	return env.Questions, nil
}
