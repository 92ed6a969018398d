package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APIClient is the Gate implementation that talks to the backend's JSON
// API with a bearer token.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope matches the server's response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s (status %d)", method, path, env.Message, resp.StatusCode)
	}

	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *APIClient) FetchForStudent(ctx context.Context) (*FetchResponse, error) {
	var res FetchResponse
	if err := c.do(ctx, http.MethodGet, "/api/student/assessment", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *APIClient) Submit(ctx context.Context, req SubmitRequest) (*Result, error) {
	var res Result
	if err := c.do(ctx, http.MethodPost, "/api/results/submit", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *APIClient) Result(ctx context.Context) (*Result, error) {
	var res Result
	if err := c.do(ctx, http.MethodGet, "/api/results/my", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
