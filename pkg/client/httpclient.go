package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	apperrors "shiftboard/pkg/errors"
	"time"
)

type HttpClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewHttpClient(baseURL string) *HttpClient {
	return &HttpClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that sends the bearer token.
func (c *HttpClient) WithToken(token string) *HttpClient {
	cp := *c
	cp.Token = token
	return &cp
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

// DecodeData unwraps the {"data": ...} envelope of a success response.
func (r *Response) DecodeData(target any) error {
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(r.Body, &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, target)
}

func (c *HttpClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HttpClient) PUT(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPut, path, body)
}

func (c *HttpClient) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}

func (c *HttpClient) WaitForHealthy(maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		resp, err := c.HTTPClient.Get(c.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		<-ticker.C
	}

	return fmt.Errorf("service did not become healthy within %v", maxWait)
}

// Err turns a non-2xx response into the AppError the server rendered, so
// callers can branch on its code. It is nil for a success.
func (r *Response) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	var errResp struct {
		Error   string         `json:"error"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := r.DecodeJSON(&errResp); err != nil || errResp.Code == "" {
		return apperrors.New(apperrors.CodeInternal, http.StatusText(r.StatusCode), r.StatusCode)
	}
	return apperrors.New(errResp.Code, errResp.Error, r.StatusCode).WithDetails(errResp.Details)
}

// ErrorCode extracts the code field of an error response.
func ErrorCode(resp *Response) string {
	var errResp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return ""
	}
	return errResp.Code
}
