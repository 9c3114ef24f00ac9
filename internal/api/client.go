// Package api implements the HTTP client for the bakery dashboard API.
// It normalizes the server's response shapes and classifies failures, and
// does nothing else: no caching, no retries, no business validation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to the dashboard API. The bearer token is injected at
// construction; a client built without one can only call public endpoints.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}

	return resp, nil
}

// doJSON sends an optional JSON request body and decodes a JSON response
// into respBody when it is non-nil.
func (c *Client) doJSON(ctx context.Context, method, url string, reqBody, respBody interface{}) error {
	var body io.Reader
	headers := map[string]string{"Content-Type": "application/json"}

	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.do(ctx, method, url, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}

	return nil
}

// getRaw performs a GET and returns the raw response body for shape
// normalization by the caller.
func (c *Client) getRaw(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, "GET", url, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	return data, nil
}

// doMultipart sends fields (and an optional file under fileField) as a
// multipart form and decodes the JSON response into respBody when non-nil.
// The dashboard API expects multipart whenever an image accompanies a write.
func (c *Client) doMultipart(ctx context.Context, method, url string, fields map[string]string, fileField, filePath string, respBody interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("open image %s: %w", filePath, err)
		}
		defer f.Close()

		part, err := w.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("copy image data: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	headers := map[string]string{"Content-Type": w.FormDataContentType()}
	resp, err := c.do(ctx, method, url, &buf, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}

	return nil
}
