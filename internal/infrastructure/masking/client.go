package masking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/secureai/docshield/internal/infrastructure/resilience"
)

// Client talks to the external masking/classification service. The reply
// body is returned verbatim; the caller owns parsing and its fallback.
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

func (c *Client) Mask(ctx context.Context, content string) (string, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return "", fmt.Errorf("marshal mask request: %w", err)
	}

	var reply string
	call := func(callCtx context.Context) error {
		body, err := c.post(callCtx, "/process", payload)
		if err != nil {
			return err
		}
		reply = body
		return nil
	}

	if c.executor != nil {
		err = c.executor.Execute(ctx, "masking.process", call, resilience.ClassifyHTTPError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", resilience.WrapTemporaryHTTP("mask document", err)
	}
	return reply, nil
}

func (c *Client) post(ctx context.Context, path string, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create mask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("masking request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &resilience.HTTPStatusError{
			Service:    "masking",
			Operation:  "process",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read masking response: %w", err)
	}
	return string(body), nil
}
