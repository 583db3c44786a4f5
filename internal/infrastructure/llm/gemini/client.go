package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/secureai/docshield/internal/infrastructure/resilience"
)

// Client calls the generateContent endpoint with a two-turn exchange: a
// model/context turn and a user turn. The raw JSON envelope comes back
// unparsed; envelope navigation lives with the caller.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model, apiKey string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

type part struct {
	Text string `json:"text"`
}

type turn struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

func (c *Client) GenerateContent(ctx context.Context, systemPrompt, userPrompt string) ([]byte, error) {
	payload, err := json.Marshal(map[string][]turn{
		"contents": {
			{Role: "model", Parts: []part{{Text: systemPrompt}}},
			{Role: "user", Parts: []part{{Text: userPrompt}}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	var envelope []byte
	call := func(callCtx context.Context) error {
		body, err := c.post(callCtx, endpoint, payload)
		if err != nil {
			return err
		}
		envelope = body
		return nil
	}

	if c.executor != nil {
		err = c.executor.Execute(ctx, "gemini.generate", call, resilience.ClassifyHTTPError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, resilience.WrapTemporaryHTTP("generate content", err)
	}
	return envelope, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &resilience.HTTPStatusError{
			Service:    "gemini",
			Operation:  "generate",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gemini response: %w", err)
	}
	return body, nil
}
