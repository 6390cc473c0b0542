package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultEndpoint is the Google generative-language API base URL.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// Client issues a single generation request against one backend model.
// Implementations classify failures (transport, backend-reported,
// empty) but never retry; fallback across backends is the Chain's job.
type Client interface {
	Generate(ctx context.Context, backendID, prompt string) (string, error)
}

// GeminiClient implements Client against the generateContent API.
type GeminiClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewGeminiClient creates a client for the given API base URL and key.
// Timeouts are applied per attempt by the caller's context.
func NewGeminiClient(endpoint, apiKey string) *GeminiClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &GeminiClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		http:     &http.Client{},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) Generate(ctx context.Context, backendID, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		c.endpoint, url.PathEscape(backendID), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr geminiErrorBody
		_ = json.Unmarshal(respBody, &apiErr)
		msg := apiErr.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return "", &BackendError{
			Backend:    backendID,
			StatusCode: resp.StatusCode,
			Status:     apiErr.Error.Status,
			Message:    msg,
		}
	}

	var out geminiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	text := extractText(out)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("backend %s: %w", backendID, ErrEmptyResponse)
	}
	return text, nil
}

// extractText joins all text parts of the first candidate.
func extractText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
