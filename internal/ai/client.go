// Package ai implements the external text-analysis client used for
// sentiment scoring. It talks to the Claude Messages API over net/http.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultAPIURL    = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion = "2023-06-01"
	defaultModel     = "claude-sonnet-4-20250514"
	maxTokens        = 64
	apiTimeout       = 30 * time.Second
)

// sentimentSystemPrompt asks for a machine-parseable sentiment verdict.
// The data field may come back as a number, a label, or (from older model
// snapshots) something else entirely; the analytics engine classifies it.
const sentimentSystemPrompt = `You score the emotional sentiment of a transcribed voice note.

Respond with ONLY a JSON object of the form {"data": <score>} where <score> is
an integer from -100 (very negative) to 100 (very positive), or one of the
strings "positive", "negative", "neutral" if a numeric score is not
appropriate. No prose, no code fences.`

// Client calls the analysis service for sentiment classification.
type Client struct {
	apiURL string
	apiKey string
	model  string
	http   *http.Client
}

// NewClient returns a Client for the given API key. An empty model selects
// the default.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiURL: defaultAPIURL,
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: apiTimeout},
	}
}

// NewClientForURL returns a Client pointed at a non-default endpoint.
// Used by tests and self-hosted gateways.
func NewClientForURL(apiURL, apiKey, model string) *Client {
	c := NewClient(apiKey, model)
	c.apiURL = apiURL
	return c
}

// apiRequest is the request body for the Messages API.
type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system"`
	Messages  []apiMessage `json:"messages"`
}

// apiMessage is a single message in the request.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse is the response body from the Messages API.
type apiResponse struct {
	Content []apiContentBlock `json:"content"`
	Error   *apiError         `json:"error,omitempty"`
}

// apiContentBlock is a single content block in the response.
type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// apiError represents an error response from the API.
type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AnalyzeSentiment requests a sentiment classification for content and
// returns the raw `data` payload from the model's reply. The payload shape
// is deliberately not validated here; the caller owns classification and
// fallback.
func (c *Client) AnalyzeSentiment(ctx context.Context, content string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("analysis API key is not configured")
	}

	text, err := c.call(ctx, sentimentSystemPrompt, content)
	if err != nil {
		return nil, err
	}

	return extractData(text)
}

// call sends one Messages API request and returns the concatenated text
// content of the reply.
func (c *Client) call(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []apiMessage{
			{Role: "user", Content: userPrompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var textParts []string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			textParts = append(textParts, block.Text)
		}
	}

	if len(textParts) == 0 {
		return "", fmt.Errorf("no text content in API response")
	}

	return strings.Join(textParts, ""), nil
}

// extractData pulls the `data` field out of the model's JSON reply,
// stripping markdown code fences if the model wrapped its answer despite
// instructions.
func extractData(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	if !gjson.Valid(text) {
		return nil, fmt.Errorf("analysis reply is not valid JSON: %.200s", text)
	}

	data := gjson.Get(text, "data")
	if !data.Exists() {
		return nil, fmt.Errorf("analysis reply has no data field: %.200s", text)
	}

	return json.RawMessage(data.Raw), nil
}
