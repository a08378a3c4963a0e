package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the external text-generation API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a text-generation API client.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to target a local server.
func NewClientWithBaseURL(apiKey, model, baseURL string, timeout time.Duration) *Client {
	c := NewClient(apiKey, model, timeout)
	c.baseURL = baseURL
	return c
}

// genRequest represents the request structure for the generation API
type genRequest struct {
	Contents         []genContent `json:"contents"`
	GenerationConfig *genConfig   `json:"generationConfig,omitempty"`
}

type genContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// genResponse represents the response structure from the generation API
type genResponse struct {
	Candidates []genCandidate `json:"candidates"`
}

type genCandidate struct {
	Content genContent `json:"content"`
}

// Generate sends system and user prompts to the API and returns the raw
// generated text.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := genRequest{
		Contents: []genContent{
			{Role: "user", Parts: []genPart{{Text: systemPrompt + "\n\n" + userPrompt}}},
		},
		GenerationConfig: &genConfig{
			Temperature:     0.7,
			TopP:            0.9,
			MaxOutputTokens: 8000,
		},
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp genResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
