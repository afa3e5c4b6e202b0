package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/staffdesk/core/internal/infrastructure/config"
	"github.com/staffdesk/core/internal/ports"
)

const defaultModel = "gemini-1.5-flash"

// Client talks to a Generative Language API endpoint and implements the
// Advisor port. The reply is returned as plain text; the suggestion parser
// downstream deals with its shape.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient creates an advisor client from configuration.
func NewClient(cfg config.AdvisorConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		apiKey:     cfg.APIKey,
		apiURL:     baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

var _ ports.Advisor = (*Client)(nil)

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// NextTasks sends the prompt and concatenates the text parts of the first
// candidate.
func (c *Client) NextTasks(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.apiURL, c.model, c.apiKey)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal advisor request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("create advisor request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call advisor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("advisor error %d: %s", resp.StatusCode, string(raw))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode advisor response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("advisor returned no candidates")
	}

	var out bytes.Buffer
	for _, p := range result.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}

	return out.String(), nil
}
