package research

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel   = "perplexity/sonar-reasoning-pro:online"
)

// Client calls a chat-completion API with web search enabled. The response
// is free text scraped for section headings downstream; the API itself is an
// opaque collaborator.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	referer string
	httpc   *http.Client
	log     *zap.SugaredLogger
}

func NewClient(apiKey, model string, log *zap.SugaredLogger) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		referer: "https://github.com/elizaos/knowledge",
		httpc:   http.DefaultClient,
		log:     log,
	}
}

type completionRequest struct {
	Model            string              `json:"model"`
	Messages         []completionMessage `json:"messages"`
	WebSearchOptions webSearchOptions    `json:"web_search_options"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type webSearchOptions struct {
	SearchContextSize string `json:"search_context_size"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one free-text prompt and returns the completion text.
func (c *Client) Complete(prompt string) (string, error) {
	payload := completionRequest{
		Model:            c.model,
		Messages:         []completionMessage{{Role: "user", Content: prompt}},
		WebSearchOptions: webSearchOptions{SearchContextSize: "high"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling completion request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", "ElizaOS Partner Research")

	c.log.Debugf("requesting completion from %s", c.baseURL)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion API status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
