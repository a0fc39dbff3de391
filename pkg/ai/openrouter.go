package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient calls an OpenAI-compatible /v1/chat/completions endpoint.
// Works with OpenRouter, vLLM, LiteLLM, Deepseek, self-hosted models, etc.
type OpenRouterClient struct {
	baseURL     string
	apiKey      string
	model       string
	referer     string
	title       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// OpenRouterConfig wires the client. APIKey and Model are required; BaseURL
// defaults to the hosted OpenRouter endpoint.
type OpenRouterConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	// Referer and Title populate the HTTP-Referer and X-Title headers
	// OpenRouter uses for app attribution.
	Referer string
	Title   string
	Timeout time.Duration
}

// NewOpenRouterClient constructs a client with the provided credential.
func NewOpenRouterClient(cfg OpenRouterConfig) (*OpenRouterClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter api key required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("openrouter generation model required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenRouterClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		referer:     strings.TrimSpace(cfg.Referer),
		title:       strings.TrimSpace(cfg.Title),
		temperature: 0.7,
		maxTokens:   2000,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// GenerateChat implements ChatGenerator using the chat completions API.
func (c *OpenRouterClient) GenerateChat(ctx context.Context, systemPrompt string, turns []Turn) (string, error) {
	messages := make([]oaiMessage, 0, len(turns)+1)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, oaiMessage{Role: "system", Content: systemPrompt})
	}
	for _, turn := range turns {
		messages = append(messages, oaiMessage{Role: turn.Role, Content: turn.Content})
	}

	reqBody := oaiChatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp oaiErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return "", fmt.Errorf("openrouter api error: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("openrouter api error: %s", resp.Status)
	}

	var chatResp oaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("openrouter decode: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from openrouter api")
	}
	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from openrouter api")
	}
	return text, nil
}

// OpenAI-compatible request/response types.

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiChatRequest struct {
	Model       string       `json:"model"`
	Messages    []oaiMessage `json:"messages"`
	Temperature float64      `json:"temperature,omitempty"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
}

type oaiChatResponse struct {
	Choices []struct {
		Message oaiMessage `json:"message"`
	} `json:"choices"`
}

type oaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
