package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	domai "github.com/bryanwahyu/clausecheck/internal/domain/ai"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultModel = "gpt-4o-mini"
	maxTokens    = 4000
	temperature  = 0.1
)

type Client struct {
	api    *openai.Client
	apiKey string
	model  string
}

func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), apiKey: apiKey, model: model}
}

// NewClientWithBaseURL points the client at an OpenAI-compatible endpoint.
func NewClientWithBaseURL(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{api: openai.NewClientWithConfig(cfg), apiKey: apiKey, model: model}
}

// Complete sends the prompt as a single user message and returns the raw
// response text. One blocking request, no retry, no streaming. The credential
// check happens before any network call.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", domai.ErrMissingAPIKey
	}
	model := c.model
	if model == "" {
		model = defaultModel
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("%w: %v", domai.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domai.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
