package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy/config"
	"academy/logger"

	"github.com/go-resty/resty/v2"
)

// ErrUpstream is returned for any failure of the chat completion provider
var ErrUpstream = errors.New("chat provider request failed")

const chatSystemPrompt = "You are a helpful AI learning assistant for Oguz AI Academy. " +
	"Help students with questions about AI, machine learning, deep learning, and programming. " +
	"Be friendly, educational, and encourage learning."

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// ChatClient forwards a single user message to an OpenAI compatible
// chat-completions endpoint (OpenRouter by default)
type ChatClient struct {
	client *resty.Client
	url    string
	model  string
}

func NewChatClient(cfg *config.Config) *ChatClient {
	client := resty.New().
		SetTimeout(cfg.ChatTimeout).
		SetAuthToken(cfg.OpenRouterAPIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", cfg.ChatReferer).
		SetHeader("X-Title", cfg.ChatTitle)

	return &ChatClient{client: client, url: cfg.OpenRouterURL, model: cfg.ChatModel}
}

// Ask returns the assistant reply for message
func (c *ChatClient) Ask(ctx context.Context, message string) (string, error) {
	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: message},
		},
	}

	var out chatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post(c.url)
	if err != nil {
		logger.Log.Warnw("chat request failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode() != 200 {
		logger.Log.Warnw("chat provider returned error", "status", resp.StatusCode(), "body", truncate(resp.String(), 512))
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	return out.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
