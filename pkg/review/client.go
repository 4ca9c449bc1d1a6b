package review

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// maxAttempts bounds retries against transient API errors.
const maxAttempts = 4

// Client calls the Anthropic API for review comments.
type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int64
}

// NewClient creates a client using the given API key.
func NewClient(apiKey, model string, maxTokens int) *Client {
	return &Client{
		api:       anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// completion is the raw outcome of one model call.
type completion struct {
	text         string
	inputTokens  int64
	outputTokens int64
}

// complete sends the prompt and returns the text reply, retrying
// transient API errors with exponential backoff and jitter.
func (c *Client) complete(ctx context.Context, prompt string) (*completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	var lastErr error
	backoff := time.Second
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		message, err := c.api.Messages.New(ctx, params)
		if err != nil {
			lastErr = err
			if isRetryable(err) {
				continue
			}
			return nil, fmt.Errorf("review API request failed: %w", err)
		}

		var text string
		for i := range message.Content {
			if message.Content[i].Type == "text" {
				text += message.Content[i].Text
			}
		}
		return &completion{
			text:         text,
			inputTokens:  message.Usage.InputTokens,
			outputTokens: message.Usage.OutputTokens,
		}, nil
	}
	return nil, fmt.Errorf("review API request failed after %d attempts: %w", maxAttempts, lastErr)
}

// isRetryable reports whether an API error is transient: rate limits,
// overload and gateway errors.
func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 503, 504, 529:
			return true
		}
	}
	return false
}
