package llm

import (
	"context"
	"errors"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Defaults target the Groq OpenAI-compatible endpoint.
const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama3-70b-8192"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 1 * time.Second

	temperature = 0.7
)

// Config holds the settings for the hosted model client. Zero values fall
// back to the Groq defaults.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// Client talks to an OpenAI-compatible chat completion endpoint. It never
// surfaces errors: any failure degrades to the empty-list token "[]" so the
// search pipeline can keep going without model results.
type Client struct {
	api         *openai.Client
	model       string
	maxAttempts int
	retryDelay  time.Duration
	rateLimiter *rate.Limiter
}

// NewClient builds a client from config. A missing API key is logged but not
// fatal: every request will fail upstream and degrade to "[]".
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.APIKey == "" {
		log.Printf("[LLM] API key not configured, model calls will degrade to empty results")
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	apiConfig.BaseURL = cfg.BaseURL
	apiConfig.HTTPClient.Timeout = cfg.Timeout

	// Groq free tier allows ~30 requests per minute
	limiter := rate.NewLimiter(rate.Limit(0.5), 5)

	return &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.Model,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		rateLimiter: limiter,
	}
}

// Ask sends one prompt and returns the raw completion text. API-level errors
// are retried up to maxAttempts with a fixed delay; transport or context
// failures bail out immediately. Both exhaustion and bail-out return "[]".
func (c *Client) Ask(ctx context.Context, prompt string) string {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[LLM] rate limiter error: %v", err)
			return "[]"
		}

		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err == nil {
			if len(resp.Choices) == 0 {
				log.Printf("[LLM] completion with no choices")
				return "[]"
			}
			return resp.Choices[0].Message.Content
		}

		if retryableStatus(err) {
			log.Printf("[LLM] API error (attempt %d/%d): %v", attempt, c.maxAttempts, err)
			if attempt < c.maxAttempts {
				time.Sleep(c.retryDelay)
			}
			continue
		}

		log.Printf("[LLM] unexpected error: %v", err)
		return "[]"
	}

	log.Printf("[LLM] all %d attempts failed", c.maxAttempts)
	return "[]"
}

// retryableStatus reports whether err is a non-2xx HTTP response, regardless
// of body shape. The SDK yields *openai.APIError when the error body parses
// as OpenAI error JSON and *openai.RequestError otherwise (plain-text 500s,
// gateway HTML); both carry a status and both get the retry treatment.
// Transport failures are neither and bail out immediately.
func retryableStatus(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode > 0
	}
	return false
}
