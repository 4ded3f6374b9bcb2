package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/providervault/ai-service/internal/domain/providers"
	"github.com/providervault/ai-service/pkg/config"
	apperrors "github.com/providervault/ai-service/pkg/errors"
	"github.com/providervault/ai-service/pkg/retry"
)

// Client invokes the OpenAI chat-completion API. It implements
// providers.GenerationProvider and owns rate limiting, per-attempt
// timeouts, and the retry/classification policy for upstream failures.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	retryCfg    retry.Config
	limiter     *tokenBucket
}

// NewClient creates an OpenAI client from configuration. Temperature
// and MaxTokens from the config act as ceilings for per-request
// generation parameters.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		retryCfg:    retry.FixedConfig(cfg.RetryAttempts, time.Duration(cfg.RetryDelayMS)*time.Millisecond),
		limiter:     newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}

	log.Info().
		Str("model", c.model).
		Int("max_tokens", c.maxTokens).
		Int("retry_attempts", cfg.RetryAttempts).
		Int("rate_limit_rpm", cfg.RateLimitRPM).
		Msg("OpenAI client initialized")

	return c, nil
}

// Complete sends one chat completion and returns the raw model text.
// Transient failures (429, 5xx, timeouts, connection errors) are
// retried per the configured policy and surface as UPSTREAM_UNAVAILABLE
// once exhausted; other API rejections abort immediately as
// UPSTREAM_REJECTED.
func (c *Client) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			return "", apperrors.NewUpstreamUnavailableError("rate limiter wait aborted", err)
		}
		recordRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    c.buildMessages(req),
		Temperature: c.clampTemperature(req.Temperature),
		MaxTokens:   c.clampMaxTokens(req.MaxTokens),
	}

	var content string
	start := time.Now()

	err := retry.DoWithLog(ctx, c.retryCfg, "openai", func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(attemptCtx, chatReq)
		if err != nil {
			return classifyAPIError(err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return fmt.Errorf("empty completion from model")
		}
		content = resp.Choices[0].Message.Content
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		recordRetry(ctx, c.model)
		log.Warn().
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Err(err).
			Msg("OpenAI call failed, retrying")
	})

	recordInvocation(ctx, c.model, time.Since(start), err)

	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeUpstreamRejected {
			return "", appErr
		}
		return "", apperrors.NewUpstreamUnavailableError("model API unavailable", err)
	}

	return content, nil
}

func (c *Client) buildMessages(req providers.CompletionRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Text,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})
	return messages
}

func (c *Client) clampTemperature(t float32) float32 {
	if t <= 0 {
		return c.temperature
	}
	if t > c.temperature {
		return c.temperature
	}
	return t
}

func (c *Client) clampMaxTokens(n int) int {
	if n <= 0 || n > c.maxTokens {
		return c.maxTokens
	}
	return n
}

// classifyAPIError decides whether an upstream failure is worth another
// attempt. Rate limits, server errors, timeouts, and connection
// failures are retryable; any other API rejection (bad credential,
// malformed request) is permanent.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500 {
			return err
		}
		return retry.Permanent(apperrors.NewUpstreamRejectedError(
			fmt.Sprintf("model API rejected request (status %d)", apiErr.HTTPStatusCode), err))
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return err
}
