// Package aiclient is a typed HTTP client for the provider AI service.
// It is intended for other Go services that consume the JSON API
// without hand-rolling request plumbing.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/pkg/retry"
)

// APIError is a non-2xx response from the service. Kind carries the
// service's error classification (VALIDATION, NOT_FOUND, and so on)
// when the payload included one.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("ai service returned %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("ai service returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the provider AI service over HTTP. Transient failures
// (connection errors and 5xx responses) are retried once; 4xx responses
// surface immediately as an APIError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryCfg   retry.Config
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		retryCfg: retry.FixedConfig(2, 500*time.Millisecond),
	}
}

// Health reports whether the service and its dependencies are up.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]interface{}
	return c.doJSON(ctx, http.MethodGet, "/health", nil, &out)
}

// Stats returns the aggregate network counts.
func (c *Client) Stats(ctx context.Context) (*entities.NetworkStats, error) {
	out := &entities.NetworkStats{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/stats", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Specialties returns all distinct specialty names in the network.
func (c *Client) Specialties(ctx context.Context) ([]string, error) {
	var out struct {
		Specialties []string `json:"specialties"`
		Count       int      `json:"count"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/specialties", nil, &out); err != nil {
		return nil, err
	}
	return out.Specialties, nil
}

// DescribeSpecialty returns a patient-friendly description of a specialty.
func (c *Client) DescribeSpecialty(ctx context.Context, specialty string) (*entities.SpecialtyDescription, error) {
	body := map[string]interface{}{"specialty": specialty}
	out := &entities.SpecialtyDescription{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/specialty/describe", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RelatedSpecialties returns referral suggestions for a specialty.
// count 0 uses the server default.
func (c *Client) RelatedSpecialties(ctx context.Context, specialty string, count int) (*entities.RelatedSpecialties, error) {
	body := map[string]interface{}{"specialty": specialty}
	if count > 0 {
		body["count"] = count
	}
	out := &entities.RelatedSpecialties{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/specialty/related", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeDistribution returns the grounded distribution analysis for a
// specialty. limit 0 uses the server default.
func (c *Client) AnalyzeDistribution(ctx context.Context, specialty string, limit int) (*entities.DistributionAnalysis, error) {
	body := map[string]interface{}{"specialty": specialty}
	if limit > 0 {
		body["limit"] = limit
	}
	out := &entities.DistributionAnalysis{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/providers/analyze", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecommendBySymptoms returns the triage recommendation for a symptom
// description. locationState may be empty.
func (c *Client) RecommendBySymptoms(ctx context.Context, symptoms, locationState string) (*entities.SymptomRecommendation, error) {
	body := map[string]interface{}{"symptoms": symptoms}
	if locationState != "" {
		body["location_state"] = locationState
	}
	out := &entities.SymptomRecommendation{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/symptoms/recommend", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search runs a natural-language provider search. limit 0 uses the
// server default.
func (c *Client) Search(ctx context.Context, query string, limit int) (*entities.SearchResult, error) {
	body := map[string]interface{}{"query": query}
	if limit > 0 {
		body["limit"] = limit
	}
	out := &entities.SearchResult{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/search", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ask sends a conversational question. Pass the ConversationHistory
// from the previous answer to continue a conversation.
func (c *Client) Ask(ctx context.Context, question string, history []entities.ConversationTurn) (*entities.FAQAnswer, error) {
	body := map[string]interface{}{"question": question}
	if len(history) > 0 {
		body["conversation_history"] = history
	}
	out := &entities.FAQAnswer{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/faq", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	endpoint := c.baseURL + path

	return retry.Do(ctx, c.retryCfg, func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return retry.Permanent(err)
		}
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return c.responseError(resp)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return retry.Permanent(c.responseError(resp))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return retry.Permanent(fmt.Errorf("decoding ai service response: %w", err))
		}
		return nil
	})
}

func (c *Client) responseError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}

	var payload struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Kind = payload.Kind
	}

	return apiErr
}
