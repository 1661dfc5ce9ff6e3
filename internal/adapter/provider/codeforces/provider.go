// Package codeforces polls the Codeforces REST API for recent submissions
// of a single handle.
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

const defaultBaseURL = "https://codeforces.com/api"

// Provider fetches recent submissions from the Codeforces user.status API.
type Provider struct {
	baseURL    string
	handle     string
	pageSize   int
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider against the public Codeforces endpoint.
func NewProvider(handle string, pageSize int, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    defaultBaseURL,
		handle:     handle,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "codeforces"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, handle string, pageSize int, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		handle:     handle,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "codeforces"),
	}
}

// Name identifies the source in poller logs.
func (p *Provider) Name() string { return "codeforces" }

// FetchRecent fetches the latest submissions and keeps only accepted ones
// (verdict OK).
func (p *Provider) FetchRecent(ctx context.Context) ([]*domain.Submission, error) {
	q := url.Values{}
	q.Set("handle", p.handle)
	q.Set("from", "1")
	q.Set("count", strconv.Itoa(p.pageSize))
	reqURL := p.baseURL + "/user.status?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("codeforces: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("codeforces: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("codeforces: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("codeforces: read body: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("codeforces: decode json: %w", err)
	}
	if parsed.Status != "OK" {
		return nil, fmt.Errorf("codeforces: api status %q: %s", parsed.Status, parsed.Comment)
	}

	subs := make([]*domain.Submission, 0, len(parsed.Result))
	accepted := 0
	for _, raw := range parsed.Result {
		if raw.Verdict != "OK" {
			continue
		}
		accepted++
		subs = append(subs, mapSubmission(raw))
	}

	p.log.DebugContext(ctx, "codeforces poll",
		slog.String("handle", p.handle),
		slog.Int("fetched", len(parsed.Result)),
		slog.Int("accepted", accepted),
	)

	return subs, nil
}

func mapSubmission(raw apiSubmission) *domain.Submission {
	sub := &domain.Submission{
		Platform:     domain.PlatformCodeforces,
		ProblemID:    fmt.Sprintf("%d%s", raw.Problem.ContestID, raw.Problem.Index),
		ProblemTitle: raw.Problem.Name,
		SubmittedAt:  time.Unix(raw.CreationTimeSeconds, 0).UTC(),
		Verdict:      raw.Verdict,
		Language:     raw.ProgrammingLanguage,
		Tags:         raw.Problem.Tags,
	}
	if raw.Problem.Rating > 0 {
		rating := raw.Problem.Rating
		sub.Rating = &rating
	}
	return sub
}
