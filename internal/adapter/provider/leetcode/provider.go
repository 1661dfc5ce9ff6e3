// Package leetcode polls the LeetCode GraphQL API for recently accepted
// submissions of a single user.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

const defaultBaseURL = "https://leetcode.com/graphql"

const recentAcceptedQuery = `
query recentAcSubmissions($username: String!, $limit: Int!) {
  recentAcSubmissionList(username: $username, limit: $limit) {
    id
    title
    titleSlug
    timestamp
    lang
  }
}`

// Provider fetches recently accepted submissions from LeetCode.
type Provider struct {
	baseURL    string
	username   string
	pageSize   int
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider against the public LeetCode endpoint.
func NewProvider(username string, pageSize int, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    defaultBaseURL,
		username:   username,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "leetcode"),
	}
}

// NewProviderWithURL creates a Provider with a custom endpoint (for testing).
func NewProviderWithURL(baseURL, username string, pageSize int, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		username:   username,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "leetcode"),
	}
}

// Name identifies the source in poller logs.
func (p *Provider) Name() string { return "leetcode" }

// FetchRecent fetches the latest accepted submissions, newest first.
// Only accepted submissions are returned by the endpoint, so no verdict
// filtering is needed.
func (p *Provider) FetchRecent(ctx context.Context) ([]*domain.Submission, error) {
	reqBody, err := json.Marshal(graphqlRequest{
		Query: recentAcceptedQuery,
		Variables: map[string]any{
			"username": p.username,
			"limit":    p.pageSize,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("leetcode: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("leetcode: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leetcode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leetcode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leetcode: read body: %w", err)
	}

	var parsed graphqlResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("leetcode: decode json: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("leetcode: graphql error: %s", parsed.Errors[0].Message)
	}

	subs := make([]*domain.Submission, 0, len(parsed.Data.RecentAcSubmissionList))
	for _, raw := range parsed.Data.RecentAcSubmissionList {
		sub, err := mapSubmission(raw)
		if err != nil {
			p.log.WarnContext(ctx, "skipping malformed submission",
				slog.String("id", raw.ID), slog.String("error", err.Error()))
			continue
		}
		subs = append(subs, sub)
	}

	p.log.DebugContext(ctx, "leetcode poll",
		slog.String("username", p.username),
		slog.Int("fetched", len(subs)),
	)

	return subs, nil
}

func mapSubmission(raw apiSubmission) (*domain.Submission, error) {
	if raw.TitleSlug == "" {
		return nil, fmt.Errorf("empty titleSlug")
	}
	ts, err := strconv.ParseInt(raw.Timestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", raw.Timestamp, err)
	}
	return &domain.Submission{
		Platform:     domain.PlatformLeetCode,
		ProblemID:    raw.TitleSlug,
		ProblemTitle: raw.Title,
		SubmittedAt:  time.Unix(ts, 0).UTC(),
		Verdict:      "Accepted",
		Language:     raw.Lang,
	}, nil
}
