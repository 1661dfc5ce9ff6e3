package leetcode

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvider_FetchRecent_Success(t *testing.T) {
	t.Parallel()

	body := `{
		"data": {
			"recentAcSubmissionList": [
				{"id": "101", "title": "Two Sum", "titleSlug": "two-sum", "timestamp": "1772668800", "lang": "golang"},
				{"id": "102", "title": "Add Two Numbers", "titleSlug": "add-two-numbers", "timestamp": "1772665200", "lang": "python3"}
			]
		}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Variables["username"] != "owner" {
			t.Errorf("username variable = %v, want owner", req.Variables["username"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "owner", 20, newTestLogger())
	subs, err := p.FetchRecent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d submissions, want 2", len(subs))
	}

	first := subs[0]
	if first.Platform != domain.PlatformLeetCode {
		t.Errorf("platform = %s, want leetcode", first.Platform)
	}
	if first.ProblemID != "two-sum" || first.ProblemTitle != "Two Sum" {
		t.Errorf("problem = %s / %s", first.ProblemID, first.ProblemTitle)
	}
	if first.Verdict != "Accepted" || first.Language != "golang" {
		t.Errorf("verdict/lang = %s / %s", first.Verdict, first.Language)
	}
	want := time.Unix(1772668800, 0).UTC()
	if !first.SubmittedAt.Equal(want) {
		t.Errorf("submittedAt = %v, want %v", first.SubmittedAt, want)
	}
}

func TestProvider_FetchRecent_SkipsMalformedEntries(t *testing.T) {
	t.Parallel()

	body := `{
		"data": {
			"recentAcSubmissionList": [
				{"id": "1", "title": "Good", "titleSlug": "good", "timestamp": "1772668800"},
				{"id": "2", "title": "Bad Timestamp", "titleSlug": "bad", "timestamp": "yesterday"},
				{"id": "3", "title": "No Slug", "titleSlug": "", "timestamp": "1772668801"}
			]
		}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "owner", 20, newTestLogger())
	subs, err := p.FetchRecent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 || subs[0].ProblemID != "good" {
		t.Errorf("got %d submissions, want only the well-formed one", len(subs))
	}
}

func TestProvider_FetchRecent_GraphQLError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "user does not exist"}]}`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "ghost", 20, newTestLogger())
	if _, err := p.FetchRecent(context.Background()); err == nil {
		t.Fatal("expected an error for a graphql error response")
	}
}

func TestProvider_FetchRecent_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, "owner", 20, newTestLogger())
	if _, err := p.FetchRecent(context.Background()); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}
