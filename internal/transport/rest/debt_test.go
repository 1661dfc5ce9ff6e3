package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

func TestDebtHandler_TransitionReturnsCount(t *testing.T) {
	var gotMonth string
	var gotReason *string
	svc := &debtServiceMock{
		TransitionMonthFunc: func(ctx context.Context, month string, reason *string) (int, error) {
			gotMonth = month
			gotReason = reason
			return 4, nil
		},
	}
	h := NewDebtHandler(svc, testLogger())

	body := strings.NewReader(`{"month":"2026-02","reason":"month rollover"}`)
	rec := httptest.NewRecorder()
	h.Transition(rec, httptest.NewRequest(http.MethodPost, "/api/debt/transition", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if gotMonth != "2026-02" {
		t.Errorf("month = %q, want 2026-02", gotMonth)
	}
	if gotReason == nil || *gotReason != "month rollover" {
		t.Error("reason not passed through")
	}

	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["archivedCount"] != 4 {
		t.Errorf("archivedCount = %d, want 4", resp["archivedCount"])
	}
}

func TestDebtHandler_ResetRejectsBadID(t *testing.T) {
	svc := &debtServiceMock{
		ResetFunc: func(ctx context.Context, ids []uuid.UUID) (int, error) {
			t.Fatal("service must not be called with a malformed id")
			return 0, nil
		},
	}
	h := NewDebtHandler(svc, testLogger())

	body := strings.NewReader(`{"goalIds":["not-a-uuid"]}`)
	rec := httptest.NewRecorder()
	h.Reset(rec, httptest.NewRequest(http.MethodPost, "/api/debt/reset", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDebtHandler_ResetPassesIDs(t *testing.T) {
	id := uuid.New()
	svc := &debtServiceMock{
		ResetFunc: func(ctx context.Context, ids []uuid.UUID) (int, error) {
			if len(ids) != 1 || ids[0] != id {
				t.Errorf("ids = %v, want [%v]", ids, id)
			}
			return 1, nil
		},
	}
	h := NewDebtHandler(svc, testLogger())

	body := strings.NewReader(`{"goalIds":["` + id.String() + `"]}`)
	rec := httptest.NewRecorder()
	h.Reset(rec, httptest.NewRequest(http.MethodPost, "/api/debt/reset", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestDebtHandler_TrailDefaultsDaysBack(t *testing.T) {
	svc := &debtServiceMock{
		TrailFunc: func(ctx context.Context, endDate string, daysBack int) ([]domain.DebtTrailDay, error) {
			if daysBack != 7 {
				t.Errorf("daysBack = %d, want default 7", daysBack)
			}
			return []domain.DebtTrailDay{}, nil
		},
	}
	h := NewDebtHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.Trail(rec, httptest.NewRequest(http.MethodGet, "/api/debt/trail?end_date=2026-03-05", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMilestoneHandler_BalanceReportShape(t *testing.T) {
	svc := &milestoneServiceMock{
		RunBalancerFunc: func(ctx context.Context, id uuid.UUID, offsetMinutes int) (*domain.BalancerReport, error) {
			return &domain.BalancerReport{MilestoneID: id, UpdatedGoals: 3, DailyRequired: 5, Message: "rebalanced 3 instances"}, nil
		},
	}
	h := NewMilestoneHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/milestones/x/balance?tz_offset=60", nil)
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		UpdatedCount  int    `json:"updatedCount"`
		DailyRequired int    `json:"dailyRequired"`
		Message       string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.UpdatedCount != 3 || resp.DailyRequired != 5 {
		t.Errorf("resp = %+v, want counts 3/5", resp)
	}
}

func TestMilestoneHandler_BalanceMapsValidation(t *testing.T) {
	svc := &milestoneServiceMock{
		RunBalancerFunc: func(ctx context.Context, id uuid.UUID, offsetMinutes int) (*domain.BalancerReport, error) {
			return nil, domain.NewValidationError("periodType", "balancer supports monthly milestones only")
		},
	}
	h := NewMilestoneHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/milestones/x/balance", nil)
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Balance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
