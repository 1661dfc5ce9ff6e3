package scraper

import (
	"context"

	"github.com/strideapp/stride-backend/internal/domain"
)

type sourceMock struct {
	name            string
	FetchRecentFunc func(ctx context.Context) ([]*domain.Submission, error)
}

func (m *sourceMock) Name() string { return m.name }

func (m *sourceMock) FetchRecent(ctx context.Context) ([]*domain.Submission, error) {
	return m.FetchRecentFunc(ctx)
}

type submissionRepoMock struct {
	InsertIfAbsentFunc func(ctx context.Context, sub *domain.Submission) (bool, error)
}

func (m *submissionRepoMock) InsertIfAbsent(ctx context.Context, sub *domain.Submission) (bool, error) {
	return m.InsertIfAbsentFunc(ctx, sub)
}

type shadowProcessorMock struct {
	ProcessBatchFunc func(ctx context.Context, inputs []domain.ShadowInput, offsetMinutes int) (int, error)
}

func (m *shadowProcessorMock) ProcessBatch(ctx context.Context, inputs []domain.ShadowInput, offsetMinutes int) (int, error) {
	return m.ProcessBatchFunc(ctx, inputs, offsetMinutes)
}
