package shadow

import (
	"context"

	"github.com/strideapp/stride-backend/internal/domain"
)

// ProcessBatch feeds a slice of events through ProcessEvent. A failing
// item is logged and skipped; the batch never aborts. Returns how many
// activities were newly created.
func (s *Service) ProcessBatch(ctx context.Context, inputs []domain.ShadowInput, offsetMinutes int) (int, error) {
	created := 0
	for _, in := range inputs {
		ok, err := s.ProcessEvent(ctx, in, offsetMinutes)
		if err != nil {
			s.log.Error("failed to process shadow event",
				"problem_id", in.ProblemID,
				"platform", in.Platform,
				"error", err)
			continue
		}
		if ok {
			created++
		}
	}

	return created, nil
}
