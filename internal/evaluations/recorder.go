package evaluations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"turbine-repair/internal/repair"
)

// Recorder stores repair decisions in a Repo.
type Recorder struct {
	Repo Repo
	Now  func() time.Time
}

func NewRecorder(repo Repo) *Recorder {
	return &Recorder{Repo: repo, Now: time.Now}
}

// Record persists one decision under a fresh ID.
func (r *Recorder) Record(ctx context.Context, req repair.Request, decision repair.Decision, requestID string) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return r.Repo.Create(ctx, Evaluation{
		ID:                 uuid.NewString(),
		RequestID:          requestID,
		Hours:              req.Hours,
		Capacity:           req.Capacity,
		RevenueOpportunity: decision.RevenueOpportunity,
		CostToFix:          decision.CostToFix,
		ShouldRepair:       decision.ShouldRepair,
		CreatedAt:          now().UTC(),
	})
}
