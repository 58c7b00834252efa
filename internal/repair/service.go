package repair

import (
	"context"
	"time"

	"turbine-repair/internal/shared/metrics"
	"turbine-repair/internal/shared/telemetry"
)

// Recorder keeps an audit trail of decisions.
type Recorder interface {
	Record(ctx context.Context, req Request, decision Decision, requestID string) error
}

// Service evaluates requests and records the outcome. Recording is best
// effort: a failure is logged and counted but never changes the decision.
type Service struct {
	History Recorder
}

func NewService(history Recorder) *Service {
	return &Service{History: history}
}

func (s *Service) Decide(ctx context.Context, req Request, requestID string) (Decision, error) {
	start := time.Now()
	decision, err := Evaluate(req.Hours, req.Capacity)
	metrics.ObserveEvaluationDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncRejected()
		return Decision{}, err
	}
	metrics.IncDecision(decision.ShouldRepair)

	if s.History != nil {
		if err := s.History.Record(ctx, req, decision, requestID); err != nil {
			metrics.IncHistoryFailure()
			telemetry.Error("repair.history_failed", map[string]any{
				"request_id": requestID,
				"error":      err.Error(),
			})
		}
	}
	return decision, nil
}
