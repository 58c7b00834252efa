package evaluations

import (
	"time"

	"turbine-repair/internal/repair"
)

type evaluationResponse struct {
	ID                 string    `json:"id"`
	RequestID          string    `json:"requestId,omitempty"`
	Hours              string    `json:"hours"`
	Capacity           string    `json:"capacity"`
	Message            string    `json:"message"`
	RevenueOpportunity string    `json:"revenueOpportunity"`
	CostToFix          string    `json:"costToFix"`
	CreatedAt          time.Time `json:"createdAt"`
}

type listResponse struct {
	Evaluations []evaluationResponse `json:"evaluations"`
}

func toResponse(e Evaluation) evaluationResponse {
	decision := repair.Decision{
		ShouldRepair:       e.ShouldRepair,
		RevenueOpportunity: e.RevenueOpportunity,
		CostToFix:          e.CostToFix,
	}
	return evaluationResponse{
		ID:                 e.ID,
		RequestID:          e.RequestID,
		Hours:              e.Hours.String(),
		Capacity:           e.Capacity.String(),
		Message:            decision.Message(),
		RevenueOpportunity: repair.FormatUSD(e.RevenueOpportunity),
		CostToFix:          repair.FormatUSD(e.CostToFix),
		CreatedAt:          e.CreatedAt,
	}
}
