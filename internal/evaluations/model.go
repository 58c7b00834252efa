package evaluations

import (
	"time"

	"github.com/shopspring/decimal"
)

// Evaluation is one recorded repair decision.
type Evaluation struct {
	ID                 string          `json:"id"`
	RequestID          string          `json:"requestId,omitempty"`
	Hours              decimal.Decimal `json:"hours"`
	Capacity           decimal.Decimal `json:"capacity"`
	RevenueOpportunity decimal.Decimal `json:"revenueOpportunity"`
	CostToFix          decimal.Decimal `json:"costToFix"`
	ShouldRepair       bool            `json:"shouldRepair"`
	CreatedAt          time.Time       `json:"createdAt"`
}
