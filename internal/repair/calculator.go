package repair

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// RevenuePerKilowatt is the revenue in USD per kWh generated.
	RevenuePerKilowatt = decimal.RequireFromString("0.12")
	// TechnicianCostPerHour is the labor rate in USD per hour of downtime.
	TechnicianCostPerHour = decimal.NewFromInt(250)
	// TurbineBaseCost is the fixed parts cost in USD of any repair.
	TurbineBaseCost = decimal.NewFromInt(100)

	hoursPerDay = decimal.NewFromInt(24)
)

// ErrInvalidInput is the only failure mode of an evaluation.
var ErrInvalidInput = errors.New("invalid input")

var (
	// ErrMissingInput indicates hours or capacity could not be resolved.
	ErrMissingInput = fmt.Errorf("%w: capacity and hours are required", ErrInvalidInput)
	// ErrNegativeInput indicates hours or capacity is below zero.
	ErrNegativeInput = fmt.Errorf("%w: capacity and hours must not be negative", ErrInvalidInput)
)

// Request is a single turbine evaluation input.
type Request struct {
	Hours    decimal.Decimal
	Capacity decimal.Decimal
}

// Decision is the outcome of evaluating a Request.
type Decision struct {
	ShouldRepair       bool
	RevenueOpportunity decimal.Decimal
	CostToFix          decimal.Decimal
}

// Message renders the decision the way the public API reports it.
func (d Decision) Message() string {
	if d.ShouldRepair {
		return "Yes"
	}
	return "No"
}

// Evaluate computes whether a repair pays for itself within one day of
// restored output. Repair is recommended only when the revenue opportunity
// strictly exceeds the cost to fix.
func Evaluate(hours, capacity decimal.Decimal) (Decision, error) {
	if hours.IsNegative() || capacity.IsNegative() {
		return Decision{}, ErrNegativeInput
	}
	revenue := capacity.Mul(RevenuePerKilowatt).Mul(hoursPerDay)
	cost := hours.Mul(TechnicianCostPerHour).Add(TurbineBaseCost)
	return Decision{
		ShouldRepair:       revenue.GreaterThan(cost),
		RevenueOpportunity: revenue,
		CostToFix:          cost,
	}, nil
}

// FormatUSD prefixes the exact, unrounded amount with a dollar sign.
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.String()
}
