package evaluations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, evaluation Evaluation) error {
	const query = `
INSERT INTO repair_evaluations (id, request_id, hours, capacity, revenue_opportunity, cost_to_fix, should_repair, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		evaluation.ID,
		nullableString(evaluation.RequestID),
		evaluation.Hours.String(),
		evaluation.Capacity.String(),
		evaluation.RevenueOpportunity.String(),
		evaluation.CostToFix.String(),
		evaluation.ShouldRepair,
		evaluation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Evaluation, error) {
	const query = `
SELECT id, request_id, hours::text, capacity::text, revenue_opportunity::text, cost_to_fix::text, should_repair, created_at
FROM repair_evaluations
WHERE id = $1
LIMIT 1`
	evaluation, err := scanEvaluation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, ErrNotFound
		}
		return Evaluation{}, err
	}
	return evaluation, nil
}

func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Evaluation, error) {
	const query = `
SELECT id, request_id, hours::text, capacity::text, revenue_opportunity::text, cost_to_fix::text, should_repair, created_at
FROM repair_evaluations
ORDER BY created_at DESC, id DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		evaluation, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, evaluation)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var (
		evaluation Evaluation
		requestID  sql.NullString
		hours      string
		capacity   string
		revenue    string
		cost       string
	)
	if err := row.Scan(
		&evaluation.ID,
		&requestID,
		&hours,
		&capacity,
		&revenue,
		&cost,
		&evaluation.ShouldRepair,
		&evaluation.CreatedAt,
	); err != nil {
		return Evaluation{}, err
	}
	if requestID.Valid {
		evaluation.RequestID = requestID.String
	}

	var err error
	if evaluation.Hours, err = decimal.NewFromString(hours); err != nil {
		return Evaluation{}, fmt.Errorf("parse hours: %w", err)
	}
	if evaluation.Capacity, err = decimal.NewFromString(capacity); err != nil {
		return Evaluation{}, fmt.Errorf("parse capacity: %w", err)
	}
	if evaluation.RevenueOpportunity, err = decimal.NewFromString(revenue); err != nil {
		return Evaluation{}, fmt.Errorf("parse revenue_opportunity: %w", err)
	}
	if evaluation.CostToFix, err = decimal.NewFromString(cost); err != nil {
		return Evaluation{}, fmt.Errorf("parse cost_to_fix: %w", err)
	}
	return evaluation, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
