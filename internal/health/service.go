package health

import (
	"context"
	"database/sql"
	"time"

	"turbine-repair/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	History  string `json:"history"`
	Database string `json:"database,omitempty"`
}

// Service reports process and dependency health.
type Service struct {
	DB             *sql.DB
	HistoryBackend string
}

// NewService constructs a health service. backend is "postgres", "memory"
// or empty when history is disabled.
func NewService(database *sql.DB, backend string) *Service {
	return &Service{DB: database, HistoryBackend: backend}
}

// Status checks the database when history is stored in Postgres.
func (s *Service) Status(ctx context.Context) Status {
	status := Status{OK: true, History: s.HistoryBackend}
	if status.History == "" {
		status.History = "disabled"
	}
	if s.HistoryBackend != "postgres" {
		return status
	}
	if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
		status.OK = false
		status.Database = "unavailable"
		return status
	}
	status.Database = "ok"
	return status
}
