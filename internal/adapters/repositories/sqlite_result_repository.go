package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"solomon-validator/internal/domain"
	"solomon-validator/internal/platform/obs"
	"time"
)

// SQLite-backed implementation of the ResultRepository port.
type SqliteResultRepository struct{ DB *sql.DB }

func NewSqliteResultRepository(db *sql.DB) *SqliteResultRepository {
	return &SqliteResultRepository{DB: db}
}

// Persist one validation outcome.
func (s *SqliteResultRepository) SaveResult(ctx context.Context, rec domain.ValidationRecord) (_ int64, err error) {
	defer obs.Time(ctx, "results.sqlite.SaveResult")(&err)

	if s.DB == nil {
		return 0, errors.New("sqlite result repository: DB is nil")
	}

	errs, err := encodeList(rec.Errors)
	if err != nil {
		return 0, fmt.Errorf("save result: %w", err)
	}
	warns, err := encodeList(rec.Warnings)
	if err != nil {
		return 0, fmt.Errorf("save result: %w", err)
	}

	query := `
	INSERT INTO validation_results (
		instance,
		solution,
		valid,
		total_distance,
		vehicles_used,
		errors,
		warnings,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		rec.Instance, rec.Solution, rec.Valid, rec.TotalDistance, rec.VehiclesUsed,
		errs, warns, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("save result: insert instance=%q: %w", rec.Instance, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save result: last insert id: %w", err)
	}

	return id, nil
}

// Return all outcomes recorded for an instance, oldest first.
func (s *SqliteResultRepository) ListResults(ctx context.Context, instance string) (_ []domain.ValidationRecord, err error) {
	defer obs.Time(ctx, "results.sqlite.ListResults")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite result repository: DB is nil")
	}

	query := `
	SELECT
		id,
		instance,
		solution,
		valid,
		total_distance,
		vehicles_used,
		errors,
		warnings,
		created_at
	FROM validation_results
	WHERE instance = ?
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query, instance)
	if err != nil {
		return nil, fmt.Errorf("list results: query validation_results table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ValidationRecord, 0, 16)
	for rows.Next() {
		var (
			rec          domain.ValidationRecord
			errs, warns  string
			createdAtRaw string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Instance, &rec.Solution, &rec.Valid, &rec.TotalDistance,
			&rec.VehiclesUsed, &errs, &warns, &createdAtRaw,
		); err != nil {
			return nil, fmt.Errorf("list results: scan row: %w", err)
		}

		if rec.Errors, err = decodeList([]byte(errs)); err != nil {
			return nil, fmt.Errorf("list results: id=%d errors: %w", rec.ID, err)
		}
		if rec.Warnings, err = decodeList([]byte(warns)); err != nil {
			return nil, fmt.Errorf("list results: id=%d warnings: %w", rec.ID, err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtRaw); err != nil {
			return nil, fmt.Errorf("list results: id=%d created_at: %w", rec.ID, err)
		}

		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: row iteration: %w", err)
	}

	return out, nil
}
