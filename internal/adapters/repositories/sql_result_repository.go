package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"solomon-validator/internal/domain"
	"solomon-validator/internal/platform/obs"
)

// SQLResultRepository is a Postgres-backed results store (pgx stdlib driver).
type SQLResultRepository struct {
	DB *sql.DB
}

func NewSQLResultRepository(db *sql.DB) *SQLResultRepository {
	return &SQLResultRepository{DB: db}
}

func (s *SQLResultRepository) SaveResult(ctx context.Context, rec domain.ValidationRecord) (_ int64, err error) {
	defer obs.Time(ctx, "results.sql.SaveResult")(&err)

	if s.DB == nil {
		return 0, errors.New("sql result repository: db is nil")
	}

	errs, err := encodeList(rec.Errors)
	if err != nil {
		return 0, fmt.Errorf("save result: %w", err)
	}
	warns, err := encodeList(rec.Warnings)
	if err != nil {
		return 0, fmt.Errorf("save result: %w", err)
	}

	q := `
	INSERT INTO validation_results (
		instance, solution, valid, total_distance, vehicles_used, errors, warnings, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)
	RETURNING id;
	`

	var id int64
	if err := s.DB.QueryRowContext(ctx, q,
		rec.Instance, rec.Solution, rec.Valid, rec.TotalDistance, rec.VehiclesUsed,
		errs, warns, rec.CreatedAt,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("save result: insert instance=%q: %w", rec.Instance, err)
	}

	return id, nil
}

func (s *SQLResultRepository) ListResults(ctx context.Context, instance string) (_ []domain.ValidationRecord, err error) {
	defer obs.Time(ctx, "results.sql.ListResults")(&err)

	if s.DB == nil {
		return nil, errors.New("sql result repository: db is nil")
	}

	q := `
	SELECT id, instance, solution, valid, total_distance, vehicles_used, errors, warnings, created_at
	FROM validation_results
	WHERE instance = $1
	ORDER BY id;
	`

	rows, err := s.DB.QueryContext(ctx, q, instance)
	if err != nil {
		return nil, fmt.Errorf("list results: query validation_results table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ValidationRecord, 0, 16)
	for rows.Next() {
		var (
			rec         domain.ValidationRecord
			errs, warns []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.Instance, &rec.Solution, &rec.Valid, &rec.TotalDistance,
			&rec.VehiclesUsed, &errs, &warns, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list results: scan rows: %w", err)
		}

		if rec.Errors, err = decodeList(errs); err != nil {
			return nil, fmt.Errorf("list results: id=%d errors: %w", rec.ID, err)
		}
		if rec.Warnings, err = decodeList(warns); err != nil {
			return nil, fmt.Errorf("list results: id=%d warnings: %w", rec.ID, err)
		}
		rec.CreatedAt = rec.CreatedAt.UTC()

		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: row iteration: %w", err)
	}

	return out, nil
}
