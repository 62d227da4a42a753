package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/query"
)

// scanRecord scans one row selected with query.Columns.
func scanRecord(scanner interface{ Scan(...any) error }) (*catch.Record, error) {
	var r catch.Record
	var method string

	err := scanner.Scan(
		&r.ID,
		&r.SpeciesName,
		&r.WeightKg,
		&r.PricePerKg,
		&r.CatchDate,
		&method,
		&r.Location,
		&r.FishermanNotes,
	)
	if err != nil {
		return nil, err
	}
	r.CatchMethod = catch.Method(method)

	return &r, nil
}

// ListCatches returns every catch matching search, in sort order.
func (s *sqlStore) ListCatches(ctx context.Context, search string, sort query.Sort) ([]catch.Record, error) {
	q, args := query.List(search, sort)

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query catches: %w", err)
	}
	defer rows.Close()

	records := []catch.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

// GetCatch retrieves a catch by ID.
func (s *sqlStore) GetCatch(ctx context.Context, id int64) (*catch.Record, error) {
	q, args := query.Get(id)

	r, err := scanRecord(s.conn.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}

	return r, nil
}

// CreateCatch inserts a validated record and returns its new ID.
func (s *sqlStore) CreateCatch(ctx context.Context, r catch.Record) (int64, error) {
	q, args := query.Insert(r)

	result, err := s.conn.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert catch: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}

	return id, nil
}

// UpdateCatch overwrites every field of catch id.
func (s *sqlStore) UpdateCatch(ctx context.Context, id int64, r catch.Record) error {
	q, args := query.Update(id, r)

	result, err := s.conn.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update catch: %w", err)
	}

	return requireAffected(result)
}

// DeleteCatch permanently removes catch id.
func (s *sqlStore) DeleteCatch(ctx context.Context, id int64) error {
	q, args := query.Delete(id)

	result, err := s.conn.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}

	return requireAffected(result)
}

// CountCatches returns the number of stored catches.
func (s *sqlStore) CountCatches(ctx context.Context) (int64, error) {
	q, args := query.Count()

	var count int64
	if err := s.conn.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count catches: %w", err)
	}
	return count, nil
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
