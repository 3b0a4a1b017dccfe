package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	s.id, s.employee_id, s.admin_id, s.date, s.availability,
	s.start_time, s.end_time, s.memo, s.status, s.admin_comment,
	s.created_at, s.updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var sh shift.Shift
	err := row.Scan(
		&sh.ID, &sh.EmployeeID, &sh.AdminID, &sh.Date, &sh.Availability,
		&sh.StartTime, &sh.EndTime, &sh.Memo, &sh.Status, &sh.AdminComment,
		&sh.CreatedAt, &sh.UpdatedAt,
	)
	return sh, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, employee_id, date, availability, start_time, end_time, memo, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sh.EmployeeID,
		sh.Date,
		sh.Availability,
		sh.StartTime,
		sh.EndTime,
		sh.Memo,
		sh.Status,
	).Scan(&sh.ID, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return sh, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + shiftColumns + `
		FROM shifts s
		WHERE s.id = $1
	`

	sh, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return sh, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts SET
			admin_id = $2,
			availability = $3,
			start_time = $4,
			end_time = $5,
			memo = $6,
			status = $7,
			admin_comment = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		sh.ID,
		sh.AdminID,
		sh.Availability,
		sh.StartTime,
		sh.EndTime,
		sh.Memo,
		sh.Status,
		sh.AdminComment,
	).Scan(&sh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return sh, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// GetByEmployeeAndDate implements shift.ShiftRepository.
func (r *shiftRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + shiftColumns + `
		FROM shifts s
		WHERE s.employee_id = $1
		  AND s.date = $2::date
		LIMIT 1
	`

	sh, err := scanShift(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by date: %w", err)
	}

	return sh, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, filter shift.Filter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT`+shiftColumns+`,
			e.full_name AS employee_name
		FROM shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.date
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var sh shift.Shift
		err := rows.Scan(
			&sh.ID, &sh.EmployeeID, &sh.AdminID, &sh.Date, &sh.Availability,
			&sh.StartTime, &sh.EndTime, &sh.Memo, &sh.Status, &sh.AdminComment,
			&sh.CreatedAt, &sh.UpdatedAt,
			&sh.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, rows.Err()
}

// ListConfirmedInMonth implements shift.ShiftRepository.
func (r *shiftRepository) ListConfirmedInMonth(ctx context.Context, employeeID string, year, month int) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + shiftColumns + `
		FROM shifts s
		WHERE s.employee_id = $1
		  AND s.status = 'confirmed'
		  AND EXTRACT(YEAR FROM s.date) = $2
		  AND EXTRACT(MONTH FROM s.date) = $3
		ORDER BY s.date
	`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmed shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, rows.Err()
}
