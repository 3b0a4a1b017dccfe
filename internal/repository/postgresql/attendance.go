package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.check_in_time, a.check_out_time,
	a.break_start_time, a.break_end_time,
	a.total_working_hours, a.total_break_hours, a.memo,
	a.created_at, a.updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.BreakStartTime, &rec.BreakEndTime,
		&rec.TotalWorkingHours, &rec.TotalBreakHours, &rec.Memo,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, check_in_time, check_out_time,
			break_start_time, break_end_time,
			total_working_hours, total_break_hours, memo,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.CheckInTime,
		rec.CheckOutTime,
		rec.BreakStartTime,
		rec.BreakEndTime,
		rec.TotalWorkingHours,
		rec.TotalBreakHours,
		rec.Memo,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in_time = $2,
			check_out_time = $3,
			break_start_time = $4,
			break_end_time = $5,
			total_working_hours = $6,
			total_break_hours = $7,
			memo = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.CheckInTime,
		rec.CheckOutTime,
		rec.BreakStartTime,
		rec.BreakEndTime,
		rec.TotalWorkingHours,
		rec.TotalBreakHours,
		rec.Memo,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.check_in_time::date = $2::date
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by day: %w", err)
	}

	return rec, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		baseWhere += fmt.Sprintf(" AND a.check_in_time >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		baseWhere += fmt.Sprintf(" AND a.check_in_time <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT`+attendanceColumns+`,
			e.full_name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.check_in_time DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.BreakStartTime, &rec.BreakEndTime,
			&rec.TotalWorkingHours, &rec.TotalBreakHours, &rec.Memo,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListClosedInMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListClosedInMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.check_out_time IS NOT NULL
		  AND EXTRACT(YEAR FROM a.check_in_time) = $2
		  AND EXTRACT(MONTH FROM a.check_in_time) = $3
		ORDER BY a.check_in_time
	`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

const adjustmentColumns = `
	r.id, r.employee_id, r.admin_id, r.attendance_id, r.request_date,
	r.original_check_in, r.original_check_out, r.original_break_start, r.original_break_end,
	r.requested_check_in, r.requested_check_out, r.requested_break_start, r.requested_break_end,
	r.reason, r.status, r.admin_comment,
	r.created_at, r.updated_at`

func scanAdjustment(row pgx.Row) (attendance.AdjustmentRequest, error) {
	var adj attendance.AdjustmentRequest
	err := row.Scan(
		&adj.ID, &adj.EmployeeID, &adj.AdminID, &adj.AttendanceID, &adj.RequestDate,
		&adj.OriginalCheckIn, &adj.OriginalCheckOut, &adj.OriginalBreakStart, &adj.OriginalBreakEnd,
		&adj.RequestedCheckIn, &adj.RequestedCheckOut, &adj.RequestedBreakStart, &adj.RequestedBreakEnd,
		&adj.Reason, &adj.Status, &adj.AdminComment,
		&adj.CreatedAt, &adj.UpdatedAt,
	)
	return adj, err
}

// CreateAdjustment implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateAdjustment(ctx context.Context, adj attendance.AdjustmentRequest) (attendance.AdjustmentRequest, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO time_adjustment_requests (
			id, employee_id, attendance_id, request_date,
			original_check_in, original_check_out, original_break_start, original_break_end,
			requested_check_in, requested_check_out, requested_break_start, requested_break_end,
			reason, status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		adj.EmployeeID,
		adj.AttendanceID,
		adj.RequestDate,
		adj.OriginalCheckIn,
		adj.OriginalCheckOut,
		adj.OriginalBreakStart,
		adj.OriginalBreakEnd,
		adj.RequestedCheckIn,
		adj.RequestedCheckOut,
		adj.RequestedBreakStart,
		adj.RequestedBreakEnd,
		adj.Reason,
		adj.Status,
	).Scan(&adj.ID, &adj.CreatedAt, &adj.UpdatedAt)
	if err != nil {
		return attendance.AdjustmentRequest{}, fmt.Errorf("failed to create adjustment request: %w", err)
	}

	return adj, nil
}

// GetAdjustmentByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetAdjustmentByID(ctx context.Context, id string) (attendance.AdjustmentRequest, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + adjustmentColumns + `
		FROM time_adjustment_requests r
		WHERE r.id = $1
	`

	adj, err := scanAdjustment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AdjustmentRequest{}, attendance.ErrAdjustmentNotFound
		}
		return attendance.AdjustmentRequest{}, fmt.Errorf("failed to get adjustment request: %w", err)
	}

	return adj, nil
}

// UpdateAdjustment implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateAdjustment(ctx context.Context, adj attendance.AdjustmentRequest) (attendance.AdjustmentRequest, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE time_adjustment_requests SET
			admin_id = $2,
			status = $3,
			admin_comment = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, adj.ID, adj.AdminID, adj.Status, adj.AdminComment).Scan(&adj.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AdjustmentRequest{}, attendance.ErrAdjustmentNotFound
		}
		return attendance.AdjustmentRequest{}, fmt.Errorf("failed to update adjustment request: %w", err)
	}

	return adj, nil
}

// ListAdjustments implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAdjustments(ctx context.Context, filter attendance.AdjustmentFilter) ([]attendance.AdjustmentRequest, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT`+adjustmentColumns+`,
			e.full_name AS employee_name
		FROM time_adjustment_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.created_at DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustment requests: %w", err)
	}
	defer rows.Close()

	var adjustments []attendance.AdjustmentRequest
	for rows.Next() {
		var adj attendance.AdjustmentRequest
		err := rows.Scan(
			&adj.ID, &adj.EmployeeID, &adj.AdminID, &adj.AttendanceID, &adj.RequestDate,
			&adj.OriginalCheckIn, &adj.OriginalCheckOut, &adj.OriginalBreakStart, &adj.OriginalBreakEnd,
			&adj.RequestedCheckIn, &adj.RequestedCheckOut, &adj.RequestedBreakStart, &adj.RequestedBreakEnd,
			&adj.Reason, &adj.Status, &adj.AdminComment,
			&adj.CreatedAt, &adj.UpdatedAt,
			&adj.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment request: %w", err)
		}
		adjustments = append(adjustments, adj)
	}

	return adjustments, rows.Err()
}
