package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) payroll.HolidayRepository {
	return &holidayRepository{db: db}
}

// Create implements payroll.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h payroll.Holiday) (payroll.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, h.Date, h.Name).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return payroll.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// Delete implements payroll.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrHolidayNotFound
	}

	return nil
}

// GetByDate implements payroll.HolidayRepository.
func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time) (payroll.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date = $1::date
	`

	var h payroll.Holiday
	err := q.QueryRow(ctx, query, date).Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Holiday{}, payroll.ErrHolidayNotFound
		}
		return payroll.Holiday{}, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return h, nil
}

// ListByYear implements payroll.HolidayRepository.
func (r *holidayRepository) ListByYear(ctx context.Context, year int) ([]payroll.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays by year: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// ListInRange implements payroll.HolidayRepository.
func (r *holidayRepository) ListInRange(ctx context.Context, start, end time.Time) ([]payroll.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date >= $1::date AND date <= $2::date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays in range: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func collectHolidays(rows pgx.Rows) ([]payroll.Holiday, error) {
	var holidays []payroll.Holiday
	for rows.Next() {
		var h payroll.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
