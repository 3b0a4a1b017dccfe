package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	parsed, ok := validator.IsValidDate(raw)
	if !ok {
		return nil, validator.ValidationErrors{
			{Field: name, Message: "must be YYYY-MM-DD"},
		}
	}
	return &parsed, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validator.ValidationErrors{
			{Field: name, Message: "must be an integer"},
		}
	}
	return &value, nil
}

// yearMonthFromQuery reads required year and month parameters, defaulting to
// the current month when both are absent.
func yearMonthFromQuery(r *http.Request) (int, int, error) {
	yearPtr, err := queryInt(r, "year")
	if err != nil {
		return 0, 0, err
	}
	monthPtr, err := queryInt(r, "month")
	if err != nil {
		return 0, 0, err
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if yearPtr != nil {
		year = *yearPtr
	}
	if monthPtr != nil {
		month = *monthPtr
	}

	if month < 1 || month > 12 {
		return 0, 0, validator.ValidationErrors{
			{Field: "month", Message: "must be between 1 and 12"},
		}
	}
	return year, month, nil
}
