package response

import (
	"errors"
	"net/http"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyClosed):
		Conflict(w, "Attendance record already closed")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in", nil)
	case errors.Is(err, attendance.ErrInvalidInterval):
		BadRequest(w, "Invalid time interval", nil)
	case errors.Is(err, attendance.ErrNotRecordOwner):
		Forbidden(w, "Attendance record belongs to another employee")
	case errors.Is(err, attendance.ErrAdjustmentNotFound):
		NotFound(w, "Adjustment request not found")
	case errors.Is(err, attendance.ErrAdjustmentAlreadyDecided):
		Conflict(w, "Adjustment request already decided")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftExists):
		Conflict(w, "Shift already submitted for that date")
	case errors.Is(err, shift.ErrShiftAlreadyDecided):
		Conflict(w, "Shift already decided")
	case errors.Is(err, shift.ErrNotShiftOwner):
		Forbidden(w, "Shift belongs to another employee")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAllocationNotFound):
		NotFound(w, "Leave allocation not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient paid leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrNotLeaveOwner):
		Forbidden(w, "Leave request belongs to another employee")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipImmutable):
		Conflict(w, "Payslip is no longer a draft")
	case errors.Is(err, payroll.ErrPayslipNotConfirmed):
		Conflict(w, "Payslip has not been confirmed")
	case errors.Is(err, payroll.ErrNotPayslipOwner):
		Forbidden(w, "Payslip belongs to another employee")
	case errors.Is(err, payroll.ErrRateNotFound):
		NotFound(w, "Rate not found")
	case errors.Is(err, payroll.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, payroll.ErrHolidayExists):
		Conflict(w, "Holiday already registered for that date")
	case errors.Is(err, payroll.ErrMissingHourlyRate):
		BadRequest(w, "Employee has no hourly rate configured", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
