package employee

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

type Employee struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	IsActive     bool

	EmployeeCode   *string
	DepartmentName *string
	Position       *string
	EmploymentType EmploymentType
	HireDate       *time.Time

	// Pay profile. HourlyRate is yen per hour; MonthlySalary is set for
	// salaried staff and becomes the deduction base instead of gross pay.
	HourlyRate    int64
	MonthlySalary *int64

	// Statutory rate selectors
	Prefecture     *string
	IndustryType   *string
	DependentCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}
