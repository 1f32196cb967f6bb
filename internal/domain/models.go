package domain

import "time"

// Company represents an organization account on the HR platform
type Company struct {
	ID       string
	Name     string
	Code     string // short code shown next to the name
	LogoURL  string
	IsActive bool
}

// Employee represents an employee record
type Employee struct {
	ID             string
	CompanyID      string
	ManagerID      string
	FirstName      string
	LastName       string
	Email          string
	Designation    string
	Department     string
	AvatarURL      string
	JoiningDate    time.Time
	EmploymentType string // full_time, part_time, contract
	Status         string // active, inactive
}

// FullName returns the display name for an employee
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Role represents a named set of capabilities assignable to users
type Role struct {
	ID           string
	CompanyID    string
	Name         string
	Description  string
	Capabilities []Capability
	MemberCount  int
}

// PayrollRun represents one execution of payroll for a period
type PayrollRun struct {
	ID          string
	CompanyID   string
	Period      string // e.g. "2026-07"
	Status      string // draft, processing, completed, failed
	EmployeeCnt int
	GrossTotal  int64 // minor currency units
	NetTotal    int64
	RunAt       time.Time
}

// Arrear represents a back-pay adjustment attached to a payroll period
type Arrear struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Amount     int64 // minor currency units
	Reason     string
	Period     string
	CreatedAt  time.Time
}

// PayslipTemplate represents a reusable payslip layout
type PayslipTemplate struct {
	ID        string
	Name      string
	Locale    string
	IsDefault bool
}

// PayslipSchedule represents a recurring payslip generation rule
type PayslipSchedule struct {
	ID         string
	CompanyID  string
	TemplateID string
	Name       string
	Cadence    string // monthly, biweekly, weekly
	DayOfMonth int
	NextRunAt  time.Time
}

// AttendanceRecord represents one day of clock activity for an employee
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Employee   string // display name, denormalized by the API
	Date       time.Time
	ClockIn    time.Time
	ClockOut   time.Time // zero if still clocked in
	BreakMins  int
	Status     string // present, absent, half_day, on_leave
}

// LeaveRequest represents a pending or resolved leave application
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Employee   string // display name, denormalized by the API
	Type       string // casual, sick, earned, unpaid
	From       time.Time
	To         time.Time
	Days       float64
	Reason     string
	Status     string // pending, approved, rejected
}

// Subscription represents the company's plan on the HR platform
type Subscription struct {
	PlanID      string
	PlanName    string
	SeatsUsed   int
	SeatsTotal  int
	RenewsAt    time.Time
	IsTrial     bool
	IsSuspended bool
}

// User represents the authenticated console user
type User struct {
	ID        string
	Name      string
	Email     string
	CompanyID string
	RoleID    string
	Language  string
}

// DashboardSummary aggregates the numbers shown on the landing page
type DashboardSummary struct {
	Headcount      int
	PresentToday   int
	OnLeaveToday   int
	PendingLeave   int
	LastPayrollRun *PayrollRun
	UpcomingPayday time.Time
}
