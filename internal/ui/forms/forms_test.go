package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdeck/internal/api"
)

func TestValidEmployeePayloadPasses(t *testing.T) {
	errs := Validate(api.CreateEmployeeRequest{
		CompanyID:   "c1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		JoiningDate: "2026-03-01",
	})
	assert.False(t, errs.HasErrors(), "got: %v", errs)
}

func TestMissingFieldsAreReportedByWireName(t *testing.T) {
	errs := Validate(api.CreateEmployeeRequest{})
	require.True(t, errs.HasErrors())

	assert.Equal(t, "is required", errs["company_id"])
	assert.Equal(t, "is required", errs["first_name"])
	assert.Equal(t, "is required", errs["email"])
	assert.NotContains(t, errs, "manager_id", "optional field must not be flagged")
}

func TestBadEmailAndDate(t *testing.T) {
	errs := Validate(api.CreateEmployeeRequest{
		CompanyID:   "c1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "not-an-email",
		JoiningDate: "01/03/2026",
	})
	assert.Equal(t, "must be a valid email address", errs["email"])
	assert.Equal(t, "must match YYYY-MM-DD", errs["joining_date"])
}

func TestArrearAmountMustBePositive(t *testing.T) {
	errs := Validate(api.CreateArrearRequest{
		EmployeeID: "e1",
		Amount:     -100,
		Reason:     "overtime",
		Period:     "2026-08",
	})
	assert.Equal(t, "must be greater than 0", errs["amount"])
}

func TestRoleNeedsPermissions(t *testing.T) {
	errs := Validate(api.CreateRoleRequest{Name: "Auditor"})
	assert.Equal(t, "is required", errs["permissions"])

	errs = Validate(api.CreateRoleRequest{Name: "Auditor", Permissions: []string{"payroll.view"}})
	assert.False(t, errs.HasErrors())
}

func TestMonthlyScheduleNeedsDayOfMonth(t *testing.T) {
	errs := Validate(api.CreatePayslipScheduleRequest{
		TemplateID: "t1",
		Name:       "Standard monthly",
		Cadence:    "monthly",
	})
	assert.Equal(t, "is required", errs["day_of_month"])

	errs = Validate(api.CreatePayslipScheduleRequest{
		TemplateID: "t1",
		Name:       "Weekly crew",
		Cadence:    "weekly",
	})
	assert.False(t, errs.HasErrors(), "got: %v", errs)
}
