package views

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdeck/internal/api"
)

func TestSubmitFailedToastsEnvelopeMessage(t *testing.T) {
	ctx := testContext(t, "http://localhost:0")

	err := fmt.Errorf("create employee: %w", &api.APIError{Status: 409, Code: 409, Message: "employee email already exists"})
	cmd := ctx.submitFailed("employee", err)
	require.NotNil(t, cmd)

	toast, ok := cmd().(ToastMsg)
	require.True(t, ok)
	assert.True(t, toast.IsError)
	assert.Equal(t, "employee email already exists", toast.Text)
}

func TestSubmitFailedHidesTransportDetails(t *testing.T) {
	ctx := testContext(t, "http://localhost:0")

	cmd := ctx.submitFailed("arrear", errors.New("dial tcp 127.0.0.1:80: connect: connection refused"))
	require.NotNil(t, cmd)

	toast, ok := cmd().(ToastMsg)
	require.True(t, ok)
	assert.True(t, toast.IsError)
	assert.NotContains(t, toast.Text, "dial tcp")
	assert.Equal(t, "Saving arrear failed, please try again", toast.Text)
}

func TestEmployeeFormToastsEnvelopeMessageOnFailure(t *testing.T) {
	form := NewEmployeeFormPage(testContext(t, "http://localhost:0", "employees.manage"))
	defer form.Teardown()

	_, cmd := form.Update(employeeSavedMsg{err: &api.APIError{Status: 422, Code: 422, Message: "joining date is in the future"}})
	require.NotNil(t, cmd)

	toast, ok := cmd().(ToastMsg)
	require.True(t, ok)
	assert.True(t, toast.IsError)
	assert.Equal(t, "joining date is in the future", toast.Text)
	assert.False(t, form.submitting)
}
