package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardSummary(t *testing.T) {
	runAt := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/dashboard/headcount":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"headcount": 42, "present_today": 37, "on_leave_today": 3,
			})
		case "/v1/dashboard/payday":
			writeEnvelope(w, http.StatusOK, map[string]any{"next_payday": "2026-08-31T00:00:00Z"})
		case "/v1/leave":
			writeEnvelope(w, http.StatusOK, []map[string]any{
				{"id": "l1", "status": "pending"},
				{"id": "l2", "status": "pending"},
			})
		case "/v1/payroll/runs":
			writeEnvelope(w, http.StatusOK, []map[string]any{
				{"id": "pr1", "period": "2026-07", "status": "completed", "run_at": runAt.Format(time.RFC3339)},
			})
		default:
			http.NotFound(w, r)
		}
	})

	summary, err := client.GetDashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 42, summary.Headcount)
	assert.Equal(t, 37, summary.PresentToday)
	assert.Equal(t, 3, summary.OnLeaveToday)
	assert.Equal(t, 2, summary.PendingLeave)
	require.NotNil(t, summary.LastPayrollRun)
	assert.Equal(t, "pr1", summary.LastPayrollRun.ID)
	assert.True(t, summary.LastPayrollRun.RunAt.Equal(runAt))
}

func TestGetDashboardSummaryPropagatesFailure(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/dashboard/payday" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"code": 500, "message": "payday service down"})
			return
		}
		switch r.URL.Path {
		case "/v1/leave", "/v1/payroll/runs":
			writeEnvelope(w, http.StatusOK, []map[string]any{})
		default:
			writeEnvelope(w, http.StatusOK, map[string]any{})
		}
	})

	_, err := client.GetDashboardSummary(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "payday service down", apiErr.UserMessage())
}

func TestSourceMapping(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/employees/search":
			assert.Equal(t, "company-1", r.URL.Query().Get("company_id"))
			writeEnvelope(w, http.StatusOK, []map[string]any{
				{
					"id": "e1", "first_name": "Jane", "last_name": "Doe",
					"designation": "Engineer", "avatar_url": "https://cdn.example.com/e1.png",
				},
			})
		default:
			http.NotFound(w, r)
		}
	})

	src := client.EmployeeSource()
	candidates, err := src(context.Background(), "jane", "company-1", 20)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "e1", candidates[0].ID)
	assert.Equal(t, "Jane Doe", candidates[0].Label)
	assert.Equal(t, "Engineer", candidates[0].Subtitle)
	assert.Equal(t, "https://cdn.example.com/e1.png", candidates[0].ImageURL)
}
