package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, 5*time.Second)
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":    status,
		"message": http.StatusText(status),
		"data":    data,
	})
}

func TestEnvelopeDecoding(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []map[string]any{
			{"id": "c1", "name": "Acme Corp", "code": "ACME", "is_active": true},
		})
	})

	companies, err := client.SearchCompanies(context.Background(), "acm", 20)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "c1", companies[0].ID)
	assert.Equal(t, "Acme Corp", companies[0].Name)
	assert.Equal(t, "ACME", companies[0].Code)
}

func TestListEmployeesDecodesPageInfo(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code":    200,
			"message": "OK",
			"data":    []map[string]any{{"id": "e1", "first_name": "Ada"}},
			"meta":    map[string]any{"page": 2, "page_size": 50, "total": 123, "total_pages": 3},
		})
	})

	employees, page, err := client.ListEmployees(context.Background(), "c1", 2, 50)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.NotNil(t, page)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 123, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListEmployeesToleratesMissingMeta(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []map[string]any{{"id": "e1"}})
	})

	employees, page, err := client.ListEmployees(context.Background(), "c1", 1, 200)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Nil(t, page)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"code":    409,
			"message": "employee email already exists",
			"error":   map[string]any{"error_code": "EMP_DUP", "details": "jane@acme.test"},
		})
	})

	_, err := client.CreateEmployee(context.Background(), CreateEmployeeRequest{Email: "jane@acme.test"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "employee email already exists", apiErr.UserMessage())
	assert.Contains(t, apiErr.Error(), "jane@acme.test")
}

func TestNonEnvelopeErrorStillSurfacesStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.GetSubscription(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotCorrelation string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-Id")
		writeEnvelope(w, http.StatusOK, map[string]any{"plan_id": "p1", "plan_name": "Growth"})
	})

	client.SetToken("tok-123")
	_, err := client.GetSubscription(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotCorrelation, "every request carries a correlation id")
}

func TestSearchResponsesAreCached(t *testing.T) {
	var hits int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, http.StatusOK, []map[string]any{{"id": "c1", "name": "Acme"}})
	})

	ctx := context.Background()
	_, err := client.SearchCompanies(ctx, "ac", 20)
	require.NoError(t, err)
	_, err = client.SearchCompanies(ctx, "ac", 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "identical search served from cache")

	_, err = client.SearchCompanies(ctx, "acm", 20)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "different query goes to the server")
}

func TestClearTokenPurgesSearchCache(t *testing.T) {
	var hits int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, http.StatusOK, []map[string]any{})
	})

	ctx := context.Background()
	_, _ = client.SearchCompanies(ctx, "ac", 20)
	client.ClearToken()
	_, _ = client.SearchCompanies(ctx, "ac", 20)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "logout must not leak cached results across sessions")
}

func TestLoginInstallsToken(t *testing.T) {
	var sawAuthOnMe string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"token":       "tok-login",
				"user":        map[string]any{"id": "u1", "name": "Admin", "company_id": "c1"},
				"permissions": []string{"employees.view", "payroll.view"},
			})
		case "/v1/auth/me":
			sawAuthOnMe = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, map[string]any{
				"user": map[string]any{"id": "u1", "name": "Admin"},
			})
		}
	})

	res, err := client.Login(context.Background(), "admin@acme.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, []string{"employees.view", "payroll.view"}, res.Permissions)

	_, err = client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-login", sawAuthOnMe)
}
