package views

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdeck/internal/api"
	"staffdeck/internal/config"
	"staffdeck/internal/domain"
	"staffdeck/internal/session"
	"staffdeck/internal/ui/components/searchbox"
)

func testContext(t *testing.T, srvURL string, caps ...string) Context {
	t.Helper()
	client := api.NewClient(srvURL, 5*time.Second)
	sess := session.Begin("tok", domain.User{ID: "u1", Name: "Admin", CompanyID: "c1"}, caps, nil)
	return Context{
		Client:  client,
		Session: sess,
		Config:  config.Default(),
		Styles:  NewStyles(),
		Emit:    func(tea.Msg) {},
	}
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"code": 200, "message": "success", "data": data})
}

func TestGroupByDepartmentSortsAndFillsUnassigned(t *testing.T) {
	groups := groupByDepartment([]domain.Employee{
		{FirstName: "Zoe", Department: "Sales"},
		{FirstName: "Ada", Department: "Engineering"},
		{FirstName: "Bob", Department: ""},
		{FirstName: "Amy", Department: "Engineering"},
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "Engineering", groups[0].name)
	assert.Equal(t, "Sales", groups[1].name)
	assert.Equal(t, "Unassigned", groups[2].name)

	assert.Equal(t, "Amy", groups[0].employees[0].FirstName, "members sorted by name")
	assert.Equal(t, "Ada", groups[0].employees[1].FirstName)
}

func TestEmployeesListLoads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/employees", r.URL.Path)
		writeEnvelope(w, []map[string]any{
			{"id": "e1", "first_name": "Ada", "last_name": "Lovelace", "department": "Engineering"},
		})
	}))
	defer srv.Close()

	page := NewEmployeesPage(testContext(t, srv.URL, "employees.view"))
	msg := page.Init()()

	loaded, ok := msg.(employeesLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)

	_, _ = page.Update(loaded)
	assert.Contains(t, page.View(), "Ada Lovelace")
	assert.Contains(t, page.View(), "Engineering")
}

func TestEmployeesListShowsServerTotals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200, "message": "success",
			"data": []map[string]any{
				{"id": "e1", "first_name": "Ada", "last_name": "Lovelace", "department": "Engineering"},
			},
			"meta": map[string]any{"page": 1, "page_size": 1, "total": 57, "total_pages": 57},
		})
	}))
	defer srv.Close()

	page := NewEmployeesPage(testContext(t, srv.URL, "employees.view"))
	msg := page.Init()()

	loaded, ok := msg.(employeesLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	require.NotNil(t, loaded.page)

	_, _ = page.Update(loaded)
	assert.Contains(t, page.View(), "57 total")
	assert.Contains(t, page.View(), "showing first page")
}

func TestNewEmployeeNeedsManageCapability(t *testing.T) {
	page := NewEmployeesPage(testContext(t, "http://localhost:0", "employees.view"))

	_, cmd := page.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	require.NotNil(t, cmd)
	toast, ok := cmd().(ToastMsg)
	require.True(t, ok)
	assert.True(t, toast.IsError)
	assert.Nil(t, page.form, "form must not open without the capability")
}

func TestEmployeeFormBlocksInvalidSubmission(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeEnvelope(w, map[string]any{"id": "e9"})
	}))
	defer srv.Close()

	form := NewEmployeeFormPage(testContext(t, srv.URL, "employees.view", "employees.manage"))
	defer form.Teardown()

	_, cmd := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	toast, ok := cmd().(ToastMsg)
	require.True(t, ok)
	assert.True(t, toast.IsError)

	assert.True(t, form.errs.HasErrors())
	assert.Contains(t, form.errs, "company_id")
	assert.Zero(t, calls, "invalid forms never reach the server")
}

func TestEmployeeFormScopesManagerToCompany(t *testing.T) {
	form := NewEmployeeFormPage(testContext(t, "http://localhost:0", "employees.manage"))
	defer form.Teardown()

	_, cmd := form.Update(searchbox.SelectionChangedMsg{Field: "company", ID: "c42", Label: "Acme"})
	// The scope change announces the manager box's now-empty selection
	require.NotNil(t, cmd)

	// A debounce expiration for the manager box issues no fetch while the
	// lookup would still be unscoped after a company reset.
	_, cmd = form.Update(searchbox.SelectionChangedMsg{Field: "company", ID: "", Label: ""})
	_ = cmd
	assert.Empty(t, form.manager.Value())
}
