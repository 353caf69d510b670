package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/cto-planner/api"
	"github.com/warp/cto-planner/store/sqlite"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := api.NewHandler(store)
	return api.NewRouter(handler)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePlan_ReturnsResultAndPersistsIt(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/plans", map[string]any{
		"number_of_days": 5,
		"strategy":       "balanced",
		"year":           2025,
		"today":          "2030-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.Contains(t, resp, "stats")

	id, _ := resp["id"].(string)
	getRec := doJSON(t, router, http.MethodGet, "/api/plans/"+id, nil)
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestCreatePlan_RejectsNegativeQuota(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/plans", map[string]any{
		"number_of_days": -1,
		"strategy":       "balanced",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePlan_RejectsOutOfRangeYear(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/plans", map[string]any{
		"number_of_days": 5,
		"strategy":       "balanced",
		"year":           1800,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlan_UnknownIDReturns404(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/plans/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPlans_ReturnsCreatedPlans(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/plans", map[string]any{
			"number_of_days": 3,
			"strategy":       "balanced",
			"year":           2025,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/plans", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestHolidayLifecycle_CreateListDelete(t *testing.T) {
	router := newTestRouter(t)

	createRec := doJSON(t, router, http.MethodPost, "/api/holidays", map[string]any{
		"date": "2025-07-04",
		"name": "Independence Day",
	})
	require.Equal(t, http.StatusCreated, createRec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	listRec := doJSON(t, router, http.MethodGet, "/api/holidays", nil)
	assert.Equal(t, http.StatusOK, listRec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	delRec := doJSON(t, router, http.MethodDelete, "/api/holidays/"+id, nil)
	assert.Equal(t, http.StatusNoContent, delRec.Code)

	listRec2 := doJSON(t, router, http.MethodGet, "/api/holidays", nil)
	var list2 []map[string]any
	require.NoError(t, json.Unmarshal(listRec2.Body.Bytes(), &list2))
	assert.Empty(t, list2)
}

func TestCreateHoliday_RejectsMalformedDate(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/holidays", map[string]any{
		"date": "07/04/2025",
		"name": "Bad Date",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyDaysOffLifecycle_RecurringRule(t *testing.T) {
	router := newTestRouter(t)

	createRec := doJSON(t, router, http.MethodPost, "/api/company-days-off", map[string]any{
		"name":         "Summer Fridays",
		"is_recurring": true,
		"weekday":      5,
		"start":        "2025-06-01",
		"end":          "2025-06-30",
	})
	require.Equal(t, http.StatusCreated, createRec.Code)

	listRec := doJSON(t, router, http.MethodGet, "/api/company-days-off", nil)
	assert.Equal(t, http.StatusOK, listRec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0]["is_recurring"])
}

func TestAddDefaultHolidays_SeedsFederalHolidays(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/holidays/defaults", map[string]any{
		"company_id": "acme",
		"year":       2025,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var created []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created)

	listRec := doJSON(t, router, http.MethodGet, "/api/holidays?company_id=acme", nil)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	assert.Equal(t, len(created), len(list))
}

func TestScenarios_ListGetRun(t *testing.T) {
	router := newTestRouter(t)

	listRec := doJSON(t, router, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.NotEmpty(t, list)

	id, _ := list[0]["id"].(string)

	getRec := doJSON(t, router, http.MethodGet, "/api/scenarios/"+id, nil)
	assert.Equal(t, http.StatusOK, getRec.Code)

	runRec := doJSON(t, router, http.MethodPost, "/api/scenarios/"+id+"/run", nil)
	assert.Equal(t, http.StatusOK, runRec.Code)
	var result map[string]any
	require.NoError(t, json.Unmarshal(runRec.Body.Bytes(), &result))
	assert.Contains(t, result, "stats")
}

func TestScenarios_UnknownIDReturns404(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/scenarios/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
