/*
handlers.go - HTTP API handlers for the CTO day planner

PURPOSE:
  Exposes the optimizer engine via REST API. Handles HTTP request/response,
  JSON serialization, validation, and delegates to the pure optimizer
  package and the sqlite store.

ENDPOINTS:
  Plans:
    POST   /api/plans                 Run the optimizer, persist and return the result
    GET    /api/plans/{id}            Fetch a previously computed plan
    GET    /api/plans                 List recent plans

  Holidays:
    GET    /api/holidays              List holidays for a company scope
    POST   /api/holidays              Add a holiday
    POST   /api/holidays/defaults     Seed a built-in default holiday set
    DELETE /api/holidays/{id}         Remove a holiday

  Company days off:
    GET    /api/company-days-off      List rules for a company scope
    POST   /api/company-days-off      Add a rule
    DELETE /api/company-days-off/{id} Remove a rule

  Scenarios:
    GET    /api/scenarios             List demo scenarios
    GET    /api/scenarios/{id}        Fetch one scenario's canned params
    POST   /api/scenarios/{id}/run    Run the optimizer against a scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed JSON, malformed dates
  - 404: Unknown plan/scenario id
  - 500: Store failures

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario catalogue
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/cto-planner/internal/pkg/validator"
	"github.com/warp/cto-planner/optimizer"
	"github.com/warp/cto-planner/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler backed by store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// PLAN ENDPOINTS
// =============================================================================

// CreatePlan runs the optimizer and persists the result.
// POST /api/plans
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	params, verrs := h.buildParams(req)
	if len(verrs) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: verrs.ToMap(),
		})
		return
	}

	result := optimizer.Optimize(params)

	rec, err := h.Store.SavePlan(req.CompanyID, params, result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save plan", err)
		return
	}

	resp := toPlanResponse(result)
	resp.ID = rec.ID
	resp.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
	writeJSON(w, http.StatusOK, resp)
}

// GetPlan fetches a previously computed plan by id.
// GET /api/plans/{id}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetPlan(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "plan not found", err)
		return
	}
	resp := toPlanResponse(rec.Result)
	resp.ID = rec.ID
	resp.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
	writeJSON(w, http.StatusOK, resp)
}

// ListPlans lists recent plans for a company scope.
// GET /api/plans
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	limit := 20

	recs, err := h.Store.ListPlans(companyID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list plans", err)
		return
	}

	out := make([]PlanSummaryDTO, len(recs))
	for i, rec := range recs {
		out[i] = PlanSummaryDTO{
			ID:        rec.ID,
			Strategy:  string(rec.Params.Strategy),
			Year:      rec.Params.Year,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// buildParams validates the request and merges request-supplied
// holidays/company-off rules with whatever is persisted for the company
// scope, request entries winning on exact date collision.
func (h *Handler) buildParams(req PlanRequest) (optimizer.Params, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	if req.NumberOfDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "number_of_days", Message: "must be >= 0"})
	}
	if req.Year != 0 && !validator.IsInRange(req.Year, 1900, 2200) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1900 and 2200"})
	}

	params := optimizer.Params{
		NumberOfDays: req.NumberOfDays,
		Strategy:     optimizer.Strategy(req.Strategy),
		Year:         req.Year,
	}

	if req.Today != "" {
		today, ok := validator.IsValidDate(req.Today)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "today", Message: "must be YYYY-MM-DD"})
		} else {
			params.Today = today
		}
	}

	if len(req.Holidays) > 0 {
		for i, hd := range req.Holidays {
			holiday, err := toHolidayInput(hd)
			if err != nil {
				errs = append(errs, validator.ValidationError{Field: "holidays", Message: "entry " + itoa(i) + ": invalid date"})
				continue
			}
			params.Holidays = append(params.Holidays, holiday)
		}
	}
	// Persisted entries go after the request's own, so the engine's
	// first-match lookup lets a request entry win on the same date.
	if h.Store != nil {
		if recs, err := h.Store.ListHolidays(req.CompanyID); err == nil {
			for _, rec := range recs {
				params.Holidays = append(params.Holidays, optimizer.Holiday{Date: rec.Date, Name: rec.Name})
			}
		}
	}

	if len(req.CompanyDaysOff) > 0 {
		for i, rd := range req.CompanyDaysOff {
			rule, err := toCompanyOffRule(rd)
			if err != nil {
				errs = append(errs, validator.ValidationError{Field: "company_days_off", Message: "entry " + itoa(i) + ": invalid date"})
				continue
			}
			params.CompanyDaysOff = append(params.CompanyDaysOff, rule)
		}
	}
	if h.Store != nil {
		if recs, err := h.Store.ListCompanyOffRules(req.CompanyID); err == nil {
			for _, rec := range recs {
				params.CompanyDaysOff = append(params.CompanyDaysOff, rec.Rule)
			}
		}
	}

	return params, errs
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns holidays for a company scope.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	recs, err := h.Store.ListHolidays(companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list holidays", err)
		return
	}

	out := make([]HolidayDTO, len(recs))
	for i, rec := range recs {
		out[i] = HolidayDTO{ID: rec.ID, Date: rec.Date.Format("2006-01-02"), Name: rec.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateHoliday adds a holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var dto HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if validator.IsEmpty(dto.Name) {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	holiday, err := toHolidayInput(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
		return
	}

	companyID := r.URL.Query().Get("company_id")
	rec, err := h.Store.SaveHoliday(companyID, holiday)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{ID: rec.ID, Date: rec.Date.Format("2006-01-02"), Name: rec.Name})
}

// AddDefaultHolidays seeds a built-in default holiday set for a scope+year.
// POST /api/holidays/defaults
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID string `json:"company_id"`
		Year      int    `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if body.Year == 0 {
		body.Year = time.Now().Year()
	}

	var created []HolidayDTO
	for _, d := range defaultUSHolidays(body.Year) {
		rec, err := h.Store.SaveHoliday(body.CompanyID, d)
		if err != nil {
			continue // duplicate defaults are fine to skip
		}
		created = append(created, HolidayDTO{ID: rec.ID, Date: rec.Date.Format("2006-01-02"), Name: rec.Name})
	}
	writeJSON(w, http.StatusOK, created)
}

// DeleteHoliday removes a holiday by id.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COMPANY DAYS OFF ENDPOINTS
// =============================================================================

// ListCompanyDaysOff returns company off-day rules for a company scope.
// GET /api/company-days-off
func (h *Handler) ListCompanyDaysOff(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	recs, err := h.Store.ListCompanyOffRules(companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list company days off", err)
		return
	}

	out := make([]CompanyOffRuleDTO, len(recs))
	for i, rec := range recs {
		out[i] = fromCompanyOffRule(rec.ID, rec.Rule)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateCompanyDayOff adds a company off-day rule.
// POST /api/company-days-off
func (h *Handler) CreateCompanyDayOff(w http.ResponseWriter, r *http.Request) {
	var dto CompanyOffRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	rule, err := toCompanyOffRule(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date fields", err)
		return
	}

	companyID := r.URL.Query().Get("company_id")
	rec, err := h.Store.SaveCompanyOffRule(companyID, rule)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save company day off", err)
		return
	}
	writeJSON(w, http.StatusCreated, fromCompanyOffRule(rec.ID, rec.Rule))
}

// DeleteCompanyDayOff removes a rule by id.
// DELETE /api/company-days-off/{id}
func (h *Handler) DeleteCompanyDayOff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteCompanyOffRule(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete company day off", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func fromCompanyOffRule(id string, rule optimizer.CompanyOffRule) CompanyOffRuleDTO {
	dto := CompanyOffRuleDTO{ID: id, Name: rule.Name, IsRecurring: rule.IsRecurring}
	if rule.IsRecurring {
		dto.Weekday = int(rule.Weekday)
		dto.Start = rule.Start.Format("2006-01-02")
		dto.End = rule.End.Format("2006-01-02")
	} else {
		dto.Date = rule.Date.Format("2006-01-02")
	}
	return dto
}

// =============================================================================
// SCENARIO ENDPOINTS
// =============================================================================

// ListScenarios lists the demo scenario catalogue.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	out := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		out[i] = ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetScenario fetches one scenario's canned params.
// GET /api/scenarios/{id}
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown scenario", nil)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Description  string `json:"description"`
		NumberOfDays int    `json:"number_of_days"`
		Strategy     string `json:"strategy"`
		Year         int    `json:"year"`
	}{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		NumberOfDays: s.Params.NumberOfDays,
		Strategy:     string(s.Params.Strategy),
		Year:         s.Params.Year,
	})
}

// RunScenario runs a scenario directly through Optimize, bypassing the
// store entirely -- for demoing the engine without side effects.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown scenario", nil)
		return
	}
	result := optimizer.Optimize(s.Params)
	writeJSON(w, http.StatusOK, toPlanResponse(result))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
