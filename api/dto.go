/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal optimizer/store types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation happens in handlers via internal/pkg/validator, not in DTOs.
  DTOs are pure data carriers.
*/
package api

import (
	"time"

	"github.com/warp/cto-planner/optimizer"
)

// =============================================================================
// PLAN REQUEST/RESPONSE
// =============================================================================

// PlanRequest is the request body for POST /api/plans.
type PlanRequest struct {
	NumberOfDays   int                  `json:"number_of_days"`
	Strategy       string               `json:"strategy"`
	Year           int                  `json:"year,omitempty"`
	CompanyID      string               `json:"company_id,omitempty"`
	Holidays       []HolidayDTO         `json:"holidays,omitempty"`
	CompanyDaysOff []CompanyOffRuleDTO  `json:"company_days_off,omitempty"`
	Today          string               `json:"today,omitempty"` // YYYY-MM-DD, primarily for tests/demos
}

// HolidayDTO represents a public holiday.
type HolidayDTO struct {
	ID   string `json:"id,omitempty"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// CompanyOffRuleDTO represents a company off-day rule, single-date or
// recurring, mirroring optimizer.CompanyOffRule's tagged union.
type CompanyOffRuleDTO struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	IsRecurring bool   `json:"is_recurring"`
	Date        string `json:"date,omitempty"`    // single-date case
	Weekday     int    `json:"weekday,omitempty"` // recurring case: 0=Sunday
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

// DayDTO represents one annotated calendar day.
type DayDTO struct {
	Date            string `json:"date"`
	IsWeekend       bool   `json:"is_weekend"`
	IsPublicHoliday bool   `json:"is_public_holiday"`
	HolidayName     string `json:"holiday_name,omitempty"`
	IsCompanyOff    bool   `json:"is_company_off"`
	CompanyName     string `json:"company_name,omitempty"`
	IsCTO           bool   `json:"is_cto"`
	InBreak         bool   `json:"in_break"`
}

// BreakDTO represents one contiguous break in the final plan.
type BreakDTO struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Days           []DayDTO `json:"days"`
	TotalDays      int      `json:"total_days"`
	CTODays        int      `json:"cto_days"`
	PublicHolidays int      `json:"public_holidays"`
	Weekends       int      `json:"weekends"`
	CompanyDaysOff int      `json:"company_days_off"`
}

// StatsDTO rolls totals up from the final break list.
type StatsDTO struct {
	TotalCTODays          int `json:"total_cto_days"`
	TotalPublicHolidays   int `json:"total_public_holidays"`
	TotalWeekends         int `json:"total_weekends"`
	TotalCompanyDaysOff   int `json:"total_company_days_off"`
	TotalDaysOff          int `json:"total_days_off"`
	TotalExtendedWeekends int `json:"total_extended_weekends"`
}

// PlanResponse is the response body for POST/GET /api/plans/{id}.
type PlanResponse struct {
	ID        string     `json:"id,omitempty"`
	CreatedAt string     `json:"created_at,omitempty"`
	Days      []DayDTO   `json:"days"`
	Breaks    []BreakDTO `json:"breaks"`
	Stats     StatsDTO   `json:"stats"`
}

// PlanSummaryDTO is the shape returned by GET /api/plans (list view).
type PlanSummaryDTO struct {
	ID        string `json:"id"`
	Strategy  string `json:"strategy"`
	Year      int    `json:"year"`
	CreatedAt string `json:"created_at"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toHolidayInput(dto HolidayDTO) (optimizer.Holiday, error) {
	d, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return optimizer.Holiday{}, err
	}
	return optimizer.Holiday{Date: d, Name: dto.Name}, nil
}

func toCompanyOffRule(dto CompanyOffRuleDTO) (optimizer.CompanyOffRule, error) {
	rule := optimizer.CompanyOffRule{Name: dto.Name, IsRecurring: dto.IsRecurring}
	if dto.IsRecurring {
		start, err := time.Parse("2006-01-02", dto.Start)
		if err != nil {
			return optimizer.CompanyOffRule{}, err
		}
		end, err := time.Parse("2006-01-02", dto.End)
		if err != nil {
			return optimizer.CompanyOffRule{}, err
		}
		rule.Weekday = time.Weekday(dto.Weekday)
		rule.Start = start
		rule.End = end
		return rule, nil
	}
	d, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return optimizer.CompanyOffRule{}, err
	}
	rule.Date = d
	return rule, nil
}

func toDayDTO(d optimizer.Day) DayDTO {
	return DayDTO{
		Date:            d.Date.Format("2006-01-02"),
		IsWeekend:       d.IsWeekend,
		IsPublicHoliday: d.IsPublicHoliday,
		HolidayName:     d.HolidayName,
		IsCompanyOff:    d.IsCompanyOff,
		CompanyName:     d.CompanyName,
		IsCTO:           d.IsCTO,
		InBreak:         d.InBreak,
	}
}

func toDayDTOs(days []optimizer.Day) []DayDTO {
	out := make([]DayDTO, len(days))
	for i, d := range days {
		out[i] = toDayDTO(d)
	}
	return out
}

func toBreakDTO(b optimizer.Break) BreakDTO {
	return BreakDTO{
		StartDate:      b.StartDate.Format("2006-01-02"),
		EndDate:        b.EndDate.Format("2006-01-02"),
		Days:           toDayDTOs(b.Days),
		TotalDays:      b.TotalDays,
		CTODays:        b.CTODays,
		PublicHolidays: b.PublicHolidays,
		Weekends:       b.Weekends,
		CompanyDaysOff: b.CompanyDaysOff,
	}
}

func toBreakDTOs(breaks []optimizer.Break) []BreakDTO {
	out := make([]BreakDTO, len(breaks))
	for i, b := range breaks {
		out[i] = toBreakDTO(b)
	}
	return out
}

func toStatsDTO(s optimizer.Stats) StatsDTO {
	return StatsDTO{
		TotalCTODays:          s.TotalCTODays,
		TotalPublicHolidays:   s.TotalPublicHolidays,
		TotalWeekends:         s.TotalWeekends,
		TotalCompanyDaysOff:   s.TotalCompanyDaysOff,
		TotalDaysOff:          s.TotalDaysOff,
		TotalExtendedWeekends: s.TotalExtendedWeekends,
	}
}

func toPlanResponse(result optimizer.Result) PlanResponse {
	return PlanResponse{
		Days:   toDayDTOs(result.Days),
		Breaks: toBreakDTOs(result.Breaks),
		Stats:  toStatsDTO(result.Stats),
	}
}
