/*
Package sqlite provides a SQLite-backed store for the planner's persisted
inputs (holidays, company off-day rules) and computed plans.

KEY TABLES:
  holidays:           company-scoped public holidays
  company_off_rules:  company-scoped off-day rules (single date or recurring
                       weekday, discriminated by is_recurring)
  plans:              past Optimize() invocations, params and result as JSON

WAL MODE:
  Opened with `?_journal_mode=WAL&_foreign_keys=on`, same as the teacher's
  store, for concurrent readers under a single writer.

CONCURRENCY:
  No sync.RWMutex here: unlike the teacher's append-only ledger (which
  serialized writers to protect a balance invariant), these tables are
  ordinary mutable rows and database/sql already pools/serializes
  connections safely on SQLite's behalf.

MIGRATION:
  Schema is auto-migrated in migrate(), run once from New(), same as the
  teacher. For production, use a real migration tool (golang-migrate,
  goose) with versioned migrations.
*/
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/cto-planner/optimizer"
)

// Store wraps a *sql.DB for the planner's holiday/company-off/plan tables.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the SQLite database at dbPath and
// migrates its schema. Use ":memory:" for an ephemeral database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_holidays_company_date
		ON holidays(company_id, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(company_id, date, name);

	CREATE TABLE IF NOT EXISTS company_off_rules (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		is_recurring BOOLEAN NOT NULL,
		single_date TEXT,
		weekday INTEGER,
		start_date TEXT,
		end_date TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_company_off_rules_company
		ON company_off_rules(company_id);

	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		strategy TEXT NOT NULL,
		year INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_plans_company_created
		ON plans(company_id, created_at DESC);
	`
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(schema); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayRecord is a persisted public holiday.
type HolidayRecord struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

// SaveHoliday inserts a holiday, assigning it a fresh id.
func (s *Store) SaveHoliday(companyID string, h optimizer.Holiday) (HolidayRecord, error) {
	rec := HolidayRecord{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Date:      h.Date,
		Name:      h.Name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO holidays (id, company_id, date, name, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.CompanyID, rec.Date.Format("2006-01-02"), rec.Name, rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return HolidayRecord{}, fmt.Errorf("failed to save holiday: %w", err)
	}
	return rec, nil
}

// ListHolidays returns every holiday for a company scope, ordered by date.
func (s *Store) ListHolidays(companyID string) ([]HolidayRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, company_id, date, name, created_at FROM holidays WHERE company_id = ? ORDER BY date`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var out []HolidayRecord
	for rows.Next() {
		rec, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteHoliday removes a holiday by id.
func (s *Store) DeleteHoliday(id string) error {
	_, err := s.db.Exec(`DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHoliday(row rowScanner) (HolidayRecord, error) {
	var rec HolidayRecord
	var dateStr, createdAtStr string
	if err := row.Scan(&rec.ID, &rec.CompanyID, &dateStr, &rec.Name, &createdAtStr); err != nil {
		return HolidayRecord{}, fmt.Errorf("failed to scan holiday: %w", err)
	}
	rec.Date, _ = time.Parse("2006-01-02", dateStr)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return rec, nil
}

// =============================================================================
// COMPANY OFF RULES
// =============================================================================

// CompanyOffRuleRecord is a persisted company off-day rule, mirroring
// optimizer.CompanyOffRule's tagged-union shape.
type CompanyOffRuleRecord struct {
	ID        string
	CompanyID string
	Rule      optimizer.CompanyOffRule
	CreatedAt time.Time
}

// SaveCompanyOffRule inserts a rule, assigning it a fresh id.
func (s *Store) SaveCompanyOffRule(companyID string, rule optimizer.CompanyOffRule) (CompanyOffRuleRecord, error) {
	rec := CompanyOffRuleRecord{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Rule:      rule,
		CreatedAt: time.Now().UTC(),
	}

	var singleDate, startDate, endDate sql.NullString
	var weekday sql.NullInt64
	if rule.IsRecurring {
		weekday = sql.NullInt64{Int64: int64(rule.Weekday), Valid: true}
		startDate = sql.NullString{String: rule.Start.Format("2006-01-02"), Valid: true}
		endDate = sql.NullString{String: rule.End.Format("2006-01-02"), Valid: true}
	} else {
		singleDate = sql.NullString{String: rule.Date.Format("2006-01-02"), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO company_off_rules
			(id, company_id, name, is_recurring, single_date, weekday, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CompanyID, rule.Name, rule.IsRecurring,
		singleDate, weekday, startDate, endDate,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return CompanyOffRuleRecord{}, fmt.Errorf("failed to save company off rule: %w", err)
	}
	return rec, nil
}

// ListCompanyOffRules returns every rule for a company scope.
func (s *Store) ListCompanyOffRules(companyID string) ([]CompanyOffRuleRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, company_id, name, is_recurring, single_date, weekday, start_date, end_date, created_at
		 FROM company_off_rules WHERE company_id = ?`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list company off rules: %w", err)
	}
	defer rows.Close()

	var out []CompanyOffRuleRecord
	for rows.Next() {
		rec, err := scanCompanyOffRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteCompanyOffRule removes a rule by id.
func (s *Store) DeleteCompanyOffRule(id string) error {
	_, err := s.db.Exec(`DELETE FROM company_off_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company off rule: %w", err)
	}
	return nil
}

func scanCompanyOffRule(row rowScanner) (CompanyOffRuleRecord, error) {
	var rec CompanyOffRuleRecord
	var name, createdAtStr string
	var isRecurring bool
	var singleDate, startDate, endDate sql.NullString
	var weekday sql.NullInt64

	if err := row.Scan(&rec.ID, &rec.CompanyID, &name, &isRecurring, &singleDate, &weekday, &startDate, &endDate, &createdAtStr); err != nil {
		return CompanyOffRuleRecord{}, fmt.Errorf("failed to scan company off rule: %w", err)
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	rec.Rule = optimizer.CompanyOffRule{Name: name, IsRecurring: isRecurring}
	if isRecurring {
		rec.Rule.Weekday = time.Weekday(weekday.Int64)
		rec.Rule.Start, _ = time.Parse("2006-01-02", startDate.String)
		rec.Rule.End, _ = time.Parse("2006-01-02", endDate.String)
	} else {
		rec.Rule.Date, _ = time.Parse("2006-01-02", singleDate.String)
	}
	return rec, nil
}

// =============================================================================
// PLANS
// =============================================================================

// PlanRecord is a persisted result of a past Optimize() call.
type PlanRecord struct {
	ID        string
	CompanyID string
	Params    optimizer.Params
	Result    optimizer.Result
	CreatedAt time.Time
}

// SavePlan stores params and result as JSON in params_json/result_json:
// optimizer.Params/Result use time.Time fields that marshal fine via
// encoding/json directly, so no separate DTO is needed here — this is a
// private persistence format, not the API's DTO.
func (s *Store) SavePlan(companyID string, params optimizer.Params, result optimizer.Result) (PlanRecord, error) {
	rec := PlanRecord{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Params:    params,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("failed to marshal params: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO plans (id, company_id, strategy, year, params_json, result_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CompanyID, string(params.Strategy), params.Year,
		string(paramsJSON), string(resultJSON), rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("failed to save plan: %w", err)
	}
	return rec, nil
}

// GetPlan fetches a single plan by id.
func (s *Store) GetPlan(id string) (PlanRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, company_id, params_json, result_json, created_at FROM plans WHERE id = ?`, id,
	)
	return scanPlan(row)
}

// ListPlans returns recent plans for a company scope, most recent first,
// capped at limit.
func (s *Store) ListPlans(companyID string, limit int) ([]PlanRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, company_id, params_json, result_json, created_at
		 FROM plans WHERE company_id = ? ORDER BY created_at DESC LIMIT ?`,
		companyID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var out []PlanRecord
	for rows.Next() {
		rec, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanPlan(row rowScanner) (PlanRecord, error) {
	var rec PlanRecord
	var paramsJSON, resultJSON, createdAtStr string
	if err := row.Scan(&rec.ID, &rec.CompanyID, &paramsJSON, &resultJSON, &createdAtStr); err != nil {
		return PlanRecord{}, fmt.Errorf("failed to scan plan: %w", err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
		return PlanRecord{}, fmt.Errorf("failed to unmarshal plan params: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return PlanRecord{}, fmt.Errorf("failed to unmarshal plan result: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return rec, nil
}

// Reset truncates every table. Dev-only, mirrors the teacher's admin reset
// endpoint.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`
		DELETE FROM holidays;
		DELETE FROM company_off_rules;
		DELETE FROM plans;
	`)
	if err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	return nil
}
