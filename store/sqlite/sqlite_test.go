package sqlite_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/cto-planner/optimizer"
	"github.com/warp/cto-planner/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListHolidays(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.SaveHoliday("acme", optimizer.Holiday{
		Date: time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC),
		Name: "Independence Day",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	list, err := s.ListHolidays("acme")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Independence Day", list[0].Name)
	assert.True(t, list[0].Date.Equal(rec.Date))

	other, err := s.ListHolidays("other-company")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteHoliday(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.SaveHoliday("acme", optimizer.Holiday{
		Date: time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC),
		Name: "Christmas",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteHoliday(rec.ID))

	list, err := s.ListHolidays("acme")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveAndListCompanyOffRules_SingleDate(t *testing.T) {
	s := newTestStore(t)

	rule := optimizer.CompanyOffRule{
		Name: "Founders Day",
		Date: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
	}
	_, err := s.SaveCompanyOffRule("acme", rule)
	require.NoError(t, err)

	list, err := s.ListCompanyOffRules("acme")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Rule.IsRecurring)
	assert.True(t, list[0].Rule.Date.Equal(rule.Date))
	assert.Equal(t, "Founders Day", list[0].Rule.Name)
}

func TestSaveAndListCompanyOffRules_Recurring(t *testing.T) {
	s := newTestStore(t)

	rule := optimizer.CompanyOffRule{
		Name:        "Summer Fridays",
		IsRecurring: true,
		Weekday:     time.Friday,
		Start:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	_, err := s.SaveCompanyOffRule("acme", rule)
	require.NoError(t, err)

	list, err := s.ListCompanyOffRules("acme")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Rule.IsRecurring)
	assert.Equal(t, time.Friday, list[0].Rule.Weekday)
	assert.True(t, list[0].Rule.Start.Equal(rule.Start))
	assert.True(t, list[0].Rule.End.Equal(rule.End))
}

func TestDeleteCompanyOffRule(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.SaveCompanyOffRule("acme", optimizer.CompanyOffRule{
		Name: "One-off",
		Date: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCompanyOffRule(rec.ID))

	list, err := s.ListCompanyOffRules("acme")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveAndGetPlan_RoundTrips(t *testing.T) {
	s := newTestStore(t)

	params := optimizer.Params{
		NumberOfDays: 5,
		Strategy:     optimizer.StrategyBalanced,
		Year:         2025,
	}
	result := optimizer.Optimize(params)

	rec, err := s.SavePlan("acme", params, result)
	require.NoError(t, err)

	fetched, err := s.GetPlan(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, params.NumberOfDays, fetched.Params.NumberOfDays)
	assert.Equal(t, params.Strategy, fetched.Params.Strategy)
	assert.Equal(t, result.Stats, fetched.Result.Stats)
	assert.Len(t, fetched.Result.Days, len(result.Days))
}

func TestListPlans_OrderedMostRecentFirstAndCapped(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		params := optimizer.Params{NumberOfDays: i, Strategy: optimizer.StrategyBalanced, Year: 2025}
		_, err := s.SavePlan("acme", params, optimizer.Optimize(params))
		require.NoError(t, err)
	}

	list, err := s.ListPlans("acme", 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestReset_ClearsAllTables(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveHoliday("acme", optimizer.Holiday{Date: time.Now(), Name: "X"})
	require.NoError(t, err)
	params := optimizer.Params{NumberOfDays: 1, Strategy: optimizer.StrategyBalanced, Year: 2025}
	_, err = s.SavePlan("acme", params, optimizer.Optimize(params))
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	holidays, err := s.ListHolidays("acme")
	require.NoError(t, err)
	assert.Empty(t, holidays)

	plans, err := s.ListPlans("acme", 10)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
