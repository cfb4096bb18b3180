package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{"unchanged", 5000, 5000, 0},
		{"both zero", 0, 0, 0},
		{"from zero to positive", 5, 0, 100},
		{"from zero to negative", -5, 0, 100},
		{"half again", 150, 100, 50},
		{"dropped to zero", 0, 5, -100},
		{"doubled", 200, 100, 100},
		{"negative base", -50, -100, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentageChange(tt.current, tt.previous))
		})
	}

	t.Run("repeating fraction", func(t *testing.T) {
		assert.InDelta(t, -66.6666, PercentageChange(1000, 3000), 0.001)
	})
}

func TestRankCategories(t *testing.T) {
	t.Run("should fold the tail into Other", func(t *testing.T) {
		got := RankCategories([]CategoryAmount{
			{"e", 5}, {"b", 30}, {"d", 10}, {"a", 50}, {"c", 20},
		})
		assert.Equal(t, []CategoryAmount{
			{"a", 50}, {"b", 30}, {"c", 20}, {"Other", 15},
		}, got)
	})

	t.Run("should keep three or fewer verbatim", func(t *testing.T) {
		got := RankCategories([]CategoryAmount{{"x", 1}, {"y", 3}, {"z", 2}})
		assert.Equal(t, []CategoryAmount{{"y", 3}, {"z", 2}, {"x", 1}}, got)
	})

	t.Run("should add Other for exactly one leftover", func(t *testing.T) {
		got := RankCategories([]CategoryAmount{{"a", 4}, {"b", 3}, {"c", 2}, {"d", 1}})
		assert.Equal(t, CategoryAmount{"Other", 1}, got[3])
		assert.Len(t, got, 4)
	})

	t.Run("should break ties by name", func(t *testing.T) {
		got := RankCategories([]CategoryAmount{{"rent", 10}, {"food", 10}, {"car", 10}, {"bills", 10}})
		assert.Equal(t, []CategoryAmount{
			{"bills", 10}, {"car", 10}, {"food", 10}, {"Other", 10},
		}, got)
	})

	t.Run("should return empty slice for no entries", func(t *testing.T) {
		got := RankCategories(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("should not reorder the input", func(t *testing.T) {
		in := []CategoryAmount{{"a", 1}, {"b", 2}}
		RankCategories(in)
		assert.Equal(t, []CategoryAmount{{"a", 1}, {"b", 2}}, in)
	})
}

func TestFillMissingDays(t *testing.T) {
	period := Period{Start: date("2024-01-01"), End: date("2024-01-05")}

	t.Run("should zero-fill gaps", func(t *testing.T) {
		got := FillMissingDays([]DayPoint{
			{Date: date("2024-01-02"), Income: 100, Expenses: 0},
			{Date: date("2024-01-04"), Income: 0, Expenses: 40},
		}, period)

		assert.Equal(t, []DayPoint{
			{Date: date("2024-01-01")},
			{Date: date("2024-01-02"), Income: 100},
			{Date: date("2024-01-03")},
			{Date: date("2024-01-04"), Expenses: 40},
			{Date: date("2024-01-05")},
		}, got)
	})

	t.Run("should keep empty input empty", func(t *testing.T) {
		got := FillMissingDays(nil, period)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		once := FillMissingDays([]DayPoint{{Date: date("2024-01-03"), Income: 7}}, period)
		twice := FillMissingDays(once, period)
		assert.Equal(t, once, twice)
		assert.Len(t, twice, period.Days())
	})

	t.Run("should merge duplicate days and drop out of range", func(t *testing.T) {
		got := FillMissingDays([]DayPoint{
			{Date: date("2024-01-01"), Income: 1},
			{Date: date("2024-01-01"), Expenses: 2},
			{Date: date("2024-02-01"), Income: 99},
		}, period)
		assert.Len(t, got, 5)
		assert.Equal(t, DayPoint{Date: date("2024-01-01"), Income: 1, Expenses: 2}, got[0])
		for _, p := range got[1:] {
			assert.Zero(t, p.Income)
			assert.Zero(t, p.Expenses)
		}
	})
}

func TestParsePivot(t *testing.T) {
	assert.Equal(t, PivotInvestment, ParsePivot("true"))
	assert.Equal(t, PivotInvestment, ParsePivot("Investment"))
	assert.Equal(t, PivotSales, ParsePivot("sales"))
	assert.Equal(t, PivotNone, ParsePivot(""))
	assert.Equal(t, PivotNone, ParsePivot("false"))

	role, ok := PivotSales.Role()
	assert.True(t, ok)
	assert.Equal(t, "Sales", string(role))
	_, ok = PivotNone.Role()
	assert.False(t, ok)
}

func TestFilterAndDoesNotAlias(t *testing.T) {
	base := make(Filter, 0, 4)
	base = append(base, AccountIs{ID: "a"})

	left := base.And(CategoryIs{ID: "x"})
	right := base.And(CategoryIs{ID: "y"})

	assert.Equal(t, Filter{AccountIs{ID: "a"}, CategoryIs{ID: "x"}}, left)
	assert.Equal(t, Filter{AccountIs{ID: "a"}, CategoryIs{ID: "y"}}, right)
	assert.Len(t, base, 1)
}

func TestDayPointJSON(t *testing.T) {
	b, err := DayPoint{Date: date("2024-01-02"), Income: 5, Expenses: 3}.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-02","income":5,"expenses":3}`, string(b))
}
