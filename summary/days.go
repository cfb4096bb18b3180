package summary

// FillMissingDays expands a sparse per-day series into one point per day of
// the period, zero-filled. Points outside the period are dropped and
// duplicates for the same day are summed. An empty input stays empty.
func FillMissingDays(points []DayPoint, period Period) []DayPoint {
	if len(points) == 0 {
		return []DayPoint{}
	}

	byDay := make(map[string]DayPoint, len(points))
	for _, p := range points {
		key := p.Date.UTC().Format(DateLayout)
		acc := byDay[key]
		acc.Income += p.Income
		acc.Expenses += p.Expenses
		byDay[key] = acc
	}

	dense := make([]DayPoint, 0, period.Days())
	for day := period.Start; !day.After(period.End); day = day.AddDate(0, 0, 1) {
		p := byDay[day.Format(DateLayout)]
		dense = append(dense, DayPoint{Date: day, Income: p.Income, Expenses: p.Expenses})
	}
	return dense
}
