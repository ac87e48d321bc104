package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// weekdayNames maps the Sunday=1..Saturday=7 extraction convention to
// display labels. Indices outside the table fall back to a generic label.
var weekdayNames = map[int]string{
	1: "Sunday",
	2: "Monday",
	3: "Tuesday",
	4: "Wednesday",
	5: "Thursday",
	6: "Friday",
	7: "Saturday",
}

// WeekdayName returns the display label for a 1-based weekday index
func WeekdayName(weekday int) string {
	if name, ok := weekdayNames[weekday]; ok {
		return name
	}
	return "Day " + strconv.Itoa(weekday)
}

// CategoryTotal is an amount aggregated by category name. CategoryName is
// nil for uncategorized transactions.
type CategoryTotal struct {
	CategoryName *string
	Total        decimal.Decimal
}

// MonthlyFigures holds the income and expense sums for one month bucket
type MonthlyFigures struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthBucket pairs a "YYYY-MM" key with its figures
type MonthBucket struct {
	Month   string
	Figures MonthlyFigures
}

// MonthlyTrend is an ordered sequence of month buckets, ascending by month.
// Only months with at least one transaction appear.
type MonthlyTrend []MonthBucket

// WeekdayStat aggregates amount and count for one weekday
type WeekdayStat struct {
	Weekday int
	Label   string
	Total   decimal.Decimal
	Count   int64
}

// StatisticsReport is the aggregator output for one owner and date range.
// All monetary figures are exact decimals; conversion to floats happens at
// the presentation boundary only.
type StatisticsReport struct {
	From time.Time
	To   time.Time

	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal

	IncomeByCategory  []CategoryTotal
	ExpenseByCategory []CategoryTotal

	MonthlyTrend        MonthlyTrend
	WeekdayDistribution []WeekdayStat

	LargestTransactions []Transaction

	TransactionCount int64
	AvgTransaction   decimal.Decimal
}
