package dto

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// StatisticsRequest contains the optional statistics date range. Either
// endpoint may be empty, in which case the service substitutes defaults.
type StatisticsRequest struct {
	FromDate string `query:"from_date" validate:"omitempty,iso_date"`
	ToDate   string `query:"to_date" validate:"omitempty,iso_date"`
}

// DateRange echoes the resolved range actually used for a computation
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CategoryTotalJSON is a per-category sum. CategoryName is null for
// uncategorized transactions.
type CategoryTotalJSON struct {
	CategoryName *string `json:"category_name"`
	Total        float64 `json:"total"`
}

// MonthlyFiguresJSON holds one month's income and expense sums
type MonthlyFiguresJSON struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthEntry pairs a "YYYY-MM" key with its figures
type MonthEntry struct {
	Month   string
	Figures MonthlyFiguresJSON
}

// MonthlyTrendJSON serializes as a JSON object whose keys preserve the
// slice order (ascending months), matching what chart clients expect.
type MonthlyTrendJSON []MonthEntry

// MarshalJSON implements ordered-object serialization
func (mt MonthlyTrendJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range mt {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Month)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Figures)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WeekdayJSON aggregates amount and count for one weekday
type WeekdayJSON struct {
	Weekday string  `json:"weekday"`
	Total   float64 `json:"total"`
	Count   int64   `json:"count"`
}

// LargestTransactionJSON is the statistics shape of a transaction. Amount
// is a float here, consistent with every other numeric statistics field.
type LargestTransactionJSON struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	CategoryName *string   `json:"category_name"`
	Description  string    `json:"description,omitempty"`
	Date         string    `json:"date"`
}

// StatisticsResponse is the machine-readable statistics payload
type StatisticsResponse struct {
	TotalIncome         float64                  `json:"total_income"`
	TotalExpense        float64                  `json:"total_expense"`
	Balance             float64                  `json:"balance"`
	ExpenseByCategory   []CategoryTotalJSON      `json:"expense_by_category"`
	IncomeByCategory    []CategoryTotalJSON      `json:"income_by_category"`
	MonthlyTrend        MonthlyTrendJSON         `json:"monthly_trend"`
	LargestTransactions []LargestTransactionJSON `json:"largest_transactions"`
	WeekdayData         []WeekdayJSON            `json:"weekday_data"`
	TransactionCount    int64                    `json:"transaction_count"`
	AvgTransaction      float64                  `json:"avg_transaction"`
	DateRange           DateRange                `json:"date_range"`
}
