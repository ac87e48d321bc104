package services

import (
	"encoding/json"
	"html/template"
	"log/slog"

	"fintrack/internal/dto"
	"fintrack/internal/models"
)

// StatisticsPresenter reshapes a statistics report for its two render
// targets: the JSON API body and the HTML template context. Every monetary
// and count figure is converted from exact decimal to a plain numeric
// primitive here, uniformly, so both targets carry identical values and
// serialization never meets a non-primitive numeric type.
type StatisticsPresenter struct{}

// NewStatisticsPresenter creates a presenter
func NewStatisticsPresenter() *StatisticsPresenter {
	return &StatisticsPresenter{}
}

// Response builds the JSON API payload
func (p *StatisticsPresenter) Response(report *models.StatisticsReport) *dto.StatisticsResponse {
	return &dto.StatisticsResponse{
		TotalIncome:         report.TotalIncome.InexactFloat64(),
		TotalExpense:        report.TotalExpense.InexactFloat64(),
		Balance:             report.Balance.InexactFloat64(),
		ExpenseByCategory:   categoryTotals(report.ExpenseByCategory),
		IncomeByCategory:    categoryTotals(report.IncomeByCategory),
		MonthlyTrend:        monthlyTrend(report.MonthlyTrend),
		LargestTransactions: largestTransactionsJSON(report.LargestTransactions),
		WeekdayData:         weekdayData(report.WeekdayDistribution),
		TransactionCount:    report.TransactionCount,
		AvgTransaction:      report.AvgTransaction.InexactFloat64(),
		DateRange: dto.DateRange{
			From: report.From.Format(dto.DateLayout),
			To:   report.To.Format(dto.DateLayout),
		},
	}
}

// TemplateContext builds the HTML rendering context. Chart data is
// pre-marshalled to JSON blobs for the inline script; a marshalling
// failure degrades that blob to an empty object or array and is logged,
// never surfaced to the caller.
func (p *StatisticsPresenter) TemplateContext(report *models.StatisticsReport) map[string]interface{} {
	response := p.Response(report)

	return map[string]interface{}{
		"FromDate":            response.DateRange.From,
		"ToDate":              response.DateRange.To,
		"TotalIncome":         response.TotalIncome,
		"TotalExpense":        response.TotalExpense,
		"Balance":             response.Balance,
		"ExpenseByCategory":   response.ExpenseByCategory,
		"IncomeByCategory":    response.IncomeByCategory,
		"MonthlyTrend":        response.MonthlyTrend,
		"LargestTransactions": response.LargestTransactions,
		"WeekdayData":         response.WeekdayData,
		"TransactionCount":    response.TransactionCount,
		"AvgTransaction":      response.AvgTransaction,

		"MonthlyTrendJSON":      marshalOrDefault(response.MonthlyTrend, "{}"),
		"ExpenseByCategoryJSON": marshalOrDefault(response.ExpenseByCategory, "[]"),
		"IncomeByCategoryJSON":  marshalOrDefault(response.IncomeByCategory, "[]"),
		"WeekdayDataJSON":       marshalOrDefault(response.WeekdayData, "[]"),
	}
}

// marshalOrDefault serializes chart data for verbatim inclusion in the
// dashboard's inline script, substituting the documented empty default on
// failure
func marshalOrDefault(value interface{}, fallback string) template.JS {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error("statistics serialization failed, substituting empty default", "error", err)
		return template.JS(fallback)
	}
	return template.JS(data)
}

func categoryTotals(totals []models.CategoryTotal) []dto.CategoryTotalJSON {
	out := make([]dto.CategoryTotalJSON, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryTotalJSON{
			CategoryName: t.CategoryName,
			Total:        t.Total.InexactFloat64(),
		})
	}
	return out
}

func monthlyTrend(trend models.MonthlyTrend) dto.MonthlyTrendJSON {
	out := make(dto.MonthlyTrendJSON, 0, len(trend))
	for _, bucket := range trend {
		out = append(out, dto.MonthEntry{
			Month: bucket.Month,
			Figures: dto.MonthlyFiguresJSON{
				Income:  bucket.Figures.Income.InexactFloat64(),
				Expense: bucket.Figures.Expense.InexactFloat64(),
			},
		})
	}
	return out
}

func weekdayData(stats []models.WeekdayStat) []dto.WeekdayJSON {
	out := make([]dto.WeekdayJSON, 0, len(stats))
	for _, stat := range stats {
		out = append(out, dto.WeekdayJSON{
			Weekday: stat.Label,
			Total:   stat.Total.InexactFloat64(),
			Count:   stat.Count,
		})
	}
	return out
}

func largestTransactionsJSON(transactions []models.Transaction) []dto.LargestTransactionJSON {
	out := make([]dto.LargestTransactionJSON, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		out = append(out, dto.LargestTransactionJSON{
			ID:           t.ID,
			Type:         t.Type,
			Amount:       t.Amount.InexactFloat64(),
			CategoryName: t.CategoryName(),
			Description:  t.Description,
			Date:         t.Date.Format(dto.DateLayout),
		})
	}
	return out
}
