package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultRangeDays is the lookback window applied when the caller
	// omits a range endpoint
	DefaultRangeDays = 30

	// MaxLargestTransactions caps the largest-transactions list
	MaxLargestTransactions = 10
)

var (
	ErrInvalidDateRange = errors.New("invalid date range: dates must be YYYY-MM-DD and from_date must not be after to_date")
)

// statisticsService computes aggregate statistics over a user's
// transactions. Aggregation happens in memory over the fetched rows; the
// store only filters by owner and date range. The clock is injected so the
// default range is deterministic under test.
type statisticsService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

// NewStatisticsService creates a new statistics service using the wall clock
func NewStatisticsService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
) StatisticsServiceInterface {
	return NewStatisticsServiceWithClock(transactionRepo, metrics, time.Now)
}

// NewStatisticsServiceWithClock creates a statistics service with an
// explicit clock
func NewStatisticsServiceWithClock(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	now func() time.Time,
) StatisticsServiceInterface {
	return &statisticsService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		now:             now,
	}
}

// ComputeStatistics aggregates a user's transactions over the inclusive
// [fromDate, toDate] range. Empty endpoints default to the last
// DefaultRangeDays days. Empty result sets produce zero-valued output,
// never an error; only a malformed or inverted range fails.
func (s *statisticsService) ComputeStatistics(userID uuid.UUID, fromDate, toDate string) (*models.StatisticsReport, error) {
	started := s.now()

	from, to, err := s.resolveDateRange(fromDate, toDate)
	if err != nil {
		s.metrics.RecordStatisticsRequest("invalid_range")
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByDateRange(userID, from, to)
	if err != nil {
		s.metrics.RecordStatisticsRequest("error")
		slog.Error("failed to fetch transactions for statistics",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	report := s.aggregate(transactions)
	report.From = from
	report.To = to

	s.metrics.RecordStatisticsRequest("success")
	s.metrics.RecordStatisticsDuration(s.now().Sub(started))

	slog.Info("statistics computed",
		"user_id", userID,
		"from", from.Format(dto.DateLayout),
		"to", to.Format(dto.DateLayout),
		"transaction_count", report.TransactionCount)

	return report, nil
}

// resolveDateRange parses the endpoints, substituting defaults for empty
// ones, and rejects inverted ranges
func (s *statisticsService) resolveDateRange(fromDate, toDate string) (time.Time, time.Time, error) {
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, s.now().Location())

	from := today.AddDate(0, 0, -DefaultRangeDays)
	if fromDate != "" {
		parsed, err := time.Parse(dto.DateLayout, fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
		from = parsed
	}

	to := today
	if toDate != "" {
		parsed, err := time.Parse(dto.DateLayout, toDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
		to = parsed
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}

	return from, to, nil
}

// aggregate computes every report figure in a single pass over the
// transactions, which arrive sorted by date ascending
func (s *statisticsService) aggregate(transactions []models.Transaction) *models.StatisticsReport {
	report := &models.StatisticsReport{
		TotalIncome:         decimal.Zero,
		TotalExpense:        decimal.Zero,
		Balance:             decimal.Zero,
		IncomeByCategory:    []models.CategoryTotal{},
		ExpenseByCategory:   []models.CategoryTotal{},
		MonthlyTrend:        models.MonthlyTrend{},
		WeekdayDistribution: []models.WeekdayStat{},
		LargestTransactions: []models.Transaction{},
		AvgTransaction:      decimal.Zero,
	}

	incomeByCategory := map[string]*models.CategoryTotal{}
	expenseByCategory := map[string]*models.CategoryTotal{}
	monthIndex := map[string]int{}
	weekdays := map[int]*models.WeekdayStat{}

	var expenseCount int64

	for i := range transactions {
		t := &transactions[i]

		if t.IsIncome() {
			report.TotalIncome = report.TotalIncome.Add(t.Amount)
			accumulateCategory(incomeByCategory, t)
		} else {
			report.TotalExpense = report.TotalExpense.Add(t.Amount)
			expenseCount++
			accumulateCategory(expenseByCategory, t)
		}

		s.accumulateMonth(report, monthIndex, t)
		accumulateWeekday(weekdays, t)

		report.TransactionCount++
	}

	report.Balance = report.TotalIncome.Sub(report.TotalExpense)

	if expenseCount > 0 {
		report.AvgTransaction = report.TotalExpense.Div(decimal.NewFromInt(expenseCount))
	}

	report.IncomeByCategory = sortedCategoryTotals(incomeByCategory)
	report.ExpenseByCategory = sortedCategoryTotals(expenseByCategory)
	report.WeekdayDistribution = sortedWeekdays(weekdays)
	report.LargestTransactions = largestTransactions(transactions)

	return report
}

// accumulateCategory adds the amount to the transaction's category bucket.
// Uncategorized transactions share a single bucket keyed by the empty
// string but reported with a nil name.
func accumulateCategory(buckets map[string]*models.CategoryTotal, t *models.Transaction) {
	key := ""
	name := t.CategoryName()
	if name != nil {
		key = *name
	}

	bucket, ok := buckets[key]
	if !ok {
		bucket = &models.CategoryTotal{CategoryName: name, Total: decimal.Zero}
		buckets[key] = bucket
	}
	bucket.Total = bucket.Total.Add(t.Amount)
}

// accumulateMonth adds the amount to the transaction's "YYYY-MM" bucket.
// Buckets are appended in first-appearance order, which is ascending
// because the input is sorted by date.
func (s *statisticsService) accumulateMonth(report *models.StatisticsReport, index map[string]int, t *models.Transaction) {
	month := t.Date.Format("2006-01")

	i, ok := index[month]
	if !ok {
		i = len(report.MonthlyTrend)
		index[month] = i
		report.MonthlyTrend = append(report.MonthlyTrend, models.MonthBucket{
			Month:   month,
			Figures: models.MonthlyFigures{Income: decimal.Zero, Expense: decimal.Zero},
		})
	}

	figures := &report.MonthlyTrend[i].Figures
	if t.IsIncome() {
		figures.Income = figures.Income.Add(t.Amount)
	} else {
		figures.Expense = figures.Expense.Add(t.Amount)
	}
}

// accumulateWeekday adds the transaction to its weekday bucket using the
// Sunday=1..Saturday=7 numbering convention
func accumulateWeekday(buckets map[int]*models.WeekdayStat, t *models.Transaction) {
	weekday := int(t.Date.Weekday()) + 1

	bucket, ok := buckets[weekday]
	if !ok {
		bucket = &models.WeekdayStat{
			Weekday: weekday,
			Label:   models.WeekdayName(weekday),
			Total:   decimal.Zero,
		}
		buckets[weekday] = bucket
	}

	bucket.Total = bucket.Total.Add(t.Amount)
	bucket.Count++
}

// sortedCategoryTotals flattens the buckets sorted by total descending
func sortedCategoryTotals(buckets map[string]*models.CategoryTotal) []models.CategoryTotal {
	totals := make([]models.CategoryTotal, 0, len(buckets))
	for _, bucket := range buckets {
		totals = append(totals, *bucket)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	return totals
}

// sortedWeekdays flattens the buckets sorted by weekday index ascending
func sortedWeekdays(buckets map[int]*models.WeekdayStat) []models.WeekdayStat {
	stats := make([]models.WeekdayStat, 0, len(buckets))
	for _, bucket := range buckets {
		stats = append(stats, *bucket)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Weekday < stats[j].Weekday
	})

	return stats
}

// largestTransactions returns the top transactions by amount descending.
// The sort is stable so ties keep their query order.
func largestTransactions(transactions []models.Transaction) []models.Transaction {
	largest := make([]models.Transaction, len(transactions))
	copy(largest, transactions)

	sort.SliceStable(largest, func(i, j int) bool {
		return largest[i].Amount.GreaterThan(largest[j].Amount)
	})

	if len(largest) > MaxLargestTransactions {
		largest = largest[:MaxLargestTransactions]
	}

	return largest
}
