package services

import (
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestStatisticsService(t *testing.T) {
	suite.Run(t, new(StatisticsServiceSuite))
}

type StatisticsServiceSuite struct {
	suite.Suite
	db      *database.DB
	service StatisticsServiceInterface
	user    *models.User
	other   *models.User
	today   time.Time
}

func (s *StatisticsServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	repo := repositories.NewTransactionRepository(s.db.DB)
	s.today = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	s.service = NewStatisticsServiceWithClock(repo, NewNoopMetrics(), func() time.Time { return s.today })
	s.user = database.CreateTestUser(s.T(), s.db, "stats@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "other@example.com")
}

func (s *StatisticsServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *StatisticsServiceSuite) date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *StatisticsServiceSuite) addTransaction(txnType, amount string, date time.Time) *models.Transaction {
	return database.CreateTestTransaction(s.T(), s.db, s.user.ID, nil, txnType, amount, date)
}

func (s *StatisticsServiceSuite) addCategorized(category *models.Category, txnType, amount string, date time.Time) *models.Transaction {
	return database.CreateTestTransaction(s.T(), s.db, s.user.ID, &category.ID, txnType, amount, date)
}

func (s *StatisticsServiceSuite) decimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Totals and balance

func (s *StatisticsServiceSuite) TestComputeStatistics_TotalsAndBalance() {
	s.addTransaction(models.TransactionTypeIncome, "1000.00", s.date(2024, 1, 10))
	s.addTransaction(models.TransactionTypeIncome, "250.50", s.date(2024, 1, 12))
	s.addTransaction(models.TransactionTypeExpense, "300.25", s.date(2024, 1, 20))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	s.True(report.TotalIncome.Equal(s.decimal("1250.50")), "income was %s", report.TotalIncome)
	s.True(report.TotalExpense.Equal(s.decimal("300.25")), "expense was %s", report.TotalExpense)
	s.True(report.Balance.Equal(report.TotalIncome.Sub(report.TotalExpense)))
	s.Equal(int64(3), report.TransactionCount)
}

func (s *StatisticsServiceSuite) TestComputeStatistics_WorkedExample() {
	s.addTransaction(models.TransactionTypeIncome, "100.00", s.date(2024, 1, 5))
	s.addTransaction(models.TransactionTypeExpense, "40.00", s.date(2024, 1, 6))
	s.addTransaction(models.TransactionTypeExpense, "10.00", s.date(2024, 2, 1))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-02-28")
	s.NoError(err)

	s.True(report.TotalIncome.Equal(s.decimal("100")))
	s.True(report.TotalExpense.Equal(s.decimal("50")))
	s.True(report.Balance.Equal(s.decimal("50")))
	s.Equal(int64(3), report.TransactionCount)

	// avg expense: 50 / 2 expense transactions
	s.True(report.AvgTransaction.Equal(s.decimal("25")), "avg was %s", report.AvgTransaction)

	s.Require().Len(report.MonthlyTrend, 2)
	s.Equal("2024-01", report.MonthlyTrend[0].Month)
	s.True(report.MonthlyTrend[0].Figures.Income.Equal(s.decimal("100")))
	s.True(report.MonthlyTrend[0].Figures.Expense.Equal(s.decimal("40")))
	s.Equal("2024-02", report.MonthlyTrend[1].Month)
	s.True(report.MonthlyTrend[1].Figures.Income.IsZero())
	s.True(report.MonthlyTrend[1].Figures.Expense.Equal(s.decimal("10")))
}

// Empty range

func (s *StatisticsServiceSuite) TestComputeStatistics_EmptyRange() {
	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err, "empty result sets are not an error")

	s.True(report.TotalIncome.IsZero())
	s.True(report.TotalExpense.IsZero())
	s.True(report.Balance.IsZero())
	s.True(report.AvgTransaction.IsZero(), "no division by a zero expense count")
	s.Equal(int64(0), report.TransactionCount)

	// Collections are empty, never nil
	s.NotNil(report.IncomeByCategory)
	s.NotNil(report.ExpenseByCategory)
	s.NotNil(report.MonthlyTrend)
	s.NotNil(report.WeekdayDistribution)
	s.NotNil(report.LargestTransactions)
	s.Empty(report.LargestTransactions)
}

// Date range handling

func (s *StatisticsServiceSuite) TestComputeStatistics_DefaultRangeIsLast30Days() {
	// One day inside the default window, one just outside
	s.addTransaction(models.TransactionTypeExpense, "10.00", s.date(2024, 2, 14))
	s.addTransaction(models.TransactionTypeExpense, "99.00", s.date(2024, 2, 13))

	report, err := s.service.ComputeStatistics(s.user.ID, "", "")
	s.NoError(err)

	s.Equal(s.date(2024, 2, 14), report.From)
	s.Equal(s.date(2024, 3, 15), report.To)
	s.Equal(int64(1), report.TransactionCount)
	s.True(report.TotalExpense.Equal(s.decimal("10")))
}

func (s *StatisticsServiceSuite) TestComputeStatistics_DefaultRangeUsesLocalCalendarDay() {
	// 01:00 local in UTC+2 is still 23:00 on the previous UTC day; the
	// default to_date must follow the server's local day, not the UTC one
	zone := time.FixedZone("UTC+2", 2*60*60)
	s.today = time.Date(2024, 3, 15, 1, 0, 0, 0, zone)

	report, err := s.service.ComputeStatistics(s.user.ID, "", "")
	s.NoError(err)

	year, month, day := report.To.Date()
	s.Equal(2024, year)
	s.Equal(time.March, month)
	s.Equal(15, day)
	s.Equal("2024-03-15", report.To.Format("2006-01-02"))
	s.Equal("2024-02-14", report.From.Format("2006-01-02"))
}

func (s *StatisticsServiceSuite) TestComputeStatistics_PartialDefaults() {
	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "")
	s.NoError(err)
	s.Equal(s.date(2024, 1, 1), report.From)
	s.Equal(s.date(2024, 3, 15), report.To, "missing to_date defaults to today")
}

func (s *StatisticsServiceSuite) TestComputeStatistics_InvalidRange() {
	testCases := []struct {
		name     string
		fromDate string
		toDate   string
	}{
		{"inverted range", "2024-02-01", "2024-01-01"},
		{"malformed from", "01/01/2024", "2024-02-01"},
		{"malformed to", "2024-01-01", "yesterday"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.ComputeStatistics(s.user.ID, tc.fromDate, tc.toDate)
			s.ErrorIs(err, ErrInvalidDateRange)
		})
	}
}

func (s *StatisticsServiceSuite) TestComputeStatistics_SingleDayRange() {
	s.addTransaction(models.TransactionTypeExpense, "5.00", s.date(2024, 1, 15))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-15", "2024-01-15")
	s.NoError(err)
	s.Equal(int64(1), report.TransactionCount, "bounds are inclusive")
}

func (s *StatisticsServiceSuite) TestComputeStatistics_EchoesResolvedRange() {
	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)
	s.Equal(s.date(2024, 1, 1), report.From)
	s.Equal(s.date(2024, 1, 31), report.To)
}

// Ownership

func (s *StatisticsServiceSuite) TestComputeStatistics_ScopedToUser() {
	s.addTransaction(models.TransactionTypeIncome, "100.00", s.date(2024, 1, 5))
	database.CreateTestTransaction(s.T(), s.db, s.other.ID, nil, models.TransactionTypeIncome, "9999.00", s.date(2024, 1, 5))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)
	s.True(report.TotalIncome.Equal(s.decimal("100")))
	s.Equal(int64(1), report.TransactionCount)
}

// Category breakdowns

func (s *StatisticsServiceSuite) TestComputeStatistics_CategoryBreakdowns() {
	food := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Food")
	rent := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Rent")

	s.addCategorized(food, models.TransactionTypeExpense, "30.00", s.date(2024, 1, 2))
	s.addCategorized(food, models.TransactionTypeExpense, "20.00", s.date(2024, 1, 3))
	s.addCategorized(rent, models.TransactionTypeExpense, "800.00", s.date(2024, 1, 1))
	s.addTransaction(models.TransactionTypeExpense, "15.00", s.date(2024, 1, 4))
	s.addCategorized(food, models.TransactionTypeIncome, "5.00", s.date(2024, 1, 5))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	// Expenses: sorted by total descending, uncategorized keyed by nil name
	s.Require().Len(report.ExpenseByCategory, 3)
	s.Equal("Rent", *report.ExpenseByCategory[0].CategoryName)
	s.True(report.ExpenseByCategory[0].Total.Equal(s.decimal("800")))
	s.Equal("Food", *report.ExpenseByCategory[1].CategoryName)
	s.True(report.ExpenseByCategory[1].Total.Equal(s.decimal("50")))
	s.Nil(report.ExpenseByCategory[2].CategoryName)
	s.True(report.ExpenseByCategory[2].Total.Equal(s.decimal("15")))

	// Income keeps its own breakdown, separate from expenses
	s.Require().Len(report.IncomeByCategory, 1)
	s.Equal("Food", *report.IncomeByCategory[0].CategoryName)
	s.True(report.IncomeByCategory[0].Total.Equal(s.decimal("5")))
}

// Monthly trend

func (s *StatisticsServiceSuite) TestComputeStatistics_MonthlyTrendOrderedAndComplete() {
	s.addTransaction(models.TransactionTypeExpense, "10.00", s.date(2023, 11, 20))
	s.addTransaction(models.TransactionTypeIncome, "200.00", s.date(2024, 1, 2))
	s.addTransaction(models.TransactionTypeExpense, "50.00", s.date(2023, 12, 1))

	report, err := s.service.ComputeStatistics(s.user.ID, "2023-11-01", "2024-01-31")
	s.NoError(err)

	s.Require().Len(report.MonthlyTrend, 3)
	s.Equal("2023-11", report.MonthlyTrend[0].Month)
	s.Equal("2023-12", report.MonthlyTrend[1].Month)
	s.Equal("2024-01", report.MonthlyTrend[2].Month)

	// Every month bucket carries both figures even when one is zero
	s.True(report.MonthlyTrend[0].Figures.Income.IsZero())
	s.True(report.MonthlyTrend[0].Figures.Expense.Equal(s.decimal("10")))
	s.True(report.MonthlyTrend[2].Figures.Income.Equal(s.decimal("200")))
	s.True(report.MonthlyTrend[2].Figures.Expense.IsZero())
}

// Weekday distribution

func (s *StatisticsServiceSuite) TestComputeStatistics_WeekdayDistribution() {
	// 2024-01-07 is a Sunday, 2024-01-08 a Monday
	s.addTransaction(models.TransactionTypeExpense, "10.00", s.date(2024, 1, 7))
	s.addTransaction(models.TransactionTypeExpense, "20.00", s.date(2024, 1, 14))
	s.addTransaction(models.TransactionTypeIncome, "100.00", s.date(2024, 1, 8))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	s.Require().Len(report.WeekdayDistribution, 2)

	// Sunday is weekday 1, listed first
	sunday := report.WeekdayDistribution[0]
	s.Equal(1, sunday.Weekday)
	s.Equal("Sunday", sunday.Label)
	s.True(sunday.Total.Equal(s.decimal("30")))
	s.Equal(int64(2), sunday.Count)

	monday := report.WeekdayDistribution[1]
	s.Equal(2, monday.Weekday)
	s.Equal("Monday", monday.Label)
	s.True(monday.Total.Equal(s.decimal("100")))
	s.Equal(int64(1), monday.Count)
}

// Largest transactions

func (s *StatisticsServiceSuite) TestComputeStatistics_LargestTransactionsCappedAndSorted() {
	for day := 1; day <= 12; day++ {
		amount := decimal.NewFromInt(int64(day * 10))
		s.addTransaction(models.TransactionTypeExpense, amount.String(), s.date(2024, 1, day))
	}

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	s.Require().Len(report.LargestTransactions, MaxLargestTransactions)
	s.True(report.LargestTransactions[0].Amount.Equal(s.decimal("120")))
	for i := 1; i < len(report.LargestTransactions); i++ {
		s.True(report.LargestTransactions[i-1].Amount.GreaterThanOrEqual(report.LargestTransactions[i].Amount),
			"largest transactions must be sorted by amount descending")
	}
	// The two smallest never make the list
	for _, txn := range report.LargestTransactions {
		s.True(txn.Amount.GreaterThanOrEqual(s.decimal("30")))
	}
}

func (s *StatisticsServiceSuite) TestComputeStatistics_LargestMixesIncomeAndExpense() {
	s.addTransaction(models.TransactionTypeIncome, "500.00", s.date(2024, 1, 1))
	s.addTransaction(models.TransactionTypeExpense, "700.00", s.date(2024, 1, 2))
	s.addTransaction(models.TransactionTypeIncome, "100.00", s.date(2024, 1, 3))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	s.Require().Len(report.LargestTransactions, 3)
	s.Equal(models.TransactionTypeExpense, report.LargestTransactions[0].Type)
	s.True(report.LargestTransactions[0].Amount.Equal(s.decimal("700")))
	s.True(report.LargestTransactions[1].Amount.Equal(s.decimal("500")))
}

func (s *StatisticsServiceSuite) TestComputeStatistics_LargestTiesKeepDateOrder() {
	first := s.addTransaction(models.TransactionTypeExpense, "50.00", s.date(2024, 1, 1))
	second := s.addTransaction(models.TransactionTypeExpense, "50.00", s.date(2024, 1, 2))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	s.Require().Len(report.LargestTransactions, 2)
	s.Equal(first.ID, report.LargestTransactions[0].ID, "equal amounts keep fetch order")
	s.Equal(second.ID, report.LargestTransactions[1].ID)
}

// Average expense

func (s *StatisticsServiceSuite) TestComputeStatistics_AvgIgnoresIncome() {
	s.addTransaction(models.TransactionTypeIncome, "1000.00", s.date(2024, 1, 1))
	s.addTransaction(models.TransactionTypeExpense, "30.00", s.date(2024, 1, 2))
	s.addTransaction(models.TransactionTypeExpense, "60.00", s.date(2024, 1, 3))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	s.True(report.AvgTransaction.Equal(s.decimal("45")), "avg is over expenses only, was %s", report.AvgTransaction)
}

func (s *StatisticsServiceSuite) TestComputeStatistics_AvgZeroWithoutExpenses() {
	s.addTransaction(models.TransactionTypeIncome, "1000.00", s.date(2024, 1, 1))

	report, err := s.service.ComputeStatistics(s.user.ID, "2024-01-01", "2024-01-31")
	s.NoError(err)

	s.True(report.AvgTransaction.IsZero())
}
