package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotOwned    = errors.New("category does not belong to the user")
	ErrInvalidAmount       = errors.New("amount must be a positive decimal with at most 2 fractional digits")
)

// transactionService handles transaction management, always scoped to the
// calling user
type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	metrics         MetricsRecorderInterface
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
) TransactionServiceInterface {
	return &transactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		metrics:         metrics,
	}
}

// CreateTransaction records a new income or expense transaction
func (s *transactionService) CreateTransaction(userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	transaction, err := s.buildTransaction(userID, req)
	if err != nil {
		s.metrics.RecordTransactionOperation("create", "rejected")
		return nil, err
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		s.metrics.RecordTransactionOperation("create", "error")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.metrics.RecordTransactionOperation("create", "success")
	slog.Info("transaction created",
		"user_id", userID,
		"transaction_id", transaction.ID,
		"type", transaction.Type,
		"amount", transaction.Amount.String())

	return s.transactionRepo.GetByID(userID, transaction.ID)
}

// GetTransaction returns a single transaction owned by the user
func (s *transactionService) GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(userID, transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// ListTransactions returns a filtered page of the user's transactions plus
// income/expense totals computed over the whole filtered set
func (s *transactionService) ListTransactions(userID uuid.UUID, req *dto.ListTransactionsRequest) (*dto.TransactionListResult, error) {
	filters, err := s.buildFilters(userID, req)
	if err != nil {
		return nil, err
	}

	transactions, total, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	income, expense, err := s.transactionRepo.GetTotalsByFilters(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to compute list totals: %w", err)
	}

	return &dto.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}, nil
}

// UpdateTransaction replaces the mutable fields of a transaction
func (s *transactionService) UpdateTransaction(userID, transactionID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(userID, transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			s.metrics.RecordTransactionOperation("update", "not_found")
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	updated, err := s.buildTransaction(userID, req)
	if err != nil {
		s.metrics.RecordTransactionOperation("update", "rejected")
		return nil, err
	}

	updated.ID = existing.ID
	if req.Date == "" {
		updated.Date = existing.Date
	}

	if err := s.transactionRepo.Update(updated); err != nil {
		s.metrics.RecordTransactionOperation("update", "error")
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.metrics.RecordTransactionOperation("update", "success")

	return s.transactionRepo.GetByID(userID, transactionID)
}

// DeleteTransaction removes a transaction owned by the user
func (s *transactionService) DeleteTransaction(userID, transactionID uuid.UUID) error {
	if err := s.transactionRepo.Delete(userID, transactionID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			s.metrics.RecordTransactionOperation("delete", "not_found")
			return ErrTransactionNotFound
		}
		s.metrics.RecordTransactionOperation("delete", "error")
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.metrics.RecordTransactionOperation("delete", "success")
	slog.Info("transaction deleted", "user_id", userID, "transaction_id", transactionID)

	return nil
}

// buildTransaction validates and converts a request into a model. A
// referenced category must exist and belong to the user.
func (s *transactionService) buildTransaction(userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(dto.DateLayout, req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(userID, *req.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotOwned
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
	}

	return &models.Transaction{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	}, nil
}

// buildFilters converts list request parameters into repository filters
func (s *transactionService) buildFilters(userID uuid.UUID, req *dto.ListTransactionsRequest) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{
		UserID:  userID,
		Type:    req.Type,
		OrderBy: models.OrderByDate,
		// Newest first unless the caller asks otherwise
		Descending: true,
		Limit:      NormalizeLimit(req.Limit),
		Offset:     req.Offset,
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return filters, fmt.Errorf("invalid category ID %q: %w", req.CategoryID, err)
		}
		filters.CategoryID = &categoryID
	}

	if req.DateFrom != "" {
		from, err := time.Parse(dto.DateLayout, req.DateFrom)
		if err != nil {
			return filters, fmt.Errorf("invalid date_from %q: %w", req.DateFrom, err)
		}
		filters.DateFrom = &from
	}

	if req.DateTo != "" {
		to, err := time.Parse(dto.DateLayout, req.DateTo)
		if err != nil {
			return filters, fmt.Errorf("invalid date_to %q: %w", req.DateTo, err)
		}
		filters.DateTo = &to
	}

	if req.Ordering != "" {
		column := strings.TrimPrefix(req.Ordering, "-")
		if !models.IsValidOrderBy(column) {
			return filters, fmt.Errorf("invalid ordering %q", req.Ordering)
		}
		filters.OrderBy = column
		filters.Descending = strings.HasPrefix(req.Ordering, "-")
	}

	return filters, nil
}

// NormalizeLimit resolves a requested page size to the one actually applied
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// parseAmount parses a positive monetary amount with at most 2 fractional
// digits
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) || amount.Exponent() < -2 {
		return decimal.Zero, ErrInvalidAmount
	}

	return amount, nil
}
