package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID, scoped to the owning user
func (r *transactionRepository) GetByID(userID, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetWithFilters retrieves transactions matching the filters with a total
// row count for pagination
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.buildFilterQuery(filters)

	if err := query.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query = query.Preload("Category").Order(orderClause(filters))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// GetByDateRange retrieves a user's transactions with dates inside the
// inclusive range, with category names resolved
func (r *transactionRepository) GetByDateRange(userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// GetTotalsByFilters computes income and expense sums for the filtered set
// in the database. Missing rows yield zero totals.
func (r *transactionRepository) GetTotalsByFilters(filters models.TransactionFilters) (decimal.Decimal, decimal.Decimal, error) {
	type typeTotal struct {
		Type  string
		Total decimal.Decimal
	}

	var totals []typeTotal
	if err := r.buildFilterQuery(filters).
		Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Group("type").
		Scan(&totals).Error; err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, t := range totals {
		switch t.Type {
		case models.TransactionTypeIncome:
			income = t.Total
		case models.TransactionTypeExpense:
			expense = t.Total
		}
	}

	return income, expense, nil
}

// Update updates a transaction, scoped to the owning user
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]interface{}{
			"category_id": transaction.CategoryID,
			"type":        transaction.Type,
			"amount":      transaction.Amount,
			"description": transaction.Description,
			"date":        transaction.Date,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction, scoped to the owning user
func (r *transactionRepository) Delete(userID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// buildFilterQuery applies the owner scope and optional filters
func (r *transactionRepository) buildFilterQuery(filters models.TransactionFilters) *gorm.DB {
	query := r.db.Where("user_id = ?", filters.UserID)

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}

	return query
}

// orderClause maps the requested ordering to a SQL order clause, defaulting
// to newest-first by date
func orderClause(filters models.TransactionFilters) string {
	column := filters.OrderBy
	if !models.IsValidOrderBy(column) {
		column = models.OrderByDate
	}

	direction := "ASC"
	if filters.Descending {
		direction = "DESC"
	}

	return fmt.Sprintf("%s %s, created_at DESC", column, direction)
}
