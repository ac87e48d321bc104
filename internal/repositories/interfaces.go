package repositories

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateLastLogin(userID uuid.UUID) error
}

// CategoryRepositoryInterface defines the contract for category repository
// operations. Every method is scoped by the owning user's ID; rows belonging
// to other users behave as if they do not exist.
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(userID, id uuid.UUID) (*models.Category, error)
	GetByUserID(userID uuid.UUID) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(userID, id uuid.UUID) error
}

// TransactionRepositoryInterface defines the contract for transaction
// repository operations, all scoped by the owning user's ID.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(userID, id uuid.UUID) (*models.Transaction, error)
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetByDateRange(userID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
	GetTotalsByFilters(filters models.TransactionFilters) (income, expense decimal.Decimal, err error)
	Update(transaction *models.Transaction) error
	Delete(userID, id uuid.UUID) error
}
