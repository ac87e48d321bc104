package services

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
)

// AuthServiceInterface defines authentication business operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// PasswordServiceInterface defines password hashing and verification
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
}

// TokenServiceInterface defines JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// CategoryServiceInterface defines category management operations, all
// scoped to the calling user
type CategoryServiceInterface interface {
	CreateCategory(userID uuid.UUID, name string) (*models.Category, error)
	ListCategories(userID uuid.UUID) ([]models.Category, error)
	RenameCategory(userID, categoryID uuid.UUID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID uuid.UUID) error
}

// TransactionServiceInterface defines transaction management operations,
// all scoped to the calling user
type TransactionServiceInterface interface {
	CreateTransaction(userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error)
	ListTransactions(userID uuid.UUID, req *dto.ListTransactionsRequest) (*dto.TransactionListResult, error)
	UpdateTransaction(userID, transactionID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uuid.UUID) error
}

// StatisticsServiceInterface computes aggregate statistics over a user's
// transactions in an inclusive date range
type StatisticsServiceInterface interface {
	ComputeStatistics(userID uuid.UUID, fromDate, toDate string) (*models.StatisticsReport, error)
}

// MetricsRecorderInterface abstracts operational metrics recording
type MetricsRecorderInterface interface {
	RecordTransactionOperation(operation, status string)
	RecordStatisticsRequest(status string)
	RecordStatisticsDuration(duration time.Duration)
}
