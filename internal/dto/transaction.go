package dto

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// TransactionRequest is the payload for creating or updating a transaction.
// Amount travels as a string to preserve exact decimal semantics; Date is a
// YYYY-MM-DD string defaulting to the current day when omitted on create.
type TransactionRequest struct {
	Type        string     `json:"type" validate:"required,transaction_type"`
	Amount      string     `json:"amount" validate:"required,money_amount"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Description string     `json:"description,omitempty"`
	Date        string     `json:"date,omitempty" validate:"omitempty,iso_date"`
}

// ListTransactionsRequest contains list filtering and ordering parameters.
// Ordering accepts "date", "-date", "amount" and "-amount"; the leading
// minus requests descending order.
type ListTransactionsRequest struct {
	Type       string `query:"type" validate:"omitempty,transaction_type"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	DateFrom   string `query:"date_from" validate:"omitempty,iso_date"`
	DateTo     string `query:"date_to" validate:"omitempty,iso_date"`
	Ordering   string `query:"ordering"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// TransactionResponse is the API shape of a transaction
type TransactionResponse struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Amount       string     `json:"amount"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategoryName *string    `json:"category_name,omitempty"`
	Description  string     `json:"description,omitempty"`
	Date         string     `json:"date"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewTransactionResponse converts a transaction model to its API shape
func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Type:         t.Type,
		Amount:       t.Amount.StringFixed(2),
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName(),
		Description:  t.Description,
		Date:         t.Date.Format(DateLayout),
		CreatedAt:    t.CreatedAt,
	}
}

// TransactionListResult is the service-level list output: the page of
// transactions plus totals computed over the whole filtered set
type TransactionListResult struct {
	Transactions []models.Transaction
	Total        int64
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ListTotals carries income/expense sums for the filtered set
type ListTotals struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
}

// ListTransactionsResponse is the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Totals       ListTotals            `json:"totals"`
	Pagination   PaginationInfo        `json:"pagination"`
}
