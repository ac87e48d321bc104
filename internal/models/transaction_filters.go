package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction list ordering options
const (
	OrderByDate   = "date"
	OrderByAmount = "amount"
)

// TransactionFilters contains filtering and ordering options for transaction
// list queries. UserID is always set by the caller; everything else is
// optional.
type TransactionFilters struct {
	UserID     uuid.UUID
	Type       string
	CategoryID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

// IsValidOrderBy checks a requested ordering column
func IsValidOrderBy(orderBy string) bool {
	return orderBy == OrderByDate || orderBy == OrderByAmount
}
