package handlers

import (
	"net/http"
	"strings"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction endpoints. Every operation is
// scoped to the authenticated user.
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Create handles transaction creation
// @Summary Create a transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001 or TRANSACTION_002"
// @Failure 403 {object} errors.ErrorResponse "Category not owned - CATEGORY_004"
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.CreateTransaction(userID, &req)
	if err != nil {
		return h.mapTransactionError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// Get returns a single transaction by ID
// @Summary Get a transaction
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} errors.ErrorResponse "Transaction not found - TRANSACTION_001"
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	transaction, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		return h.mapTransactionError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// List returns a filtered page of the user's transactions together with
// income/expense totals over the whole filtered set
// @Summary List transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param type query string false "Filter by type (income, expense)"
// @Param category_id query string false "Filter by category ID"
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param ordering query string false "Ordering: date, -date, amount, -amount"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ListTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	result, err := h.transactionService.ListTransactions(userID, &req)
	if err != nil {
		return h.mapTransactionError(c, err)
	}

	responses := make([]dto.TransactionResponse, 0, len(result.Transactions))
	for i := range result.Transactions {
		responses = append(responses, dto.NewTransactionResponse(&result.Transactions[i]))
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: responses,
		Totals: dto.ListTotals{
			TotalIncome:  result.TotalIncome.StringFixed(2),
			TotalExpense: result.TotalExpense.StringFixed(2),
			Balance:      result.Balance.StringFixed(2),
		},
		Pagination: dto.PaginationInfo{
			Total:  result.Total,
			Limit:  services.NormalizeLimit(req.Limit),
			Offset: req.Offset,
		},
	})
}

// Update replaces the mutable fields of a transaction
// @Summary Update a transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.TransactionRequest true "Updated transaction details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} errors.ErrorResponse "Transaction not found - TRANSACTION_001"
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, &req)
	if err != nil {
		return h.mapTransactionError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// Delete removes a transaction
// @Summary Delete a transaction
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "Transaction not found - TRANSACTION_001"
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		return h.mapTransactionError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Transaction deleted successfully",
	})
}

// mapTransactionError translates service errors to API error responses
func (h *TransactionHandler) mapTransactionError(c echo.Context, err error) error {
	switch {
	case err == services.ErrTransactionNotFound:
		return SendError(c, errors.TransactionNotFound)
	case err == services.ErrCategoryNotOwned:
		return SendError(c, errors.CategoryNotOwned)
	case err == services.ErrInvalidAmount:
		return SendError(c, errors.TransactionInvalidAmount)
	case strings.Contains(err.Error(), "invalid"):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	default:
		return SendSystemError(c, err)
	}
}
