package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

type TransactionHandlerSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	transactionService *service_mocks.MockTransactionServiceInterface
	handler            *TransactionHandler
	e                  *echo.Echo
	userID             uuid.UUID
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionService = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.transactionService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerSuite) newContext(method, path string, body []byte) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *TransactionHandlerSuite) sampleTransaction() *models.Transaction {
	return &models.Transaction{
		ID:          uuid.New(),
		UserID:      s.userID,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.RequireFromString("42.50"),
		Description: "Weekly groceries",
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now(),
	}
}

func (s *TransactionHandlerSuite) TestCreate() {
	expected := s.sampleTransaction()

	s.transactionService.EXPECT().
		CreateTransaction(s.userID, gomock.Any()).
		Return(expected, nil).
		Times(1)

	body, _ := json.Marshal(map[string]string{
		"type":        "expense",
		"amount":      "42.50",
		"description": "Weekly groceries",
		"date":        "2024-03-10",
	})
	c, rec := s.newContext(http.MethodPost, "/api/transactions", body)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(expected.ID, response.ID)
	s.Equal("expense", response.Type)
	s.Equal("42.50", response.Amount)
	s.Equal("2024-03-10", response.Date)
}

func (s *TransactionHandlerSuite) TestCreate_InvalidAmount() {
	body, _ := json.Marshal(map[string]string{
		"type":   "expense",
		"amount": "-5.00",
	})
	c, _ := s.newContext(http.MethodPost, "/api/transactions", body)

	// Validation failures bubble up for the global error handler
	s.Error(s.handler.Create(c))
}

func (s *TransactionHandlerSuite) TestCreate_ForeignCategory() {
	s.transactionService.EXPECT().
		CreateTransaction(s.userID, gomock.Any()).
		Return(nil, services.ErrCategoryNotOwned).
		Times(1)

	categoryID := uuid.New().String()
	body, _ := json.Marshal(map[string]string{
		"type":        "expense",
		"amount":      "10.00",
		"category_id": categoryID,
	})
	c, rec := s.newContext(http.MethodPost, "/api/transactions", body)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusForbidden, rec.Code)

	var errorResp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("CATEGORY_004", errorResp.Error.Code)
}

func (s *TransactionHandlerSuite) TestGet() {
	expected := s.sampleTransaction()

	s.transactionService.EXPECT().
		GetTransaction(s.userID, expected.ID).
		Return(expected, nil).
		Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/transactions/"+expected.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(expected.ID.String())

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerSuite) TestGet_NotFound() {
	transactionID := uuid.New()

	s.transactionService.EXPECT().
		GetTransaction(s.userID, transactionID).
		Return(nil, services.ErrTransactionNotFound).
		Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/transactions/"+transactionID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var errorResp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("TRANSACTION_001", errorResp.Error.Code)
}

func (s *TransactionHandlerSuite) TestGet_InvalidID() {
	c, rec := s.newContext(http.MethodGet, "/api/transactions/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var errorResp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("TRANSACTION_004", errorResp.Error.Code)
}

func (s *TransactionHandlerSuite) TestList() {
	income := s.sampleTransaction()
	income.Type = models.TransactionTypeIncome
	income.Amount = decimal.RequireFromString("200.00")
	expense := s.sampleTransaction()

	s.transactionService.EXPECT().
		ListTransactions(s.userID, gomock.Any()).
		Return(&dto.TransactionListResult{
			Transactions: []models.Transaction{*income, *expense},
			Total:        5,
			TotalIncome:  decimal.RequireFromString("200.00"),
			TotalExpense: decimal.RequireFromString("42.50"),
			Balance:      decimal.RequireFromString("157.50"),
		}, nil).
		Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/transactions?limit=2", nil)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Transactions, 2)
	s.Equal("200.00", response.Totals.TotalIncome)
	s.Equal("42.50", response.Totals.TotalExpense)
	s.Equal("157.50", response.Totals.Balance)

	// Totals cover the whole filtered set, not just the returned page
	s.EqualValues(5, response.Pagination.Total)
	s.Equal(2, response.Pagination.Limit)
}

func (s *TransactionHandlerSuite) TestList_DefaultLimitEchoed() {
	s.transactionService.EXPECT().
		ListTransactions(s.userID, gomock.Any()).
		Return(&dto.TransactionListResult{
			Transactions: []models.Transaction{},
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
			Balance:      decimal.Zero,
		}, nil).
		Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/transactions", nil)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(20, response.Pagination.Limit)
	s.NotNil(response.Transactions)
}

func (s *TransactionHandlerSuite) TestUpdate() {
	expected := s.sampleTransaction()
	expected.Amount = decimal.RequireFromString("99.99")

	s.transactionService.EXPECT().
		UpdateTransaction(s.userID, expected.ID, gomock.Any()).
		Return(expected, nil).
		Times(1)

	body, _ := json.Marshal(map[string]string{
		"type":   "expense",
		"amount": "99.99",
	})
	c, rec := s.newContext(http.MethodPut, "/api/transactions/"+expected.ID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(expected.ID.String())

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("99.99", response.Amount)
}

func (s *TransactionHandlerSuite) TestDelete() {
	transactionID := uuid.New()

	s.transactionService.EXPECT().
		DeleteTransaction(s.userID, transactionID).
		Return(nil).
		Times(1)

	c, rec := s.newContext(http.MethodDelete, "/api/transactions/"+transactionID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerSuite) TestDelete_NotFound() {
	transactionID := uuid.New()

	s.transactionService.EXPECT().
		DeleteTransaction(s.userID, transactionID).
		Return(services.ErrTransactionNotFound).
		Times(1)

	c, rec := s.newContext(http.MethodDelete, "/api/transactions/"+transactionID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusNotFound, rec.Code)
}
