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

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

type AuthHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	authService *service_mocks.MockAuthServiceInterface
	handler     *AuthHandler
	e           *echo.Echo
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) postJSON(path string, payload interface{}) (echo.Context, *httptest.ResponseRecorder) {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *AuthHandlerSuite) TestRegister() {
	email := gofakeit.Email()
	firstName := gofakeit.FirstName()
	lastName := gofakeit.LastName()

	expectedUser := &models.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now(),
	}

	s.authService.EXPECT().
		Register(gomock.Any()).
		Return(expectedUser, nil).
		Times(1)

	c, rec := s.postJSON("/api/auth/register", map[string]string{
		"email":      email,
		"password":   "SecurePassword123",
		"first_name": firstName,
		"last_name":  lastName,
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response SuccessResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	data, ok := response.Data.(map[string]interface{})
	s.Require().True(ok)
	s.Equal(email, data["email"])
	s.NotContains(data, "password_hash")
}

func (s *AuthHandlerSuite) TestRegister_DuplicateEmail() {
	s.authService.EXPECT().
		Register(gomock.Any()).
		Return(nil, services.ErrUserAlreadyExists).
		Times(1)

	c, rec := s.postJSON("/api/auth/register", map[string]string{
		"email":      "duplicate@example.com",
		"password":   "SecurePassword123",
		"first_name": "Jane",
		"last_name":  "Smith",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var errorResp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("USER_002", errorResp.Error.Code)
}

func (s *AuthHandlerSuite) TestRegister_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var errorResp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("VALIDATION_001", errorResp.Error.Code)
}

func (s *AuthHandlerSuite) TestRegister_ShortPassword() {
	c, _ := s.postJSON("/api/auth/register", map[string]string{
		"email":      "short@example.com",
		"password":   "short",
		"first_name": "Jane",
		"last_name":  "Smith",
	})

	// Validation failures bubble up for the global error handler
	s.Error(s.handler.Register(c))
}

func (s *AuthHandlerSuite) TestLogin() {
	expiresAt := time.Now().Add(15 * time.Minute)

	s.authService.EXPECT().
		Login(gomock.Any()).
		Return(&dto.TokenResponse{
			AccessToken: "signed.jwt.token",
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		}, nil).
		Times(1)

	c, rec := s.postJSON("/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "SecurePassword123",
	})

	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)

	var tokens dto.TokenResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &tokens))
	s.Equal("signed.jwt.token", tokens.AccessToken)
	s.Equal("Bearer", tokens.TokenType)
}

func (s *AuthHandlerSuite) TestLogin_InvalidCredentials() {
	s.authService.EXPECT().
		Login(gomock.Any()).
		Return(nil, services.ErrInvalidCredentials).
		Times(1)

	c, rec := s.postJSON("/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})

	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusUnauthorized, rec.Code)

	var errorResp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("AUTH_001", errorResp.Error.Code)
}
