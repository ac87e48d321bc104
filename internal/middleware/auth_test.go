package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestRequireAuth(t *testing.T) {
	suite.Run(t, new(RequireAuthSuite))
}

type RequireAuthSuite struct {
	suite.Suite
	echo         *echo.Echo
	tokenService services.TokenServiceInterface
	user         *models.User
}

func (s *RequireAuthSuite) SetupSuite() {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)

	s.tokenService = services.NewTokenService(&config.JWTConfig{
		AccessTokenDuration: 15 * time.Minute,
		PrivateKey:          privateKey,
		PublicKey:           &privateKey.PublicKey,
		Issuer:              "fintrack-api",
	})

	s.user = &models.User{
		ID:    uuid.New(),
		Email: "auth@example.com",
	}
}

func (s *RequireAuthSuite) SetupTest() {
	s.echo = echo.New()
}

func (s *RequireAuthSuite) invoke(authHeader string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequireAuth(s.tokenService)(next)
	s.NoError(handler(c))
	return rec
}

func (s *RequireAuthSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var errorResp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	return errorResp.Error.Code
}

func (s *RequireAuthSuite) TestValidToken() {
	token, _, err := s.tokenService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	nextCalled := false
	rec := s.invoke("Bearer "+token, func(c echo.Context) error {
		nextCalled = true

		userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
		s.True(ok)
		s.Equal(s.user.ID, userID)
		s.Equal(s.user.Email, c.Get(UserEmailContextKey))
		return c.NoContent(http.StatusOK)
	})

	s.True(nextCalled)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RequireAuthSuite) TestMissingHeader() {
	rec := s.invoke("", func(c echo.Context) error {
		s.Fail("next handler must not run")
		return nil
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", s.errorCode(rec))
}

func (s *RequireAuthSuite) TestMalformedHeader() {
	rec := s.invoke("NotBearer token", func(c echo.Context) error {
		s.Fail("next handler must not run")
		return nil
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *RequireAuthSuite) TestGarbageToken() {
	rec := s.invoke("Bearer not.a.jwt", func(c echo.Context) error {
		s.Fail("next handler must not run")
		return nil
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *RequireAuthSuite) TestExpiredToken() {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)

	expiredIssuer := services.NewTokenService(&config.JWTConfig{
		AccessTokenDuration: -time.Minute,
		PrivateKey:          privateKey,
		PublicKey:           &privateKey.PublicKey,
		Issuer:              "fintrack-api",
	})

	token, _, err := expiredIssuer.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequireAuth(expiredIssuer)(func(c echo.Context) error {
		s.Fail("next handler must not run")
		return nil
	})
	s.NoError(handler(c))

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_003", s.errorCode(rec))
}
