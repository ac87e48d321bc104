package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Auth Invalid Credentials",
			code:     AuthInvalidCredentials,
			expected: "Invalid email or password",
		},
		{
			name:     "Auth Missing Token",
			code:     AuthMissingToken,
			expected: "Authorization token is required",
		},
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Category Not Owned",
			code:     CategoryNotOwned,
			expected: "Category belongs to another user",
		},
		{
			name:     "Transaction Invalid Amount",
			code:     TransactionInvalidAmount,
			expected: "Transaction amount must be a positive value with at most 2 decimal places",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An internal error occurred",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			message := GetErrorMessage(tc.code)
			s.Equal(tc.expected, message)
		})
	}
}

// TestGetErrorMessage_UnknownCode tests the fallback message
func (s *CodesTestSuite) TestGetErrorMessage_UnknownCode() {
	message := GetErrorMessage(ErrorCode("MADE_UP_999"))
	s.Equal("An unexpected error occurred", message)
}

// TestIsValidErrorCode tests error code registration checks
func (s *CodesTestSuite) TestIsValidErrorCode() {
	s.True(IsValidErrorCode(StatisticsInvalidRange))
	s.True(IsValidErrorCode(UserAlreadyExists))
	s.False(IsValidErrorCode(ErrorCode("MADE_UP_999")))
	s.False(IsValidErrorCode(ErrorCode("")))
}
