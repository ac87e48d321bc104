package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validUser() *User {
	return &User{
		Email:        "user@example.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Smith",
	}
}

func TestUserValidate(t *testing.T) {
	assert.NoError(t, validUser().Validate())
}

func TestUserValidate_Email(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "missing@tld", "@example.com"} {
		u := validUser()
		u.Email = email
		assert.Error(t, u.Validate(), email)
	}
}

func TestUserValidate_Names(t *testing.T) {
	u := validUser()
	u.FirstName = ""
	assert.Error(t, u.Validate())

	u = validUser()
	u.LastName = ""
	assert.Error(t, u.Validate())
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Alice Smith", validUser().FullName())
}
