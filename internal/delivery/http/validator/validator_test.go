package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Password string `json:"password" validate:"required,password"`
	Email    string `json:"email" validate:"required_without=Login,omitempty,email"`
	Login    string `json:"login" validate:"omitempty,max=255"`
}

func TestValidator_Validate(t *testing.T) {
	v := New(10)

	assert.NoError(t, v.Validate(&sample{Password: "0123456789", Email: "a@example.com"}))
	assert.NoError(t, v.Validate(&sample{Password: "0123456789", Login: "bob"}))
	assert.NoError(t, v.Validate(&sample{Password: "ääääääääää", Login: "bob"}), "length counts characters")

	err := v.Validate(&sample{Password: "short", Login: "bob"})
	require.Error(t, err)
	assert.Equal(t, "Password: password", Describe(err))

	err = v.Validate(&sample{Password: "0123456789"})
	require.Error(t, err)
	assert.Equal(t, "Email: required_without=Login", Describe(err))

	err = v.Validate(&sample{Password: "0123456789", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, "Email: email", Describe(err))
}
