package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Addresses(t *testing.T) {
	u := NewUser("Erin", "erin@x.io", "hash", "", "")

	require.NoError(t, u.AddAddress(Address{Line1: "1 Main St", City: "Springfield"}))
	require.NoError(t, u.AddAddress(Address{Line1: "2 Side Rd"}))
	require.NoError(t, u.AddAddress(Address{Line1: "3 Back Ln"}))

	assert.ErrorIs(t, u.AddAddress(Address{City: "Nowhere"}), ErrAddressLine1Required)

	require.NoError(t, u.RemoveAddress(1))
	require.Len(t, u.Addresses, 2)
	assert.Equal(t, "1 Main St", u.Addresses[0].Line1)
	assert.Equal(t, "3 Back Ln", u.Addresses[1].Line1)

	assert.ErrorIs(t, u.RemoveAddress(2), ErrAddressIndexOutOfRange)
	assert.ErrorIs(t, u.RemoveAddress(-1), ErrAddressIndexOutOfRange)
}

func TestUser_UpdateProfile(t *testing.T) {
	u := NewUser("Frank", "frank@x.io", "hash", "123", RoleCustomer)

	u.UpdateProfile("", "456", &Profile{Bio: "hi"})

	assert.Equal(t, "Frank", u.Name)
	assert.Equal(t, "456", u.Phone)
	assert.Equal(t, "hi", u.Profile.Bio)
}
