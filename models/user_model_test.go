package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFindAddress(t *testing.T) {
	target := primitive.NewObjectID()
	user := User{Addresses: []Address{
		{ID: primitive.NewObjectID(), City: "Jaipur"},
		{ID: target, City: "Pune"},
	}}

	found := user.FindAddress(target)
	require.NotNil(t, found)
	require.Equal(t, "Pune", found.City)

	require.Nil(t, user.FindAddress(primitive.NewObjectID()))
}

func TestClearDefaultAddresses(t *testing.T) {
	user := User{Addresses: []Address{
		{ID: primitive.NewObjectID(), IsDefault: true},
		{ID: primitive.NewObjectID(), IsDefault: true},
	}}

	user.ClearDefaultAddresses()
	for _, addr := range user.Addresses {
		require.False(t, addr.IsDefault)
	}
}

func TestRemoveAddress(t *testing.T) {
	target := primitive.NewObjectID()
	user := User{Addresses: []Address{
		{ID: target},
		{ID: primitive.NewObjectID()},
	}}

	require.True(t, user.RemoveAddress(target))
	require.Len(t, user.Addresses, 1)

	require.False(t, user.RemoveAddress(target))
	require.Len(t, user.Addresses, 1)
}

func TestProfilePatchValidate(t *testing.T) {
	require.NoError(t, ProfilePatch{Email: "potter@mrittika.in"}.Validate())
	require.NoError(t, ProfilePatch{}.Validate())

	require.Error(t, ProfilePatch{Email: "not-an-email"}.Validate())
	require.Error(t, ProfilePatch{Email: "missing-domain@"}.Validate())
}
