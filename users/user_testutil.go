package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepository runs the behaviour every Repository implementation shares.
func TestRepository(t *testing.T, repo Repository) {
	ctx := context.Background()

	alice := User{ID: "u-alice", FirstName: "Alice", LastName: "Liddell", Role: RoleAuthor}
	bob := User{ID: "u-bob", FirstName: "Bob", Role: RoleAdmin}

	require.NoError(t, repo.Upsert(ctx, &alice), "insert alice")
	require.NoError(t, repo.Upsert(ctx, &bob), "insert bob")

	retrieved, err := repo.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, retrieved)

	missing, err := repo.Get(ctx, "u-nobody")
	require.NoError(t, err)
	assert.Equal(t, User{}, missing, "missing user should be the zero value")

	alice.Role = RoleAdmin
	require.NoError(t, repo.Upsert(ctx, &alice), "update alice")
	retrieved, err = repo.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, retrieved.Role)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	if assert.Len(t, all, 2) {
		assert.Contains(t, all, alice)
		assert.Contains(t, all, bob)
	}
}
