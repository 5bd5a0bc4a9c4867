package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot/domain"
)

func TestMemoryRepo_Profiles(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()
	ctx := context.Background()

	_, err := repo.FindUserProfile(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user := domain.UserRef{ID: "u1", Username: "jsnow", FirstName: "Jon"}
	require.NoError(t, repo.GrantItem(ctx, user, domain.Item{ID: "1", Name: "Jon Snow"}))
	require.NoError(t, repo.GrantItem(ctx, user, domain.Item{ID: "2", Name: "Arya Stark"}))

	profile, err := repo.FindUserProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "jsnow", profile.Username)
	require.Len(t, profile.Items, 2)
	assert.Equal(t, "1", profile.Items[0].ID)
	assert.Equal(t, "2", profile.Items[1].ID)
}

func TestMemoryRepo_Favorite(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()
	ctx := context.Background()

	assert.ErrorIs(t, repo.SetFavoriteItem(ctx, "ghost", "1"), domain.ErrNotFound)

	user := domain.UserRef{ID: "u1"}
	require.NoError(t, repo.GrantItem(ctx, user, domain.Item{ID: "1"}))
	require.NoError(t, repo.GrantItem(ctx, user, domain.Item{ID: "2"}))

	require.NoError(t, repo.SetFavoriteItem(ctx, "u1", "1"))
	require.NoError(t, repo.SetFavoriteItem(ctx, "u1", "2"))

	profile, err := repo.FindUserProfile(ctx, "u1")
	require.NoError(t, err)
	// Replaced, not accumulated.
	assert.Equal(t, "2", profile.FavoriteID)
}

func TestMemoryRepo_TalliesAndStats(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()
	ctx := context.Background()

	alice := domain.UserRef{ID: "alice", FirstName: "Alice"}
	bob := domain.UserRef{ID: "bob", FirstName: "Bob"}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.BumpChatUserTally(ctx, alice, "chat1"))
		require.NoError(t, repo.BumpChatStats(ctx, "chat1", "The Wall"))
	}
	require.NoError(t, repo.BumpChatUserTally(ctx, bob, "chat1"))
	require.NoError(t, repo.BumpChatStats(ctx, "chat2", "Winterfell"))

	collectors, err := repo.TopCollectors(ctx, "chat1", 10)
	require.NoError(t, err)
	require.Len(t, collectors, 2)
	assert.Equal(t, "alice", collectors[0].UserID)
	assert.Equal(t, int64(3), collectors[0].Count)
	assert.Equal(t, "bob", collectors[1].UserID)

	chats, err := repo.TopChats(ctx, 1)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "chat1", chats[0].ChatID)
	assert.Equal(t, "The Wall", chats[0].Title)
	assert.Equal(t, int64(3), chats[0].Count)
}

func TestMemoryRepo_Settings(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()
	ctx := context.Background()

	_, err := repo.FindChatSettings(ctx, "chat1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.PutChatSettings(domain.ChatSettings{ChatID: "chat1", SpawnFrequency: 5})
	settings, err := repo.FindChatSettings(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, 5, settings.SpawnFrequency)
}

func TestMemoryRepo_Catalog(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()
	ctx := context.Background()

	catalog, err := repo.FindCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)

	repo.SeedCatalog([]domain.Item{{ID: "1"}, {ID: "2"}})
	catalog, err = repo.FindCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
}
