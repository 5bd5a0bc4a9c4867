package game

import (
	"bot/domain"
	"context"
)

// Store is the persistence collaborator. Every write is an idempotent upsert;
// implementations map their not-found case to domain.ErrNotFound and wrap
// everything unexpected in domain.ErrDatabase.
type Store interface {
	FindChatSettings(ctx context.Context, chatID string) (domain.ChatSettings, error)
	FindCatalog(ctx context.Context) ([]domain.Item, error)
	FindUserProfile(ctx context.Context, userID string) (domain.UserProfile, error)

	// GrantItem appends item to the user's collection, creating the profile if
	// absent, and refreshes the stored username/first name.
	GrantItem(ctx context.Context, user domain.UserRef, item domain.Item) error
	SetFavoriteItem(ctx context.Context, userID, itemID string) error
	BumpChatUserTally(ctx context.Context, user domain.UserRef, chatID string) error
	BumpChatStats(ctx context.Context, chatID, title string) error
}

// Messenger is the outbound side of the chat platform.
type Messenger interface {
	SendWarning(ctx context.Context, chatID, text string) error
	SendSpawn(ctx context.Context, chatID string, item domain.Item) error
	SendGuessResult(ctx context.Context, chatID string, user domain.UserRef, result GuessResult) error
	SendReply(ctx context.Context, chatID, text string) error
}
