package game

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bot/domain"
)

// --- Store ---

type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindChatSettings(ctx context.Context, chatID string) (domain.ChatSettings, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(domain.ChatSettings), args.Error(1)
}

func (m *MockStore) FindCatalog(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockStore) FindUserProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockStore) GrantItem(ctx context.Context, user domain.UserRef, item domain.Item) error {
	args := m.Called(ctx, user, item)
	return args.Error(0)
}

func (m *MockStore) SetFavoriteItem(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockStore) BumpChatUserTally(ctx context.Context, user domain.UserRef, chatID string) error {
	args := m.Called(ctx, user, chatID)
	return args.Error(0)
}

func (m *MockStore) BumpChatStats(ctx context.Context, chatID, title string) error {
	args := m.Called(ctx, chatID, title)
	return args.Error(0)
}

// --- Messenger ---

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendWarning(ctx context.Context, chatID, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *MockMessenger) SendSpawn(ctx context.Context, chatID string, item domain.Item) error {
	args := m.Called(ctx, chatID, item)
	return args.Error(0)
}

func (m *MockMessenger) SendGuessResult(ctx context.Context, chatID string, user domain.UserRef, result GuessResult) error {
	args := m.Called(ctx, chatID, user, result)
	return args.Error(0)
}

func (m *MockMessenger) SendReply(ctx context.Context, chatID, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}
