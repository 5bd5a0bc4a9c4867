package storage

import (
	"context"
	"slices"
	"sort"
	"sync"

	"bot/domain"
)

// MemoryRepo keeps everything in maps behind one RWMutex. It backs unit tests
// and lets the bot run without a database for local development.
type MemoryRepo struct {
	locker   sync.RWMutex
	settings map[string]domain.ChatSettings
	catalog  []domain.Item
	users    map[string]*domain.UserProfile
	tallies  map[string]map[string]*domain.ChatUserTally
	chats    map[string]*domain.ChatStats
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		settings: make(map[string]domain.ChatSettings),
		users:    make(map[string]*domain.UserProfile),
		tallies:  make(map[string]map[string]*domain.ChatUserTally),
		chats:    make(map[string]*domain.ChatStats),
	}
}

// SeedCatalog replaces the whole catalog.
func (r *MemoryRepo) SeedCatalog(items []domain.Item) {
	r.locker.Lock()
	r.catalog = slices.Clone(items)
	r.locker.Unlock()
}

func (r *MemoryRepo) PutChatSettings(settings domain.ChatSettings) {
	r.locker.Lock()
	r.settings[settings.ChatID] = settings
	r.locker.Unlock()
}

func (r *MemoryRepo) FindChatSettings(_ context.Context, chatID string) (domain.ChatSettings, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()
	settings, ok := r.settings[chatID]
	if !ok {
		return domain.ChatSettings{}, domain.ErrNotFound
	}
	return settings, nil
}

func (r *MemoryRepo) FindCatalog(_ context.Context) ([]domain.Item, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()
	return slices.Clone(r.catalog), nil
}

func (r *MemoryRepo) FindUserProfile(_ context.Context, userID string) (domain.UserProfile, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()
	profile, ok := r.users[userID]
	if !ok {
		return domain.UserProfile{}, domain.ErrNotFound
	}
	copied := *profile
	copied.Items = slices.Clone(profile.Items)
	return copied, nil
}

func (r *MemoryRepo) GrantItem(_ context.Context, user domain.UserRef, item domain.Item) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	profile, ok := r.users[user.ID]
	if !ok {
		profile = &domain.UserProfile{ID: user.ID}
		r.users[user.ID] = profile
	}
	if user.Username != "" {
		profile.Username = user.Username
	}
	if user.FirstName != "" {
		profile.FirstName = user.FirstName
	}
	profile.Items = append(profile.Items, item)
	return nil
}

func (r *MemoryRepo) SetFavoriteItem(_ context.Context, userID, itemID string) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	profile, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	profile.FavoriteID = itemID
	return nil
}

func (r *MemoryRepo) BumpChatUserTally(_ context.Context, user domain.UserRef, chatID string) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	byUser, ok := r.tallies[chatID]
	if !ok {
		byUser = make(map[string]*domain.ChatUserTally)
		r.tallies[chatID] = byUser
	}
	tally, ok := byUser[user.ID]
	if !ok {
		tally = &domain.ChatUserTally{UserID: user.ID, ChatID: chatID}
		byUser[user.ID] = tally
	}
	if user.Username != "" {
		tally.Username = user.Username
	}
	if user.FirstName != "" {
		tally.FirstName = user.FirstName
	}
	tally.Count++
	return nil
}

func (r *MemoryRepo) BumpChatStats(_ context.Context, chatID, title string) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	stats, ok := r.chats[chatID]
	if !ok {
		stats = &domain.ChatStats{ChatID: chatID}
		r.chats[chatID] = stats
	}
	if title != "" {
		stats.Title = title
	}
	stats.Count++
	return nil
}

func (r *MemoryRepo) TopChats(_ context.Context, limit int) ([]domain.ChatStats, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()
	all := make([]domain.ChatStats, 0, len(r.chats))
	for _, stats := range r.chats {
		all = append(all, *stats)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Count > all[j].Count })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryRepo) TopCollectors(_ context.Context, chatID string, limit int) ([]domain.ChatUserTally, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()
	all := make([]domain.ChatUserTally, 0, len(r.tallies[chatID]))
	for _, tally := range r.tallies[chatID] {
		all = append(all, *tally)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Count > all[j].Count })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
