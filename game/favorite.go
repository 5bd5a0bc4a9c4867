package game

import (
	"context"
	"errors"
	"fmt"

	"bot/domain"
)

// SetFavorite marks one owned item as the user's favorite. A second call
// replaces the previous favorite, it never accumulates.
func (e *Engine) SetFavorite(ctx context.Context, userID, itemID string) (domain.Item, error) {
	profile, err := e.store.FindUserProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Item{}, ErrNoProfile
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("favorite lookup: %w", err)
	}

	var owned *domain.Item
	for i := range profile.Items {
		if profile.Items[i].ID == itemID {
			owned = &profile.Items[i]
			break
		}
	}
	if owned == nil {
		return domain.Item{}, ErrItemNotOwned
	}

	if err := e.store.SetFavoriteItem(ctx, userID, itemID); err != nil {
		return domain.Item{}, fmt.Errorf("favorite update: %w", err)
	}
	return *owned, nil
}
