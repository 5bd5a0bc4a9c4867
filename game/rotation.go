package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bot/domain"
)

// Spawn picks the next item for a chat and opens a fresh round for it. Items
// never repeat inside a chat until the whole catalog has been shown once, then
// the rotation starts over. Returns false when nothing could be spawned (empty
// catalog or store failure); the previous round, if any, stays open.
func (e *Engine) Spawn(ctx context.Context, chatID string) (domain.Item, bool) {
	catalog, err := e.store.FindCatalog(ctx)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("catalog fetch failed")
		return domain.Item{}, false
	}
	if len(catalog) == 0 {
		return domain.Item{}, false
	}

	cs := e.chat(chatID)
	cs.locker.Lock()
	defer cs.locker.Unlock()

	if len(cs.shown) >= len(catalog) {
		clear(cs.shown)
	}

	available := make([]domain.Item, 0, len(catalog)-len(cs.shown))
	for _, item := range catalog {
		if _, seen := cs.shown[item.ID]; !seen {
			available = append(available, item)
		}
	}
	if len(available) == 0 {
		return domain.Item{}, false
	}

	picked := available[e.randIntN(len(available))]
	cs.shown[picked.ID] = struct{}{}

	item := picked
	cs.activeItem = &item
	cs.claimedBy = ""
	cs.roundID = uuid.NewString()

	log.Debug().Str("chat_id", chatID).Str("item_id", picked.ID).Str("round_id", cs.roundID).Msg("round opened")
	return picked, true
}
