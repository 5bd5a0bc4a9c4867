package game

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"bot/domain"
)

type Action int

const (
	ActionCount Action = iota
	ActionIgnore
	ActionWarn
	ActionSpawn
)

// Observe feeds one plain chat message through the engagement counter and the
// spam guard. Warned and ignored messages do not count toward the spawn
// threshold, matching the "your messages will be ignored" warning.
func (e *Engine) Observe(ctx context.Context, chatID, userID string) Action {
	frequency := e.spawnFrequency(ctx, chatID)

	cs := e.chat(chatID)
	cs.locker.Lock()
	defer cs.locker.Unlock()

	if cs.lastSenderID == userID {
		cs.senderStreak++
		if cs.senderStreak >= WARN_STREAK {
			now := e.clock()
			if e.recentlyWarned(userID, now) {
				return ActionIgnore
			}
			e.markWarned(userID, now)
			return ActionWarn
		}
	} else {
		cs.lastSenderID = userID
		cs.senderStreak = 1
	}

	cs.messageCount++
	// frequency <= 0 means spawning is disabled for this chat and must never
	// reach the modulo below.
	if frequency > 0 && cs.messageCount%frequency == 0 {
		cs.messageCount = 0
		return ActionSpawn
	}
	return ActionCount
}

// spawnFrequency looks up the chat's configured threshold. A chat without
// settings gets the default; a store failure degrades to the default too, the
// message still has to be counted.
func (e *Engine) spawnFrequency(ctx context.Context, chatID string) int {
	settings, err := e.store.FindChatSettings(ctx, chatID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Str("chat_id", chatID).Msg("chat settings lookup failed")
		}
		return DEFAULT_SPAWN_FREQUENCY
	}
	return settings.SpawnFrequency
}
