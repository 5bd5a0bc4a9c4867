package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"bot/domain"
)

// Service routes inbound messages to the engine and turns the engine's
// decisions into outbound sends. One Service instance handles every chat;
// per-chat serialization lives inside the engine.
type Service struct {
	engine    *Engine
	messenger Messenger
}

func NewService(engine *Engine, messenger Messenger) *Service {
	return &Service{engine: engine, messenger: messenger}
}

func (s *Service) HandleUpdate(ctx context.Context, msg domain.IncomingMessage) {
	switch msg.Command {
	case "guess":
		s.handleGuess(ctx, msg)
	case "fav":
		s.handleFavorite(ctx, msg)
	default:
		s.handleChatter(ctx, msg)
	}
}

func (s *Service) handleChatter(ctx context.Context, msg domain.IncomingMessage) {
	switch s.engine.Observe(ctx, msg.ChatID, msg.From.ID) {
	case ActionWarn:
		text := fmt.Sprintf("Don't spam %s, your messages will be ignored for 1 minute", msg.From.FirstName)
		if err := s.messenger.SendWarning(ctx, msg.ChatID, text); err != nil {
			log.Error().Err(err).Str("chat_id", msg.ChatID).Msg("warning send failed")
		}
	case ActionSpawn:
		item, ok := s.engine.Spawn(ctx, msg.ChatID)
		if !ok {
			return
		}
		// A failed announcement does not roll the round back, the item stays
		// guessable.
		if err := s.messenger.SendSpawn(ctx, msg.ChatID, item); err != nil {
			log.Error().Err(err).Str("chat_id", msg.ChatID).Str("item_id", item.ID).Msg("spawn announcement failed")
		}
	}
}

func (s *Service) handleGuess(ctx context.Context, msg domain.IncomingMessage) {
	result := s.engine.SubmitGuess(ctx, msg.ChatID, msg.ChatTitle, msg.From, msg.Args)

	if result.Outcome == OutcomeCorrect && result.LedgerErr != nil {
		s.reply(ctx, msg.ChatID, "An error occurred while processing your guess")
		return
	}
	if err := s.messenger.SendGuessResult(ctx, msg.ChatID, msg.From, result); err != nil {
		log.Error().Err(err).Str("chat_id", msg.ChatID).Str("user_id", msg.From.ID).Msg("guess result send failed")
	}
}

func (s *Service) handleFavorite(ctx context.Context, msg domain.IncomingMessage) {
	itemID := msg.Args
	if itemID == "" {
		s.reply(ctx, msg.ChatID, "Please provide an item id")
		return
	}

	item, err := s.engine.SetFavorite(ctx, msg.From.ID, itemID)
	switch {
	case errors.Is(err, ErrNoProfile):
		s.reply(ctx, msg.ChatID, "You have not guessed any items yet")
	case errors.Is(err, ErrItemNotOwned):
		s.reply(ctx, msg.ChatID, "This item is not in your collection")
	case err != nil:
		log.Error().Err(err).Str("user_id", msg.From.ID).Msg("favorite update failed")
		s.reply(ctx, msg.ChatID, "An error occurred while updating favorites")
	default:
		s.reply(ctx, msg.ChatID, fmt.Sprintf("%s has been marked as your favorite", item.Name))
	}
}

func (s *Service) reply(ctx context.Context, chatID, text string) {
	if err := s.messenger.SendReply(ctx, chatID, text); err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("reply send failed")
	}
}
