package transport

import (
	"context"
	"fmt"

	"bot/domain"
	"bot/game"
)

// Sender renders engine outcomes into gateway frames. It is the game package's
// Messenger.
type Sender struct {
	gateway *Gateway
}

func NewSender(gateway *Gateway) *Sender {
	return &Sender{gateway: gateway}
}

func (s *Sender) SendWarning(ctx context.Context, chatID, text string) error {
	return s.gateway.Send(ctx, outboundMessage{ChatID: chatID, Text: text})
}

func (s *Sender) SendSpawn(ctx context.Context, chatID string, item domain.Item) error {
	text := fmt.Sprintf("A new %s item appeared!\nUse /guess with its name to add it to your collection", item.Rarity)
	return s.gateway.Send(ctx, outboundMessage{
		ChatID:   chatID,
		Text:     text,
		ImageURL: item.ImageURL,
	})
}

func (s *Sender) SendGuessResult(ctx context.Context, chatID string, user domain.UserRef, result game.GuessResult) error {
	switch result.Outcome {
	case game.OutcomeNoActiveRound:
		return s.SendReply(ctx, chatID, "There is nothing to guess right now")
	case game.OutcomeAlreadyClaimed:
		return s.SendReply(ctx, chatID, "Already guessed by someone, try next time")
	case game.OutcomeInvalidInput:
		return s.SendReply(ctx, chatID, "You can't use those characters in a guess")
	case game.OutcomeIncorrect:
		return s.SendReply(ctx, chatID, "That is not the right name, try again")
	}

	text := fmt.Sprintf("%s guessed it!\n\nName: %s\nSeries: %s\nRarity: %s\n\nThe item was added to your collection",
		user.FirstName, result.Item.Name, result.Item.Series, result.Item.Rarity)
	return s.gateway.Send(ctx, outboundMessage{
		ChatID: chatID,
		Text:   text,
		Buttons: []button{
			{Label: "See collection", Query: "collection." + user.ID},
		},
	})
}

func (s *Sender) SendReply(ctx context.Context, chatID, text string) error {
	return s.gateway.Send(ctx, outboundMessage{ChatID: chatID, Text: text})
}
