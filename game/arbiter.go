package game

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"bot/domain"
)

type Outcome int

const (
	OutcomeNoActiveRound Outcome = iota
	OutcomeAlreadyClaimed
	OutcomeInvalidInput
	OutcomeIncorrect
	OutcomeCorrect
)

type GuessResult struct {
	Outcome   Outcome
	Item      domain.Item
	LedgerErr error
}

// SubmitGuess arbitrates one guess against the chat's active round. The claim
// transition happens under the chat's lock, so concurrent correct guesses from
// different users resolve to exactly one Correct; everyone else sees
// AlreadyClaimed. Score bookkeeping runs after the lock is released and never
// rolls the claim back: the in-memory claim is authoritative, a failed ledger
// write only marks the result for reconciliation.
func (e *Engine) SubmitGuess(ctx context.Context, chatID, chatTitle string, from domain.UserRef, text string) GuessResult {
	cs := e.chat(chatID)
	cs.locker.Lock()

	if cs.activeItem == nil {
		cs.locker.Unlock()
		return GuessResult{Outcome: OutcomeNoActiveRound}
	}
	if cs.claimedBy != "" {
		cs.locker.Unlock()
		return GuessResult{Outcome: OutcomeAlreadyClaimed}
	}

	guess := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(guess, "()") || strings.Contains(guess, "&") {
		cs.locker.Unlock()
		return GuessResult{Outcome: OutcomeInvalidInput}
	}

	item := *cs.activeItem
	if !nameMatches(item.Name, guess) {
		cs.locker.Unlock()
		return GuessResult{Outcome: OutcomeIncorrect}
	}

	// First correct guess wins the round. claimedBy goes from unset to this
	// user in one step while the lock is held, never check-then-set across it.
	cs.claimedBy = from.ID
	roundID := cs.roundID
	cs.locker.Unlock()

	err := e.recordClaim(ctx, chatID, chatTitle, from, item)
	if err != nil {
		log.Error().Err(err).
			Str("chat_id", chatID).
			Str("user_id", from.ID).
			Str("round_id", roundID).
			Msg("claim recorded in memory but ledger update failed, needs reconciliation")
	}
	return GuessResult{Outcome: OutcomeCorrect, Item: item, LedgerErr: err}
}

// recordClaim issues the three ledger upserts. They are independent: one
// failing must not stop the others, so errors are collected, not returned
// early.
func (e *Engine) recordClaim(ctx context.Context, chatID, chatTitle string, winner domain.UserRef, item domain.Item) error {
	var errs []error

	if err := e.store.GrantItem(ctx, winner, item); err != nil {
		errs = append(errs, err)
	}
	if err := e.store.BumpChatUserTally(ctx, winner, chatID); err != nil {
		errs = append(errs, err)
	}
	if err := e.store.BumpChatStats(ctx, chatID, chatTitle); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// nameMatches implements the dual matching rule: either the guess tokens are a
// permutation of the full name, or any single guess token equals any single
// name token. The second path deliberately lets a guess with extra wrong words
// through as long as one word hits.
func nameMatches(name, guess string) bool {
	nameTokens := strings.Fields(strings.ToLower(name))
	guessTokens := strings.Fields(guess)
	if len(guessTokens) == 0 || len(nameTokens) == 0 {
		return false
	}

	sortedName := slices.Clone(nameTokens)
	sortedGuess := slices.Clone(guessTokens)
	slices.Sort(sortedName)
	slices.Sort(sortedGuess)
	if slices.Equal(sortedName, sortedGuess) {
		return true
	}

	for _, gt := range guessTokens {
		if slices.Contains(nameTokens, gt) {
			return true
		}
	}
	return false
}
