package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"bot/domain"
)

const WARN_STREAK = 10
const WARN_COOLDOWN = time.Minute
const DEFAULT_SPAWN_FREQUENCY = 10

// chatState is everything mutable that belongs to one chat. Its locker is the
// chat's exclusive section: the counter read-modify-write and the claim
// transition both happen under it, so two messages for the same chat can never
// interleave. Different chats never share state.
type chatState struct {
	locker sync.Mutex

	messageCount int
	lastSenderID string
	senderStreak int

	shown map[string]struct{}

	roundID    string
	activeItem *domain.Item
	claimedBy  string
}

// Engine holds the per-chat state machines. Chat states are created lazily on
// first sight of a chat and live for the process lifetime.
type Engine struct {
	store Store

	locker sync.RWMutex
	chats  map[string]*chatState

	warnLocker sync.Mutex
	lastWarned map[string]time.Time

	clock    func() time.Time
	randIntN func(n int) int
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store:      store,
		chats:      make(map[string]*chatState),
		lastWarned: make(map[string]time.Time),
		clock:      time.Now,
		randIntN:   rand.IntN,
	}
}

func (e *Engine) chat(chatID string) *chatState {
	e.locker.RLock()
	cs, ok := e.chats[chatID]
	e.locker.RUnlock()
	if ok {
		return cs
	}

	e.locker.Lock()
	defer e.locker.Unlock()
	if cs, ok = e.chats[chatID]; ok {
		return cs
	}
	cs = &chatState{shown: make(map[string]struct{})}
	e.chats[chatID] = cs
	return cs
}

func (e *Engine) recentlyWarned(userID string, now time.Time) bool {
	e.warnLocker.Lock()
	defer e.warnLocker.Unlock()
	last, ok := e.lastWarned[userID]
	return ok && now.Sub(last) < WARN_COOLDOWN
}

func (e *Engine) markWarned(userID string, now time.Time) {
	e.warnLocker.Lock()
	e.lastWarned[userID] = now
	e.warnLocker.Unlock()
}
