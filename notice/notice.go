// Package notice keeps non-fatal, user-facing messages (failed saves and
// similar) until the user's client collects them.
package notice

import (
	"sync"
	"time"
)

const defaultLimit = 50

type Notice struct {
	Message   string
	CreatedAt time.Time
}

// Board holds pending notices per user. The oldest notice is dropped once a
// user has more than the limit pending.
type Board struct {
	mu      sync.Mutex
	pending map[uint][]Notice
	limit   int
	now     func() time.Time
}

func NewBoard() *Board {
	return &Board{
		pending: make(map[uint][]Notice),
		limit:   defaultLimit,
		now:     time.Now,
	}
}

func (b *Board) Post(userID uint, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := append(b.pending[userID], Notice{Message: message, CreatedAt: b.now()})
	if len(list) > b.limit {
		list = list[len(list)-b.limit:]
	}
	b.pending[userID] = list
}

// Drain returns and forgets the user's pending notices, oldest first.
func (b *Board) Drain(userID uint) []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.pending[userID]
	delete(b.pending, userID)
	if list == nil {
		return []Notice{}
	}
	return list
}
