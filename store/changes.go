package store

import (
	"log/slog"
	"sync"
)

type ChangeKind string

const (
	KindSetCreated     ChangeKind = "set_created"
	KindSetUpdated     ChangeKind = "set_updated"
	KindSetMoved       ChangeKind = "set_moved"
	KindSetDeleted     ChangeKind = "set_deleted"
	KindSetProficiency ChangeKind = "set_proficiency"
	KindFolderCreated  ChangeKind = "folder_created"
	KindFolderUpdated  ChangeKind = "folder_updated"
	KindFolderDeleted  ChangeKind = "folder_deleted"
	KindFolderMastery  ChangeKind = "folder_mastery"
)

// Change describes one committed mutation. FolderIDs lists every folder
// whose membership or member proficiencies may differ afterwards.
type Change struct {
	Kind      ChangeKind
	UserID    uint
	SetID     uint
	FolderIDs []uint
}

// Bus fans changes out to subscribers. Publishing never blocks: a
// subscriber with a full buffer misses the change.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Change
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Change)}
}

func (b *Bus) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Bus) Publish(c Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- c:
		default:
			slog.Default().Warn("change subscriber is full, dropping change",
				slog.Int("subscriber", id),
				slog.String("kind", string(c.Kind)),
			)
		}
	}
}

// folderIDs collects the non-nil, distinct folder ids.
func folderIDs(ids ...*uint) []uint {
	var out []uint
	for _, id := range ids {
		if id == nil {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == *id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, *id)
		}
	}
	return out
}
