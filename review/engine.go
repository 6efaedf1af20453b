package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/andrewpaige1/flipsnap-api/auth"
	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/worker"
)

type Submitter interface {
	Submit(job worker.Job) error
}

type Notifier interface {
	Post(userID uint, message string)
}

type Options struct {
	SwipeThreshold float64
	SessionTTL     time.Duration
}

// Engine keeps the live sessions of every user and persists the proficiency
// of each completed one without making the caller wait for the write.
type Engine struct {
	store     Store
	writer    Submitter
	notices   Notifier
	threshold float64
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewEngine(store Store, writer Submitter, notices Notifier, opts Options) *Engine {
	if opts.SwipeThreshold <= 0 {
		opts.SwipeThreshold = DefaultSwipeThreshold
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 2 * time.Hour
	}
	return &Engine{
		store:     store,
		writer:    writer,
		notices:   notices,
		threshold: opts.SwipeThreshold,
		ttl:       opts.SessionTTL,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Start opens a fresh play-through of a set. Any live session of the same
// user for the same set is discarded, so re-entering always starts over.
func (e *Engine) Start(ctx context.Context, ident auth.Identity, setPublicID string) (State, error) {
	if !ident.Valid() {
		return State{}, auth.ErrNotAuthenticated
	}

	set, err := e.store.GetSet(ctx, ident.UserID, setPublicID)
	if err != nil {
		return State{}, fmt.Errorf("load set %s > %w", setPublicID, err)
	}
	cards, err := e.store.ListFlashcards(ctx, set.ID)
	if err != nil {
		return State{}, fmt.Errorf("load flashcards of %s > %w", setPublicID, err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return State{}, fmt.Errorf("gonanoid.New() > %w", err)
	}
	session := NewSession(id, ident.UserID, set, cards, e.now())

	e.mu.Lock()
	for key, s := range e.sessions {
		if s.UserID == ident.UserID && s.SetID == set.ID {
			delete(e.sessions, key)
		}
	}
	e.sessions[id] = session
	st := session.State()
	e.mu.Unlock()

	return st, nil
}

func (e *Engine) Get(ident auth.Identity, sessionID string) (State, error) {
	var st State
	err := e.with(ident, sessionID, func(s *Session) error {
		st = s.State()
		return nil
	})
	return st, err
}

func (e *Engine) Flip(ident auth.Identity, sessionID string) (State, error) {
	var st State
	err := e.with(ident, sessionID, func(s *Session) error {
		if err := s.Flip(); err != nil {
			return err
		}
		st = s.State()
		return nil
	})
	return st, err
}

// Decide applies an explicit left/right control for the card at index. When
// the decision is rejected the returned State is still the current one.
func (e *Engine) Decide(ident auth.Identity, sessionID string, index int, d Direction) (State, error) {
	var (
		st        State
		completed bool
		session   Session
	)
	err := e.with(ident, sessionID, func(s *Session) error {
		done, err := s.Decide(index, d)
		if err != nil {
			st = s.State()
			return err
		}
		completed = done
		session = *s
		st = s.State()
		return nil
	})
	if err != nil {
		return st, err
	}
	if completed {
		e.persist(session)
	}
	return st, nil
}

// Release applies a drag gesture released at horizontal displacement dx.
func (e *Engine) Release(ident auth.Identity, sessionID string, index int, dx float64) (State, error) {
	var (
		st        State
		completed bool
		session   Session
	)
	err := e.with(ident, sessionID, func(s *Session) error {
		_, done, err := s.Release(index, dx, e.threshold)
		if err != nil {
			st = s.State()
			return err
		}
		completed = done
		session = *s
		st = s.State()
		return nil
	})
	if err != nil {
		return st, err
	}
	if completed {
		e.persist(session)
	}
	return st, nil
}

// Abandon drops a session without persisting anything.
func (e *Engine) Abandon(ident auth.Identity, sessionID string) error {
	return e.with(ident, sessionID, func(s *Session) error {
		delete(e.sessions, sessionID)
		return nil
	})
}

// Prune drops sessions idle for longer than the TTL and returns how many.
func (e *Engine) Prune() int {
	cutoff := e.now().Add(-e.ttl)

	e.mu.Lock()
	defer e.mu.Unlock()
	pruned := 0
	for id, s := range e.sessions {
		if s.TouchedAt.Before(cutoff) {
			delete(e.sessions, id)
			pruned++
		}
	}
	return pruned
}

// with runs fn on the caller's session under the engine lock.
func (e *Engine) with(ident auth.Identity, sessionID string, fn func(s *Session) error) error {
	if !ident.Valid() {
		return auth.ErrNotAuthenticated
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[sessionID]
	if !ok || s.UserID != ident.UserID {
		return ErrSessionNotFound
	}
	s.TouchedAt = e.now()
	return fn(s)
}

// persist submits the completed session's proficiency and its history
// entry. Both writes happen in the background, keyed by set so that
// play-throughs of one set are stored in the order they finished. A failure
// is posted as a notice and never touches the in-memory result.
func (e *Engine) persist(s Session) {
	proficiency, ok := Proficiency(s.KnowCount, s.Total())
	if !ok {
		return
	}

	userID, setID, title := s.UserID, s.SetID, s.SetTitle
	know, learning, total := s.KnowCount, s.StillLearningCount, s.Total()
	key := fmt.Sprintf("set:%d", setID)
	report := func(what, message string) func(err error) {
		return func(err error) {
			slog.Default().Error("failed to "+what,
				slog.Uint64("setID", uint64(setID)),
				slog.Any("error", err),
			)
			e.notices.Post(userID, message)
		}
	}

	scoreFailed := report("save proficiency",
		fmt.Sprintf("Your score for %q could not be saved. Play the set again to record it.", title))
	err := e.writer.Submit(worker.Job{
		Name: "save proficiency",
		Key:  key,
		Run: func(ctx context.Context) error {
			return e.store.UpdateSetProficiency(ctx, setID, proficiency)
		},
		OnError: scoreFailed,
	})
	if err != nil {
		scoreFailed(err)
		return
	}

	historyFailed := report("record review result",
		fmt.Sprintf("This play-through of %q is missing from its history.", title))
	err = e.writer.Submit(worker.Job{
		Name: "record review result",
		Key:  key,
		Run: func(ctx context.Context) error {
			return e.store.CreateReviewResult(ctx, &models.ReviewResult{
				UserID:             userID,
				FlashcardSetID:     setID,
				KnowCount:          know,
				StillLearningCount: learning,
				TotalCards:         total,
				Proficiency:        proficiency,
			})
		},
		OnError: historyFailed,
	})
	if err != nil {
		historyFailed(err)
	}
}
