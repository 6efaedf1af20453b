// Package review drives swipe-based play-throughs of a flashcard set and
// turns the tally of decisions into the set's proficiency score.
package review

import (
	"errors"
	"math"
	"time"

	"github.com/andrewpaige1/flipsnap-api/models"
)

// DefaultSwipeThreshold is the horizontal drag, in logical pixels, a release
// has to exceed to count as a decision.
const DefaultSwipeThreshold = 120.0

var (
	ErrSessionNotFound  = errors.New("review session not found")
	ErrSessionComplete  = errors.New("review session already complete")
	ErrStaleDecision    = errors.New("decision does not match the current card")
	ErrInvalidDirection = errors.New("direction must be left or right")
)

type Side string

const (
	SideTerm       Side = "term"
	SideDefinition Side = "definition"
)

// Direction is the outcome of one card: right means "know", left means
// "still learning".
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionLeft, DirectionRight:
		return Direction(s), nil
	}
	return "", ErrInvalidDirection
}

// ClassifyRelease maps the displacement of a released drag to a decision.
// A release whose magnitude does not exceed threshold snaps back.
func ClassifyRelease(dx, threshold float64) (Direction, bool) {
	switch {
	case dx > threshold:
		return DirectionRight, true
	case dx < -threshold:
		return DirectionLeft, true
	}
	return "", false
}

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Proficiency is the share of "know" decisions as a percentage. It reports
// false for an empty set instead of dividing by zero.
func Proficiency(knowCount, totalCards int) (float64, bool) {
	if totalCards <= 0 {
		return 0, false
	}
	return Round2(float64(knowCount) / float64(totalCards) * 100), true
}

// Session is one play-through of a set. It is transient and never stored.
//
// The machine is Showing(CurrentIndex, Side) until CurrentIndex reaches the
// number of cards, then Complete. A set without cards is Complete from the
// start.
type Session struct {
	ID                 string
	UserID             uint
	SetID              uint
	SetPublicID        string
	SetTitle           string
	Cards              []models.Flashcard
	CurrentIndex       int
	KnowCount          int
	StillLearningCount int
	Side               Side

	StartedAt time.Time
	TouchedAt time.Time
}

func NewSession(id string, userID uint, set models.FlashcardSet, cards []models.Flashcard, now time.Time) *Session {
	return &Session{
		ID:          id,
		UserID:      userID,
		SetID:       set.ID,
		SetPublicID: set.PublicID,
		SetTitle:    set.Title,
		Cards:       cards,
		Side:        SideTerm,
		StartedAt:   now,
		TouchedAt:   now,
	}
}

func (s *Session) Total() int {
	return len(s.Cards)
}

func (s *Session) Complete() bool {
	return s.CurrentIndex >= len(s.Cards)
}

// Flip toggles the visible side of the current card.
func (s *Session) Flip() error {
	if s.Complete() {
		return ErrSessionComplete
	}
	if s.Side == SideTerm {
		s.Side = SideDefinition
	} else {
		s.Side = SideTerm
	}
	return nil
}

// Decide records a decision for the card at index and advances. It reports
// true exactly once: on the decision that completes the session. A decision
// for any other index than the current one is rejected, so a single gesture
// can never advance twice.
func (s *Session) Decide(index int, d Direction) (bool, error) {
	if s.Complete() {
		return false, ErrSessionComplete
	}
	if _, err := ParseDirection(string(d)); err != nil {
		return false, err
	}
	if index != s.CurrentIndex {
		return false, ErrStaleDecision
	}

	if d == DirectionRight {
		s.KnowCount++
	} else {
		s.StillLearningCount++
	}
	s.CurrentIndex++
	s.Side = SideTerm
	return s.Complete(), nil
}

// Release applies a drag released at dx. Below the threshold nothing
// changes and the returned bool is false.
func (s *Session) Release(index int, dx, threshold float64) (decided bool, completed bool, err error) {
	if s.Complete() {
		return false, false, ErrSessionComplete
	}
	if index != s.CurrentIndex {
		return false, false, ErrStaleDecision
	}
	d, ok := ClassifyRelease(dx, threshold)
	if !ok {
		return false, false, nil
	}
	completed, err = s.Decide(index, d)
	return err == nil, completed, err
}

// Result is what a finished play-through hands to the results view.
type Result struct {
	SetID              string
	SetTitle           string
	KnowCount          int
	StillLearningCount int
	TotalCards         int
	// Proficiency is nil for a set without cards.
	Proficiency *float64
}

func (s *Session) Result() Result {
	r := Result{
		SetID:              s.SetPublicID,
		SetTitle:           s.SetTitle,
		KnowCount:          s.KnowCount,
		StillLearningCount: s.StillLearningCount,
		TotalCards:         s.Total(),
	}
	if p, ok := Proficiency(s.KnowCount, s.Total()); ok {
		r.Proficiency = &p
	}
	return r
}

// CardView is the visible face of the current card.
type CardView struct {
	ID   string
	Side Side
	Text string
}

// State is a snapshot of a session for clients.
type State struct {
	SessionID          string
	SetID              string
	SetTitle           string
	Index              int
	Total              int
	KnowCount          int
	StillLearningCount int
	Complete           bool
	Card               *CardView `json:",omitempty"`
	Result             *Result   `json:",omitempty"`
}

func (s *Session) State() State {
	st := State{
		SessionID:          s.ID,
		SetID:              s.SetPublicID,
		SetTitle:           s.SetTitle,
		Index:              s.CurrentIndex,
		Total:              s.Total(),
		KnowCount:          s.KnowCount,
		StillLearningCount: s.StillLearningCount,
		Complete:           s.Complete(),
	}
	if st.Complete {
		r := s.Result()
		st.Result = &r
		return st
	}

	card := s.Cards[s.CurrentIndex]
	view := CardView{ID: card.PublicID, Side: s.Side, Text: card.Term}
	if s.Side == SideDefinition {
		view.Text = card.Definition
	}
	st.Card = &view
	return st
}
