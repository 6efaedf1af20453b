package review

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrewpaige1/flipsnap-api/models"
)

func testCards(n int) []models.Flashcard {
	cards := make([]models.Flashcard, n)
	for i := range cards {
		cards[i] = models.Flashcard{
			Model:      gorm.Model{ID: uint(i + 1)},
			PublicID:   fmt.Sprintf("card-%d", i),
			Term:       fmt.Sprintf("term %d", i),
			Definition: fmt.Sprintf("definition %d", i),
		}
	}
	return cards
}

func newTestSession(n int) *Session {
	set := models.FlashcardSet{Model: gorm.Model{ID: 3}, PublicID: "set-3", Title: "Biology"}
	return NewSession("s1", 1, set, testCards(n), time.Now())
}

func TestProficiency(t *testing.T) {
	tests := []struct {
		name   string
		know   int
		total  int
		want   float64
		wantOK bool
	}{
		{name: "three of five", know: 3, total: 5, want: 60, wantOK: true},
		{name: "two of three rounds up", know: 2, total: 3, want: 66.67, wantOK: true},
		{name: "one of three rounds down", know: 1, total: 3, want: 33.33, wantOK: true},
		{name: "all known", know: 4, total: 4, want: 100, wantOK: true},
		{name: "none known", know: 0, total: 7, want: 0, wantOK: true},
		{name: "empty set never divides", know: 0, total: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Proficiency(tt.know, tt.total)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyRelease(t *testing.T) {
	tests := []struct {
		name   string
		dx     float64
		want   Direction
		wantOK bool
	}{
		{name: "119 right snaps back", dx: 119},
		{name: "exactly 120 snaps back", dx: 120},
		{name: "121 right decides right", dx: 121, want: DirectionRight, wantOK: true},
		{name: "119 left snaps back", dx: -119},
		{name: "exactly -120 snaps back", dx: -120},
		{name: "121 left decides left", dx: -121, want: DirectionLeft, wantOK: true},
		{name: "no movement", dx: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyRelease(tt.dx, DefaultSwipeThreshold)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSession_PlayThrough(t *testing.T) {
	s := newTestSession(5)
	decisions := []Direction{DirectionRight, DirectionLeft, DirectionRight, DirectionRight, DirectionLeft}

	for i, d := range decisions {
		require.False(t, s.Complete())
		completed, err := s.Decide(i, d)
		require.NoError(t, err)
		assert.Equal(t, i == len(decisions)-1, completed)
	}

	assert.True(t, s.Complete())
	assert.Equal(t, 3, s.KnowCount)
	assert.Equal(t, 2, s.StillLearningCount)

	r := s.Result()
	require.NotNil(t, r.Proficiency)
	assert.Equal(t, 60.0, *r.Proficiency)
	assert.Equal(t, 5, r.TotalCards)
	assert.Equal(t, "Biology", r.SetTitle)

	_, err := s.Decide(5, DirectionRight)
	assert.ErrorIs(t, err, ErrSessionComplete)
	assert.ErrorIs(t, s.Flip(), ErrSessionComplete)
}

func TestSession_FlipDoesNotAdvance(t *testing.T) {
	s := newTestSession(2)

	require.NoError(t, s.Flip())
	st := s.State()
	assert.Equal(t, 0, st.Index)
	require.NotNil(t, st.Card)
	assert.Equal(t, SideDefinition, st.Card.Side)
	assert.Equal(t, "definition 0", st.Card.Text)

	require.NoError(t, s.Flip())
	assert.Equal(t, "term 0", s.State().Card.Text)

	require.NoError(t, s.Flip())
	_, err := s.Decide(0, DirectionLeft)
	require.NoError(t, err)
	st = s.State()
	assert.Equal(t, SideTerm, st.Card.Side, "next card starts on its term")
	assert.Equal(t, "term 1", st.Card.Text)
	assert.Equal(t, 0, st.KnowCount)
	assert.Equal(t, 1, st.StillLearningCount)
}

func TestSession_StaleDecisionDoesNotDoubleAdvance(t *testing.T) {
	s := newTestSession(3)

	_, err := s.Decide(0, DirectionRight)
	require.NoError(t, err)

	_, err = s.Decide(0, DirectionRight)
	assert.ErrorIs(t, err, ErrStaleDecision)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, 1, s.KnowCount)
}

func TestSession_Release(t *testing.T) {
	s := newTestSession(2)

	decided, completed, err := s.Release(0, 119, DefaultSwipeThreshold)
	require.NoError(t, err)
	assert.False(t, decided)
	assert.False(t, completed)
	assert.Equal(t, 0, s.CurrentIndex)

	decided, completed, err = s.Release(0, -121, DefaultSwipeThreshold)
	require.NoError(t, err)
	assert.True(t, decided)
	assert.False(t, completed)
	assert.Equal(t, 1, s.StillLearningCount)

	decided, completed, err = s.Release(1, 300, DefaultSwipeThreshold)
	require.NoError(t, err)
	assert.True(t, decided)
	assert.True(t, completed)
	assert.Equal(t, 1, s.KnowCount)
}

func TestSession_InvalidDirection(t *testing.T) {
	s := newTestSession(1)
	_, err := s.Decide(0, Direction("up"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, 0, s.CurrentIndex)
}

func TestSession_ZeroCards(t *testing.T) {
	s := newTestSession(0)

	assert.True(t, s.Complete())
	st := s.State()
	assert.True(t, st.Complete)
	assert.Nil(t, st.Card)
	require.NotNil(t, st.Result)
	assert.Nil(t, st.Result.Proficiency)

	_, err := s.Decide(0, DirectionRight)
	assert.ErrorIs(t, err, ErrSessionComplete)
}
