package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/pratica/pkg/content"
)

func threeRounds() *content.Content {
	return &content.Content{Rounds: []content.Round{{ID: 1}, {ID: 2}, {ID: 3}}}
}

func TestSessionAdvance(t *testing.T) {
	s := NewSession(threeRounds())
	s.Start(0)

	r, ok := s.CurrentRound()
	require.True(t, ok)
	assert.Equal(t, 1, r.ID)
	assert.False(t, s.IsLastRound())

	assert.True(t, s.Advance())
	assert.True(t, s.Advance())
	assert.True(t, s.IsLastRound())
	assert.False(t, s.Advance(), "no rounds after the last")
	assert.Equal(t, 2, s.CurrentIndex())
	assert.Equal(t, 3, s.TotalPlayableRounds())
}

func TestSessionStartResets(t *testing.T) {
	s := NewSession(threeRounds())
	s.Start(1)
	assert.Equal(t, 1, s.CurrentIndex())

	s.Scorer().RecordRoundOutcome(true)
	s.RecordReview(RoundResult{RoundID: 2})

	s.Start(99)
	assert.Equal(t, 0, s.CurrentIndex(), "out-of-range start falls back to the first round")
	assert.Equal(t, 0, s.Scorer().CorrectCount())
	assert.Empty(t, s.Review())
}

func TestRecordReviewReplacesSameRound(t *testing.T) {
	s := NewSession(threeRounds())
	s.Start(0)

	s.RecordReview(RoundResult{RoundID: 1, Items: []ResultItem{{HotspotID: "h1", IsCorrect: false}}})
	s.RecordReview(RoundResult{RoundID: 2})
	s.RecordReview(RoundResult{RoundID: 1, Items: []ResultItem{{HotspotID: "h1", IsCorrect: true}}})

	review := s.Review()
	require.Len(t, review, 2)
	assert.Equal(t, 1, review[0].RoundID, "replacement keeps the original position")
	assert.True(t, review[0].Items[0].IsCorrect)
}

func TestSessionVerdictUsesAllRounds(t *testing.T) {
	s := NewSession(threeRounds())
	s.Start(0)
	s.Scorer().RecordRoundOutcome(true)

	v := s.Verdict()
	assert.Equal(t, 33, v.Percent)
	assert.False(t, v.Passed)
	assert.Equal(t, 3, v.Total)
}

func TestNewSessionNilContentUsesFallback(t *testing.T) {
	s := NewSession(nil)
	assert.Equal(t, content.SourceFallback, s.Content().Source)
	assert.Equal(t, 1, s.TotalPlayableRounds())
}
