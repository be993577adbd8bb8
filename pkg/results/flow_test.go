package results

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/round"
	"github.com/decker502/pratica/pkg/utils"
)

// 一个回合：正确分配 Xilema/Floema 后确认，进入通过模式的结果舞台
func TestSingleRoundPassFlow(t *testing.T) {
	c := &content.Content{
		Result: content.DefaultResultConfig(),
		Rounds: []content.Round{{
			ID: 1,
			References: []content.Reference{
				{ID: "1", Label: "Xilema", Locked: true},
				{ID: "2", Label: "Floema", Locked: true},
			},
			Hotspots: []content.Hotspot{
				{ID: "h1", Position: utils.Position{Top: utils.Percent(20), Left: utils.Percent(20)}, CorrectRefID: "1"},
				{ID: "h2", Position: utils.Position{Top: utils.Percent(70), Left: utils.Percent(70)}, CorrectRefID: "2"},
			},
		}},
	}
	session := game.NewSession(c)
	session.Start(0)
	cur, ok := session.CurrentRound()
	require.True(t, ok)

	cfg := config.DefaultGameConfig()
	ctrl := round.NewController(session, cur, cfg.Round, round.Deps{})
	teardown := ctrl.Setup()

	ctrl.SelectReference("1")
	require.NoError(t, ctrl.ClickHotspot("h1"))
	ctrl.SelectReference("2")
	require.NoError(t, ctrl.ClickHotspot("h2"))

	out, err := ctrl.Check()
	require.NoError(t, err)
	assert.True(t, out.FullyCorrect)

	last, err := ctrl.Confirm()
	require.NoError(t, err)
	assert.True(t, last)
	assert.Equal(t, 1, session.Scorer().CorrectCount())
	teardown()

	verdict := session.Verdict()
	assert.Equal(t, game.Verdict{Percent: 100, Passed: true, Correct: 1, Total: 1}, verdict)

	stage := NewStage(verdict, c.Result, testLayout(), cfg.Results, monoMeasure, rand.New(rand.NewSource(42)))
	stage.Open()
	assert.Equal(t, ModePass, stage.Mode())
	assert.Len(t, stage.Items(), 1)
}
