package round

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/hotspot"
	"github.com/decker502/pratica/pkg/utils"
)

type fakeAssistant struct {
	manual   bool
	speeches []string
	hidden   int
}

func (a *fakeAssistant) SetManualOnly(manual bool) { a.manual = manual }
func (a *fakeAssistant) ForceReappear(html string) { a.speeches = append(a.speeches, html) }
func (a *fakeAssistant) Hide()                     { a.hidden++ }

type fakeViewers struct{ disposed int }

func (v *fakeViewers) DisposeAll() { v.disposed++ }

type fakeCelebrator struct{ bursts int }

func (c *fakeCelebrator) Celebrate() { c.bursts++ }

type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

func xilemaRound(id int) content.Round {
	return content.Round{
		ID:        id,
		ImageURL:  "data/images/caule.png",
		IntroText: "Identifique as estruturas.",
		References: []content.Reference{
			{ID: "1", Label: "Xilema", Locked: true},
			{ID: "2", Label: "Floema", Locked: true},
		},
		Hotspots: []content.Hotspot{
			{ID: "h1", Position: utils.Position{Top: utils.Percent(30), Left: utils.Percent(40)}, CorrectRefID: "1"},
			{ID: "h2", Position: utils.Position{Top: utils.Percent(60), Left: utils.Percent(55)}, CorrectRefID: "2"},
		},
	}
}

type harness struct {
	session    *game.Session
	ctrl       *Controller
	assistant  *fakeAssistant
	viewers    *fakeViewers
	celebrator *fakeCelebrator
	clipboard  *fakeClipboard
	reduced    bool
	teardown   func()
}

func newHarness(t *testing.T, rounds ...content.Round) *harness {
	t.Helper()
	if len(rounds) == 0 {
		rounds = []content.Round{xilemaRound(1)}
	}
	h := &harness{
		session:    game.NewSession(&content.Content{Rounds: rounds, Result: content.DefaultResultConfig()}),
		assistant:  &fakeAssistant{},
		viewers:    &fakeViewers{},
		celebrator: &fakeCelebrator{},
		clipboard:  &fakeClipboard{},
	}
	h.session.Start(0)
	cur, ok := h.session.CurrentRound()
	require.True(t, ok)
	h.ctrl = NewController(h.session, cur, config.DefaultGameConfig().Round, Deps{
		Assistant:     h.assistant,
		Viewers:       h.viewers,
		Clipboard:     h.clipboard,
		Celebrator:    h.celebrator,
		ReducedMotion: func() bool { return h.reduced },
	})
	h.teardown = h.ctrl.Setup()
	return h
}

func TestSetupPreparesCollaborators(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, StateInteracting, h.ctrl.State())
	assert.Equal(t, 1, h.viewers.disposed)
	assert.True(t, h.assistant.manual)
	assert.Equal(t, []string{"Identifique as estruturas."}, h.assistant.speeches)
	require.NotNil(t, h.ctrl.Registry())
}

func TestTeardownRunsOnce(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	h.ctrl.SelectReference("1")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	require.Equal(t, 1, h.ctrl.Registry().PendingChecks())

	h.teardown()
	h.teardown()

	assert.Equal(t, StateClosed, h.ctrl.State())
	assert.Equal(t, 0, h.ctrl.Registry().PendingChecks())
	assert.Empty(t, h.ctrl.MenuHotspot())
	assert.Equal(t, 1, h.assistant.hidden, "assistant bubble is hidden once on teardown")
	_, err := h.ctrl.Check()
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestSelectReferenceToggles(t *testing.T) {
	h := newHarness(t)

	h.ctrl.SelectReference("1")
	assert.Equal(t, content.RefID("1"), h.ctrl.Selected())
	h.ctrl.SelectReference("1")
	assert.Equal(t, content.NoRef, h.ctrl.Selected())

	h.ctrl.SelectReference("99")
	assert.Equal(t, content.NoRef, h.ctrl.Selected())
}

func TestClickHotspotAssignsSelection(t *testing.T) {
	h := newHarness(t)

	h.ctrl.SelectReference("2")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))

	ref, ok := h.ctrl.Registry().Assignment("h1")
	require.True(t, ok)
	assert.Equal(t, content.RefID("2"), ref)
	assert.Equal(t, content.NoRef, h.ctrl.Selected(), "selection is consumed")
	assert.Equal(t, hotspot.StatusPending, h.ctrl.Registry().Status("h1"))
}

func TestClickUnknownHotspotKeepsSelection(t *testing.T) {
	h := newHarness(t)

	h.ctrl.SelectReference("2")
	err := h.ctrl.ClickHotspot("h99")
	assert.ErrorIs(t, err, hotspot.ErrUnknownHotspot)
	assert.Equal(t, content.RefID("2"), h.ctrl.Selected())

	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	ref, ok := h.ctrl.Registry().Assignment("h1")
	require.True(t, ok)
	assert.Equal(t, content.RefID("2"), ref)
}

func TestMenuAssignment(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.ClickHotspot("h2"))
	assert.Equal(t, "h2", h.ctrl.MenuHotspot())

	entries := h.ctrl.MenuEntries()
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Current)
	assert.Equal(t, 2, entries[1].Ordinal)

	require.NoError(t, h.ctrl.ChooseFromMenu("2"))
	assert.Empty(t, h.ctrl.MenuHotspot())

	h.ctrl.OpenMenu("h2")
	entries = h.ctrl.MenuEntries()
	assert.True(t, entries[1].Current)
	h.ctrl.CloseMenu()
	assert.Nil(t, h.ctrl.MenuEntries())

	assert.ErrorIs(t, h.ctrl.ChooseFromMenu("1"), ErrWrongState)
}

func TestAddModeCreatesHotspot(t *testing.T) {
	h := newHarness(t)
	mapper := utils.NewCoordinateMapper(100, 100,
		utils.Rect{Left: 0, Top: 0, Width: 200, Height: 200},
		utils.Rect{Left: 0, Top: 0, Width: 200, Height: 200})

	_, err := h.ctrl.ClickImage(10, 10, mapper)
	assert.ErrorIs(t, err, ErrWrongState)

	h.ctrl.ToggleAddMode()
	require.True(t, h.ctrl.AddMode())
	require.Len(t, h.clipboard.texts, 1)
	assert.Contains(t, h.clipboard.texts[0], `"references": [`)
	assert.Equal(t, game.StrButtonAddCopied, h.ctrl.AddButtonLabelKey())

	// 添加模式下点击热点无效
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	assert.Empty(t, h.ctrl.MenuHotspot())

	_, err = h.ctrl.ClickImage(500, 500, mapper)
	assert.ErrorIs(t, err, ErrOutsideImage)
	assert.True(t, h.ctrl.AddMode())

	h.ctrl.SelectReference("2")
	created, err := h.ctrl.ClickImage(103, 49, mapper)
	require.NoError(t, err)
	assert.Equal(t, "h3", created.ID)
	assert.Equal(t, content.RefID("2"), created.CorrectRefID)
	assert.Equal(t, utils.Percent(25), created.Position.Top)
	assert.Equal(t, utils.Percent(52), created.Position.Left)
	assert.False(t, h.ctrl.AddMode())
	require.Len(t, h.clipboard.texts, 2)
	assert.Equal(t, `{"id":"h3","top":"25%","left":"52%","correctRefId":0},`, h.clipboard.texts[1])

	h.ctrl.Update(1)
	assert.Equal(t, game.StrButtonAdd, h.ctrl.AddButtonLabelKey())
}

func TestAddModeClipboardFailureIsSilent(t *testing.T) {
	h := newHarness(t)
	h.clipboard.err = errors.New("denied")

	h.ctrl.ToggleAddMode()
	assert.True(t, h.ctrl.AddMode())
	assert.Equal(t, game.StrButtonAddActive, h.ctrl.AddButtonLabelKey())
}

func TestReferencesEditing(t *testing.T) {
	h := newHarness(t)

	ref, err := h.ctrl.AddReference("  Câmbio ")
	require.NoError(t, err)
	assert.Equal(t, content.RefID("3"), ref.ID)
	assert.Equal(t, "Câmbio", ref.Label)

	require.NoError(t, h.ctrl.EditLabel("3", "Medula"))
	assert.ErrorIs(t, h.ctrl.EditLabel("1", "x"), hotspot.ErrReferenceLocked)
}

func TestCheckFullyCorrect(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SelectReference("1")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	h.ctrl.SelectReference("2")
	require.NoError(t, h.ctrl.ClickHotspot("h2"))

	out, err := h.ctrl.Check()
	require.NoError(t, err)
	assert.True(t, out.FullyCorrect)
	assert.Equal(t, StateResolved, h.ctrl.State())
	require.Len(t, out.Result.Items, 2)
	assert.Equal(t, "Xilema", out.Result.Items[0].ChosenLabel)
	assert.True(t, out.Result.Items[1].IsCorrect)
	assert.Equal(t, hotspot.StatusCorrect, h.ctrl.Registry().Status("h1"))

	review := h.session.Review()
	require.Len(t, review, 1)
	assert.Equal(t, 1, review[0].RoundID)

	assert.ErrorIs(t, h.ctrl.Retry(), ErrWrongState)
}

func TestPlaceholderHotspotDoesNotBlockCheck(t *testing.T) {
	c, err := content.Parse([]byte(`[{
		"references": [{"id": 1, "label": "Xilema"}, {"id": 2, "label": "Floema"}],
		"hotspots": [
			{"id": "h1", "top": "30%", "left": "40%", "correctRefId": 1},
			{"id": "h2", "top": "60%", "left": "55%", "correctRefId": 2},
			{"id": "h3", "top": "50%", "left": "50%", "correctRefId": 0}
		]
	}]`))
	require.NoError(t, err)
	require.NotEmpty(t, c.Warnings)

	h := newHarness(t, c.Rounds...)
	h.ctrl.SelectReference("1")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	h.ctrl.SelectReference("2")
	require.NoError(t, h.ctrl.ClickHotspot("h2"))

	out, err := h.ctrl.Check()
	require.NoError(t, err)
	assert.True(t, out.FullyCorrect)
}

func TestCheckRequiresEveryAnswerableHotspot(t *testing.T) {
	tests := []struct {
		name    string
		assign  map[string]content.RefID
		correct bool
	}{
		{"none assigned", nil, false},
		{"one missing", map[string]content.RefID{"h1": "1"}, false},
		{"one wrong", map[string]content.RefID{"h1": "1", "h2": "1"}, false},
		{"swapped", map[string]content.RefID{"h1": "2", "h2": "1"}, false},
		{"all right", map[string]content.RefID{"h1": "1", "h2": "2"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			for id, ref := range tt.assign {
				h.ctrl.SelectReference(ref)
				require.NoError(t, h.ctrl.ClickHotspot(id))
			}
			out, err := h.ctrl.Check()
			require.NoError(t, err)
			assert.Equal(t, tt.correct, out.FullyCorrect)
		})
	}
}

func TestCheckWithoutAnswerableHotspotsFails(t *testing.T) {
	r := xilemaRound(1)
	for i := range r.Hotspots {
		r.Hotspots[i].CorrectRefID = content.NoRef
	}
	h := newHarness(t, r)

	out, err := h.ctrl.Check()
	require.NoError(t, err)
	assert.False(t, out.FullyCorrect)
	assert.Empty(t, out.Result.Items)
}

func TestUnassignedItemHasEmptyChosenLabel(t *testing.T) {
	h := newHarness(t)
	out, err := h.ctrl.Check()
	require.NoError(t, err)

	require.Len(t, out.Result.Items, 2)
	assert.Equal(t, content.NoRef, out.Result.Items[0].ChosenRefID)
	assert.Empty(t, out.Result.Items[0].ChosenLabel)
	assert.Equal(t, "Xilema", out.Result.Items[0].CorrectLabel)
}

func TestRetryThenCheckReplacesReview(t *testing.T) {
	h := newHarness(t)
	_, err := h.ctrl.Check()
	require.NoError(t, err)
	require.NoError(t, h.ctrl.Retry())
	assert.Equal(t, StateInteracting, h.ctrl.State())

	h.ctrl.SelectReference("1")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	_, err = h.ctrl.Check()
	require.NoError(t, err)

	review := h.session.Review()
	require.Len(t, review, 1)
	assert.Equal(t, "Xilema", review[0].Items[0].ChosenLabel)
}

func TestConfirmRecordsOutcome(t *testing.T) {
	h := newHarness(t, xilemaRound(1), xilemaRound(2))

	_, err := h.ctrl.Confirm()
	assert.ErrorIs(t, err, ErrWrongState)

	_, err = h.ctrl.Check()
	require.NoError(t, err)
	last, err := h.ctrl.Confirm()
	require.NoError(t, err)
	assert.False(t, last)
	assert.Equal(t, 0, h.session.Scorer().CorrectCount())
	assert.Equal(t, 1, h.session.Scorer().RoundsPlayed())

	_, err = h.ctrl.Confirm()
	assert.ErrorIs(t, err, ErrWrongState, "confirm only once per check")
}

func TestCelebrationIsDelayed(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SelectReference("1")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	h.ctrl.SelectReference("2")
	require.NoError(t, h.ctrl.ClickHotspot("h2"))
	_, err := h.ctrl.Check()
	require.NoError(t, err)

	h.ctrl.Update(0.1)
	assert.Equal(t, 0, h.celebrator.bursts)
	h.ctrl.Update(0.1)
	assert.Equal(t, 1, h.celebrator.bursts)
	h.ctrl.Update(1)
	assert.Equal(t, 1, h.celebrator.bursts)
}

func TestCelebrationSkippedUnderReducedMotion(t *testing.T) {
	h := newHarness(t)
	h.reduced = true
	h.ctrl.SelectReference("1")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))
	h.ctrl.SelectReference("2")
	require.NoError(t, h.ctrl.ClickHotspot("h2"))
	_, err := h.ctrl.Check()
	require.NoError(t, err)

	h.ctrl.Update(1)
	assert.Equal(t, 0, h.celebrator.bursts)
}

func TestAutoValidationThroughUpdate(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SelectReference("1")
	require.NoError(t, h.ctrl.ClickHotspot("h1"))

	h.ctrl.Update(1.5)
	assert.Equal(t, hotspot.StatusPending, h.ctrl.Registry().Status("h1"))
	h.ctrl.Update(0.6)
	assert.Equal(t, hotspot.StatusCorrect, h.ctrl.Registry().Status("h1"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "resolved", StateResolved.String())
	assert.Equal(t, "State(42)", State(42).String())
}
