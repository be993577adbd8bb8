package results

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/utils"
)

func testLayout() Layout {
	return Layout{
		Stage:      utils.Rect{Left: 0, Top: 0, Width: 1280, Height: 720},
		Caption:    utils.Rect{Left: 490, Top: 24, Width: 300, Height: 80},
		Actions:    utils.Rect{Left: 1110, Top: 24, Width: 150, Height: 156},
		DPad:       utils.Rect{Left: 1088, Top: 528, Width: 168, Height: 168},
		LineHeight: 20,
	}
}

var assistantAvatar = utils.Rect{Left: 20, Top: 580, Width: 120, Height: 120}

func monoMeasure(s string) float64 { return float64(len([]rune(s))) * 8 }

func newTestStage(t *testing.T, verdict game.Verdict, seed int64) *Stage {
	t.Helper()
	s := NewStage(verdict, content.DefaultResultConfig(), testLayout(),
		config.DefaultGameConfig().Results, monoMeasure, rand.New(rand.NewSource(seed)))
	s.SetAssistant(assistantAvatar, utils.Rect{}, false)
	s.Open()
	return s
}

// landOn 把头像放到标记左侧一像素处，再向右移动一步触发碰撞
func landOn(s *Stage, marker utils.Rect) {
	s.avatar = s.avatar.MoveTo(marker.Left-1, marker.Top)
	s.MoveHorizontal(1)
}

func strictOverlap(a, b utils.Rect) bool {
	ox, oy := a.Overlap(b)
	return ox > 0 && oy > 0
}

func TestMarkerCountByMode(t *testing.T) {
	tests := []struct {
		name    string
		verdict game.Verdict
		mode    Mode
		markers int
	}{
		{"pass", game.ComputeVerdict(2, 3), ModePass, 1},
		{"fail", game.ComputeVerdict(1, 3), ModeFail, 3},
		{"no rounds", game.ComputeVerdict(0, 0), ModeNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStage(t, tt.verdict, 7)
			assert.Equal(t, tt.mode, s.Mode())
			assert.Len(t, s.Items(), tt.markers)
			assert.Equal(t, tt.mode != ModeNone, s.HintVisible())
		})
	}
}

func TestHintHiddenWhenBlank(t *testing.T) {
	cfg := content.DefaultResultConfig()
	cfg.Hint = "   "
	s := NewStage(game.ComputeVerdict(1, 1), cfg, testLayout(), config.DefaultGameConfig().Results, monoMeasure, nil)
	s.Open()
	assert.False(t, s.HintVisible())
}

func TestOpenCentersAvatar(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 0), 1)
	cx, cy := s.Avatar().Center()
	assert.Equal(t, 640.0, cx)
	assert.Equal(t, 360.0, cy)
	assert.True(t, s.ConsumeTeleport())
	assert.False(t, s.ConsumeTeleport())
}

func TestMarkersAvoidChromeAndEachOther(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := newTestStage(t, game.ComputeVerdict(0, 4), seed)
		items := s.Items()
		require.Len(t, items, 3)

		layout := testLayout()
		for i, it := range items {
			m := it.Marker
			assert.False(t, m.Intersects(s.Avatar()), "seed %d marker %d on avatar", seed, i)
			assert.False(t, m.Intersects(layout.Actions.Pad(10)), "seed %d marker %d on actions", seed, i)
			assert.False(t, m.Intersects(layout.DPad.Pad(10)), "seed %d marker %d on d-pad", seed, i)
			assert.False(t, m.Intersects(assistantAvatar.Pad(10)), "seed %d marker %d on assistant", seed, i)
			assert.False(t, m.Intersects(layout.Caption.Pad(10)), "seed %d marker %d on caption", seed, i)
			assert.GreaterOrEqual(t, m.Left, 10.0)
			assert.LessOrEqual(t, m.Right(), 1270.0)
			for j := i + 1; j < len(items); j++ {
				assert.False(t, m.Intersects(items[j].Marker.Pad(6)), "seed %d markers %d/%d", seed, i, j)
			}
		}
	}
}

func TestWrapAroundHorizontal(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 0), 1)
	s.ConsumeTeleport()

	s.MoveHorizontal(-700)
	assert.Equal(t, 1280.0-18, s.Avatar().Left)
	assert.True(t, s.ConsumeTeleport())

	s.MoveHorizontal(60)
	assert.Equal(t, 18.0-96, s.Avatar().Left)
	assert.True(t, s.ConsumeTeleport())

	s.MoveHorizontal(60)
	assert.Equal(t, 18.0-96+60, s.Avatar().Left)
	assert.False(t, s.ConsumeTeleport())
}

func TestWrapAroundVertical(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 0), 1)

	s.MoveVertical(-420)
	assert.Equal(t, 720.0-18, s.Avatar().Top)

	s.MoveVertical(60)
	assert.Equal(t, 18.0-96, s.Avatar().Top)
}

func TestHorizontalMoveCarriesCaption(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 0), 1)
	before := s.Caption()

	s.MoveVertical(60)
	assert.Equal(t, before, s.Caption())

	s.MoveHorizontal(-120)
	assert.Equal(t, before.Left-120, s.Caption().Left)
	assert.Equal(t, before.Top, s.Caption().Top)

	s.MoveHorizontal(-400)
	assert.Equal(t, 10.0, s.Caption().Left, "caption stays inside the stage")
}

func TestNoCollisionBeforeFirstMove(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(3, 3), 3)
	require.Len(t, s.items, 1)

	s.items[0].Marker = s.avatar
	s.checkCollisions()
	assert.False(t, s.items[0].Collected)

	s.MoveVertical(1)
	assert.True(t, s.items[0].Collected)
	assert.Equal(t, content.DefaultResultConfig().CelebrateMessage, s.items[0].Message)
	assert.True(t, s.items[0].Pinned)
}

func TestSadMessagesFollowCollectionOrder(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(1, 4), 11)
	require.Len(t, s.items, 3)
	s.items[0].Marker = utils.Rect{Left: 200, Top: 300, Width: 52, Height: 52}
	s.items[1].Marker = utils.Rect{Left: 600, Top: 300, Width: 52, Height: 52}
	s.items[2].Marker = utils.Rect{Left: 900, Top: 450, Width: 52, Height: 52}

	sad := content.DefaultResultConfig().SadMessages
	for n, idx := range []int{2, 0, 1} {
		landOn(s, s.items[idx].Marker)
		require.True(t, s.items[idx].Collected, "marker %d", idx)
		assert.Equal(t, sad[n], s.items[idx].Message)
	}
	assert.Equal(t, 3, s.CollectedCount())
}

func TestPinnedBubblesNeverOverlap(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 4), 5)
	assistantBubble := utils.Rect{Left: 160, Top: 580, Width: 360, Height: 100}
	s.SetAssistant(assistantAvatar, assistantBubble, true)

	s.items[0].Marker = utils.Rect{Left: 300, Top: 300, Width: 52, Height: 52}
	s.items[1].Marker = utils.Rect{Left: 420, Top: 380, Width: 52, Height: 52}
	s.items[2].Marker = utils.Rect{Left: 700, Top: 500, Width: 52, Height: 52}

	for i := range s.items {
		if !s.items[i].Collected {
			landOn(s, s.items[i].Marker)
		}
	}
	require.Equal(t, 3, s.CollectedCount())

	minTop := s.minTop()
	for i, a := range s.items {
		assert.GreaterOrEqual(t, a.Bubble.Top, minTop, "bubble %d above caption", i)
		assert.GreaterOrEqual(t, a.Bubble.Left, 10.0)
		assert.LessOrEqual(t, a.Bubble.Right(), 1270.0)
		assert.LessOrEqual(t, a.Bubble.Bottom(), 710.0)
		assert.False(t, strictOverlap(a.Bubble, assistantBubble), "bubble %d under assistant bubble", i)
		for j := i + 1; j < len(s.items); j++ {
			assert.False(t, strictOverlap(a.Bubble, s.items[j].Bubble), "bubbles %d/%d overlap", i, j)
		}
	}
}

func TestAssistantBubblePushesIntoNeighbour(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 4), 5)
	pin := func(i int, r utils.Rect) {
		s.items[i].Collected = true
		s.items[i].Pinned = true
		s.items[i].Bubble = r
	}
	pin(0, utils.Rect{Left: 300, Top: 300, Width: 200, Height: 80})
	pin(1, utils.Rect{Left: 300, Top: 190, Width: 200, Height: 60})

	assistantBubble := utils.Rect{Left: 250, Top: 280, Width: 360, Height: 100}
	s.SetAssistant(assistantAvatar, assistantBubble, true)

	// 上移避开助手气泡后撞上邻居，上方空间不足，最终侧移
	a, b := s.items[0].Bubble, s.items[1].Bubble
	assert.Equal(t, utils.Rect{Left: 510, Top: 116, Width: 200, Height: 80}, a)
	assert.Equal(t, utils.Rect{Left: 300, Top: 190, Width: 200, Height: 60}, b)
	assert.False(t, a.Intersects(b))
	assert.False(t, a.Intersects(assistantBubble))
	assert.False(t, b.Intersects(assistantBubble))
}

func TestReflowSeparatesStackedBubbles(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 4), 5)
	for i := 0; i < 2; i++ {
		s.items[i].Collected = true
		s.items[i].Pinned = true
		s.items[i].Bubble = utils.Rect{Left: 300, Top: 300, Width: 200, Height: 80}
	}

	s.Reflow()

	assert.Equal(t, 390.0, s.items[0].Bubble.Top)
	assert.False(t, s.items[0].Bubble.Intersects(s.items[1].Bubble))
}

func TestAssistantBubbleTriggersReflow(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 4), 5)
	s.items[0].Collected = true
	s.items[0].Pinned = true
	s.items[0].Bubble = utils.Rect{Left: 300, Top: 300, Width: 200, Height: 80}

	assistantBubble := utils.Rect{Left: 250, Top: 280, Width: 360, Height: 100}
	s.SetAssistant(assistantAvatar, assistantBubble, true)

	b := s.items[0].Bubble
	assert.Equal(t, 180.0, b.Top, "moved above the assistant bubble")
	assert.False(t, b.Intersects(assistantBubble))
}

func TestBubbleAvoidsChromeSideways(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 4), 5)
	// 标题下方没有空间上移，只能侧移
	r := s.clampPinned(utils.Rect{Left: 1000, Top: 120, Width: 200, Height: 80})

	assert.False(t, r.Intersects(testLayout().Actions.Pad(10)))
	assert.Equal(t, 1110.0-10-10-200, r.Left)
}

func TestDragCoalescesPerFrame(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 0), 1)
	start := s.Avatar()

	assert.False(t, s.BeginDrag(1, 1150, 600), "drag on d-pad is blocked")
	assert.False(t, s.BeginDrag(1, 600, 50), "drag on caption is blocked")
	require.True(t, s.BeginDrag(1, 300, 300))
	assert.False(t, s.BeginDrag(2, 400, 300), "only one pointer")

	s.DragMove(1, 310, 305)
	s.DragMove(1, 330, 295)
	s.DragMove(2, 900, 900)
	assert.Equal(t, start, s.Avatar(), "nothing applied before flush")

	s.Flush()
	assert.Equal(t, start.Left+30, s.Avatar().Left)
	assert.Equal(t, start.Top-5, s.Avatar().Top)

	s.Flush()
	assert.Equal(t, start.Left+30, s.Avatar().Left)

	s.DragMove(1, 400, 295)
	s.EndDrag(2)
	assert.True(t, s.Dragging())
	s.EndDrag(1)
	assert.False(t, s.Dragging())
	s.Flush()
	assert.Equal(t, start.Left+30, s.Avatar().Left, "pending delta dropped on release")
}

func TestExitStopsMovement(t *testing.T) {
	s := newTestStage(t, game.ComputeVerdict(0, 0), 1)
	require.True(t, s.BeginDrag(1, 300, 300))

	s.Restart()
	assert.Equal(t, ExitRestart, s.Exit())
	assert.False(t, s.Dragging())

	before := s.Avatar()
	s.MoveHorizontal(60)
	assert.Equal(t, before, s.Avatar())

	s2 := newTestStage(t, game.ComputeVerdict(0, 0), 1)
	s2.Close()
	assert.Equal(t, ExitClose, s2.Exit())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "pass", ModePass.String())
	assert.Equal(t, "fail", ModeFail.String())
	assert.Equal(t, "none", ModeNone.String())
}
