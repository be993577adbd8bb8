package results

import (
	"log"
	"math"

	"github.com/decker502/pratica/pkg/utils"
)

// collect 收集标记：固定消息气泡，避开界面元素和其他气泡，然后整体重排
func (s *Stage) collect(i int) {
	it := &s.items[i]
	switch s.mode {
	case ModePass:
		it.Message = s.result.CelebrateMessage
	default:
		it.Message = s.result.SadMessage(s.sadCount)
		s.sadCount++
	}

	it.Lines, it.Bubble = s.layoutBubble(it.Message)
	it.Bubble = it.Bubble.MoveTo(it.Marker.Left, math.Max(it.Marker.Top, s.minTop()))
	it.Collected = true
	it.Pinned = true
	log.Printf("[Results] Collected marker %d: %q", i, it.Message)

	it.Bubble = s.clampPinned(it.Bubble)
	it.Bubble = s.resolveOverlap(i, it.Bubble)
	s.repositionRemaining()
	s.Reflow()
}

// layoutBubble 按最大宽度折行并计算气泡尺寸（左上角为原点）
func (s *Stage) layoutBubble(msg string) ([]string, utils.Rect) {
	maxText := s.cfg.BubbleMaxWidth - 2*bubbleInset
	lines := utils.WrapText(msg, s.measure, maxText)
	if len(lines) == 0 {
		lines = []string{""}
	}
	w := math.Min(utils.MeasureLines(lines, s.measure)+2*bubbleInset, s.cfg.BubbleMaxWidth)
	h := float64(len(lines))*s.layout.LineHeight + 2*bubbleInset
	return lines, utils.Rect{Width: w, Height: h}
}

// clampToStage 保持在舞台内（边距 StagePad），上边界为 minTop
func (s *Stage) clampToStage(r utils.Rect) utils.Rect {
	st := s.layout.Stage
	pad := s.cfg.StagePad
	minTop := s.minTop()

	if r.Top < minTop {
		r.Top = minTop
	}
	dx, dy := 0.0, 0.0
	if r.Left < st.Left+pad {
		dx = st.Left + pad - r.Left
	} else if r.Right() > st.Right()-pad {
		dx = st.Right() - pad - r.Right()
	}
	if r.Top < minTop {
		dy = minTop - r.Top
	} else if r.Bottom() > st.Bottom()-pad {
		dy = st.Bottom() - pad - r.Bottom()
		if r.Top+dy < minTop {
			dy = minTop - r.Top
		}
	}
	return r.Translate(dx, dy)
}

// clampPinned 限制在舞台内并避开界面元素：上方有空间时上移，否则侧移
func (s *Stage) clampPinned(r utils.Rect) utils.Rect {
	r = s.clampToStage(r)
	pad := s.cfg.ChromePad
	minTop := s.minTop()
	stageLeft := s.layout.Stage.Left + s.cfg.StagePad

	for iter := 0; iter < s.cfg.ChromeIterations; iter++ {
		hit, ok := firstHit(r, s.forbiddenRects())
		if !ok {
			break
		}
		if desiredTop := hit.Top - pad - r.Height; desiredTop >= minTop {
			r.Top = desiredTop
		} else {
			ddx := (hit.Left - pad) - r.Right()
			if r.Left+ddx < stageLeft {
				ddx = (hit.Right() + pad) - r.Left
			}
			r.Left += ddx
		}
		r = s.clampToStage(r)
	}
	return r
}

func firstHit(r utils.Rect, rects []utils.Rect) (utils.Rect, bool) {
	for _, o := range rects {
		if r.Intersects(o) {
			return o, true
		}
	}
	return utils.Rect{}, false
}

// resolveOverlap 与其他固定气泡和可见的助手气泡分开：先下移，再上移（不超过 minTop），最后侧移
func (s *Stage) resolveOverlap(i int, r utils.Rect) utils.Rect {
	const extra = 10.0
	minTop := s.minTop()

	for iter := 0; iter < s.cfg.OverlapIterations; iter++ {
		moved := false
		for _, obs := range s.bubbleObstacles(i) {
			if !r.Intersects(obs) {
				continue
			}
			moved = true
			_, oy := r.Overlap(obs)
			shiftY := math.Ceil(oy + extra)

			r = s.clampPinned(r.Translate(0, shiftY))
			if !r.Intersects(obs) {
				continue
			}
			r.Top = math.Max(minTop, r.Top-shiftY*2)
			r = s.clampPinned(r)
			if !r.Intersects(obs) {
				continue
			}
			ox, _ := r.Overlap(obs)
			shiftX := math.Ceil(ox + extra)
			rcx, _ := r.Center()
			ocx, _ := obs.Center()
			if rcx < ocx {
				shiftX = -shiftX
			}
			r = s.clampPinned(r.Translate(shiftX, 0))
		}
		if !moved {
			break
		}
	}
	return r
}

func (s *Stage) bubbleObstacles(i int) []utils.Rect {
	var obs []utils.Rect
	for j, it := range s.items {
		if j != i && it.Pinned {
			obs = append(obs, it.Bubble.Pad(s.cfg.BubblePad))
		}
	}
	if s.assistantVisible && !s.assistantBubble.IsEmpty() {
		obs = append(obs, s.assistantBubble.Pad(s.cfg.AssistantPad))
	}
	return obs
}

// Reflow 多轮重排所有固定气泡
func (s *Stage) Reflow() {
	for pass := 0; pass < s.cfg.ReflowPasses; pass++ {
		for i := range s.items {
			if !s.items[i].Pinned {
				continue
			}
			b := s.clampPinned(s.items[i].Bubble)
			s.items[i].Bubble = s.resolveOverlap(i, b)
		}
	}
}
