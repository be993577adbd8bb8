package results

import (
	"github.com/decker502/pratica/pkg/utils"
)

// dragState 指针拖动状态；只跟踪一个指针，位移在每帧 Flush 时合并应用
type dragState struct {
	active    bool
	pointerID int
	lastX     float64
	lastY     float64
	pendingX  float64
	pendingY  float64
}

// Step 方向键 / 按钮每次移动的距离
func (s *Stage) Step() float64 { return s.cfg.MoveStep }

// MoveHorizontal 水平移动头像，标题气泡跟随
func (s *Stage) MoveHorizontal(dx float64) {
	s.moveBy(dx, 0)
}

// MoveVertical 垂直移动头像（标题气泡不动）
func (s *Stage) MoveVertical(dy float64) {
	s.moveBy(0, dy)
}

func (s *Stage) moveBy(dx, dy float64) {
	if s.exit != ExitNone || (dx == 0 && dy == 0) {
		return
	}
	s.avatar = s.avatar.Translate(dx, dy)
	s.wrap()
	if dx != 0 {
		s.followCaption()
	}
	s.hasMovedSinceOpen = true
	s.checkCollisions()
}

// wrap 头像完全移出舞台一侧后从另一侧出现，至少保留 WrapMargin 可见
func (s *Stage) wrap() {
	st := s.layout.Stage
	m := s.cfg.WrapMargin
	wrapped := false

	if s.avatar.Right() < st.Left+m {
		s.avatar.Left = st.Right() - m
		wrapped = true
	} else if s.avatar.Left > st.Right()-m {
		s.avatar.Left = st.Left + m - s.avatar.Width
		wrapped = true
	}
	if s.avatar.Bottom() < st.Top+m {
		s.avatar.Top = st.Bottom() - m
		wrapped = true
	} else if s.avatar.Top > st.Bottom()-m {
		s.avatar.Top = st.Top + m - s.avatar.Height
		wrapped = true
	}
	if wrapped {
		s.teleported = true
	}
}

// followCaption 标题气泡水平居中于头像，限制在舞台内
func (s *Stage) followCaption() {
	st := s.layout.Stage
	pad := s.cfg.StagePad
	cx, _ := s.avatar.Center()
	left := cx - s.caption.Width/2
	maxLeft := st.Right() - pad - s.caption.Width
	minLeft := st.Left + pad
	if maxLeft < minLeft {
		maxLeft = minLeft
	}
	s.caption.Left = utils.Clamp(left, minLeft, maxLeft)
}

// BeginDrag 开始拖动；落在按钮、方向键或气泡上时不开始
func (s *Stage) BeginDrag(pointerID int, x, y float64) bool {
	if s.drag.active || s.exit != ExitNone {
		return false
	}
	if s.blocksDrag(x, y) {
		return false
	}
	s.drag = dragState{active: true, pointerID: pointerID, lastX: x, lastY: y}
	return true
}

func (s *Stage) blocksDrag(x, y float64) bool {
	if s.layout.Actions.Contains(x, y) || s.layout.DPad.Contains(x, y) || s.caption.Contains(x, y) {
		return true
	}
	if s.assistantVisible && s.assistantBubble.Contains(x, y) {
		return true
	}
	for _, it := range s.items {
		if it.Pinned && it.Bubble.Contains(x, y) {
			return true
		}
	}
	return false
}

// Dragging 是否正在拖动
func (s *Stage) Dragging() bool { return s.drag.active }

// DragMove 累积指针位移，等到 Flush 再应用
func (s *Stage) DragMove(pointerID int, x, y float64) {
	if !s.drag.active || pointerID != s.drag.pointerID {
		return
	}
	s.drag.pendingX += x - s.drag.lastX
	s.drag.pendingY += y - s.drag.lastY
	s.drag.lastX = x
	s.drag.lastY = y
}

// Flush 每帧调用一次，应用累积的拖动位移
func (s *Stage) Flush() {
	if !s.drag.active {
		return
	}
	dx, dy := s.drag.pendingX, s.drag.pendingY
	s.drag.pendingX, s.drag.pendingY = 0, 0
	s.moveBy(dx, dy)
}

// EndDrag 结束拖动，未应用的位移丢弃
func (s *Stage) EndDrag(pointerID int) {
	if s.drag.active && pointerID == s.drag.pointerID {
		s.drag = dragState{}
	}
}

// CancelDrag 取消拖动
func (s *Stage) CancelDrag() {
	s.drag = dragState{}
}

// checkCollisions 打开后第一次移动之前不检测
func (s *Stage) checkCollisions() {
	if !s.hasMovedSinceOpen {
		return
	}
	for i := range s.items {
		if !s.items[i].Collected && s.avatar.Intersects(s.items[i].Marker) {
			s.collect(i)
		}
	}
}
