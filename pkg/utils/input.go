package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MousePointerID 鼠标使用的指针 ID（触摸使用 ebiten.TouchID，均为非负数）
const MousePointerID = -1

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	// PointerDown 按下
	PointerDown PointerEventKind = iota
	// PointerMove 按住移动
	PointerMove
	// PointerUp 释放
	PointerUp
)

// PointerEvent 统一的指针事件（鼠标与触摸）
type PointerEvent struct {
	Kind      PointerEventKind
	PointerID int
	X, Y      float64
	// Secondary 鼠标右键按下（用于打开热点菜单）
	Secondary bool
}

// PointerTracker 将鼠标和触摸输入统一为按下/移动/释放事件
//
// 每帧调用一次 Poll，得到本帧的事件列表。
// 触摸释放时 ebiten 已拿不到坐标，因此记录每个触摸点的最后位置。
type PointerTracker struct {
	lastTouch map[ebiten.TouchID][2]int
	mouseDown bool
	lastMouse [2]int
	touchIDs  []ebiten.TouchID
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{lastTouch: make(map[ebiten.TouchID][2]int)}
}

// Poll 读取本帧输入并返回事件
func (pt *PointerTracker) Poll() []PointerEvent {
	var events []PointerEvent

	// 触摸按下
	pt.touchIDs = inpututil.AppendJustPressedTouchIDs(pt.touchIDs[:0])
	for _, id := range pt.touchIDs {
		x, y := ebiten.TouchPosition(id)
		pt.lastTouch[id] = [2]int{x, y}
		events = append(events, PointerEvent{Kind: PointerDown, PointerID: int(id), X: float64(x), Y: float64(y)})
	}

	// 触摸移动
	pt.touchIDs = ebiten.AppendTouchIDs(pt.touchIDs[:0])
	for _, id := range pt.touchIDs {
		x, y := ebiten.TouchPosition(id)
		last, ok := pt.lastTouch[id]
		if ok && (last[0] != x || last[1] != y) {
			events = append(events, PointerEvent{Kind: PointerMove, PointerID: int(id), X: float64(x), Y: float64(y)})
		}
		pt.lastTouch[id] = [2]int{x, y}
	}

	// 触摸释放（使用最后记录的位置）
	pt.touchIDs = inpututil.AppendJustReleasedTouchIDs(pt.touchIDs[:0])
	for _, id := range pt.touchIDs {
		last := pt.lastTouch[id]
		delete(pt.lastTouch, id)
		events = append(events, PointerEvent{Kind: PointerUp, PointerID: int(id), X: float64(last[0]), Y: float64(last[1])})
	}

	// 鼠标
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pt.mouseDown = true
		events = append(events, PointerEvent{Kind: PointerDown, PointerID: MousePointerID, X: float64(mx), Y: float64(my)})
	} else if pt.mouseDown && (mx != pt.lastMouse[0] || my != pt.lastMouse[1]) {
		events = append(events, PointerEvent{Kind: PointerMove, PointerID: MousePointerID, X: float64(mx), Y: float64(my)})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		pt.mouseDown = false
		events = append(events, PointerEvent{Kind: PointerUp, PointerID: MousePointerID, X: float64(mx), Y: float64(my)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		events = append(events, PointerEvent{Kind: PointerDown, PointerID: MousePointerID, X: float64(mx), Y: float64(my), Secondary: true})
	}
	pt.lastMouse = [2]int{mx, my}

	return events
}

// Reset 丢弃所有跟踪状态（场景切换时调用，避免残留的拖拽）
func (pt *PointerTracker) Reset() {
	for id := range pt.lastTouch {
		delete(pt.lastTouch, id)
	}
	pt.mouseDown = false
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsActivateKeyJustPressed 回车或空格（键盘激活按钮）
func IsActivateKeyJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
