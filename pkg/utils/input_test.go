package utils

import "testing"

func TestPointerTrackerReset(t *testing.T) {
	pt := NewPointerTracker()
	pt.lastTouch[3] = [2]int{10, 20}
	pt.mouseDown = true

	pt.Reset()

	if len(pt.lastTouch) != 0 {
		t.Errorf("Expected no tracked touches after reset, got %d", len(pt.lastTouch))
	}
	if pt.mouseDown {
		t.Error("Expected mouseDown to be false after reset")
	}
}

func TestMousePointerIDIsNegative(t *testing.T) {
	// 触摸 ID 非负，鼠标必须与之区分
	if MousePointerID >= 0 {
		t.Errorf("MousePointerID = %d, want negative", MousePointerID)
	}
}
