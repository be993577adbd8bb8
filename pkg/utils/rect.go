package utils

import "math"

// Rect 轴对齐矩形（屏幕坐标，左上角为原点）
//
// 舞台、图片可见区域、气泡、按钮等所有需要做碰撞/遮挡判断的元素都用 Rect 表示。
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewRectLTRB 由四条边构造矩形
func NewRectLTRB(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Right 右边界
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom 下边界
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center 中心点
func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// IsEmpty 宽或高不为正时视为空矩形
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects 判断两个矩形是否相交
// 注意：边缘接触也算相交（与气泡避让规则保持一致）
func (r Rect) Intersects(o Rect) bool {
	return !(r.Right() < o.Left || r.Left > o.Right() || r.Bottom() < o.Top || r.Top > o.Bottom())
}

// Contains 判断点是否落在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Pad 向四周扩展 p 像素（p 为负时收缩）
func (r Rect) Pad(p float64) Rect {
	return Rect{Left: r.Left - p, Top: r.Top - p, Width: r.Width + 2*p, Height: r.Height + 2*p}
}

// Translate 平移
func (r Rect) Translate(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// MoveTo 将左上角移动到 (x, y)，尺寸不变
func (r Rect) MoveTo(x, y float64) Rect {
	r.Left = x
	r.Top = y
	return r
}

// Overlap 返回两个矩形在 X/Y 方向上的重叠量（不相交时为 0 或负数）
func (r Rect) Overlap(o Rect) (dx, dy float64) {
	dx = math.Min(r.Right(), o.Right()) - math.Max(r.Left, o.Left)
	dy = math.Min(r.Bottom(), o.Bottom()) - math.Max(r.Top, o.Top)
	return dx, dy
}

// Clamp 将 v 限制在 [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
