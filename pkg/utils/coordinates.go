// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供题图坐标映射，用于处理热点（hotspot）在屏幕上的定位。
//
// # 坐标系统概述
//
// 本项目使用以下坐标系统：
//   - **自然坐标**：题图原始像素尺寸（naturalW x naturalH）
//   - **渲染框**：题图被分配到的屏幕矩形（可能比图片本身宽或高）
//   - **可见区域**：按 "contain" 规则等比缩放后，图片真正显示出来的子矩形（渲染框内居中，两侧留黑边）
//   - **百分比坐标**：热点在内容文件中的存储形式，相对于可见区域（0~100）
//   - **容器坐标**：热点标记的绘制坐标，相对于左侧面板容器的左上角
//
// # 核心转换公式
//
// 百分比 → 容器像素：
//
//	pixel = (visible.origin - container.origin) + percent/100 * visible.size
//
// 屏幕点击 → 百分比（逆变换，结果限制在 [0,100]）：
//
//	percent = (screen - visible.origin) / visible.size * 100
//
// 点击落在可见区域之外时拒绝转换。
//
// # 使用约束
//
// 映射结果只在当前布局下有效。窗口尺寸或图片尺寸变化后必须重新构造 CoordinateMapper，
// 调用方不得跨越尺寸变化缓存它的输出。
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCoord 表示无法解析的坐标字符串
var ErrInvalidCoord = errors.New("invalid hotspot coordinate")

// CoordUnit 坐标单位
type CoordUnit int

const (
	// UnitPercent 百分比（相对于图片可见区域）
	UnitPercent CoordUnit = iota
	// UnitPixel 像素（相对于容器左上角）
	UnitPixel
)

// Coord 带单位的单轴坐标
type Coord struct {
	Value float64
	Unit  CoordUnit
}

// Percent 构造百分比坐标
func Percent(v float64) Coord { return Coord{Value: v, Unit: UnitPercent} }

// Pixel 构造像素坐标
func Pixel(v float64) Coord { return Coord{Value: v, Unit: UnitPixel} }

// String 输出内容文件使用的格式（"48%" / "120px"）
func (c Coord) String() string {
	if c.Unit == UnitPixel {
		return strconv.FormatFloat(c.Value, 'f', -1, 64) + "px"
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64) + "%"
}

// ParseCoord 解析内容文件中的坐标字符串
//
// 支持 "48%"、"48.5%"、"120px"，以及不带单位的纯数字（按像素处理）。
func ParseCoord(s string) (Coord, error) {
	raw := strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(raw, "%"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "%")), 64)
		if err != nil {
			return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
		}
		return Percent(v), nil
	case strings.HasSuffix(raw, "px"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "px")), 64)
		if err != nil {
			return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
		}
		return Pixel(v), nil
	default:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
		}
		return Pixel(v), nil
	}
}

// Position 热点位置（top/left 两轴各自带单位）
type Position struct {
	Top  Coord
	Left Coord
}

// RenderedImageRect 计算 "contain" 适配下图片真正可见的子矩形
//
// # 参数
//
//   - naturalW, naturalH: 图片原始尺寸
//   - box: 图片被分配到的渲染框（屏幕坐标）
//
// # 返回值
//
// 可见区域（屏幕坐标）。自然尺寸或渲染框为空时直接返回 box。
//
// # 计算公式
//
//	scale = min(box.W / naturalW, box.H / naturalH)
//	offset = (box.size - natural*scale) / 2
func RenderedImageRect(naturalW, naturalH float64, box Rect) Rect {
	if naturalW <= 0 || naturalH <= 0 || box.IsEmpty() {
		return box
	}
	scale := box.Width / naturalW
	if s := box.Height / naturalH; s < scale {
		scale = s
	}
	rw := naturalW * scale
	rh := naturalH * scale
	return Rect{
		Left:   box.Left + (box.Width-rw)/2,
		Top:    box.Top + (box.Height-rh)/2,
		Width:  rw,
		Height: rh,
	}
}

// CoordinateMapper 图片坐标映射器
//
// 由一次布局测量构造，之后只做纯计算。
type CoordinateMapper struct {
	visible   Rect
	container Rect
}

// NewCoordinateMapper 根据图片自然尺寸、渲染框和容器矩形构造映射器
func NewCoordinateMapper(naturalW, naturalH float64, imageBox, container Rect) CoordinateMapper {
	return CoordinateMapper{
		visible:   RenderedImageRect(naturalW, naturalH, imageBox),
		container: container,
	}
}

// Visible 返回图片可见区域（屏幕坐标）
func (m CoordinateMapper) Visible() Rect { return m.visible }

// Container 返回容器矩形（屏幕坐标）
func (m CoordinateMapper) Container() Rect { return m.container }

// PercentToPixel 百分比坐标 → 容器内像素坐标
func (m CoordinateMapper) PercentToPixel(pctX, pctY float64) (x, y float64) {
	x = (m.visible.Left - m.container.Left) + pctX/100*m.visible.Width
	y = (m.visible.Top - m.container.Top) + pctY/100*m.visible.Height
	return x, y
}

// Resolve 将热点位置解析为容器内像素坐标
// 百分比坐标走映射公式，像素坐标直接使用
func (m CoordinateMapper) Resolve(p Position) (x, y float64) {
	if p.Left.Unit == UnitPercent {
		x, _ = m.PercentToPixel(p.Left.Value, 0)
	} else {
		x = p.Left.Value
	}
	if p.Top.Unit == UnitPercent {
		_, y = m.PercentToPixel(0, p.Top.Value)
	} else {
		y = p.Top.Value
	}
	return x, y
}

// ResolveScreen 将热点位置解析为屏幕坐标
func (m CoordinateMapper) ResolveScreen(p Position) (x, y float64) {
	x, y = m.Resolve(p)
	return x + m.container.Left, y + m.container.Top
}

// ScreenToPercent 屏幕点击 → 百分比坐标
//
// # 返回值
//
//   - pctX, pctY: 限制在 [0,100] 的百分比坐标
//   - ok: 点击落在可见区域之外时为 false（不做转换）
func (m CoordinateMapper) ScreenToPercent(sx, sy float64) (pctX, pctY float64, ok bool) {
	if m.visible.IsEmpty() {
		return 0, 0, false
	}
	x := sx - m.visible.Left
	y := sy - m.visible.Top
	if x < 0 || y < 0 || x > m.visible.Width || y > m.visible.Height {
		return 0, 0, false
	}
	pctX = Clamp(x/m.visible.Width*100, 0, 100)
	pctY = Clamp(y/m.visible.Height*100, 0, 100)
	return pctX, pctY, true
}
