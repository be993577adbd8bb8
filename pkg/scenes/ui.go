package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pratica/pkg/utils"
)

// 字号
const (
	fontSizeTitle = 30.0
	fontSizeBody  = 18.0
	fontSizeSmall = 15.0

	// lineHeightBody 正文行高
	lineHeightBody = 24.0
)

// 配色
var (
	colorBackground   = color.RGBA{R: 18, G: 38, B: 32, A: 255}
	colorPanel        = color.RGBA{R: 250, G: 248, B: 240, A: 245}
	colorPanelBorder  = color.RGBA{R: 46, G: 94, B: 76, A: 255}
	colorText         = color.RGBA{R: 32, G: 40, B: 36, A: 255}
	colorTextLight    = color.RGBA{R: 240, G: 246, B: 242, A: 255}
	colorTextMuted    = color.RGBA{R: 110, G: 120, B: 114, A: 255}
	colorPrimary      = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	colorPrimaryHover = color.RGBA{R: 60, G: 165, B: 106, A: 255}
	colorSecondary    = color.RGBA{R: 226, G: 232, B: 228, A: 255}
	colorDisabled     = color.RGBA{R: 170, G: 176, B: 172, A: 255}
	colorPending      = color.RGBA{R: 240, G: 173, B: 40, A: 255}
	colorCorrect      = color.RGBA{R: 52, G: 176, B: 96, A: 255}
	colorWrong        = color.RGBA{R: 214, G: 69, B: 65, A: 255}
	colorHighlight    = color.RGBA{R: 255, G: 214, B: 102, A: 255}
	colorOverlay      = color.RGBA{R: 0, G: 0, B: 0, A: 140}
)

// button 矩形按钮
type button struct {
	rect     utils.Rect
	label    string
	primary  bool
	disabled bool
}

func (b button) hit(x, y float64) bool {
	return !b.disabled && b.rect.Contains(x, y)
}

// cursor 当前指针位置
func cursor() (float64, float64) {
	x, y := utils.GetPointerPosition()
	return float64(x), float64(y)
}

func drawRect(screen *ebiten.Image, r utils.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.Left), float32(r.Top), float32(r.Width), float32(r.Height), clr, false)
}

func strokeRect(screen *ebiten.Image, r utils.Rect, width float64, clr color.Color) {
	vector.StrokeRect(screen, float32(r.Left), float32(r.Top), float32(r.Width), float32(r.Height), float32(width), clr, false)
}

// drawPanel 带边框的面板
func drawPanel(screen *ebiten.Image, r utils.Rect, fill, border color.Color) {
	drawRect(screen, r, fill)
	strokeRect(screen, r, 2, border)
}

func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawTextCentered 在矩形内居中绘制单行文本
func drawTextCentered(screen *ebiten.Image, s string, face text.Face, r utils.Rect, clr color.Color) {
	op := &text.DrawOptions{}
	cx, cy := r.Center()
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

func drawLines(screen *ebiten.Image, lines []string, face text.Face, x, y, lineHeight float64, clr color.Color) {
	for i, line := range lines {
		drawText(screen, line, face, x, y+float64(i)*lineHeight, clr)
	}
}

func drawButton(screen *ebiten.Image, b button, face text.Face) {
	mx, my := cursor()
	hovered := b.rect.Contains(mx, my)

	var fill color.Color = colorSecondary
	var fg color.Color = colorText
	switch {
	case b.disabled:
		fill = colorDisabled
	case b.primary && hovered:
		fill, fg = colorPrimaryHover, colorTextLight
	case b.primary:
		fill, fg = colorPrimary, colorTextLight
	case hovered:
		fill = colorHighlight
	}
	drawPanel(screen, b.rect, fill, colorPanelBorder)
	drawTextCentered(screen, b.label, face, b.rect, fg)
}

// drawCheckMark 绘制对勾
func drawCheckMark(screen *ebiten.Image, x, y, size float64, clr color.Color) {
	vector.StrokeLine(screen, float32(x), float32(y+size*0.55), float32(x+size*0.38), float32(y+size*0.9), 3, clr, true)
	vector.StrokeLine(screen, float32(x+size*0.38), float32(y+size*0.9), float32(x+size), float32(y+size*0.15), 3, clr, true)
}

// drawCrossMark 绘制叉号
func drawCrossMark(screen *ebiten.Image, x, y, size float64, clr color.Color) {
	vector.StrokeLine(screen, float32(x), float32(y), float32(x+size), float32(y+size), 3, clr, true)
	vector.StrokeLine(screen, float32(x+size), float32(y), float32(x), float32(y+size), 3, clr, true)
}

// layoutButtonRow 从 (x, y) 开始水平排列按钮，宽度按文字自适应
func layoutButtonRow(labels []string, measure utils.TextMeasurer, x, y, height, padding, gap float64) []utils.Rect {
	rects := make([]utils.Rect, len(labels))
	for i, label := range labels {
		w := measure(label) + 2*padding
		rects[i] = utils.Rect{Left: x, Top: y, Width: w, Height: height}
		x += w + gap
	}
	return rects
}
