package scenes

import (
	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/utils"
)

// 答题场景的布局计算（纯函数，便于测试）

// feedback 弹窗按钮动作
type feedbackAction int

const (
	feedbackContinue feedbackAction = iota
	feedbackRetry
)

type feedbackButton struct {
	button
	action feedbackAction
}

const (
	modalWidth  = 560.0
	modalHeight = 220.0
	// referenceListTop 参考列表标题占用的高度
	referenceListTop = 44.0
	// pencilWidth 可编辑参考右侧的编辑区域
	pencilWidth = 36.0
)

func imageBox() utils.Rect {
	return utils.Rect{Left: config.ImageBoxX, Top: config.ImageBoxY, Width: config.ImageBoxW, Height: config.ImageBoxH}
}

// referenceRowRect 第 i 个参考所在的行
func referenceRowRect(i int) utils.Rect {
	return utils.Rect{
		Left:   config.ReferencePanelX,
		Top:    config.ReferencePanelY + referenceListTop + float64(i)*config.ReferenceRowHeight,
		Width:  config.ReferencePanelW,
		Height: config.ReferenceRowHeight - 6,
	}
}

// referenceRowAt 点击位置对应的参考下标；pencil 表示落在编辑区域
func referenceRowAt(x, y float64, count int) (index int, pencil bool) {
	for i := 0; i < count; i++ {
		r := referenceRowRect(i)
		if r.Contains(x, y) {
			return i, x >= r.Right()-pencilWidth
		}
	}
	return -1, false
}

// menuRect 分配菜单的位置：从热点右下方展开，保持在窗口内
func menuRect(originX, originY float64, rows int) utils.Rect {
	w := config.MenuWidth
	h := float64(rows) * config.MenuRowHeight
	maxLeft := float64(config.GameWindowWidth) - w - 8
	maxTop := float64(config.GameWindowHeight) - h - 8
	return utils.Rect{
		Left:   utils.Clamp(originX, 8, maxLeft),
		Top:    utils.Clamp(originY, 8, maxTop),
		Width:  w,
		Height: h,
	}
}

// menuRowAt 菜单中被点击的行，未命中返回 -1
func menuRowAt(menu utils.Rect, rows int, x, y float64) int {
	if !menu.Contains(x, y) || rows == 0 {
		return -1
	}
	i := int((y - menu.Top) / config.MenuRowHeight)
	if i >= rows {
		i = rows - 1
	}
	return i
}

func modalRect() utils.Rect {
	return utils.Rect{
		Left:   (float64(config.GameWindowWidth) - modalWidth) / 2,
		Top:    (float64(config.GameWindowHeight) - modalHeight) / 2,
		Width:  modalWidth,
		Height: modalHeight,
	}
}

// feedbackButtons 判定弹窗的按钮：成功只有"继续"，失败有"重试"和"仍然继续"
func feedbackButtons(success bool, strs *game.Strings, measure utils.TextMeasurer) []feedbackButton {
	m := modalRect()
	y := m.Bottom() - config.ButtonHeight - 24
	if success {
		label := strs.Get(game.StrButtonContinue)
		w := measure(label) + 2*config.ButtonPadding
		return []feedbackButton{{
			button: button{rect: utils.Rect{Left: m.Left + (m.Width-w)/2, Top: y, Width: w, Height: config.ButtonHeight}, label: label, primary: true},
			action: feedbackContinue,
		}}
	}
	labels := []string{strs.Get(game.StrButtonRetry), strs.Get(game.StrButtonContinueAnyway)}
	actions := []feedbackAction{feedbackRetry, feedbackContinue}
	rects := layoutButtonRow(labels, measure, 0, y, config.ButtonHeight, config.ButtonPadding, 16)
	total := rects[len(rects)-1].Right()
	offset := m.Left + (m.Width-total)/2
	out := make([]feedbackButton, len(rects))
	for i, r := range rects {
		out[i] = feedbackButton{
			button: button{rect: r.Translate(offset, 0), label: labels[i], primary: i == 0},
			action: actions[i],
		}
	}
	return out
}
