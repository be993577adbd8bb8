package scenes

import (
	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/results"
	"github.com/decker502/pratica/pkg/utils"
)

// 结果舞台的布局计算

// captionPad 标题气泡内边距
const captionPad = 14.0

// bubbleTextInset 消息气泡文字内边距
const bubbleTextInset = 12.0

type resultsAction int

const (
	actionRestart resultsAction = iota
	actionClose
	actionReview
)

type resultsButton struct {
	button
	action resultsAction
}

// dpadButton 方向键：每次点击移动一步
type dpadButton struct {
	rect   utils.Rect
	dx, dy float64
}

// captionLines 标题气泡的文字：标题、百分比、得分和可选提示
func captionLines(strs *game.Strings, v game.Verdict, result content.ResultConfig, hintVisible bool) []string {
	lines := []string{
		strs.Get(game.StrResultsTitle),
		strs.Get(game.StrResultsPercent, v.Percent),
		strs.Get(game.StrResultsScore, v.Correct, v.Total),
	}
	if hintVisible {
		lines = append(lines, result.Hint)
	}
	return lines
}

// captionRect 标题气泡水平居中于舞台顶部
func captionRect(lines []string, measure utils.TextMeasurer, lineHeight float64) utils.Rect {
	w := utils.MeasureLines(lines, measure) + 2*captionPad
	h := float64(len(lines))*lineHeight + 2*captionPad
	return utils.Rect{
		Left:   config.StageX + (config.StageW-w)/2,
		Top:    config.CaptionTop,
		Width:  w,
		Height: h,
	}
}

// actionButtons 右上角纵向排列：重新开始、关闭、回顾
func actionButtons(strs *game.Strings) []resultsButton {
	left := config.StageX + config.StageW - config.DPadMargin - config.ActionButtonW
	keys := []string{game.StrButtonRestart, game.StrButtonClose, game.StrButtonReview}
	actions := []resultsAction{actionRestart, actionClose, actionReview}
	out := make([]resultsButton, len(keys))
	for i, key := range keys {
		out[i] = resultsButton{
			button: button{
				rect: utils.Rect{
					Left:   left,
					Top:    config.CaptionTop + float64(i)*(config.ActionButtonH+config.ActionButtonGap),
					Width:  config.ActionButtonW,
					Height: config.ActionButtonH,
				},
				label:   strs.Get(key),
				primary: i == 0,
			},
			action: actions[i],
		}
	}
	return out
}

// actionsRect 所有动作按钮的外接矩形
func actionsRect(buttons []resultsButton) utils.Rect {
	if len(buttons) == 0 {
		return utils.Rect{}
	}
	first := buttons[0].rect
	last := buttons[len(buttons)-1].rect
	return utils.NewRectLTRB(first.Left, first.Top, first.Right(), last.Bottom())
}

// dpadRect 右下角方向键区域
func dpadRect() utils.Rect {
	size := config.DPadSize
	return utils.Rect{
		Left:   config.StageX + config.StageW - config.DPadMargin - size,
		Top:    config.StageY + config.StageH - config.DPadMargin - size,
		Width:  size,
		Height: size,
	}
}

// dpadButtons 3x3 网格中的上下左右四格
func dpadButtons(area utils.Rect, step float64) []dpadButton {
	cell := area.Width / 3
	at := func(col, row float64) utils.Rect {
		return utils.Rect{Left: area.Left + col*cell, Top: area.Top + row*cell, Width: cell, Height: cell}
	}
	return []dpadButton{
		{rect: at(1, 0), dy: -step},
		{rect: at(0, 1), dx: -step},
		{rect: at(2, 1), dx: step},
		{rect: at(1, 2), dy: step},
	}
}

// stageLayout 组合舞台布局
func stageLayout(caption, actions, dpad utils.Rect) results.Layout {
	return results.Layout{
		Stage:      utils.Rect{Left: config.StageX, Top: config.StageY, Width: config.StageW, Height: config.StageH},
		Caption:    caption,
		Actions:    actions,
		DPad:       dpad,
		LineHeight: lineHeightBody,
	}
}

// reviewRow 回顾弹窗中的一行
type reviewRow struct {
	text    string
	header  bool
	correct bool
}

// reviewRows 按回合分组列出每个热点：正确答案，答错时附上所选答案
func reviewRows(strs *game.Strings, review []game.RoundResult) []reviewRow {
	var rows []reviewRow
	for i, r := range review {
		rows = append(rows, reviewRow{text: strs.Get(game.StrReviewRound, i+1), header: true})
		for _, item := range r.Items {
			row := reviewRow{text: item.CorrectLabel, correct: item.IsCorrect}
			if !item.IsCorrect {
				chosen := item.ChosenLabel
				if item.ChosenRefID == content.NoRef || chosen == "" {
					chosen = strs.Get(game.StrReviewNoChoice)
				}
				row.text += " (" + chosen + ")"
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// reviewPanelRect 回顾弹窗
func reviewPanelRect() utils.Rect {
	const margin = 80.0
	return utils.Rect{
		Left:   margin * 2,
		Top:    margin,
		Width:  config.StageW - margin*4,
		Height: config.StageH - margin*2,
	}
}

// reviewCloseRect 回顾弹窗右上角的关闭按钮
func reviewCloseRect(panel utils.Rect) utils.Rect {
	return utils.Rect{Left: panel.Right() - 52, Top: panel.Top + 12, Width: 40, Height: 40}
}

// maxReviewScroll 回顾列表可滚动的最大距离
func maxReviewScroll(rows int, panel utils.Rect) float64 {
	visible := panel.Height - 80
	total := float64(rows) * lineHeightBody
	if total <= visible {
		return 0
	}
	return total - visible
}
