package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextMeasurer 文本宽度测量函数
type TextMeasurer func(s string) float64

// FaceMeasurer 使用字体测量文本宽度
func FaceMeasurer(face text.Face) TextMeasurer {
	return func(s string) float64 {
		if s == "" || face == nil {
			return 0
		}
		w, _ := text.Measure(s, face, 0)
		return w
	}
}

// WrapText 将文本按指定宽度自动换行
//
// 参数:
//   - textStr: 要换行的文本（可包含 "\n" 硬换行）
//   - measure: 宽度测量函数
//   - maxWidth: 最大宽度（像素）
//
// 换行规则:
//   - 优先在空格处断行
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, measure TextMeasurer, maxWidth float64) []string {
	if measure == nil || maxWidth <= 0 {
		return strings.Split(textStr, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			// 单词太长，按字符断开
			current = ""
			for _, r := range word {
				next := current + string(r)
				if current != "" && measure(next) > maxWidth {
					lines = append(lines, current)
					next = string(r)
				}
				current = next
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// MeasureLines 返回多行文本的最大宽度
func MeasureLines(lines []string, measure TextMeasurer) float64 {
	maxW := 0.0
	for _, l := range lines {
		if w := measure(l); w > maxW {
			maxW = w
		}
	}
	return maxW
}
