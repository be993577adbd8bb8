package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pratica/pkg/assistant"
	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/utils"
)

// AssistantFontSize 助手气泡字号，用于测量换行
const AssistantFontSize = fontSizeBody

// AssistantLayout 助手固定在左下角
func AssistantLayout() assistant.Layout {
	size := config.AssistantAvatarSize
	return assistant.Layout{
		Avatar: utils.Rect{
			Left:   config.AssistantMargin,
			Top:    float64(config.GameWindowHeight) - config.AssistantMargin - size,
			Width:  size,
			Height: size,
		},
		BubbleMaxWidth: config.AssistantBubbleW,
		LineHeight:     lineHeightBody,
	}
}

// drawAssistant 绘制助手头像和可见的气泡
func drawAssistant(screen *ebiten.Image, w *assistant.Widget, face text.Face) {
	if w == nil {
		return
	}
	av := w.AvatarRect()
	cx, cy := av.Center()
	r := av.Width / 2

	// 头像：叶绿色圆形脸、眼睛和微笑
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), color.RGBA{R: 92, G: 170, B: 110, A: 255}, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 3, colorPanelBorder, true)
	vector.DrawFilledCircle(screen, float32(cx-r*0.3), float32(cy-r*0.15), float32(r*0.1), colorText, true)
	vector.DrawFilledCircle(screen, float32(cx+r*0.3), float32(cy-r*0.15), float32(r*0.1), colorText, true)
	vector.StrokeLine(screen, float32(cx-r*0.3), float32(cy+r*0.3), float32(cx), float32(cy+r*0.42), 3, colorText, true)
	vector.StrokeLine(screen, float32(cx), float32(cy+r*0.42), float32(cx+r*0.3), float32(cy+r*0.3), 3, colorText, true)

	if !w.Visible() {
		return
	}
	b := w.BubbleRect()
	drawPanel(screen, b, colorPanel, colorPanelBorder)
	// 指向头像的小尾巴
	vector.StrokeLine(screen, float32(b.Left), float32(b.Bottom()-12), float32(av.Right()-6), float32(cy-6), 2, colorPanelBorder, true)
	drawLines(screen, w.Lines(), face, b.Left+14, b.Top+14, lineHeightBody, colorText)
}
