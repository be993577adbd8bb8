package scenes

import (
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/results"
	"github.com/decker502/pratica/pkg/utils"
)

// ResultsScene 结果舞台：玩家移动机器人收集花朵
type ResultsScene struct {
	ctx     *Context
	stage   *results.Stage
	pointer *utils.PointerTracker

	caption []string
	actions []resultsButton
	dpad    []dpadButton

	// 机器人的显示位置（补间追赶逻辑位置）
	displayX float64
	displayY float64

	reviewOpen   bool
	reviewRows   []reviewRow
	reviewScroll float64

	exited bool
}

// NewResultsScene 根据会话的最终结果创建舞台
func NewResultsScene(ctx *Context) *ResultsScene {
	s := &ResultsScene{ctx: ctx, pointer: utils.NewPointerTracker()}

	verdict := ctx.Session.Verdict()
	result := ctx.Session.Content().Result
	body := ctx.Resources.Font(fontSizeBody)
	measure := utils.FaceMeasurer(body)

	hintVisible := verdict.Total > 0 && strings.TrimSpace(result.Hint) != ""
	s.caption = captionLines(ctx.Strings, verdict, result, hintVisible)
	s.actions = actionButtons(ctx.Strings)
	dpad := dpadRect()

	layout := stageLayout(captionRect(s.caption, measure, lineHeightBody), actionsRect(s.actions), dpad)
	s.stage = results.NewStage(verdict, result, layout, ctx.Config.Results, measure, ctx.Rand)
	s.dpad = dpadButtons(dpad, s.stage.Step())

	if ctx.AssistantEnabled() {
		w := ctx.Assistant
		w.SetManualOnly(false)
		w.SetOnVisibilityChange(func(visible bool) {
			s.stage.SetAssistant(w.AvatarRect(), w.BubbleRect(), visible)
		})
		w.ForceReappear(result.AnadixSpeech)
		s.stage.SetAssistant(w.AvatarRect(), w.BubbleRect(), w.Visible())
	}
	s.stage.Open()
	s.snapAvatar()

	log.Printf("[ResultsScene] Created: %d%% (%d/%d)", verdict.Percent, verdict.Correct, verdict.Total)
	return s
}

func (s *ResultsScene) snapAvatar() {
	av := s.stage.Avatar()
	s.displayX, s.displayY = av.Left, av.Top
}

// Update 处理移动、拖动、按钮和回顾弹窗
func (s *ResultsScene) Update(deltaTime float64) {
	if s.ctx.AssistantEnabled() {
		s.ctx.Assistant.Update(deltaTime)
	}

	if s.reviewOpen {
		s.updateReview()
	} else {
		s.handleKeys()
		s.handlePointer()
		s.stage.Flush()
	}

	s.tweenAvatar(deltaTime)
	s.checkExit()
}

func (s *ResultsScene) handleKeys() {
	step := s.stage.Step()
	switch {
	case repeatingKeyPressed(ebiten.KeyArrowLeft):
		s.stage.MoveHorizontal(-step)
	case repeatingKeyPressed(ebiten.KeyArrowRight):
		s.stage.MoveHorizontal(step)
	case repeatingKeyPressed(ebiten.KeyArrowUp):
		s.stage.MoveVertical(-step)
	case repeatingKeyPressed(ebiten.KeyArrowDown):
		s.stage.MoveVertical(step)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.openReview()
	}
}

func (s *ResultsScene) handlePointer() {
	for _, ev := range s.pointer.Poll() {
		switch ev.Kind {
		case utils.PointerDown:
			if ev.Secondary {
				continue
			}
			s.handleDown(ev)
		case utils.PointerMove:
			s.stage.DragMove(ev.PointerID, ev.X, ev.Y)
		case utils.PointerUp:
			s.stage.EndDrag(ev.PointerID)
		}
	}
}

func (s *ResultsScene) handleDown(ev utils.PointerEvent) {
	x, y := ev.X, ev.Y
	if s.ctx.AssistantEnabled() && s.ctx.Assistant.HitAvatar(x, y) {
		s.ctx.Assistant.Toggle()
		return
	}
	for _, b := range s.actions {
		if !b.hit(x, y) {
			continue
		}
		switch b.action {
		case actionRestart:
			s.stage.Restart()
		case actionClose:
			s.stage.Close()
		case actionReview:
			s.openReview()
		}
		return
	}
	for _, d := range s.dpad {
		if d.rect.Contains(x, y) {
			if d.dx != 0 {
				s.stage.MoveHorizontal(d.dx)
			} else {
				s.stage.MoveVertical(d.dy)
			}
			return
		}
	}
	s.stage.BeginDrag(ev.PointerID, x, y)
}

func (s *ResultsScene) openReview() {
	s.stage.CancelDrag()
	s.reviewRows = reviewRows(s.ctx.Strings, s.ctx.Session.Review())
	s.reviewScroll = 0
	s.reviewOpen = true
}

func (s *ResultsScene) updateReview() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.reviewOpen = false
		return
	}
	panel := reviewPanelRect()
	maxScroll := maxReviewScroll(len(s.reviewRows), panel)
	_, wy := ebiten.Wheel()
	s.reviewScroll = utils.Clamp(s.reviewScroll-wy*lineHeightBody, 0, maxScroll)
	if repeatingKeyPressed(ebiten.KeyArrowDown) {
		s.reviewScroll = utils.Clamp(s.reviewScroll+lineHeightBody, 0, maxScroll)
	}
	if repeatingKeyPressed(ebiten.KeyArrowUp) {
		s.reviewScroll = utils.Clamp(s.reviewScroll-lineHeightBody, 0, maxScroll)
	}

	for _, ev := range s.pointer.Poll() {
		if ev.Kind != utils.PointerDown || ev.Secondary {
			continue
		}
		if reviewCloseRect(panel).Contains(ev.X, ev.Y) || !panel.Contains(ev.X, ev.Y) {
			s.reviewOpen = false
			return
		}
	}
}

// tweenAvatar 显示位置平滑追赶逻辑位置；瞬移或减少动态效果时直接跳到目标
func (s *ResultsScene) tweenAvatar(dt float64) {
	teleported := s.stage.ConsumeTeleport()
	if teleported || s.ctx.ReducedMotion() {
		s.snapAvatar()
		return
	}
	av := s.stage.Avatar()
	rate := s.ctx.Config.Results.TweenRate
	s.displayX = utils.Approach(s.displayX, av.Left, rate, dt)
	s.displayY = utils.Approach(s.displayY, av.Top, rate, dt)
}

func (s *ResultsScene) checkExit() {
	if s.exited {
		return
	}
	switch s.stage.Exit() {
	case results.ExitRestart:
		s.exited = true
		log.Printf("[ResultsScene] Restart requested")
		s.ctx.Navigator.Navigate(game.SceneRequest{ID: game.SceneRound, Restart: true})
	case results.ExitClose:
		s.exited = true
		log.Printf("[ResultsScene] Close requested")
		s.ctx.Navigator.Navigate(game.SceneRequest{ID: game.SceneMenu})
	}
}

// Draw 绘制舞台
func (s *ResultsScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	body := s.ctx.Resources.Font(fontSizeBody)

	for _, it := range s.stage.Items() {
		if !it.Collected {
			drawFlower(screen, it.Marker)
		}
	}
	s.drawRobot(screen)

	for _, it := range s.stage.Items() {
		if it.Pinned {
			drawPanel(screen, it.Bubble, colorPanel, colorPanelBorder)
			drawLines(screen, it.Lines, body, it.Bubble.Left+bubbleTextInset, it.Bubble.Top+bubbleTextInset, s.stage.Layout().LineHeight, colorText)
		}
	}

	caption := s.stage.Caption()
	drawPanel(screen, caption, colorPanel, colorPanelBorder)
	drawLines(screen, s.caption, body, caption.Left+captionPad, caption.Top+captionPad, lineHeightBody, colorText)

	for _, b := range s.actions {
		drawButton(screen, b.button, body)
	}
	s.drawDPad(screen)

	if s.ctx.AssistantEnabled() {
		drawAssistant(screen, s.ctx.Assistant, body)
	}
	if s.reviewOpen {
		s.drawReview(screen, body)
	}
}

// drawRobot 机器人：身体、头、天线和两只眼睛
func (s *ResultsScene) drawRobot(screen *ebiten.Image) {
	size := s.ctx.Config.Results.AvatarSize
	x, y := s.displayX, s.displayY
	metal := color.RGBA{R: 176, G: 196, B: 214, A: 255}
	dark := color.RGBA{R: 60, G: 72, B: 88, A: 255}

	head := utils.Rect{Left: x + size*0.2, Top: y + size*0.12, Width: size * 0.6, Height: size * 0.38}
	body := utils.Rect{Left: x + size*0.15, Top: y + size*0.52, Width: size * 0.7, Height: size * 0.44}
	drawPanel(screen, body, metal, dark)
	drawPanel(screen, head, metal, dark)

	cx := float32(x + size/2)
	vector.StrokeLine(screen, cx, float32(head.Top), cx, float32(y), 3, dark, true)
	vector.DrawFilledCircle(screen, cx, float32(y), float32(size*0.05), colorWrong, true)

	eyeY := float32(head.Top + head.Height*0.45)
	vector.DrawFilledCircle(screen, float32(head.Left+head.Width*0.3), eyeY, float32(size*0.05), colorHighlight, true)
	vector.DrawFilledCircle(screen, float32(head.Left+head.Width*0.7), eyeY, float32(size*0.05), colorHighlight, true)
}

// drawFlower 标记：五片花瓣围绕花心
func drawFlower(screen *ebiten.Image, r utils.Rect) {
	cx, cy := r.Center()
	petal := r.Width * 0.2
	ring := r.Width * 0.26
	petalColor := color.RGBA{R: 236, G: 112, B: 160, A: 255}
	for i := 0; i < 5; i++ {
		a := float64(i)*2*math.Pi/5 - math.Pi/2
		vector.DrawFilledCircle(screen, float32(cx+ring*math.Cos(a)), float32(cy+ring*math.Sin(a)), float32(petal), petalColor, true)
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r.Width*0.16), colorHighlight, true)
}

func (s *ResultsScene) drawDPad(screen *ebiten.Image) {
	for _, d := range s.dpad {
		inner := d.rect.Pad(-4)
		drawPanel(screen, inner, colorSecondary, colorPanelBorder)
		cx, cy := inner.Center()
		h := inner.Width * 0.22
		// 箭头
		var x1, y1, x2, y2, x3, y3 float64
		switch {
		case d.dy < 0:
			x1, y1, x2, y2, x3, y3 = cx-h, cy+h/2, cx, cy-h/2, cx+h, cy+h/2
		case d.dy > 0:
			x1, y1, x2, y2, x3, y3 = cx-h, cy-h/2, cx, cy+h/2, cx+h, cy-h/2
		case d.dx < 0:
			x1, y1, x2, y2, x3, y3 = cx+h/2, cy-h, cx-h/2, cy, cx+h/2, cy+h
		default:
			x1, y1, x2, y2, x3, y3 = cx-h/2, cy-h, cx+h/2, cy, cx-h/2, cy+h
		}
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 3, colorText, true)
		vector.StrokeLine(screen, float32(x2), float32(y2), float32(x3), float32(y3), 3, colorText, true)
	}
}

func (s *ResultsScene) drawReview(screen *ebiten.Image, face text.Face) {
	drawRect(screen, utils.Rect{Width: config.StageW, Height: config.StageH}, colorOverlay)
	panel := reviewPanelRect()
	drawPanel(screen, panel, colorPanel, colorPanelBorder)
	drawText(screen, s.ctx.Strings.Get(game.StrReviewTitle), s.ctx.Resources.Font(fontSizeTitle), panel.Left+24, panel.Top+16, colorText)

	closeRect := reviewCloseRect(panel)
	strokeRect(screen, closeRect, 2, colorPanelBorder)
	drawCrossMark(screen, closeRect.Left+12, closeRect.Top+12, 16, colorText)

	top := panel.Top + 64
	bottom := panel.Bottom() - 16
	for i, row := range s.reviewRows {
		y := top + float64(i)*lineHeightBody - s.reviewScroll
		if y < top || y+lineHeightBody > bottom {
			continue
		}
		x := panel.Left + 24
		if row.header {
			drawText(screen, row.text, face, x, y, colorPanelBorder)
			continue
		}
		if row.correct {
			drawCheckMark(screen, x+8, y+4, 14, colorCorrect)
		} else {
			drawCrossMark(screen, x+8, y+4, 14, colorWrong)
		}
		drawText(screen, row.text, face, x+32, y, colorText)
	}
}

// Dispose 清除拖拽状态并解除助手回调
func (s *ResultsScene) Dispose() {
	s.stage.Dispose()
	s.pointer.Reset()
	if s.ctx.Assistant != nil {
		s.ctx.Assistant.SetOnVisibilityChange(nil)
	}
}
