package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/utils"
	"github.com/decker502/pratica/pkg/viewer"
)

// MenuScene 封面卡片：标题、显微镜查看器、开始按钮和设置开关
type MenuScene struct {
	ctx     *Context
	pointer *utils.PointerTracker
	viewer  *viewer.Instance

	startButton  button
	motionButton button

	orbiting  bool
	orbitID   int
	lastOrbit [2]float64
}

// NewMenuScene 创建封面场景
func NewMenuScene(ctx *Context) *MenuScene {
	s := &MenuScene{ctx: ctx, pointer: utils.NewPointerTracker()}

	size := config.CoverViewerSize
	host := utils.Rect{
		Left:   float64(config.GameWindowWidth) - size - 120,
		Top:    (float64(config.GameWindowHeight) - size) / 2,
		Width:  size,
		Height: size,
	}
	if ctx.Viewers != nil {
		opts := viewer.DefaultOptions()
		if ctx.ReducedMotion() {
			opts.AutoRotateSpeed = 0
		}
		s.viewer = ctx.Viewers.Mount(host, opts)
	}

	measure := utils.FaceMeasurer(ctx.Resources.Font(fontSizeBody))
	row := layoutButtonRow([]string{ctx.Strings.Get(game.StrMenuStart)}, measure, 120, 420, 52, 32, 0)
	s.startButton = button{rect: row[0], label: ctx.Strings.Get(game.StrMenuStart), primary: true}
	s.motionButton = button{rect: utils.Rect{Left: 120, Top: 496, Width: 320, Height: 40}}
	s.refreshLabels()

	if ctx.Assistant != nil {
		ctx.Assistant.RestoreHome()
	}
	log.Printf("[MenuScene] Created")
	return s
}

func (s *MenuScene) refreshLabels() {
	state := s.ctx.Strings.Get(game.StrOff)
	if s.ctx.ReducedMotion() {
		state = s.ctx.Strings.Get(game.StrOn)
	}
	s.motionButton.label = s.ctx.Strings.Get(game.StrReducedMotion, state)
}

// Update 处理输入并推进查看器和助手
func (s *MenuScene) Update(deltaTime float64) {
	if s.viewer != nil {
		s.viewer.Update(deltaTime)
	}
	if s.ctx.AssistantEnabled() {
		s.ctx.Assistant.Update(deltaTime)
	}

	if utils.IsActivateKeyJustPressed() {
		s.start()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.toggleReducedMotion()
	}

	for _, ev := range s.pointer.Poll() {
		switch ev.Kind {
		case utils.PointerDown:
			if ev.Secondary {
				continue
			}
			s.handleDown(ev)
		case utils.PointerMove:
			if s.orbiting && ev.PointerID == s.orbitID && s.viewer != nil {
				s.viewer.Orbit(ev.X-s.lastOrbit[0], ev.Y-s.lastOrbit[1])
				s.lastOrbit = [2]float64{ev.X, ev.Y}
			}
		case utils.PointerUp:
			if ev.PointerID == s.orbitID {
				s.orbiting = false
			}
		}
	}
}

func (s *MenuScene) handleDown(ev utils.PointerEvent) {
	switch {
	case s.startButton.hit(ev.X, ev.Y):
		s.start()
	case s.motionButton.hit(ev.X, ev.Y):
		s.toggleReducedMotion()
	case s.ctx.AssistantEnabled() && s.ctx.Assistant.HitAvatar(ev.X, ev.Y):
		s.ctx.Assistant.Toggle()
	case s.viewer != nil && s.viewer.Rect().Contains(ev.X, ev.Y):
		s.orbiting = true
		s.orbitID = ev.PointerID
		s.lastOrbit = [2]float64{ev.X, ev.Y}
	}
}

func (s *MenuScene) start() {
	log.Printf("[MenuScene] Start requested")
	s.ctx.Navigator.Navigate(game.SceneRequest{ID: game.SceneRound, Restart: true})
}

func (s *MenuScene) toggleReducedMotion() {
	if s.ctx.Settings == nil {
		return
	}
	s.ctx.Settings.SetReducedMotion(!s.ctx.Settings.ReducedMotion())
	if err := s.ctx.Settings.Save(); err != nil {
		log.Printf("[MenuScene] Failed to save settings: %v", err)
	}
	s.refreshLabels()
}

// Draw 绘制封面
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	title := s.ctx.Resources.Font(fontSizeTitle)
	body := s.ctx.Resources.Font(fontSizeBody)

	drawText(screen, s.ctx.Strings.Get(game.StrMenuTitle), title, 120, 220, colorTextLight)
	measure := utils.FaceMeasurer(body)
	lines := utils.WrapText(s.ctx.Strings.Get(game.StrMenuSubtitle), measure, 520)
	drawLines(screen, lines, body, 120, 280, lineHeightBody, colorTextLight)

	drawButton(screen, s.startButton, body)
	drawButton(screen, s.motionButton, s.ctx.Resources.Font(fontSizeSmall))

	if s.viewer != nil {
		s.viewer.Draw(screen)
	}
	if s.ctx.AssistantEnabled() {
		drawAssistant(screen, s.ctx.Assistant, body)
	}
}

// Dispose 离开封面；查看器由回合开始时统一释放
func (s *MenuScene) Dispose() {
	s.pointer.Reset()
	s.orbiting = false
}
