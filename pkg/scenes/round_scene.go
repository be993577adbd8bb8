package scenes

import (
	"image"
	"log"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/hotspot"
	"github.com/decker502/pratica/pkg/round"
	"github.com/decker502/pratica/pkg/utils"
)

// RoundScene 答题回合：图片上的热点、参考列表、工具栏和判定弹窗
type RoundScene struct {
	ctx      *Context
	ctrl     *round.Controller
	teardown func()
	pointer  *utils.PointerTracker
	effects  *effects

	// 图片异步加载
	imageCh <-chan game.ImageResult
	image   *ebiten.Image

	// 坐标映射：图片尺寸或窗口尺寸变化时标记为脏，每帧最多重建一次
	mapper      utils.CoordinateMapper
	mapperDirty bool
	windowW     int
	windowH     int

	// 参考名称编辑
	editingRef content.RefID
	editBuffer []rune

	menuOrigin [2]float64
	roundIndex int
	roundTotal int

	// 动画计时（秒）
	elapsed    float64
	pops       map[string]float64 // 热点弹出动画已进行时间
	feedbackIn float64            // 判定弹窗出现后经过的时间
}

// 动画时长
const (
	popDuration      = 0.35
	feedbackDuration = 0.25
	addModePulse     = 1.2
)

// NewRoundScene 为会话的当前回合创建场景
func NewRoundScene(ctx *Context) *RoundScene {
	cur, ok := ctx.Session.CurrentRound()
	if !ok {
		log.Printf("[RoundScene] No current round, using fallback content")
		cur = content.Fallback().Rounds[0]
	}

	s := &RoundScene{
		ctx:        ctx,
		pointer:    utils.NewPointerTracker(),
		pops:       make(map[string]float64),
		roundIndex: ctx.Session.CurrentIndex(),
		roundTotal: ctx.Session.TotalPlayableRounds(),
	}
	s.effects = newEffects(ctx.Config.Confetti, ctx.Rand, ctx.ReducedMotion)

	deps := round.Deps{
		Clipboard:     ctx.Clipboard,
		Celebrator:    s.effects,
		ReducedMotion: ctx.ReducedMotion,
	}
	if ctx.AssistantEnabled() {
		deps.Assistant = ctx.Assistant
	}
	if ctx.Viewers != nil {
		deps.Viewers = ctx.Viewers
	}
	s.ctrl = round.NewController(ctx.Session, cur, ctx.Config.Round, deps)
	s.teardown = s.ctrl.Setup()
	s.ctrl.Registry().SetListener(s.onChange)

	s.imageCh = ctx.Resources.LoadImageAsync(cur.ImageURL)
	log.Printf("[RoundScene] Round %d (%d/%d), image %q", cur.ID, s.roundIndex+1, s.roundTotal, cur.ImageURL)
	return s
}

func (s *RoundScene) onChange(c hotspot.Change) {
	log.Printf("[RoundScene] %s hotspot=%s ref=%s", c.Kind, c.HotspotID, c.RefID)
	switch c.Kind {
	case hotspot.ChangeHotspotCreated, hotspot.ChangeAssigned, hotspot.ChangeValidated:
		if !s.ctx.ReducedMotion() {
			s.pops[c.HotspotID] = 0
		}
	}
}

// advanceAnimations 推进弹出和弹窗动画
func (s *RoundScene) advanceAnimations(dt float64) {
	s.elapsed += dt
	for id, t := range s.pops {
		if t+dt >= popDuration {
			delete(s.pops, id)
			continue
		}
		s.pops[id] = t + dt
	}
	if s.ctrl.State() == round.StateResolved {
		s.feedbackIn += dt
	} else {
		s.feedbackIn = 0
	}
}

// hotspotScale 标记半径的缩放系数
func (s *RoundScene) hotspotScale(id string) float64 {
	t, ok := s.pops[id]
	if !ok {
		return 1
	}
	return utils.Lerp(0.6, 1, utils.EaseOutBack(t/popDuration))
}

// feedbackOffset 弹窗自下方滑入的偏移
func (s *RoundScene) feedbackOffset() float64 {
	if s.ctx.ReducedMotion() {
		return 0
	}
	return utils.Lerp(24, 0, utils.EaseOutCubic(s.feedbackIn/feedbackDuration))
}

// Update 推进计时器、图片加载和输入
func (s *RoundScene) Update(deltaTime float64) {
	s.pollImage()
	s.refreshMapper()

	s.ctrl.Update(deltaTime)
	s.advanceAnimations(deltaTime)
	s.effects.Update(deltaTime)
	if s.ctx.AssistantEnabled() {
		s.ctx.Assistant.Update(deltaTime)
	}

	if s.editingRef != content.NoRef {
		s.updateEditing()
		return
	}

	s.handleKeys()
	for _, ev := range s.pointer.Poll() {
		if ev.Kind == utils.PointerDown {
			s.handlePointer(ev)
		}
	}
}

func (s *RoundScene) pollImage() {
	if s.imageCh == nil {
		return
	}
	var src image.Image
	select {
	case res := <-s.imageCh:
		s.imageCh = nil
		if res.Err != nil {
			log.Printf("[RoundScene] Image load failed: %v", res.Err)
			src = game.PlaceholderImage(int(config.ImageBoxW), int(config.ImageBoxH))
		} else {
			src = res.Image
			s.ctx.Resources.StoreImage(res.Ref, res.Image)
		}
	default:
		return
	}
	s.image = ebiten.NewImageFromImage(src)
	s.mapperDirty = true
}

func (s *RoundScene) refreshMapper() {
	w, h := ebiten.WindowSize()
	if w != s.windowW || h != s.windowH {
		s.windowW, s.windowH = w, h
		s.mapperDirty = true
	}
	if !s.mapperDirty || s.image == nil {
		return
	}
	b := s.image.Bounds()
	box := imageBox()
	s.mapper = utils.NewCoordinateMapper(float64(b.Dx()), float64(b.Dy()), box, box)
	s.mapperDirty = false
}

func (s *RoundScene) imageReady() bool {
	return s.image != nil && !s.mapperDirty
}

// digitKeys 数字键 1-9 选择参考
var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

func (s *RoundScene) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.ctrl.CloseMenu()
		return
	}

	if s.ctrl.State() == round.StateResolved {
		if utils.IsActivateKeyJustPressed() {
			if s.ctrl.Outcome().FullyCorrect {
				s.confirm()
			} else if err := s.ctrl.Retry(); err != nil {
				log.Printf("[RoundScene] Retry failed: %v", err)
			}
		}
		return
	}
	if s.ctrl.State() != round.StateInteracting {
		return
	}

	refs := s.ctrl.Registry().References()
	for i := 0; i < len(refs) && i < len(digitKeys); i++ {
		if inpututil.IsKeyJustPressed(digitKeys[i]) {
			s.ctrl.SelectReference(refs[i].ID)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.check()
	}
}

func (s *RoundScene) handlePointer(ev utils.PointerEvent) {
	x, y := ev.X, ev.Y
	if !ev.Secondary && s.ctx.AssistantEnabled() && s.ctx.Assistant.HitAvatar(x, y) {
		s.ctx.Assistant.Toggle()
		return
	}

	switch s.ctrl.State() {
	case round.StateResolved:
		if !ev.Secondary {
			s.handleFeedback(x, y)
		}
		return
	case round.StateInteracting:
	default:
		return
	}

	if s.ctrl.MenuHotspot() != "" {
		entries := s.ctrl.MenuEntries()
		if i := menuRowAt(menuRect(s.menuOrigin[0], s.menuOrigin[1], len(entries)), len(entries), x, y); i >= 0 {
			if err := s.ctrl.ChooseFromMenu(entries[i].Reference.ID); err != nil {
				log.Printf("[RoundScene] Assign failed: %v", err)
			}
		} else {
			s.ctrl.CloseMenu()
		}
		return
	}

	if id, hx, hy, ok := s.hotspotAt(x, y); ok {
		s.menuOrigin = [2]float64{hx + config.HotspotRadius, hy + config.HotspotRadius}
		if ev.Secondary {
			s.ctrl.OpenMenu(id)
		} else if err := s.ctrl.ClickHotspot(id); err != nil {
			log.Printf("[RoundScene] Assign failed: %v", err)
		}
		return
	}
	if ev.Secondary {
		return
	}

	refs := s.ctrl.Registry().References()
	if i, pencil := referenceRowAt(x, y, len(refs)); i >= 0 {
		if pencil && !refs[i].Locked {
			s.beginEditing(refs[i])
			return
		}
		s.ctrl.SelectReference(refs[i].ID)
		return
	}

	for _, b := range s.toolbarButtons() {
		if b.hit(x, y) {
			b.onClick()
			return
		}
	}

	if s.ctrl.AddMode() && s.imageReady() && s.mapper.Visible().Contains(x, y) {
		if h, err := s.ctrl.ClickImage(x, y, s.mapper); err != nil {
			log.Printf("[RoundScene] Add hotspot failed: %v", err)
		} else {
			log.Printf("[RoundScene] Added hotspot %s", h.ID)
		}
	}
}

// hotspotAt 命中的热点（后绘制的优先）
func (s *RoundScene) hotspotAt(x, y float64) (id string, hx, hy float64, ok bool) {
	if !s.imageReady() {
		return "", 0, 0, false
	}
	hotspots := s.ctrl.Registry().Hotspots()
	r := config.HotspotRadius + utils.TouchSlop()
	for i := len(hotspots) - 1; i >= 0; i-- {
		cx, cy := s.mapper.ResolveScreen(hotspots[i].Position)
		if dx, dy := x-cx, y-cy; dx*dx+dy*dy <= r*r {
			return hotspots[i].ID, cx, cy, true
		}
	}
	return "", 0, 0, false
}

type toolbarButton struct {
	button
	onClick func()
}

func (s *RoundScene) toolbarButtons() []toolbarButton {
	strs := s.ctx.Strings
	labels := []string{
		strs.Get(game.StrButtonCheck),
		strs.Get(s.ctrl.AddButtonLabelKey()),
		strs.Get(game.StrButtonNewReference),
	}
	measure := utils.FaceMeasurer(s.ctx.Resources.Font(fontSizeBody))
	rects := layoutButtonRow(labels, measure, config.ImageBoxX, config.ToolbarY, config.ButtonHeight, config.ButtonPadding, 12)
	return []toolbarButton{
		{button: button{rect: rects[0], label: labels[0], primary: true}, onClick: s.check},
		{button: button{rect: rects[1], label: labels[1]}, onClick: s.ctrl.ToggleAddMode},
		{button: button{rect: rects[2], label: labels[2]}, onClick: s.addReference},
	}
}

func (s *RoundScene) check() {
	out, err := s.ctrl.Check()
	if err != nil {
		log.Printf("[RoundScene] Check failed: %v", err)
		return
	}
	log.Printf("[RoundScene] Verdict: fullyCorrect=%v", out.FullyCorrect)
}

func (s *RoundScene) addReference() {
	n := len(s.ctrl.Registry().References()) + 1
	ref, err := s.ctrl.AddReference(s.ctx.Strings.Get(game.StrNewReferenceLabel, n))
	if err != nil {
		log.Printf("[RoundScene] Add reference failed: %v", err)
		return
	}
	s.beginEditing(ref)
}

func (s *RoundScene) beginEditing(ref content.Reference) {
	s.editingRef = ref.ID
	s.editBuffer = []rune(ref.Label)
}

// updateEditing 文本输入：回车确认，Esc 取消，点击其他位置确认
func (s *RoundScene) updateEditing() {
	s.editBuffer = ebiten.AppendInputChars(s.editBuffer)
	if len(s.editBuffer) > 0 && repeatingKeyPressed(ebiten.KeyBackspace) {
		s.editBuffer = s.editBuffer[:len(s.editBuffer)-1]
	}

	commit := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	for _, ev := range s.pointer.Poll() {
		if ev.Kind == utils.PointerDown {
			commit = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.editingRef = content.NoRef
		s.editBuffer = nil
		return
	}
	if commit {
		if err := s.ctrl.EditLabel(s.editingRef, string(s.editBuffer)); err != nil {
			log.Printf("[RoundScene] Edit label failed: %v", err)
		}
		s.editingRef = content.NoRef
		s.editBuffer = nil
	}
}

// repeatingKeyPressed 按住时按键重复
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

func (s *RoundScene) handleFeedback(x, y float64) {
	measure := utils.FaceMeasurer(s.ctx.Resources.Font(fontSizeBody))
	for _, b := range feedbackButtons(s.ctrl.Outcome().FullyCorrect, s.ctx.Strings, measure) {
		if !b.hit(x, y) {
			continue
		}
		switch b.action {
		case feedbackContinue:
			s.confirm()
		case feedbackRetry:
			if err := s.ctrl.Retry(); err != nil {
				log.Printf("[RoundScene] Retry failed: %v", err)
			}
		}
		return
	}
}

// confirm 记录结果后进入下一回合或结果舞台
func (s *RoundScene) confirm() {
	last, err := s.ctrl.Confirm()
	if err != nil {
		log.Printf("[RoundScene] Confirm failed: %v", err)
		return
	}
	if last || !s.ctx.Session.Advance() {
		s.ctx.Navigator.Navigate(game.SceneRequest{ID: game.SceneResults})
		return
	}
	s.ctx.Navigator.Navigate(game.SceneRequest{ID: game.SceneRound})
}

// Draw 绘制回合
func (s *RoundScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	title := s.ctx.Resources.Font(fontSizeTitle)
	body := s.ctx.Resources.Font(fontSizeBody)
	small := s.ctx.Resources.Font(fontSizeSmall)

	drawText(screen, s.ctx.Strings.Get(game.StrRoundTitle, s.roundIndex+1, s.roundTotal), title, config.ImageBoxX, 16, colorTextLight)

	s.drawImage(screen, body)
	s.drawHotspots(screen, small)
	s.drawReferences(screen, body)
	for _, b := range s.toolbarButtons() {
		drawButton(screen, b.button, body)
	}
	s.drawMenu(screen, body)

	if s.ctx.AssistantEnabled() {
		drawAssistant(screen, s.ctx.Assistant, body)
	}
	s.drawFeedback(screen, title, body)
	s.effects.Draw(screen)
}

func (s *RoundScene) drawImage(screen *ebiten.Image, face text.Face) {
	box := imageBox()
	if !s.imageReady() {
		drawPanel(screen, box, colorSecondary, colorPanelBorder)
		drawTextCentered(screen, s.ctx.Strings.Get(game.StrImageLoading), face, box, colorTextMuted)
		return
	}
	vis := s.mapper.Visible()
	b := s.image.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(vis.Width/float64(b.Dx()), vis.Height/float64(b.Dy()))
	op.GeoM.Translate(vis.Left, vis.Top)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.image, op)

	if s.ctrl.AddMode() {
		width := 3.0
		if !s.ctx.ReducedMotion() {
			phase := math.Mod(s.elapsed, addModePulse) / addModePulse
			if phase > 0.5 {
				phase = 1 - phase
			}
			width = utils.Lerp(2, 5, utils.EaseInOutSine(phase*2))
		}
		strokeRect(screen, vis, width, colorHighlight)
	}
}

func (s *RoundScene) drawHotspots(screen *ebiten.Image, face text.Face) {
	if !s.imageReady() {
		return
	}
	reg := s.ctrl.Registry()
	for _, h := range reg.Hotspots() {
		cx, cy := s.mapper.ResolveScreen(h.Position)
		fx, fy := float32(cx), float32(cy)
		r := float32(config.HotspotRadius * s.hotspotScale(h.ID))

		switch reg.Status(h.ID) {
		case hotspot.StatusCorrect:
			vector.DrawFilledCircle(screen, fx, fy, r, colorCorrect, true)
		case hotspot.StatusPending:
			vector.DrawFilledCircle(screen, fx, fy, r, colorPending, true)
		default:
			vector.DrawFilledCircle(screen, fx, fy, r, colorPanel, true)
		}
		border := colorPanelBorder
		if h.ID == s.ctrl.MenuHotspot() {
			border = colorHighlight
		}
		vector.StrokeCircle(screen, fx, fy, r, 2, border, true)

		if ref, ok := reg.Assignment(h.ID); ok {
			label := utils.Rect{Left: cx - float64(r), Top: cy - float64(r), Width: 2 * float64(r), Height: 2 * float64(r)}
			drawTextCentered(screen, strconv.Itoa(reg.Ordinal(ref)), face, label, colorText)
		}
	}
}

func (s *RoundScene) drawReferences(screen *ebiten.Image, face text.Face) {
	reg := s.ctrl.Registry()
	panel := utils.Rect{
		Left:   config.ReferencePanelX - 8,
		Top:    config.ReferencePanelY - 8,
		Width:  config.ReferencePanelW + 16,
		Height: config.ImageBoxH + 16,
	}
	drawPanel(screen, panel, colorPanel, colorPanelBorder)

	for i, ref := range reg.References() {
		row := referenceRowRect(i)
		fill := colorSecondary
		if ref.ID == s.ctrl.Selected() {
			fill = colorHighlight
		}
		drawRect(screen, row, fill)
		if !ref.Locked {
			strokeRect(screen, row, 1, colorTextMuted)
		}

		label := ref.Label
		if ref.ID == s.editingRef {
			label = string(s.editBuffer) + "_"
		}
		drawText(screen, strconv.Itoa(i+1)+" - "+label, face, row.Left+10, row.Top+8, colorText)

		if reg.IsReferenceAssigned(ref.ID) {
			vector.DrawFilledCircle(screen, float32(row.Right()-pencilWidth-10), float32(row.Top+row.Height/2), 5, colorCorrect, true)
		}
		if !ref.Locked {
			// 编辑图标
			px := float32(row.Right() - pencilWidth + 10)
			py := float32(row.Top + row.Height/2)
			vector.StrokeLine(screen, px, py+8, px+14, py-6, 3, colorTextMuted, true)
		}
	}
}

func (s *RoundScene) drawMenu(screen *ebiten.Image, face text.Face) {
	entries := s.ctrl.MenuEntries()
	if len(entries) == 0 {
		return
	}
	menu := menuRect(s.menuOrigin[0], s.menuOrigin[1], len(entries))
	drawPanel(screen, menu, colorPanel, colorPanelBorder)
	for i, e := range entries {
		row := utils.Rect{Left: menu.Left, Top: menu.Top + float64(i)*config.MenuRowHeight, Width: menu.Width, Height: config.MenuRowHeight}
		if e.Current {
			drawRect(screen, row.Pad(-2), colorHighlight)
		}
		drawText(screen, strconv.Itoa(e.Ordinal)+" - "+e.Reference.Label, face, row.Left+10, row.Top+7, colorText)
	}
}

func (s *RoundScene) drawFeedback(screen *ebiten.Image, title, body text.Face) {
	if s.ctrl.State() != round.StateResolved {
		return
	}
	drawRect(screen, utils.Rect{Width: float64(config.GameWindowWidth), Height: float64(config.GameWindowHeight)}, colorOverlay)
	offset := s.feedbackOffset()
	m := modalRect().Translate(0, offset)
	drawPanel(screen, m, colorPanel, colorPanelBorder)

	success := s.ctrl.Outcome().FullyCorrect
	msg := s.ctx.Strings.Get(game.StrFeedbackFailure)
	msgColor := colorWrong
	if success {
		msg = s.ctx.Strings.Get(game.StrFeedbackSuccess)
		msgColor = colorCorrect
	}
	drawTextCentered(screen, msg, title, utils.Rect{Left: m.Left, Top: m.Top + 30, Width: m.Width, Height: 60}, msgColor)

	measure := utils.FaceMeasurer(body)
	for _, b := range feedbackButtons(success, s.ctx.Strings, measure) {
		b.rect = b.rect.Translate(0, offset)
		drawButton(screen, b.button, body)
	}
}

// Dispose 拆除回合：清除校验计时器、拖拽和尺寸状态
func (s *RoundScene) Dispose() {
	s.teardown()
	s.pointer.Reset()
	s.effects.Clear()
	s.mapperDirty = true
	s.editingRef = content.NoRef
	s.imageCh = nil
	clear(s.pops)
}
