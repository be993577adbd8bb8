// Package assistant 实现屏幕角落的助手角色 Anadix 和她的对话气泡
//
// 两种模式：
//   - 自动循环（封面）：气泡显示 ShowDuration 秒，隐藏 PauseDuration 秒，然后显示下一条台词
//   - 仅手动（答题回合）：只有点击才开关；进入回合时自动显示一次，ManualShowDuration 秒后隐藏
//
// 所有计时器都由 Update(dt) 推进。
package assistant

import (
	"log"
	"math"
	"strings"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/utils"
)

// homeAutoOpenDelay 封面加载后自动打开气泡的延迟（秒）
const homeAutoOpenDelay = 3.0

// bubbleInset 气泡文字边距
const bubbleInset = 14.0

// HomeSpeech 封面台词
var HomeSpeech = []string{
	"Olá! Sou <b>Anadix</b>. Guardiã do conhecimento.<br>Vou te guiar na descoberta das plantas vasculares.",
}

// Layout 助手的位置和文字排版参数
type Layout struct {
	Avatar         utils.Rect
	BubbleMaxWidth float64
	LineHeight     float64
}

// Widget 助手
type Widget struct {
	cfg     config.AssistantConfig
	layout  Layout
	measure utils.TextMeasurer

	contents []string
	index    int
	text     string
	visible  bool

	manualOnly         bool
	manualIntroPending bool

	cycleTimer    timer
	pauseTimer    timer
	manualTimer   timer
	reappearTimer timer
	autoOpenTimer timer

	clock        float64
	lastActivate float64
	activated    bool

	onVisibility func(visible bool)
}

// New 创建助手，处于封面自动循环模式
func New(cfg config.AssistantConfig, layout Layout, measure utils.TextMeasurer) *Widget {
	if measure == nil {
		measure = func(s string) float64 { return float64(len([]rune(s))) * 8 }
	}
	if layout.LineHeight <= 0 {
		layout.LineHeight = 20
	}
	w := &Widget{cfg: cfg, layout: layout, measure: measure}
	w.RestoreHome()
	w.autoOpenTimer.start(homeAutoOpenDelay)
	return w
}

// SetOnVisibilityChange 气泡显示状态变化时回调（结果舞台据此重排气泡）
func (w *Widget) SetOnVisibilityChange(fn func(visible bool)) {
	w.onVisibility = fn
}

// Visible 气泡是否可见
func (w *Widget) Visible() bool { return w.visible }

// ManualOnly 是否为仅手动模式
func (w *Widget) ManualOnly() bool { return w.manualOnly }

// Text 当前台词（纯文本）
func (w *Widget) Text() string { return PlainText(w.text) }

// AvatarRect 头像矩形
func (w *Widget) AvatarRect() utils.Rect { return w.layout.Avatar }

// HitAvatar 点是否落在头像上
func (w *Widget) HitAvatar(x, y float64) bool {
	return w.layout.Avatar.Contains(x, y)
}

// Lines 气泡内折行后的文字
func (w *Widget) Lines() []string {
	maxText := w.layout.BubbleMaxWidth - 2*bubbleInset
	var out []string
	for _, para := range strings.Split(w.Text(), "\n") {
		wrapped := utils.WrapText(para, w.measure, maxText)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		out = append(out, wrapped...)
	}
	return out
}

// BubbleRect 气泡矩形：在头像右侧，底边与头像中线对齐
func (w *Widget) BubbleRect() utils.Rect {
	lines := w.Lines()
	width := math.Min(utils.MeasureLines(lines, w.measure)+2*bubbleInset, w.layout.BubbleMaxWidth)
	height := float64(len(lines))*w.layout.LineHeight + 2*bubbleInset
	av := w.layout.Avatar
	_, cy := av.Center()
	return utils.Rect{Left: av.Right() + 8, Top: cy - height, Width: width, Height: height}
}

func (w *Widget) show() {
	if !w.visible {
		w.visible = true
		w.notify()
	}
}

func (w *Widget) hide() {
	if w.visible {
		w.visible = false
		w.notify()
	}
}

func (w *Widget) notify() {
	if w.onVisibility != nil {
		w.onVisibility(w.visible)
	}
}

func (w *Widget) current() string {
	if w.index < len(w.contents) {
		return w.contents[w.index]
	}
	return ""
}

func (w *Widget) clearCycle() {
	w.cycleTimer.stop()
	w.pauseTimer.stop()
}

// RestoreHome 恢复封面台词并回到自动循环模式（气泡先隐藏）
func (w *Widget) RestoreHome() {
	w.contents = append([]string(nil), HomeSpeech...)
	w.index = 0
	w.text = w.current()
	w.clearCycle()
	w.reappearTimer.stop()
	w.hide()
	w.SetManualOnly(false)
}

// SetManualOnly 切换仅手动模式
// 进入时隐藏气泡并允许下一次 ForceReappear 自动显示一次
func (w *Widget) SetManualOnly(manual bool) {
	w.manualOnly = manual
	w.manualTimer.stop()
	if manual {
		w.clearCycle()
		w.autoOpenTimer.stop()
		w.hide()
		w.manualIntroPending = true
		return
	}
	w.manualIntroPending = false
}

// ForceReappear 换成新台词并重新显示气泡
// 仅手动模式下只更新文字，除非还有一次待显示的介绍
func (w *Widget) ForceReappear(speech string) {
	if strings.TrimSpace(speech) != "" {
		w.contents = []string{speech}
		w.index = 0
	}
	w.clearCycle()

	if w.manualOnly {
		w.hide()
		w.text = w.current()
		if w.manualIntroPending {
			w.manualIntroPending = false
			w.manualShow()
			log.Printf("[Assistant] Intro shown for %.0fs", w.cfg.ManualShowDuration)
		}
		return
	}

	w.hide()
	w.reappearTimer.start(w.cfg.ReappearDelay)
	log.Printf("[Assistant] Reappearing in %.2fs", w.cfg.ReappearDelay)
}

// Hide 隐藏气泡
func (w *Widget) Hide() {
	w.hide()
}

// Toggle 点击头像
// 仅手动模式下开关气泡；自动模式下显示并重新开始计时。短时间内的重复点击被忽略
func (w *Widget) Toggle() {
	if w.activated && w.clock-w.lastActivate < w.cfg.ClickDebounce {
		return
	}
	w.activated = true
	w.lastActivate = w.clock

	if w.manualOnly {
		w.clearCycle()
		w.manualTimer.stop()
		w.manualIntroPending = false
		if w.visible {
			w.hide()
			return
		}
		w.manualShow()
		return
	}

	if !w.visible {
		w.text = w.current()
	}
	w.show()
	w.scheduleCycle()
}

func (w *Widget) manualShow() {
	w.manualTimer.stop()
	w.text = w.current()
	w.show()
	w.manualTimer.start(w.cfg.ManualShowDuration)
}

func (w *Widget) scheduleCycle() {
	if w.manualOnly {
		return
	}
	w.clearCycle()
	w.cycleTimer.start(w.cfg.ShowDuration)
}

// Update 推进所有计时器
// 先统一推进，再处理到期事件，本帧新启动的计时器不会被同一个 dt 推进
func (w *Widget) Update(dt float64) {
	w.clock += dt

	autoOpen := w.autoOpenTimer.tick(dt)
	reappear := w.reappearTimer.tick(dt)
	manualDone := w.manualTimer.tick(dt)
	shown := w.cycleTimer.tick(dt)
	paused := w.pauseTimer.tick(dt)

	if autoOpen && !w.manualOnly {
		w.Toggle()
	}
	if reappear {
		w.text = w.current()
		w.show()
		w.scheduleCycle()
	}
	if manualDone {
		w.hide()
	}
	if shown {
		w.hide()
		w.pauseTimer.start(w.cfg.PauseDuration)
	}
	if paused {
		if len(w.contents) > 0 {
			w.index = (w.index + 1) % len(w.contents)
		}
		w.text = w.current()
		w.show()
		w.scheduleCycle()
	}
}
