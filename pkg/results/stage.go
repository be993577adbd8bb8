// Package results 实现结果舞台：玩家移动机器人收集标记（花），每个标记揭示一条消息
//
// 所有矩形都使用屏幕坐标。舞台只做逻辑计算，绘制和输入映射在 scenes 包中。
package results

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/utils"
)

// Mode 标记模式
type Mode int

const (
	// ModeNone 没有可玩回合，不放置标记
	ModeNone Mode = iota
	// ModePass 通过：一个标记，显示祝贺消息
	ModePass
	// ModeFail 未通过：每条鼓励消息一个标记
	ModeFail
)

// String 返回模式名称
func (m Mode) String() string {
	switch m {
	case ModePass:
		return "pass"
	case ModeFail:
		return "fail"
	default:
		return "none"
	}
}

// ExitAction 离开舞台的方式
type ExitAction int

const (
	// ExitNone 仍在舞台上
	ExitNone ExitAction = iota
	// ExitRestart 从第一回合重新开始
	ExitRestart
	// ExitClose 回到封面
	ExitClose
)

// bubbleInset 气泡文字与边框的距离
const bubbleInset = 12.0

// Layout 舞台布局（屏幕坐标）
type Layout struct {
	Stage utils.Rect
	// Caption 标题气泡（百分比、得分、提示）
	Caption utils.Rect
	// Actions 动作按钮区域
	Actions utils.Rect
	// DPad 方向键区域
	DPad utils.Rect
	// LineHeight 气泡文字行高
	LineHeight float64
}

// Collectible 一个可收集的标记及其揭示的消息气泡
type Collectible struct {
	Marker    utils.Rect
	Message   string
	Lines     []string
	Bubble    utils.Rect
	Collected bool
	Pinned    bool
}

// Stage 结果舞台
type Stage struct {
	verdict game.Verdict
	result  content.ResultConfig
	layout  Layout
	cfg     config.ResultsConfig
	measure utils.TextMeasurer
	rng     *rand.Rand
	mode    Mode

	avatar  utils.Rect
	caption utils.Rect
	items   []Collectible

	assistantAvatar  utils.Rect
	assistantBubble  utils.Rect
	assistantVisible bool

	hasMovedSinceOpen bool
	teleported        bool
	sadCount          int

	drag dragState
	exit ExitAction
}

// NewStage 创建结果舞台，调用 Open 后放置头像和标记
// measure 为 nil 时按每个字符 8 像素估算宽度
func NewStage(verdict game.Verdict, result content.ResultConfig, layout Layout, cfg config.ResultsConfig, measure utils.TextMeasurer, rng *rand.Rand) *Stage {
	if measure == nil {
		measure = func(s string) float64 { return float64(len([]rune(s))) * 8 }
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if layout.LineHeight <= 0 {
		layout.LineHeight = 20
	}
	mode := ModeNone
	switch {
	case verdict.Total <= 0:
		mode = ModeNone
	case verdict.Passed:
		mode = ModePass
	default:
		mode = ModeFail
	}
	return &Stage{
		verdict: verdict,
		result:  result,
		layout:  layout,
		cfg:     cfg,
		measure: measure,
		rng:     rng,
		mode:    mode,
		caption: layout.Caption,
	}
}

// Open 头像居中并随机放置标记
func (s *Stage) Open() {
	size := s.cfg.AvatarSize
	cx, cy := s.layout.Stage.Center()
	s.avatar = utils.Rect{Left: cx - size/2, Top: cy - size/2, Width: size, Height: size}
	s.caption = s.layout.Caption
	s.hasMovedSinceOpen = false
	s.teleported = true
	s.sadCount = 0
	s.exit = ExitNone
	s.drag = dragState{}

	count := 0
	switch s.mode {
	case ModePass:
		count = 1
	case ModeFail:
		count = len(s.result.SadMessages)
	}

	s.items = make([]Collectible, 0, count)
	var placed []utils.Rect
	for i := 0; i < count; i++ {
		marker, _ := s.findSpot(placed)
		placed = append(placed, marker)
		s.items = append(s.items, Collectible{Marker: marker})
	}
	log.Printf("[Results] Stage opened: %d%% (%d/%d), mode=%s, markers=%d",
		s.verdict.Percent, s.verdict.Correct, s.verdict.Total, s.mode, count)
}

// Mode 标记模式
func (s *Stage) Mode() Mode { return s.mode }

// Verdict 最终判定
func (s *Stage) Verdict() game.Verdict { return s.verdict }

// ResultConfig 文案配置
func (s *Stage) ResultConfig() content.ResultConfig { return s.result }

// Layout 布局
func (s *Stage) Layout() Layout { return s.layout }

// Avatar 头像矩形
func (s *Stage) Avatar() utils.Rect { return s.avatar }

// Caption 标题气泡矩形（水平方向跟随头像）
func (s *Stage) Caption() utils.Rect { return s.caption }

// Items 所有标记（副本）
func (s *Stage) Items() []Collectible {
	return append([]Collectible(nil), s.items...)
}

// CollectedCount 已收集的标记数
func (s *Stage) CollectedCount() int {
	n := 0
	for _, it := range s.items {
		if it.Collected {
			n++
		}
	}
	return n
}

// HintVisible 是否显示提示行
func (s *Stage) HintVisible() bool {
	return s.mode != ModeNone && !isBlank(s.result.Hint)
}

// ConsumeTeleport 本帧是否发生了瞬移（穿越边界或打开），渲染时跳过补间
func (s *Stage) ConsumeTeleport() bool {
	t := s.teleported
	s.teleported = false
	return t
}

// SetAssistant 更新助手头像和气泡矩形；气泡显示状态变化时重新排布气泡
func (s *Stage) SetAssistant(avatar, bubble utils.Rect, bubbleVisible bool) {
	changed := bubbleVisible != s.assistantVisible
	s.assistantAvatar = avatar
	s.assistantBubble = bubble
	s.assistantVisible = bubbleVisible
	if changed {
		s.Reflow()
	}
}

// Restart 请求重新开始
func (s *Stage) Restart() {
	s.CancelDrag()
	s.exit = ExitRestart
}

// Close 请求关闭
func (s *Stage) Close() {
	s.CancelDrag()
	s.exit = ExitClose
}

// Exit 离开请求
func (s *Stage) Exit() ExitAction { return s.exit }

// Dispose 清除拖拽状态
func (s *Stage) Dispose() {
	s.CancelDrag()
}

func (s *Stage) minTop() float64 {
	return math.Max(s.layout.Stage.Top+s.cfg.StagePad, s.caption.Bottom()+s.cfg.CaptionGap)
}

// forbiddenRects 界面元素：动作按钮、方向键、助手头像、可见的助手气泡
func (s *Stage) forbiddenRects() []utils.Rect {
	pad := s.cfg.ChromePad
	rects := []utils.Rect{s.layout.Actions.Pad(pad), s.layout.DPad.Pad(pad)}
	if !s.assistantAvatar.IsEmpty() {
		rects = append(rects, s.assistantAvatar.Pad(pad))
	}
	if s.assistantVisible && !s.assistantBubble.IsEmpty() {
		rects = append(rects, s.assistantBubble.Pad(pad))
	}
	return rects
}

// balloonRects 标题气泡和所有已固定的消息气泡
func (s *Stage) balloonRects() []utils.Rect {
	pad := s.cfg.ChromePad
	rects := []utils.Rect{s.caption.Pad(pad)}
	for _, it := range s.items {
		if it.Pinned {
			rects = append(rects, it.Bubble.Pad(pad))
		}
	}
	return rects
}

func isBlank(str string) bool {
	for _, r := range str {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
