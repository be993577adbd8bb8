// Package round 实现一个答题回合的流程控制
//
// 状态流转：Setup → Interacting → Validating → Resolved，拆除后为 Closed。
// 控制器只处理逻辑，渲染和输入映射由 scenes 包负责。
package round

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/hotspot"
	"github.com/decker502/pratica/pkg/utils"
)

var (
	// ErrWrongState 当前状态不允许该操作
	ErrWrongState = errors.New("operation not allowed in current round state")
	// ErrOutsideImage 点击位置不在图片可见区域内
	ErrOutsideImage = errors.New("click outside visible image")
)

// copiedLabelDuration "Copiado!" 提示的显示时长（秒）
const copiedLabelDuration = 0.9

// Assistant 回合需要的助手能力
type Assistant interface {
	SetManualOnly(manual bool)
	ForceReappear(html string)
	Hide()
}

// ViewerHost 3D 查看器宿主，回合开始时释放所有查看器
type ViewerHost interface {
	DisposeAll()
}

// Celebrator 答对后的庆祝效果（彩纸）
type Celebrator interface {
	Celebrate()
}

// Deps 控制器的外部协作者，均可为 nil
type Deps struct {
	Assistant     Assistant
	Viewers       ViewerHost
	Clipboard     game.Clipboard
	Celebrator    Celebrator
	ReducedMotion func() bool
}

// MenuEntry 分配菜单中的一项
type MenuEntry struct {
	Reference content.Reference
	Ordinal   int
	Current   bool
}

// Outcome 一次检查的结果
type Outcome struct {
	FullyCorrect bool
	Result       game.RoundResult
}

// Controller 一个回合的控制器
type Controller struct {
	session  *game.Session
	round    content.Round
	cfg      config.RoundConfig
	deps     Deps
	registry *hotspot.Registry

	state       State
	selected    content.RefID
	menuHotspot string
	addMode     bool
	copiedTimer float64

	outcome        Outcome
	confirmed      bool
	celebrateTimer float64
	celebrating    bool

	tornDown bool
}

// NewController 创建回合控制器，调用 Setup 后才可交互
func NewController(session *game.Session, round content.Round, cfg config.RoundConfig, deps Deps) *Controller {
	return &Controller{
		session: session,
		round:   round,
		cfg:     cfg,
		deps:    deps,
		state:   StateSetup,
	}
}

// Setup 载入回合数据并进入交互状态
// 返回的拆除函数只会执行一次
func (c *Controller) Setup() (teardown func()) {
	c.registry = hotspot.NewRegistry(c.round, c.cfg.ValidationDelay)
	for _, w := range c.registry.Warnings() {
		log.Printf("[Content] Warning: %s", w)
	}

	if c.deps.Viewers != nil {
		c.deps.Viewers.DisposeAll()
	}
	if c.deps.Assistant != nil {
		c.deps.Assistant.SetManualOnly(true)
		c.deps.Assistant.ForceReappear(c.round.IntroText)
	}

	c.state = StateInteracting
	log.Printf("[Round] Round %d ready: %d hotspots, %d references",
		c.round.ID, len(c.round.Hotspots), len(c.round.References))
	return c.teardown
}

func (c *Controller) teardown() {
	if c.tornDown {
		return
	}
	c.tornDown = true
	if c.registry != nil {
		c.registry.Dispose()
	}
	// 回合的开场白不带到下一个场景
	if c.deps.Assistant != nil {
		c.deps.Assistant.Hide()
	}
	c.celebrating = false
	c.menuHotspot = ""
	c.addMode = false
	c.state = StateClosed
	log.Printf("[Round] Round %d torn down", c.round.ID)
}

// Registry 热点注册表（Setup 之前为 nil）
func (c *Controller) Registry() *hotspot.Registry { return c.registry }

// Round 回合数据
func (c *Controller) Round() content.Round { return c.round }

// State 当前状态
func (c *Controller) State() State { return c.state }

// Selected 当前选中的参考（未选中为空）
func (c *Controller) Selected() content.RefID { return c.selected }

// MenuHotspot 打开菜单的热点（未打开为空）
func (c *Controller) MenuHotspot() string { return c.menuHotspot }

// AddMode 是否处于添加模式
func (c *Controller) AddMode() bool { return c.addMode }

// Outcome 最近一次检查的结果
func (c *Controller) Outcome() Outcome { return c.outcome }

// AddButtonLabelKey 添加按钮的文本键
func (c *Controller) AddButtonLabelKey() string {
	switch {
	case c.copiedTimer > 0:
		return game.StrButtonAddCopied
	case c.addMode:
		return game.StrButtonAddActive
	default:
		return game.StrButtonAdd
	}
}

// SelectReference 选中参考；再次选中同一参考则取消
func (c *Controller) SelectReference(refID content.RefID) {
	if c.state != StateInteracting {
		return
	}
	if c.selected == refID {
		c.selected = content.NoRef
		return
	}
	if _, ok := c.registry.Reference(refID); !ok {
		return
	}
	c.selected = refID
}

// ClickHotspot 点击热点：有选中参考时直接分配，否则打开菜单
func (c *Controller) ClickHotspot(hotspotID string) error {
	if c.state != StateInteracting {
		return ErrWrongState
	}
	if c.addMode {
		return nil
	}
	if c.selected == content.NoRef {
		c.OpenMenu(hotspotID)
		return nil
	}
	if err := c.registry.Assign(hotspotID, c.selected); err != nil {
		return err
	}
	c.selected = content.NoRef
	return nil
}

// OpenMenu 打开热点的分配菜单（右键或无选中时点击）
func (c *Controller) OpenMenu(hotspotID string) {
	if c.state != StateInteracting || c.addMode {
		return
	}
	if _, ok := c.registry.Hotspot(hotspotID); !ok {
		return
	}
	c.menuHotspot = hotspotID
}

// MenuEntries 菜单列出所有参考，并标记当前分配
func (c *Controller) MenuEntries() []MenuEntry {
	if c.menuHotspot == "" {
		return nil
	}
	current, _ := c.registry.Assignment(c.menuHotspot)
	refs := c.registry.References()
	entries := make([]MenuEntry, 0, len(refs))
	for i, ref := range refs {
		entries = append(entries, MenuEntry{Reference: ref, Ordinal: i + 1, Current: ref.ID == current})
	}
	return entries
}

// ChooseFromMenu 从菜单选择参考并关闭菜单
func (c *Controller) ChooseFromMenu(refID content.RefID) error {
	if c.menuHotspot == "" {
		return ErrWrongState
	}
	hotspotID := c.menuHotspot
	c.menuHotspot = ""
	return c.registry.Assign(hotspotID, refID)
}

// CloseMenu 关闭菜单
func (c *Controller) CloseMenu() {
	c.menuHotspot = ""
}

// ToggleAddMode 切换添加模式，并把参考列表片段复制到剪贴板
func (c *Controller) ToggleAddMode() {
	if c.state != StateInteracting {
		return
	}
	c.copySnippet(content.ReferencesSnippet(c.registry.References()))
	c.addMode = !c.addMode
	c.menuHotspot = ""
}

// ClickImage 添加模式下点击图片：在点击位置创建热点并复制热点片段
func (c *Controller) ClickImage(sx, sy float64, mapper utils.CoordinateMapper) (content.Hotspot, error) {
	if c.state != StateInteracting || !c.addMode {
		return content.Hotspot{}, ErrWrongState
	}
	px, py, ok := mapper.ScreenToPercent(sx, sy)
	if !ok {
		return content.Hotspot{}, ErrOutsideImage
	}
	left := math.Round(px)
	top := math.Round(py)

	pos := utils.Position{Top: utils.Percent(top), Left: utils.Percent(left)}
	h := c.registry.CreateHotspot(pos, c.selected)

	// 片段中的 correctRefId 固定为 0，由作者手动填写
	c.copySnippet(content.HotspotSnippet(h.ID, top, left))
	c.addMode = false
	return h, nil
}

func (c *Controller) copySnippet(snippet string, err error) {
	if err != nil {
		log.Printf("[Round] Failed to build snippet: %v", err)
		return
	}
	if game.CopyOrLog(c.deps.Clipboard, snippet) {
		c.copiedTimer = copiedLabelDuration
	}
}

// AddReference 添加可编辑的参考
func (c *Controller) AddReference(label string) (content.Reference, error) {
	if c.state != StateInteracting {
		return content.Reference{}, ErrWrongState
	}
	return c.registry.AddReference(label), nil
}

// EditLabel 修改参考名称
func (c *Controller) EditLabel(refID content.RefID, text string) error {
	if c.state != StateInteracting {
		return ErrWrongState
	}
	return c.registry.EditLabel(refID, text)
}

// Check 校验整个回合
//
// 完全正确：至少有一个有答案的热点，且每个有答案的热点都分配了正确参考。
// 结果写入会话的回顾列表（同一回合重复检查时替换）。
func (c *Controller) Check() (Outcome, error) {
	if c.state != StateInteracting {
		return Outcome{}, ErrWrongState
	}
	c.state = StateValidating
	c.menuHotspot = ""
	c.addMode = false
	c.registry.ValidateNow()

	result := game.RoundResult{RoundID: c.round.ID, ImageURL: c.round.ImageURL}
	answerable := 0
	allCorrect := true
	for _, h := range c.registry.Hotspots() {
		if !h.Answerable() {
			continue
		}
		answerable++
		chosen, _ := c.registry.Assignment(h.ID)
		item := game.ResultItem{
			HotspotID:    h.ID,
			ChosenRefID:  chosen,
			CorrectRefID: h.CorrectRefID,
			ChosenLabel:  c.labelOf(chosen),
			CorrectLabel: c.labelOf(h.CorrectRefID),
			IsCorrect:    chosen != content.NoRef && chosen == h.CorrectRefID,
		}
		if !item.IsCorrect {
			allCorrect = false
		}
		result.Items = append(result.Items, item)
	}
	fullyCorrect := answerable > 0 && allCorrect

	if c.session != nil {
		c.session.RecordReview(result)
	}
	c.outcome = Outcome{FullyCorrect: fullyCorrect, Result: result}
	c.confirmed = false
	c.state = StateResolved
	log.Printf("[Round] Round %d checked: fullyCorrect=%v (%d answerable)", c.round.ID, fullyCorrect, answerable)

	if fullyCorrect && !c.reducedMotion() {
		c.celebrating = true
		c.celebrateTimer = c.cfg.ConfettiDelay
	}
	return c.outcome, nil
}

func (c *Controller) labelOf(refID content.RefID) string {
	if refID == content.NoRef {
		return ""
	}
	if ref, ok := c.registry.Reference(refID); ok {
		return ref.Label
	}
	return string(refID)
}

func (c *Controller) reducedMotion() bool {
	return c.deps.ReducedMotion != nil && c.deps.ReducedMotion()
}

// Retry 失败后回到交互状态，分配保持不变
func (c *Controller) Retry() error {
	if c.state != StateResolved || c.outcome.FullyCorrect || c.confirmed {
		return ErrWrongState
	}
	c.state = StateInteracting
	return nil
}

// Confirm 记录回合结果，返回是否为最后一个回合
// 推进到下一回合由调用方决定
func (c *Controller) Confirm() (last bool, err error) {
	if c.state != StateResolved || c.confirmed {
		return false, ErrWrongState
	}
	c.confirmed = true
	if c.session == nil {
		return true, nil
	}
	c.session.Scorer().RecordRoundOutcome(c.outcome.FullyCorrect)
	return c.session.IsLastRound(), nil
}

// Update 推进校验计时器和庆祝延迟
func (c *Controller) Update(dt float64) {
	if c.state == StateClosed || c.registry == nil {
		return
	}
	c.registry.Update(dt)

	if c.copiedTimer > 0 {
		c.copiedTimer -= dt
	}
	if c.celebrating {
		c.celebrateTimer -= dt
		if c.celebrateTimer <= 0 {
			c.celebrating = false
			if c.deps.Celebrator != nil {
				c.deps.Celebrator.Celebrate()
			}
		}
	}
}

// String 调试输出
func (c *Controller) String() string {
	return fmt.Sprintf("round %d [%s]", c.round.ID, c.state)
}
