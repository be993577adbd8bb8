// Package hotspot 管理一个回合内的热点、参考列表和分配状态
//
// 分配后经过 ValidationDelay 自动校验：只有当时仍然有效的那次分配（代数一致）
// 才可能把热点标记为 correct，被覆盖的旧校验到期后什么也不做。
// 错误的分配与待定的分配在视觉上没有区别。
package hotspot

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/utils"
)

var (
	// ErrReferenceLocked 内容中原有的参考不能改名
	ErrReferenceLocked = errors.New("reference is locked")
	// ErrUnknownReference 参考不存在
	ErrUnknownReference = errors.New("unknown reference")
	// ErrUnknownHotspot 热点不存在
	ErrUnknownHotspot = errors.New("unknown hotspot")
	// ErrDisposed 注册表已释放
	ErrDisposed = errors.New("registry disposed")
)

// DefaultValidationDelay 分配后的自动校验延迟（秒）
const DefaultValidationDelay = 2.0

// Status 热点的视觉状态
type Status int

const (
	// StatusUnassigned 未分配
	StatusUnassigned Status = iota
	// StatusPending 已分配，尚未确认正确（包括分配错误的情况）
	StatusPending
	// StatusCorrect 已确认正确
	StatusCorrect
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusUnassigned:
		return "unassigned"
	case StatusPending:
		return "pending"
	case StatusCorrect:
		return "correct"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type assignment struct {
	refID      content.RefID
	status     Status
	generation uint64
}

// pendingCheck 一次排队中的自动校验
type pendingCheck struct {
	hotspotID  string
	generation uint64
	remaining  float64
}

var hotspotIDPattern = regexp.MustCompile(`^h(\d+)$`)

// Registry 一个回合的热点注册表
//
// 只在游戏主循环中使用，不是并发安全的。
type Registry struct {
	hotspots    []content.Hotspot
	refs        []content.Reference
	locked      mapset.Set[content.RefID]
	assignments map[string]*assignment
	checks      []pendingCheck
	generation  uint64
	delay       float64
	warnings    []string
	listener    Listener
	disposed    bool
}

// NewRegistry 用回合数据创建注册表
// validationDelay <= 0 时使用 DefaultValidationDelay
func NewRegistry(round content.Round, validationDelay float64) *Registry {
	if validationDelay <= 0 {
		validationDelay = DefaultValidationDelay
	}
	round = round.Clone()
	r := &Registry{
		hotspots:    round.Hotspots,
		refs:        round.References,
		locked:      mapset.New[content.RefID](),
		assignments: make(map[string]*assignment),
		delay:       validationDelay,
	}
	for i := range r.refs {
		if r.refs[i].Locked {
			r.locked.Put(r.refs[i].ID)
		}
	}
	for _, h := range r.hotspots {
		if h.Answerable() && r.refIndex(h.CorrectRefID) < 0 {
			r.warnings = append(r.warnings, fmt.Sprintf("round %d: hotspot %s expects unknown reference %q", round.ID, h.ID, h.CorrectRefID))
		}
	}
	return r
}

// SetListener 设置变更监听器（nil 取消）
func (r *Registry) SetListener(l Listener) {
	r.listener = l
}

func (r *Registry) emit(kind ChangeKind, hotspotID string, refID content.RefID) {
	if r.listener != nil {
		r.listener(Change{Kind: kind, HotspotID: hotspotID, RefID: refID})
	}
}

// Warnings 构造时发现的内容警告
func (r *Registry) Warnings() []string {
	return append([]string(nil), r.warnings...)
}

// Hotspots 热点列表（副本）
func (r *Registry) Hotspots() []content.Hotspot {
	return append([]content.Hotspot(nil), r.hotspots...)
}

// References 参考列表（副本）
func (r *Registry) References() []content.Reference {
	return append([]content.Reference(nil), r.refs...)
}

// Hotspot 按 ID 查找热点
func (r *Registry) Hotspot(id string) (content.Hotspot, bool) {
	if i := r.hotspotIndex(id); i >= 0 {
		return r.hotspots[i], true
	}
	return content.Hotspot{}, false
}

// Reference 按 ID 查找参考
func (r *Registry) Reference(id content.RefID) (content.Reference, bool) {
	if i := r.refIndex(id); i >= 0 {
		return r.refs[i], true
	}
	return content.Reference{}, false
}

func (r *Registry) hotspotIndex(id string) int {
	for i := range r.hotspots {
		if r.hotspots[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) refIndex(id content.RefID) int {
	for i := range r.refs {
		if r.refs[i].ID == id {
			return i
		}
	}
	return -1
}

// SuggestNextID 建议下一个热点 ID：h + (现有 hN 的最大 N + 1)
func (r *Registry) SuggestNextID() string {
	maxN := 0
	for _, h := range r.hotspots {
		m := hotspotIDPattern.FindStringSubmatch(strings.TrimSpace(h.ID))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxN {
			maxN = n
		}
	}
	return "h" + strconv.Itoa(maxN+1)
}

// CreateHotspot 添加新热点（编辑模式），总是成功
func (r *Registry) CreateHotspot(pos utils.Position, correctRefID content.RefID) content.Hotspot {
	h := content.Hotspot{ID: r.SuggestNextID(), Position: pos, CorrectRefID: correctRefID}
	r.hotspots = append(r.hotspots, h)
	log.Printf("[Hotspot] Created %s at top=%s left=%s", h.ID, pos.Top, pos.Left)
	r.emit(ChangeHotspotCreated, h.ID, correctRefID)
	return h
}

// Assign 记录（或覆盖）热点的分配，状态变为 pending，并重新安排校验
func (r *Registry) Assign(hotspotID string, refID content.RefID) error {
	if r.disposed {
		return ErrDisposed
	}
	if r.hotspotIndex(hotspotID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownHotspot, hotspotID)
	}
	if r.refIndex(refID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownReference, refID)
	}

	r.generation++
	r.assignments[hotspotID] = &assignment{refID: refID, status: StatusPending, generation: r.generation}

	// 同一热点的旧校验直接丢弃；即使保留，代数不一致也不会生效
	kept := r.checks[:0]
	for _, c := range r.checks {
		if c.hotspotID != hotspotID {
			kept = append(kept, c)
		}
	}
	r.checks = append(kept, pendingCheck{hotspotID: hotspotID, generation: r.generation, remaining: r.delay})

	r.emit(ChangeAssigned, hotspotID, refID)
	return nil
}

// Update 推进校验计时器
func (r *Registry) Update(dt float64) {
	if r.disposed || len(r.checks) == 0 {
		return
	}
	var due []pendingCheck
	kept := r.checks[:0]
	for _, c := range r.checks {
		c.remaining -= dt
		if c.remaining <= 0 {
			due = append(due, c)
		} else {
			kept = append(kept, c)
		}
	}
	r.checks = kept
	for _, c := range due {
		r.runCheck(c.hotspotID, c.generation)
	}
}

// runCheck 校验到期：代数不是当前分配的代数时不做任何事
func (r *Registry) runCheck(hotspotID string, generation uint64) {
	a, ok := r.assignments[hotspotID]
	if !ok || a.generation != generation {
		return
	}
	h, _ := r.Hotspot(hotspotID)
	if h.Answerable() && h.CorrectRefID == a.refID && r.refIndex(a.refID) >= 0 {
		a.status = StatusCorrect
	} else {
		a.status = StatusPending
	}
	r.emit(ChangeValidated, hotspotID, a.refID)
}

// ValidateNow 立即校验所有已分配热点（点击"检查"时调用）
func (r *Registry) ValidateNow() {
	r.checks = r.checks[:0]
	for _, h := range r.hotspots {
		if a, ok := r.assignments[h.ID]; ok {
			r.runCheck(h.ID, a.generation)
		}
	}
}

// PendingChecks 排队中的校验数量
func (r *Registry) PendingChecks() int {
	return len(r.checks)
}

// Status 热点的视觉状态
func (r *Registry) Status(hotspotID string) Status {
	if a, ok := r.assignments[hotspotID]; ok {
		return a.status
	}
	return StatusUnassigned
}

// Assignment 热点当前分配的参考
func (r *Registry) Assignment(hotspotID string) (content.RefID, bool) {
	if a, ok := r.assignments[hotspotID]; ok {
		return a.refID, true
	}
	return content.NoRef, false
}

// IsReferenceAssigned 是否有热点分配了该参考（参考列表的 "已使用" 标记）
func (r *Registry) IsReferenceAssigned(refID content.RefID) bool {
	for _, a := range r.assignments {
		if a.refID == refID {
			return true
		}
	}
	return false
}

// Ordinal 参考在列表中的序号（从 1 开始），不存在返回 0
// 热点标记上显示的就是这个序号
func (r *Registry) Ordinal(refID content.RefID) int {
	return r.refIndex(refID) + 1
}

// IsLocked 参考是否不可编辑
func (r *Registry) IsLocked(refID content.RefID) bool {
	return r.locked.Has(refID)
}

// EditLabel 修改运行时添加的参考名称（去除首尾空白）
func (r *Registry) EditLabel(refID content.RefID, text string) error {
	i := r.refIndex(refID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownReference, refID)
	}
	if r.locked.Has(refID) {
		return fmt.Errorf("%w: %s", ErrReferenceLocked, refID)
	}
	r.refs[i].Label = strings.TrimSpace(text)
	r.emit(ChangeLabelEdited, "", refID)
	return nil
}

// AddReference 添加可编辑的参考，ID 为下一个未使用的整数
func (r *Registry) AddReference(label string) content.Reference {
	maxN := 0
	for _, ref := range r.refs {
		if n := ref.ID.Int(); n > maxN {
			maxN = n
		}
	}
	ref := content.Reference{ID: content.RefID(strconv.Itoa(maxN + 1)), Label: strings.TrimSpace(label)}
	r.refs = append(r.refs, ref)
	r.emit(ChangeReferenceAdded, "", ref.ID)
	return ref
}

// Dispose 丢弃所有待执行的校验；之后的分配会返回 ErrDisposed
func (r *Registry) Dispose() {
	r.checks = nil
	r.listener = nil
	r.disposed = true
}
