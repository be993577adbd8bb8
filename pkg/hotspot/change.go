package hotspot

import "github.com/decker502/pratica/pkg/content"

// ChangeKind 变更类型
type ChangeKind int

const (
	// ChangeHotspotCreated 新建热点
	ChangeHotspotCreated ChangeKind = iota
	// ChangeAssigned 分配或重新分配
	ChangeAssigned
	// ChangeValidated 校验计时器到期
	ChangeValidated
	// ChangeLabelEdited 参考改名
	ChangeLabelEdited
	// ChangeReferenceAdded 新增参考
	ChangeReferenceAdded
)

var changeKindNames = [...]string{"created", "assigned", "validated", "label-edited", "reference-added"}

// String 返回变更类型名称
func (k ChangeKind) String() string {
	if int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return "unknown"
}

// Change 注册表变更通知，场景据此重绘受影响的标记
type Change struct {
	Kind      ChangeKind
	HotspotID string
	RefID     content.RefID
}

// Listener 变更监听函数
type Listener func(Change)
