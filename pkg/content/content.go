// Package content 定义练习内容（回合、参考、热点、结果配置）并负责加载
package content

import (
	"strconv"

	"github.com/decker502/pratica/pkg/utils"
)

// RefID 参考 ID 的规范文本形式
// 内容中数字 1 与字符串 "1" 视为同一个 ID
type RefID string

// NoRef 表示没有正确答案
const NoRef RefID = ""

// IsNumeric ID 是否是整数（生成片段时输出为 JSON 数字）
func (id RefID) IsNumeric() bool {
	_, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil
}

// Int 整数值，非整数返回 0
func (id RefID) Int() int {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0
	}
	return n
}

// Reference 可分配给热点的名称
type Reference struct {
	ID    RefID
	Label string
	// Locked 内容中原有的参考不可编辑，运行时添加的可编辑
	Locked bool
}

// Hotspot 图片上的标记点
type Hotspot struct {
	ID           string
	Position     utils.Position
	CorrectRefID RefID
}

// Answerable 是否有正确答案
func (h Hotspot) Answerable() bool {
	return h.CorrectRefID != NoRef
}

// Round 一个可玩的回合
type Round struct {
	ID         int
	ImageURL   string
	IntroText  string
	References []Reference
	Hotspots   []Hotspot
}

// Reference 按 ID 查找参考
func (r *Round) Reference(id RefID) (Reference, bool) {
	for _, ref := range r.References {
		if ref.ID == id {
			return ref, true
		}
	}
	return Reference{}, false
}

// Clone 深拷贝（回合控制器会修改热点和参考列表）
func (r Round) Clone() Round {
	out := r
	out.References = append([]Reference(nil), r.References...)
	out.Hotspots = append([]Hotspot(nil), r.Hotspots...)
	return out
}

// Content 一套完整的练习内容
type Content struct {
	Rounds []Round
	Result ResultConfig
	// Source 内容来源（文件路径、"embedded" 或 "fallback"）
	Source string
	// Warnings 解析时发现的内容问题（不致命）
	Warnings []string
}
