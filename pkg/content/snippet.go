package content

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/sjson"
)

// 编辑辅助：生成可直接粘贴进内容 JSON 的片段

const snippetIndent = "          "

// HotspotSnippet 新热点片段，correctRefId 用 0 占位，由作者替换
//
//	{"id":"h4","top":"48%","left":"52%","correctRefId":0},
func HotspotSnippet(id string, topPct, leftPct float64) (string, error) {
	obj, err := sjson.Set("", "id", id)
	if err != nil {
		return "", fmt.Errorf("failed to build hotspot snippet: %w", err)
	}
	for _, kv := range []struct{ key, val string }{
		{"top", FormatPercent(topPct)},
		{"left", FormatPercent(leftPct)},
	} {
		if obj, err = sjson.Set(obj, kv.key, kv.val); err != nil {
			return "", fmt.Errorf("failed to build hotspot snippet: %w", err)
		}
	}
	if obj, err = sjson.SetRaw(obj, "correctRefId", "0"); err != nil {
		return "", fmt.Errorf("failed to build hotspot snippet: %w", err)
	}
	return obj + ",", nil
}

// FormatPercent 四舍五入到整数百分比，例如 "48%"
func FormatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v)))
}

// ReferencesSnippet 当前参考列表片段（带缩进的 "references": [...] 块）
func ReferencesSnippet(refs []Reference) (string, error) {
	lines := []string{snippetIndent + `"references": [`}
	for i, ref := range refs {
		var (
			obj string
			err error
		)
		if ref.ID.IsNumeric() {
			obj, err = sjson.SetRaw("", "id", string(ref.ID))
		} else {
			obj, err = sjson.Set("", "id", string(ref.ID))
		}
		if err != nil {
			return "", fmt.Errorf("failed to build references snippet: %w", err)
		}
		if obj, err = sjson.Set(obj, "label", ref.Label); err != nil {
			return "", fmt.Errorf("failed to build references snippet: %w", err)
		}
		comma := ""
		if i < len(refs)-1 {
			comma = ","
		}
		lines = append(lines, snippetIndent+"  "+obj+comma)
	}
	lines = append(lines, snippetIndent+"],")
	return strings.Join(lines, "\n"), nil
}
