package content

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/zyedidia/generic/mapset"

	"github.com/decker502/pratica/pkg/embedded"
	"github.com/decker502/pratica/pkg/utils"
)

// ErrInvalidPayload 内容既不是数组也不是对象，或不是合法 JSON
var ErrInvalidPayload = errors.New("invalid content payload")

// ErrNoRounds 内容中没有可玩的回合
var ErrNoRounds = errors.New("content has no playable rounds")

// 内容来源
const (
	SourceEmbedded = "embedded"
	SourceFallback = "fallback"

	// EmbeddedPath 嵌入的默认内容
	EmbeddedPath = "data/content/pratica.json"
)

// Load 按顺序尝试：指定文件 → 嵌入内容 → 内置回合
// 任何一步失败都只记录日志，最终总能返回可玩的内容
func Load(path string) *Content {
	if path != "" {
		c, err := LoadFile(path)
		if err == nil {
			return c
		}
		log.Printf("[Content] Failed to load %s: %v", path, err)
	}

	if embedded.IsInitialized() {
		c, err := loadFrom(SourceEmbedded, func() ([]byte, error) { return embedded.ReadFile(EmbeddedPath) })
		if err == nil {
			return c
		}
		log.Printf("[Content] Failed to load embedded content: %v", err)
	}

	log.Printf("[Content] Using built-in fallback round")
	return Fallback()
}

// LoadFile 严格读取一个内容文件：读不到、不是合法内容或没有回合时返回错误
func LoadFile(path string) (*Content, error) {
	return loadFrom(path, func() ([]byte, error) { return os.ReadFile(path) })
}

func loadFrom(source string, read func() ([]byte, error)) (*Content, error) {
	data, err := read()
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if len(c.Rounds) == 0 {
		return nil, ErrNoRounds
	}
	c.Source = source
	log.Printf("[Content] Loaded %d round(s) from %s (%d warning(s))", len(c.Rounds), source, len(c.Warnings))
	return c, nil
}

// Parse 宽松解析内容 JSON
//
// 支持两种格式：
//  1. 数组：[ {game}, {game} ... ]
//  2. 对象：{ "result": {...}, "games": [ {game} ... ] }
//
// 不合格的参考和热点会被过滤掉，而不是拒绝整个内容。
func Parse(data []byte) (*Content, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidPayload)
	}

	root := gjson.ParseBytes(data)
	c := &Content{Result: DefaultResultConfig()}

	var games gjson.Result
	switch {
	case root.IsArray():
		games = root
	case root.IsObject():
		games = root.Get("games")
		c.Result = parseResultConfig(root.Get("result"))
	default:
		return nil, fmt.Errorf("%w: expected an array or an object", ErrInvalidPayload)
	}

	if games.IsArray() {
		idx := 0
		games.ForEach(func(_, g gjson.Result) bool {
			round, warnings := parseRound(idx, g)
			c.Rounds = append(c.Rounds, round)
			c.Warnings = append(c.Warnings, warnings...)
			idx++
			return true
		})
	}

	c.Warnings = append(c.Warnings, normalizeRoundIDs(c.Rounds)...)

	for _, w := range c.Warnings {
		log.Printf("[Content] %s", w)
	}
	return c, nil
}

// parseRefID 数字或字符串 ID 转为规范形式
func parseRefID(v gjson.Result) (RefID, bool) {
	switch v.Type {
	case gjson.Number:
		return RefID(strconv.FormatFloat(v.Num, 'f', -1, 64)), true
	case gjson.String:
		return RefID(v.Str), true
	}
	return NoRef, false
}

// isPlaceholderRef correctRefId 为 0 或空字符串
func isPlaceholderRef(v gjson.Result) bool {
	switch v.Type {
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return strings.TrimSpace(v.Str) == ""
	}
	return false
}

func parseRound(idx int, g gjson.Result) (Round, []string) {
	var warnings []string
	round := Round{ID: -1}

	if id := g.Get("id"); id.Type == gjson.Number && id.Num > 0 && id.Num == math.Trunc(id.Num) {
		round.ID = int(id.Num)
	} else if id.Exists() && id.Type != gjson.Null {
		warnings = append(warnings, fmt.Sprintf("game %d: id %s is not a positive integer", idx+1, id.Raw))
	}
	if img := g.Get("img"); img.Type == gjson.String {
		round.ImageURL = img.Str
	}
	if speech := g.Get("anadixSpeech"); speech.Type == gjson.String {
		round.IntroText = speech.Str
	}

	refIDs := mapset.New[RefID]()
	refs := g.Get("references")
	if !refs.IsArray() {
		refs = gjson.Result{}
	}
	refs.ForEach(func(_, r gjson.Result) bool {
		id, ok := parseRefID(r.Get("id"))
		label := r.Get("label")
		if !ok || label.Type != gjson.String {
			return true
		}
		if refIDs.Has(id) {
			warnings = append(warnings, fmt.Sprintf("game %d: duplicate reference id %q ignored", idx+1, id))
			return true
		}
		refIDs.Put(id)
		round.References = append(round.References, Reference{ID: id, Label: label.Str, Locked: true})
		return true
	})

	hotspots := g.Get("hotspots")
	if !hotspots.IsArray() {
		hotspots = gjson.Result{}
	}
	seen := 0
	hotspots.ForEach(func(_, h gjson.Result) bool {
		top, left := h.Get("top"), h.Get("left")
		if top.Type != gjson.String || left.Type != gjson.String {
			return true
		}
		seen++

		id := fmt.Sprintf("h%d", seen)
		if hid := h.Get("id"); hid.Type == gjson.String && strings.TrimSpace(hid.Str) != "" {
			id = hid.Str
		}

		topCoord, errTop := utils.ParseCoord(top.Str)
		leftCoord, errLeft := utils.ParseCoord(left.Str)
		if errTop != nil || errLeft != nil {
			warnings = append(warnings, fmt.Sprintf("game %d: hotspot %s has invalid position (top=%q, left=%q)", idx+1, id, top.Str, left.Str))
			return true
		}

		hotspot := Hotspot{ID: id, Position: utils.Position{Top: topCoord, Left: leftCoord}}
		if correct := h.Get("correctRefId"); correct.Exists() && correct.Type != gjson.Null {
			refID, ok := parseRefID(correct)
			// 0 和空字符串是片段占位符：热点没有正确答案
			placeholder := isPlaceholderRef(correct)
			switch {
			case !ok:
				warnings = append(warnings, fmt.Sprintf("game %d: hotspot %s has a correctRefId that is neither number nor string", idx+1, id))
			case !refIDs.Has(refID):
				warnings = append(warnings, fmt.Sprintf("game %d: hotspot %s correctRefId %q not found in references", idx+1, id, refID))
				if !placeholder {
					hotspot.CorrectRefID = refID
				}
			case placeholder:
				// 即使有 id 为 0 的参考，占位符也不算答案
			default:
				hotspot.CorrectRefID = refID
			}
		}
		round.Hotspots = append(round.Hotspots, hotspot)
		return true
	})

	return round, warnings
}

// normalizeRoundIDs 保证回合 ID 唯一且为正整数
// 缺失或无效时使用 下标+1，冲突时递增；改动作者给定的 ID 时返回警告
func normalizeRoundIDs(rounds []Round) []string {
	var warnings []string
	used := mapset.New[int]()
	for i := range rounds {
		authored := rounds[i].ID
		id := authored
		if id <= 0 {
			id = i + 1
		}
		for used.Has(id) {
			id++
		}
		used.Put(id)
		rounds[i].ID = id
		if authored > 0 && id != authored {
			warnings = append(warnings, fmt.Sprintf("game %d: duplicate id %d renumbered to %d", i+1, authored, id))
		}
	}
	return warnings
}
