package content

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ResultConfig 结果舞台的文案配置
type ResultConfig struct {
	// Hint 标题下的提示，空字符串表示不显示
	Hint             string
	CelebrateMessage string
	SadMessages      []string
	// AnadixSpeech 结果页助手台词（可包含 <br>、<b>）
	AnadixSpeech string
}

// DefaultResultConfig 默认文案
func DefaultResultConfig() ResultConfig {
	return ResultConfig{
		Hint:             "Mova o robô para coletar a estrela.",
		CelebrateMessage: "Parabéns! Continue assim.",
		SadMessages: []string{
			"Fiquei triste, precisa estudar mais.",
			"Acredito na sua capacidade.",
			"Você consegue!",
		},
		AnadixSpeech: "Este robô veio de outra galáxia e está estudando plantas.<br>Ajude-o a coletar flores para levá-las ao seu planeta.",
	}
}

// parseResultConfig 合并 JSON 中的 result 对象与默认值
//
//   - hint 只要是字符串就采用（允许空字符串关闭提示）
//   - celebrateMessage / anadixSpeech 非空白才采用
//   - sadMessages 过滤非字符串和空白项，列表为空时保留默认
func parseResultConfig(result gjson.Result) ResultConfig {
	out := DefaultResultConfig()
	if !result.IsObject() {
		return out
	}

	if hint := result.Get("hint"); hint.Type == gjson.String {
		out.Hint = hint.Str
	}
	if msg := result.Get("celebrateMessage"); msg.Type == gjson.String && strings.TrimSpace(msg.Str) != "" {
		out.CelebrateMessage = msg.Str
	}
	if speech := result.Get("anadixSpeech"); speech.Type == gjson.String && strings.TrimSpace(speech.Str) != "" {
		out.AnadixSpeech = speech.Str
	}
	if sad := result.Get("sadMessages"); sad.IsArray() {
		var list []string
		sad.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.String {
				if s := strings.TrimSpace(v.Str); s != "" {
					list = append(list, s)
				}
			}
			return true
		})
		if len(list) > 0 {
			out.SadMessages = list
		}
	}
	return out
}

// SadMessage 第 n 个（从 0 开始）收集到的标记显示的消息，超出时取最后一条
func (c ResultConfig) SadMessage(n int) string {
	if len(c.SadMessages) == 0 {
		return ""
	}
	if n >= len(c.SadMessages) {
		n = len(c.SadMessages) - 1
	}
	if n < 0 {
		n = 0
	}
	return c.SadMessages[n]
}
