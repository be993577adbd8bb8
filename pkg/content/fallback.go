package content

import "github.com/decker502/pratica/pkg/utils"

// 内置回合：内容文件缺失或无效时使用，保证程序始终可玩
const fallbackImageURL = "https://i.imgur.com/k8D25Bs.jpeg"

const fallbackSpeech = "Olá! Sou <b>Anadix</b>. Guardiã do conhecimento.<br>Vamos praticar identificando estruturas.<br><br>Dica: clique nos pontos e associe ao nome correto."

func pct(top, left float64) utils.Position {
	return utils.Position{
		Top:  utils.Percent(top),
		Left: utils.Percent(left),
	}
}

// Fallback 返回内置内容
func Fallback() *Content {
	return &Content{
		Source: SourceFallback,
		Result: DefaultResultConfig(),
		Rounds: []Round{
			{
				ID:        1,
				ImageURL:  fallbackImageURL,
				IntroText: fallbackSpeech,
				References: []Reference{
					{ID: "1", Label: "Xilema", Locked: true},
					{ID: "2", Label: "Floema", Locked: true},
					{ID: "3", Label: "Câmbio", Locked: true},
				},
				Hotspots: []Hotspot{
					{ID: "h1", Position: pct(48, 52), CorrectRefID: "1"},
					{ID: "h2", Position: pct(50, 66), CorrectRefID: "2"},
					{ID: "h3", Position: pct(58, 49), CorrectRefID: "3"},
				},
			},
		},
	}
}
