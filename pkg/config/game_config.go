package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/pratica/pkg/embedded"
)

// EmbeddedGameConfigPath 嵌入的游戏参数文件
const EmbeddedGameConfigPath = "data/config/game.yaml"

// ErrInvalidGameConfig 配置值不合法
var ErrInvalidGameConfig = errors.New("invalid game config")

// GameConfig 游戏参数配置（data/config/game.yaml）
type GameConfig struct {
	Round     RoundConfig     `yaml:"round"`
	Results   ResultsConfig   `yaml:"results"`
	Assistant AssistantConfig `yaml:"assistant"`
	Confetti  ConfettiConfig  `yaml:"confetti"`
}

// RoundConfig 答题回合参数
type RoundConfig struct {
	// ValidationDelay 分配后自动校验的延迟（秒）
	ValidationDelay float64 `yaml:"validationDelay"`
	// ConfettiDelay 答对后彩纸延迟（秒）
	ConfettiDelay float64 `yaml:"confettiDelay"`
}

// ResultsConfig 结果舞台参数（像素）
type ResultsConfig struct {
	AvatarSize        float64 `yaml:"avatarSize"`
	MarkerSize        float64 `yaml:"markerSize"`
	MoveStep          float64 `yaml:"moveStep"`
	WrapMargin        float64 `yaml:"wrapMargin"`        // 穿越边界后至少可见的宽度
	PlacementAttempts int     `yaml:"placementAttempts"` // 每个标记的随机放置尝试次数
	ChromePad         float64 `yaml:"chromePad"`
	MarkerGap         float64 `yaml:"markerGap"`
	StagePad          float64 `yaml:"stagePad"`
	CaptionGap        float64 `yaml:"captionGap"` // 气泡与标题之间的最小距离
	BubbleMaxWidth    float64 `yaml:"bubbleMaxWidth"`
	BubblePad         float64 `yaml:"bubblePad"`          // 气泡之间的间距
	AssistantPad      float64 `yaml:"assistantBubblePad"` // 与助手气泡之间的间距
	ChromeIterations  int     `yaml:"chromeIterations"`
	OverlapIterations int     `yaml:"overlapIterations"`
	ReflowPasses      int     `yaml:"reflowPasses"`
	TweenRate         float64 `yaml:"tweenRate"` // 头像移动补间速度
}

// AssistantConfig 助手 Anadix 的显示节奏（秒）
type AssistantConfig struct {
	ShowDuration       float64 `yaml:"showDuration"`
	PauseDuration      float64 `yaml:"pauseDuration"`
	ManualShowDuration float64 `yaml:"manualShowDuration"`
	ReappearDelay      float64 `yaml:"reappearDelay"`
	ClickDebounce      float64 `yaml:"clickDebounce"`
}

// ConfettiConfig 彩纸参数
type ConfettiConfig struct {
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"` // 角度
	// OriginY 发射点相对窗口高度的比例
	OriginY float64 `yaml:"originY"`
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Round: RoundConfig{
			ValidationDelay: 2.0,
			ConfettiDelay:   0.15,
		},
		Results: ResultsConfig{
			AvatarSize:        96,
			MarkerSize:        52,
			MoveStep:          60,
			WrapMargin:        18,
			PlacementAttempts: 35,
			ChromePad:         10,
			MarkerGap:         6,
			StagePad:          10,
			CaptionGap:        12,
			BubbleMaxWidth:    260,
			BubblePad:         8,
			AssistantPad:      10,
			ChromeIterations:  6,
			OverlapIterations: 10,
			ReflowPasses:      3,
			TweenRate:         14,
		},
		Assistant: AssistantConfig{
			ShowDuration:       17,
			PauseDuration:      2,
			ManualShowDuration: 10,
			ReappearDelay:      0.07,
			ClickDebounce:      0.25,
		},
		Confetti: ConfettiConfig{
			Count:   120,
			Spread:  70,
			OriginY: 0.6,
		},
	}
}

// LoadGameConfig 从文件系统加载配置
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}
	return ParseGameConfig(data)
}

// LoadGameConfigFS 从 fs.FS（通常是嵌入资源）加载配置
func LoadGameConfigFS(fsys fs.FS, path string) (*GameConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return ParseGameConfig(data)
}

// LoadGameConfigEmbedded 读取嵌入的默认配置
func LoadGameConfigEmbedded() (*GameConfig, error) {
	if !embedded.IsInitialized() {
		return nil, fmt.Errorf("failed to read embedded game config: %w", embedded.ErrNotInitialized)
	}
	return LoadGameConfigFS(embedded.FS(), EmbeddedGameConfigPath)
}

// ParseGameConfig 解析 YAML 配置
// 未出现的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c *GameConfig) Validate() error {
	switch {
	case c.Round.ValidationDelay <= 0:
		return fmt.Errorf("%w: round.validationDelay must be positive", ErrInvalidGameConfig)
	case c.Round.ConfettiDelay < 0:
		return fmt.Errorf("%w: round.confettiDelay must not be negative", ErrInvalidGameConfig)
	case c.Results.AvatarSize <= 0 || c.Results.MarkerSize <= 0:
		return fmt.Errorf("%w: results sizes must be positive", ErrInvalidGameConfig)
	case c.Results.MoveStep <= 0:
		return fmt.Errorf("%w: results.moveStep must be positive", ErrInvalidGameConfig)
	case c.Results.WrapMargin < 0 || c.Results.WrapMargin > c.Results.AvatarSize:
		return fmt.Errorf("%w: results.wrapMargin must be within [0, avatarSize]", ErrInvalidGameConfig)
	case c.Results.PlacementAttempts < 1:
		return fmt.Errorf("%w: results.placementAttempts must be at least 1", ErrInvalidGameConfig)
	case c.Results.OverlapIterations < 1 || c.Results.ChromeIterations < 0 || c.Results.ReflowPasses < 0:
		return fmt.Errorf("%w: results iteration counts out of range", ErrInvalidGameConfig)
	case c.Assistant.ShowDuration <= 0 || c.Assistant.ManualShowDuration <= 0:
		return fmt.Errorf("%w: assistant durations must be positive", ErrInvalidGameConfig)
	case c.Confetti.Count < 0:
		return fmt.Errorf("%w: confetti.count must not be negative", ErrInvalidGameConfig)
	}
	return nil
}
