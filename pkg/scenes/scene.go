package scenes

import (
	"math/rand"

	"github.com/decker502/pratica/pkg/assistant"
	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/viewer"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Context 场景之间共享的服务
type Context struct {
	Session   *game.Session
	Config    *config.GameConfig
	Strings   *game.Strings
	Settings  *game.SettingsManager
	Resources *game.ResourceManager
	Assistant *assistant.Widget
	Viewers   *viewer.Host
	Clipboard game.Clipboard
	Navigator game.Navigator
	Rand      *rand.Rand

	// ForceReducedMotion 命令行 / 环境变量强制减少动态效果
	ForceReducedMotion bool
}

// ReducedMotion 是否减少动态效果（关闭彩纸和补间）
func (c *Context) ReducedMotion() bool {
	if c.ForceReducedMotion {
		return true
	}
	return c.Settings != nil && c.Settings.ReducedMotion()
}

// AssistantEnabled 是否显示助手
func (c *Context) AssistantEnabled() bool {
	return c.Assistant != nil && (c.Settings == nil || c.Settings.GetSettings().AssistantEnabled)
}
