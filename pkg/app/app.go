// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/pratica/pkg/assistant"
	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/game"
	"github.com/decker502/pratica/pkg/scenes"
	"github.com/decker502/pratica/pkg/utils"
	"github.com/decker502/pratica/pkg/viewer"
)

// appName gdata 存储目录名
const appName = "prova_pratica"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ContentPath 练习内容 JSON 文件，为空时使用嵌入内容
	ContentPath string
	// GameConfigPath 游戏参数 YAML 文件，为空时使用嵌入配置
	GameConfigPath string
	// StartRound 直接进入第几个回合（从 1 开始），0 表示显示封面
	StartRound int
	// ReducedMotion 强制减少动态效果
	ReducedMotion bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	ctx                      *scenes.Context
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := loadGameConfig(cfg.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	resourceManager, err := game.NewResourceManager()
	if err != nil {
		return nil, fmt.Errorf("资源管理器初始化失败: %w", err)
	}

	strs, err := game.NewStrings(game.StringsPath)
	if err != nil {
		log.Printf("[App] %v (using built-in strings)", err)
	}

	c := content.Load(cfg.ContentPath)
	log.Printf("[App] Content loaded from %s: %d rounds", c.Source, len(c.Rounds))
	for _, w := range c.Warnings {
		log.Printf("[Content] Warning: %s", w)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Storage directory unavailable: %v", err)
	} else if p := utils.GetStoragePath(); p != "" {
		log.Printf("[App] Storage directory: %s", p)
	}
	// gdata 不可用时降级为仅内存设置
	var store *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: appName}); err != nil {
		log.Printf("[App] gdata unavailable: %v", err)
	} else {
		store = m
	}
	settings := game.NewSettingsManager(store)

	measure := utils.FaceMeasurer(resourceManager.Font(scenes.AssistantFontSize))
	ctx := &scenes.Context{
		Session:            game.NewSession(c),
		Config:             gameConfig,
		Strings:            strs,
		Settings:           settings,
		Resources:          resourceManager,
		Assistant:          assistant.New(gameConfig.Assistant, scenes.AssistantLayout(), measure),
		Viewers:            viewer.NewHost(),
		Clipboard:          game.SystemClipboard{},
		Rand:               rand.New(rand.NewSource(time.Now().UnixNano())),
		ForceReducedMotion: cfg.ReducedMotion,
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	ctx.Navigator = sceneManager
	sceneManager.SetSceneFactory(func(req game.SceneRequest) game.Scene {
		return newScene(ctx, req)
	})

	if cfg.StartRound > 0 {
		log.Printf("[App] Starting directly at round %d", cfg.StartRound)
		ctx.Session.Start(cfg.StartRound - 1)
		sceneManager.SwitchTo(scenes.NewRoundScene(ctx))
	} else {
		sceneManager.SwitchTo(scenes.NewMenuScene(ctx))
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		ctx:          ctx,
		verbose:      cfg.Verbose,
	}, nil
}

// newScene 场景工厂
func newScene(ctx *scenes.Context, req game.SceneRequest) game.Scene {
	switch req.ID {
	case game.SceneMenu:
		return scenes.NewMenuScene(ctx)
	case game.SceneRound:
		if req.Restart {
			ctx.Session.Start(0)
		}
		return scenes.NewRoundScene(ctx)
	case game.SceneResults:
		return scenes.NewResultsScene(ctx)
	default:
		log.Printf("[App] Unknown scene %s", req.ID)
		return nil
	}
}

// loadGameConfig 指定路径优先，否则读取嵌入配置，都没有时使用默认值
func loadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	cfg, err := config.LoadGameConfigEmbedded()
	if err != nil {
		log.Printf("[Config] %v (using defaults)", err)
		return config.DefaultGameConfig(), nil
	}
	return cfg, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.saveFullscreen(ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) saveFullscreen(enabled bool) {
	settings := a.ctx.Settings
	settings.SetFullscreen(enabled)
	if err := settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Shutdown 释放当前场景并保存设置（窗口关闭时调用）
func (a *App) Shutdown() {
	a.sceneManager.SwitchTo(nil)
	if a.ctx.Viewers != nil {
		a.ctx.Viewers.DisposeAll()
	}
	if err := a.ctx.Settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
