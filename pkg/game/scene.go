package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (cover menu, round, results stage).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口：场景被替换前调用 Dispose 释放计时器、拖拽状态和查看器
//
// SceneManager 保证 Dispose 在新场景创建之前调用，且每个场景只调用一次。
type Disposable interface {
	Dispose()
}

// SceneID 场景标识
type SceneID int

const (
	// SceneMenu 封面（显微镜）
	SceneMenu SceneID = iota
	// SceneRound 答题回合
	SceneRound
	// SceneResults 结果舞台
	SceneResults
)

// String 返回场景名称
func (id SceneID) String() string {
	switch id {
	case SceneMenu:
		return "menu"
	case SceneRound:
		return "round"
	case SceneResults:
		return "results"
	default:
		return "unknown"
	}
}

// SceneRequest 切换场景的请求
type SceneRequest struct {
	ID SceneID
	// Restart 进入回合场景时重新开始一局
	Restart bool
}

// Navigator 场景用来请求切换的接口
type Navigator interface {
	Navigate(req SceneRequest)
}
