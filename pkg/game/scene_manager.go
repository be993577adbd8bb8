package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于根据请求创建场景，避免循环依赖
type SceneFactory func(req SceneRequest) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	// pending 在 Update 结束后执行的切换，避免在场景自身 Update 中途替换它
	pending *SceneRequest
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Navigate to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 释放当前场景并切换到新场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.disposeCurrent()
	sm.currentScene = scene
}

func (sm *SceneManager) disposeCurrent() {
	if d, ok := sm.currentScene.(Disposable); ok {
		d.Dispose()
	}
	sm.currentScene = nil
}

// GetCurrentScene 返回当前活动的场景
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Navigate 请求切换场景，在当前帧 Update 结束时生效
func (sm *SceneManager) Navigate(req SceneRequest) {
	sm.pending = &req
}

// applyPending 执行挂起的切换：先释放旧场景，再用工厂创建新场景
func (sm *SceneManager) applyPending() {
	if sm.pending == nil {
		return
	}
	req := *sm.pending
	sm.pending = nil

	log.Printf("[SceneManager] Switching to %s (restart=%v)", req.ID, req.Restart)
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return
	}

	sm.disposeCurrent()
	if next := sm.sceneFactory(req); next != nil {
		sm.currentScene = next
	} else {
		log.Printf("[SceneManager] Error: factory returned no scene for %s", req.ID)
	}
}

// Update updates the currently active scene, then applies any requested switch.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	sm.applyPending()
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	sm.applyPending()
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
