package scenes

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/ecs"
	"github.com/decker502/pratica/pkg/systems"
)

// effects 场景内的粒子效果（彩纸）
type effects struct {
	entityManager  *ecs.EntityManager
	lifetimeSystem *systems.LifetimeSystem
	confettiSystem *systems.ConfettiSystem
	cfg            config.ConfettiConfig
	reducedMotion  func() bool
}

func newEffects(cfg config.ConfettiConfig, rng *rand.Rand, reducedMotion func() bool) *effects {
	em := ecs.NewEntityManager()
	return &effects{
		entityManager:  em,
		lifetimeSystem: systems.NewLifetimeSystem(em),
		confettiSystem: systems.NewConfettiSystem(em, rng),
		cfg:            cfg,
		reducedMotion:  reducedMotion,
	}
}

// Celebrate 从屏幕中下方喷射彩纸；减少动态效果时什么也不做
func (e *effects) Celebrate() {
	if e.reducedMotion != nil && e.reducedMotion() {
		return
	}
	x := float64(config.GameWindowWidth) / 2
	y := float64(config.GameWindowHeight) * e.cfg.OriginY
	e.confettiSystem.Burst(x, y, e.cfg.Count, e.cfg.Spread)
}

func (e *effects) Update(dt float64) {
	e.confettiSystem.Update(dt)
	e.lifetimeSystem.Update(dt)
	e.entityManager.RemoveMarkedEntities()
}

func (e *effects) Draw(screen *ebiten.Image) {
	e.confettiSystem.Draw(screen)
}

// Clear 移除所有粒子
func (e *effects) Clear() {
	e.entityManager.Clear()
}
