package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pratica/pkg/components"
	"github.com/decker502/pratica/pkg/ecs"
)

// 彩纸物理参数
const (
	confettiGravity     = 900.0 // 像素/秒²
	confettiDrag        = 1.6   // 每秒速度衰减系数
	confettiMinSpeed    = 420.0
	confettiMaxSpeed    = 880.0
	confettiMinLife     = 1.8
	confettiMaxLife     = 2.8
	confettiFadePortion = 0.3 // 生命最后 30% 渐隐
)

// confettiPalette 彩纸颜色
var confettiPalette = []color.RGBA{
	{R: 0x26, G: 0xcc, B: 0xff, A: 0xff},
	{R: 0xa2, G: 0x5a, B: 0xfd, A: 0xff},
	{R: 0xff, G: 0x5e, B: 0x7e, A: 0xff},
	{R: 0x88, G: 0xff, B: 0x5a, A: 0xff},
	{R: 0xfc, G: 0xff, B: 0x42, A: 0xff},
	{R: 0xff, G: 0xa6, B: 0x2d, A: 0xff},
}

// ConfettiSystem 发射、更新并绘制庆祝彩纸
//
// 彩纸碎片是 ECS 实体（Position + Confetti + Lifetime），
// 生命周期由 LifetimeSystem 统一回收。
type ConfettiSystem struct {
	EntityManager *ecs.EntityManager
	rng           *rand.Rand
}

// NewConfettiSystem 创建彩纸系统，rng 为 nil 时使用时间种子
func NewConfettiSystem(em *ecs.EntityManager, rng *rand.Rand) *ConfettiSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ConfettiSystem{EntityManager: em, rng: rng}
}

// Burst 在 (originX, originY) 向上喷射 count 片彩纸
// spreadDeg 为喷射扇形的总角度
func (cs *ConfettiSystem) Burst(originX, originY float64, count int, spreadDeg float64) {
	spread := spreadDeg * math.Pi / 180
	for i := 0; i < count; i++ {
		angle := -math.Pi/2 + (cs.rng.Float64()-0.5)*spread
		speed := confettiMinSpeed + cs.rng.Float64()*(confettiMaxSpeed-confettiMinSpeed)

		id := cs.EntityManager.CreateEntity()
		cs.EntityManager.AddComponent(id, &components.PositionComponent{X: originX, Y: originY})
		cs.EntityManager.AddComponent(id, &components.ConfettiComponent{
			VelocityX:     math.Cos(angle) * speed,
			VelocityY:     math.Sin(angle) * speed,
			Rotation:      cs.rng.Float64() * math.Pi,
			RotationSpeed: (cs.rng.Float64()*2 - 1) * 10,
			Width:         6 + cs.rng.Float64()*4,
			Height:        8 + cs.rng.Float64()*6,
			Color:         confettiPalette[cs.rng.Intn(len(confettiPalette))],
			Wobble:        cs.rng.Float64() * math.Pi * 2,
			WobbleSpeed:   3 + cs.rng.Float64()*4,
		})
		cs.EntityManager.AddComponent(id, &components.LifetimeComponent{
			MaxLifetime: confettiMinLife + cs.rng.Float64()*(confettiMaxLife-confettiMinLife),
		})
	}
}

// Active 是否还有彩纸在飘
func (cs *ConfettiSystem) Active() bool {
	return len(ecs.GetEntitiesWith1[*components.ConfettiComponent](cs.EntityManager)) > 0
}

// Update 推进彩纸运动
func (cs *ConfettiSystem) Update(dt float64) {
	decay := math.Exp(-confettiDrag * dt)
	for _, id := range ecs.GetEntitiesWith2[*components.ConfettiComponent, *components.PositionComponent](cs.EntityManager) {
		c, _ := ecs.GetComponent[*components.ConfettiComponent](cs.EntityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](cs.EntityManager, id)

		c.VelocityY += confettiGravity * dt
		c.VelocityX *= decay
		c.VelocityY *= decay
		c.Rotation += c.RotationSpeed * dt
		c.Wobble += c.WobbleSpeed * dt

		pos.X += (c.VelocityX + math.Sin(c.Wobble)*30) * dt
		pos.Y += c.VelocityY * dt
	}
}

// Draw 绘制所有彩纸
func (cs *ConfettiSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.ConfettiComponent, *components.PositionComponent](cs.EntityManager) {
		c, _ := ecs.GetComponent[*components.ConfettiComponent](cs.EntityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](cs.EntityManager, id)

		alpha := 1.0
		if lt, ok := ecs.GetComponent[*components.LifetimeComponent](cs.EntityManager, id); ok {
			if p := lt.Progress(); p > 1-confettiFadePortion {
				alpha = (1 - p) / confettiFadePortion
			}
		}

		w := c.Width * math.Abs(math.Cos(c.Rotation))
		if w < 1 {
			w = 1
		}
		clr := c.Color
		clr.R = uint8(float64(clr.R) * alpha)
		clr.G = uint8(float64(clr.G) * alpha)
		clr.B = uint8(float64(clr.B) * alpha)
		clr.A = uint8(255 * alpha)
		vector.DrawFilledRect(screen, float32(pos.X-w/2), float32(pos.Y-c.Height/2), float32(w), float32(c.Height), clr, false)
	}
}
