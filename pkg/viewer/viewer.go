// Package viewer 提供封面卡片上的 3D 显微镜查看器
//
// 这里是一个轻量的线框实现：模型绕 Y 轴自动旋转，可以拖动改变视角。
// 宿主（Host）记录所有挂载的实例，进入答题回合时统一释放。
package viewer

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pratica/pkg/utils"
)

// Options 查看器参数
type Options struct {
	// AutoRotateSpeed 自动旋转速度（弧度/秒），0 表示不旋转
	AutoRotateSpeed float64
	// Color 线框颜色
	Color color.RGBA
	// Background 背景颜色（透明表示不填充）
	Background color.RGBA
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		AutoRotateSpeed: 0.6,
		Color:           color.RGBA{R: 120, G: 220, B: 190, A: 255},
		Background:      color.RGBA{R: 12, G: 28, B: 24, A: 200},
	}
}

// pitch 限制，避免翻转
const maxPitch = 1.2

// Instance 一个挂载的查看器
type Instance struct {
	host     utils.Rect
	opts     Options
	model    wireModel
	yaw      float64
	pitch    float64
	disposed bool
}

// Host 查看器宿主
type Host struct {
	instances []*Instance
}

// NewHost 创建宿主
func NewHost() *Host {
	return &Host{}
}

// Mount 在 host 区域挂载一个新查看器
func (h *Host) Mount(host utils.Rect, opts Options) *Instance {
	inst := &Instance{host: host, opts: opts, model: microscopeModel(), pitch: 0.35}
	h.instances = append(h.instances, inst)
	log.Printf("[Viewer] Mounted at (%.0f, %.0f) %.0fx%.0f", host.Left, host.Top, host.Width, host.Height)
	return inst
}

// DisposeAll 释放所有查看器
func (h *Host) DisposeAll() {
	if len(h.instances) == 0 {
		return
	}
	for _, inst := range h.instances {
		inst.Dispose()
	}
	log.Printf("[Viewer] Disposed %d viewer(s)", len(h.instances))
	h.instances = nil
}

// Count 已挂载且未释放的查看器数量
func (h *Host) Count() int {
	n := 0
	for _, inst := range h.instances {
		if !inst.disposed {
			n++
		}
	}
	return n
}

// Disposed 是否已释放
func (v *Instance) Disposed() bool { return v.disposed }

// Dispose 释放查看器，之后 Update/Draw 不做任何事
func (v *Instance) Dispose() {
	v.disposed = true
}

// Rect 查看器区域
func (v *Instance) Rect() utils.Rect { return v.host }

// Orbit 拖动改变视角（像素位移）
func (v *Instance) Orbit(dx, dy float64) {
	if v.disposed {
		return
	}
	v.yaw += dx * 0.01
	v.pitch = utils.Clamp(v.pitch+dy*0.01, -maxPitch, maxPitch)
}

// Update 自动旋转
func (v *Instance) Update(dt float64) {
	if v.disposed {
		return
	}
	v.yaw = math.Mod(v.yaw+v.opts.AutoRotateSpeed*dt, 2*math.Pi)
}

// project 把模型点投影到屏幕坐标（简单透视）
func (v *Instance) project(p vec3) (float64, float64) {
	cosY, sinY := math.Cos(v.yaw), math.Sin(v.yaw)
	x := p.X*cosY + p.Z*sinY
	z := -p.X*sinY + p.Z*cosY

	cosP, sinP := math.Cos(v.pitch), math.Sin(v.pitch)
	y := p.Y*cosP - z*sinP
	z = p.Y*sinP + z*cosP

	const cameraDist = 4.0
	scale := math.Min(v.host.Width, v.host.Height) * 0.9 / (cameraDist - z)
	cx, cy := v.host.Center()
	return cx + x*scale, cy - y*scale
}

// Draw 绘制线框
func (v *Instance) Draw(screen *ebiten.Image) {
	if v.disposed {
		return
	}
	if v.opts.Background.A > 0 {
		vector.DrawFilledRect(screen, float32(v.host.Left), float32(v.host.Top),
			float32(v.host.Width), float32(v.host.Height), v.opts.Background, false)
	}
	for _, e := range v.model.edges {
		x0, y0 := v.project(v.model.vertices[e.A])
		x1, y1 := v.project(v.model.vertices[e.B])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1.5, v.opts.Color, true)
	}
}
