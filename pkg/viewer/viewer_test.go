package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decker502/pratica/pkg/utils"
)

func TestMountAndDisposeAll(t *testing.T) {
	h := NewHost()
	a := h.Mount(utils.Rect{Left: 0, Top: 0, Width: 300, Height: 300}, DefaultOptions())
	b := h.Mount(utils.Rect{Left: 400, Top: 0, Width: 300, Height: 300}, DefaultOptions())
	assert.Equal(t, 2, h.Count())

	h.DisposeAll()
	assert.True(t, a.Disposed())
	assert.True(t, b.Disposed())
	assert.Equal(t, 0, h.Count())

	// 重复释放无副作用
	h.DisposeAll()
	assert.Equal(t, 0, h.Count())
}

func TestDisposedInstanceIgnoresInput(t *testing.T) {
	h := NewHost()
	v := h.Mount(utils.Rect{Width: 200, Height: 200}, DefaultOptions())
	v.Dispose()

	yaw := v.yaw
	v.Update(1)
	v.Orbit(100, 0)
	assert.Equal(t, yaw, v.yaw)
}

func TestOrbitClampsPitch(t *testing.T) {
	v := NewHost().Mount(utils.Rect{Width: 200, Height: 200}, DefaultOptions())
	v.Orbit(0, 10000)
	assert.Equal(t, maxPitch, v.pitch)
	v.Orbit(0, -20000)
	assert.Equal(t, -maxPitch, v.pitch)
}

func TestProjectCentersOrigin(t *testing.T) {
	v := NewHost().Mount(utils.Rect{Left: 100, Top: 50, Width: 200, Height: 200}, DefaultOptions())
	x, y := v.project(vec3{})
	assert.InDelta(t, 200, x, 1e-9)
	assert.InDelta(t, 150, y, 1e-9)

	// 模型的每个点都投影在区域附近
	for _, p := range v.model.vertices {
		px, py := v.project(p)
		assert.True(t, px > 50 && px < 350 && py > 0 && py < 300, "vertex %v projected to (%f, %f)", p, px, py)
	}
}
