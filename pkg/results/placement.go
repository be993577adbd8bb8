package results

import (
	"math"

	"github.com/decker502/pratica/pkg/utils"
)

// findSpot 随机寻找一个不与头像、界面元素、气泡和其他标记重叠的位置
// 尝试次数用完时返回最后一次尝试的位置和 false
func (s *Stage) findSpot(others []utils.Rect) (utils.Rect, bool) {
	size := s.cfg.MarkerSize
	pad := s.cfg.StagePad
	stage := s.layout.Stage
	maxX := math.Max(pad, stage.Width-size-pad)
	maxY := math.Max(pad, stage.Height-size-pad)

	forbidden := s.forbiddenRects()
	balloons := s.balloonRects()

	attempts := s.cfg.PlacementAttempts
	if attempts < 1 {
		attempts = 1
	}
	var candidate utils.Rect
	for i := 0; i < attempts; i++ {
		x := pad + s.rng.Float64()*(maxX-pad)
		y := pad + s.rng.Float64()*(maxY-pad)
		candidate = utils.Rect{Left: stage.Left + x, Top: stage.Top + y, Width: size, Height: size}
		if s.spotFree(candidate, others, forbidden, balloons) {
			return candidate, true
		}
	}
	return candidate, false
}

func (s *Stage) spotFree(r utils.Rect, others, forbidden, balloons []utils.Rect) bool {
	if r.Intersects(s.avatar) {
		return false
	}
	for _, f := range forbidden {
		if r.Intersects(f) {
			return false
		}
	}
	for _, b := range balloons {
		if r.Intersects(b) {
			return false
		}
	}
	for _, o := range others {
		if r.Intersects(o.Pad(s.cfg.MarkerGap)) {
			return false
		}
	}
	return true
}

// repositionRemaining 被气泡或界面元素遮住的未收集标记换到新位置
func (s *Stage) repositionRemaining() {
	forbidden := s.forbiddenRects()
	balloons := s.balloonRects()

	for i := range s.items {
		if s.items[i].Collected {
			continue
		}
		if !intersectsAny(s.items[i].Marker, forbidden) && !intersectsAny(s.items[i].Marker, balloons) {
			continue
		}
		var others []utils.Rect
		for j, it := range s.items {
			if j != i && !it.Collected {
				others = append(others, it.Marker)
			}
		}
		if spot, ok := s.findSpot(others); ok {
			s.items[i].Marker = spot
		}
	}
}

func intersectsAny(r utils.Rect, rects []utils.Rect) bool {
	for _, o := range rects {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
