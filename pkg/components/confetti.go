package components

import "image/color"

// ConfettiComponent 庆祝彩纸碎片
//
// 纯数据组件，由 ConfettiSystem 每帧更新。
// 旋转只用于模拟翻转：绘制宽度 = Width * |cos(Rotation)|。
type ConfettiComponent struct {
	VelocityX float64 // 像素/秒
	VelocityY float64 // 像素/秒

	Rotation      float64 // 弧度
	RotationSpeed float64 // 弧度/秒

	Width, Height float64
	Color         color.RGBA

	// Wobble 水平摆动相位，让下落轨迹不那么僵直
	Wobble      float64
	WobbleSpeed float64
}
