//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 设置环境变量 PRATICA_MOBILE_EMULATE=1 可在桌面上模拟触屏（放大热点的点击范围）
func IsMobile() bool {
	return os.Getenv("PRATICA_MOBILE_EMULATE") == "1"
}

// TouchSlop 热点命中判定在半径之外额外放宽的像素
// 触屏手指比鼠标指针粗，移动端放宽更多
func TouchSlop() float64 {
	if IsMobile() {
		return 12
	}
	return 4
}
