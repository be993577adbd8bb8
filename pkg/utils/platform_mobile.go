//go:build mobile

package utils

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时返回 true
func IsMobile() bool {
	return true
}

// TouchSlop 热点命中判定在半径之外额外放宽的像素
func TouchSlop() float64 {
	return 12
}
