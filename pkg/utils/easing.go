package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受进度值 t ∈ [0, 1]，返回缓动后的值。
// 热点标记的"弹出"、反馈弹窗淡入、机器人平滑跟随都基于这里的函数。
//
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}

// EaseOutBack 回弹缓出（略微冲过终点再回落）
// 用于热点被赋值时的"弹一下"效果
func EaseOutBack(t float64) float64 {
	t = Clamp(t, 0, 1)
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// EaseInOutSine 正弦缓入缓出
// 用于气泡呼吸、按钮闪光等循环动画
func EaseInOutSine(t float64) float64 {
	t = Clamp(t, 0, 1)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Approach 指数逼近：每秒逼近目标的比例由 rate 决定，与帧率无关
//
// 机器人显示位置通过它追赶逻辑位置，形成平滑过渡；
// 发生穿越边界（瞬移）时调用方应直接赋值而不是调用本函数。
func Approach(current, target, rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return target
	}
	k := 1 - math.Exp(-rate*dt)
	next := current + (target-current)*k
	if math.Abs(target-next) < 0.01 {
		return target
	}
	return next
}
