package config

// 布局配置常量
// 本文件定义了窗口尺寸以及各场景中 UI 元素的位置（屏幕坐标，像素）

// 窗口
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1280
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720
)

// 答题场景
const (
	// HeaderHeight 顶部标题栏高度（回合编号、提示）
	HeaderHeight = 64.0

	// ImageBoxX/Y/W/H 图片显示框（contain 适配，可能有黑边）
	ImageBoxX = 24.0
	ImageBoxY = HeaderHeight + 16
	ImageBoxW = 860.0
	ImageBoxH = 560.0

	// ReferencePanelX 参考列表面板
	ReferencePanelX = ImageBoxX + ImageBoxW + 24
	ReferencePanelY = ImageBoxY
	ReferencePanelW = GameWindowWidth - ReferencePanelX - 24
	// ReferenceRowHeight 参考列表每行高度
	ReferenceRowHeight = 44.0

	// HotspotRadius 热点标记半径
	HotspotRadius = 16.0

	// ToolbarY 底部按钮栏
	ToolbarY      = ImageBoxY + ImageBoxH + 16
	ButtonHeight  = 44.0
	ButtonPadding = 18.0

	// MenuWidth 热点分配菜单宽度
	MenuWidth     = 240.0
	MenuRowHeight = 36.0
)

// 结果舞台
const (
	// StageX/Y/W/H 舞台区域（整个窗口）
	StageX = 0.0
	StageY = 0.0
	StageW = float64(GameWindowWidth)
	StageH = float64(GameWindowHeight)

	// CaptionTop 标题气泡顶部
	CaptionTop = 24.0

	// ActionButtonW 右上角动作按钮（重新开始 / 关闭 / 回顾）
	ActionButtonW   = 150.0
	ActionButtonH   = 44.0
	ActionButtonGap = 12.0

	// DPadSize 右下角方向键区域边长
	DPadSize   = 168.0
	DPadMargin = 24.0

	// AssistantAvatarSize 左下角助手头像
	AssistantAvatarSize = 120.0
	AssistantMargin     = 20.0
	// AssistantBubbleW 助手气泡最大宽度
	AssistantBubbleW = 360.0
)

// 封面
const (
	// CoverViewerSize 显微镜查看器区域
	CoverViewerSize = 360.0
)
