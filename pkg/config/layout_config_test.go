package config

import (
	"testing"
)

// TestRoundLayoutFitsWindow 答题场景各区域不超出窗口且互不重叠
func TestRoundLayoutFitsWindow(t *testing.T) {
	tests := []struct {
		name          string
		left, right   float64
		top, bottom   float64
	}{
		{"图片框", ImageBoxX, ImageBoxX + ImageBoxW, ImageBoxY, ImageBoxY + ImageBoxH},
		{"参考面板", ReferencePanelX, ReferencePanelX + ReferencePanelW, ReferencePanelY, ReferencePanelY + ImageBoxH},
		{"按钮栏", ImageBoxX, ImageBoxX + ImageBoxW, ToolbarY, ToolbarY + ButtonHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.left < 0 || tt.top < 0 {
				t.Errorf("%s 起点为负: (%.1f, %.1f)", tt.name, tt.left, tt.top)
			}
			if tt.right > GameWindowWidth || tt.bottom > GameWindowHeight {
				t.Errorf("%s 超出窗口: right=%.1f bottom=%.1f", tt.name, tt.right, tt.bottom)
			}
		})
	}

	if ImageBoxX+ImageBoxW >= ReferencePanelX {
		t.Errorf("图片框与参考面板重叠: %.1f >= %.1f", ImageBoxX+ImageBoxW, ReferencePanelX)
	}
}

// TestStageCorners 舞台四角区域互不重叠
func TestStageCorners(t *testing.T) {
	actionsBottom := CaptionTop + 3*ActionButtonH + 2*ActionButtonGap
	dpadTop := StageH - DPadMargin - DPadSize
	if actionsBottom >= dpadTop {
		t.Errorf("动作按钮(%.1f)与方向键(%.1f)重叠", actionsBottom, dpadTop)
	}

	avatarRight := AssistantMargin + AssistantAvatarSize
	dpadLeft := StageW - DPadMargin - DPadSize
	if avatarRight >= dpadLeft {
		t.Errorf("助手头像(%.1f)与方向键(%.1f)重叠", avatarRight, dpadLeft)
	}

	if AssistantBubbleW > StageW/2 {
		t.Errorf("助手气泡过宽: %.1f", AssistantBubbleW)
	}
}
