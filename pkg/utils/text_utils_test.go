package utils

import (
	"reflect"
	"testing"
)

// 每个字符 10 像素的等宽测量器
func monoMeasure(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{"无需换行", "Xilema", 100, []string{"Xilema"}},
		{"按空格换行", "Fiquei triste, precisa estudar mais.", 150, []string{"Fiquei triste,", "precisa estudar", "mais."}},
		{"硬换行保留", "linha um\nlinha dois", 200, []string{"linha um", "linha dois"}},
		{"超长单词强制断行", "abcdefghij", 40, []string{"abcd", "efgh", "ij"}},
		{"空段落", "a\n\nb", 100, []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, monoMeasure, tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMeasureLines(t *testing.T) {
	if w := MeasureLines([]string{"ab", "abcd", ""}, monoMeasure); w != 40 {
		t.Errorf("MeasureLines() = %v, want 40", w)
	}
}
