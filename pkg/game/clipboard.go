package game

import (
	"errors"
	"log"

	"github.com/atotto/clipboard"
)

// Clipboard 系统剪贴板
type Clipboard interface {
	WriteText(text string) error
}

var errClipboardUnsupported = errors.New("clipboard unsupported on this platform")

// SystemClipboard 使用 atotto/clipboard 写入系统剪贴板
type SystemClipboard struct{}

// WriteText 写入文本
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// CopyOrLog 复制文本；失败时不打扰玩家，只把片段写进日志作为手动备份
func CopyOrLog(cb Clipboard, text string) bool {
	if cb == nil {
		log.Printf("[Clipboard] No clipboard available, snippet:\n%s", text)
		return false
	}
	if err := cb.WriteText(text); err != nil {
		log.Printf("[Clipboard] Copy failed: %v, snippet:\n%s", err, text)
		return false
	}
	return true
}
