package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/decker502/pratica/pkg/embedded"
)

// maxImageBytes 远程图片的大小上限
const maxImageBytes = 32 << 20

// ResourceManager 负责字体和回合图片的加载与缓存
//
// 字体使用内置的 Go Regular（支持葡萄牙语重音字符）。
// 图片来源按引用区分：
//   - "data/..." 从嵌入资源读取
//   - "http://" / "https://" 通过 HTTP 下载
//   - 其他视为本地文件路径
//
// 线程安全说明：
// 缓存只在主循环中访问。LoadImageAsync 启动的 goroutine 只做读取和解码，
// 结果通过带缓冲的 channel 交回主循环。
type ResourceManager struct {
	fontSource    *text.GoTextFaceSource
	fontFaceCache map[float64]*text.GoTextFace
	imageCache    map[string]image.Image
	httpClient    *http.Client
}

// ImageResult 异步加载的结果
type ImageResult struct {
	Ref   string
	Image image.Image
	Err   error
}

// NewResourceManager 创建资源管理器
func NewResourceManager() (*ResourceManager, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &ResourceManager{
		fontSource:    source,
		fontFaceCache: make(map[float64]*text.GoTextFace),
		imageCache:    make(map[string]image.Image),
		httpClient:    &http.Client{Timeout: 20 * time.Second},
	}, nil
}

// Font 返回指定字号的字体（带缓存）
func (rm *ResourceManager) Font(size float64) *text.GoTextFace {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face
}

// CachedImage 返回已解码的图片
func (rm *ResourceManager) CachedImage(ref string) (image.Image, bool) {
	img, ok := rm.imageCache[ref]
	return img, ok
}

// StoreImage 把异步加载的结果放入缓存（主循环调用）
func (rm *ResourceManager) StoreImage(ref string, img image.Image) {
	rm.imageCache[ref] = img
}

// LoadImageAsync 在 goroutine 中读取并解码图片
// 返回的 channel 容量为 1，恰好收到一个结果
func (rm *ResourceManager) LoadImageAsync(ref string) <-chan ImageResult {
	ch := make(chan ImageResult, 1)
	if img, ok := rm.imageCache[ref]; ok {
		ch <- ImageResult{Ref: ref, Image: img}
		return ch
	}
	client := rm.httpClient
	go func() {
		img, err := decodeImage(client, ref)
		ch <- ImageResult{Ref: ref, Image: img, Err: err}
	}()
	return ch
}

// DecodeImage 同步读取并解码图片
func (rm *ResourceManager) DecodeImage(ref string) (image.Image, error) {
	if img, ok := rm.imageCache[ref]; ok {
		return img, nil
	}
	img, err := decodeImage(rm.httpClient, ref)
	if err != nil {
		return nil, err
	}
	rm.imageCache[ref] = img
	return img, nil
}

func decodeImage(client *http.Client, ref string) (image.Image, error) {
	data, err := readImageBytes(client, ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", ref, err)
	}
	return img, nil
}

func readImageBytes(client *http.Client, ref string) ([]byte, error) {
	switch {
	case ref == "":
		return nil, fmt.Errorf("empty image reference")
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		resp, err := client.Get(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image %s: %w", ref, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch image %s: status %d", ref, resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	case strings.HasPrefix(ref, "data/"):
		return embedded.ReadFile(ref)
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read image file %s: %w", ref, err)
		}
		return data, nil
	}
}

// PlaceholderImage 图片加载失败时显示的占位图：灰色背景加对角线
func PlaceholderImage(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		w, h = 4, 3
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 60, G: 66, B: 72, A: 255}
	line := color.RGBA{R: 110, G: 118, B: 126, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}
	for i := 0; i < w; i++ {
		y := i * h / w
		img.Set(i, y, line)
		img.Set(i, h-1-y, line)
	}
	log.Printf("[ResourceManager] Generated %dx%d placeholder image", w, h)
	return img
}
