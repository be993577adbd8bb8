//go:build !android

package utils

// EnsureStorageDir 非 Android 平台的空实现
// 桌面端 gdata 自己创建设置目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 获取存储路径（非 Android 平台返回空字符串）
func GetStoragePath() string {
	return ""
}
