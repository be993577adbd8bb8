package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvContent       = "PRATICA_CONTENT"
	EnvVerbose       = "PRATICA_VERBOSE"
	EnvReducedMotion = "PRATICA_REDUCED_MOTION"
	EnvGameConfig    = "PRATICA_GAME_CONFIG"
)

// EnvOverrides 来自 .env 文件和环境变量的启动参数
// 命令行参数优先于这里的值
type EnvOverrides struct {
	ContentPath    string
	GameConfigPath string
	Verbose        bool
	ReducedMotion  bool
}

// LoadEnv 读取 .env（如果存在）和环境变量
func LoadEnv() EnvOverrides {
	// .env 不存在时忽略错误
	_ = godotenv.Load()

	return EnvOverrides{
		ContentPath:    envOr(EnvContent, ""),
		GameConfigPath: envOr(EnvGameConfig, ""),
		Verbose:        envBoolOr(EnvVerbose, false),
		ReducedMotion:  envBoolOr(EnvReducedMotion, false),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("[Config] invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
