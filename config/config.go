package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LocalDataConfig 本地数据目录配置，页面可以直接从该目录选择CSV文件
type LocalDataConfig struct {
	Dir        string
	Extensions []string
}

// LoadConfig 读取本地数据目录配置
func LoadConfig() LocalDataConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到 .env 文件，使用默认配置")
	}

	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}

	return LocalDataConfig{
		Dir:        dir,
		Extensions: []string{".csv"},
	}
}
