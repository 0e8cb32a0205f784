package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// AppConfig 全局配置实例
var AppConfig *Config

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Log      LogConfig      `yaml:"log"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         string        `yaml:"port" env:"SERVER_PORT" default:"8801"`
	Mode         string        `yaml:"mode" env:"GIN_MODE" default:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
}

// DataConfig 数据文件配置
type DataConfig struct {
	Dir             string `yaml:"dir" env:"DATA_DIR" default:"data"`
	MaxUploadSizeMB int    `yaml:"max_upload_size_mb" default:"100"`
}

// AnalysisConfig 分析默认配置，可在运行时通过设置接口调整
type AnalysisConfig struct {
	HighViolationThreshold   float64 `yaml:"high_violation_threshold" default:"20"`
	MediumViolationThreshold float64 `yaml:"medium_violation_threshold" default:"10"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" default:"info"`
	RequestDir string `yaml:"request_dir" default:"request_log"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins  []string `yaml:"allowed_origins"`
	TrustedProxies  []string `yaml:"trusted_proxies"`
	RateLimit       int      `yaml:"rate_limit" default:"1000"` // 每分钟请求数
	EnableRateLimit bool     `yaml:"enable_rate_limit" default:"true"`
}

// InitConfig 初始化配置
func InitConfig() error {
	// 加载环境变量
	if err := loadEnv(); err != nil {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	// 创建默认配置
	config := &Config{}
	setDefaults(config)

	// 尝试从配置文件加载
	if err := loadFromFile(config); err != nil {
		log.Printf("Warning: failed to load config file: %v", err)
	}

	// 从环境变量覆盖配置
	loadFromEnv(config)

	// 验证配置
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	AppConfig = config
	return nil
}

// loadEnv 加载环境变量文件
func loadEnv() error {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFiles := []string{
		".env",
		fmt.Sprintf(".env.%s", env),
		".env.local",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				return err
			}
		}
	}

	return nil
}

// setDefaults 设置默认值
func setDefaults(config *Config) {
	config.Server.Port = "8801"
	config.Server.Mode = "debug"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second

	config.Data.Dir = "data"
	config.Data.MaxUploadSizeMB = 100

	config.Analysis.HighViolationThreshold = 20
	config.Analysis.MediumViolationThreshold = 10

	config.Log.Level = "info"
	config.Log.RequestDir = "request_log"

	config.Security.RateLimit = 1000
	config.Security.EnableRateLimit = true
}

// loadFromFile 从配置文件加载
func loadFromFile(config *Config) error {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

// loadFromEnv 从环境变量加载
func loadFromEnv(config *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		config.Data.Dir = dir
	}
	if size := os.Getenv("MAX_UPLOAD_SIZE_MB"); size != "" {
		if v, err := strconv.Atoi(size); err == nil {
			config.Data.MaxUploadSizeMB = v
		}
	}
	if limit := os.Getenv("RATE_LIMIT"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			config.Security.RateLimit = v
		}
	}
	if dir := os.Getenv("REQUEST_LOG_DIR"); dir != "" {
		config.Log.RequestDir = dir
	}
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if config.Data.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	if config.Analysis.MediumViolationThreshold > config.Analysis.HighViolationThreshold {
		return fmt.Errorf("medium violation threshold must not exceed high threshold")
	}
	return nil
}

// GetConfig 获取配置实例
func GetConfig() *Config {
	if AppConfig == nil {
		log.Fatal("config not initialized, call InitConfig() first")
	}
	return AppConfig
}

// IsProduction 判断是否为生产环境
func IsProduction() bool {
	return AppConfig != nil && AppConfig.Server.Mode == "release"
}
