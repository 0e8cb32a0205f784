package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-analysis/middleware"
	"project-analysis/pkg/config"
	"project-analysis/pkg/monitoring"
	"project-analysis/router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 构建时注入的变量
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const serviceName = "project-analysis"

func main() {
	// 处理命令行参数
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "-v":
			fmt.Printf("Project Analysis\n")
			fmt.Printf("Version: %s\n", Version)
			fmt.Printf("Build Time: %s\n", BuildTime)
			fmt.Printf("Git Commit: %s\n", GitCommit)
			return
		case "-help", "--help", "-h":
			fmt.Printf("Project Analysis - 项目违规率分析服务\n\n")
			fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
			fmt.Printf("Options:\n")
			fmt.Printf("  -version, -v     显示版本信息\n")
			fmt.Printf("  -help, -h        显示帮助信息\n\n")
			fmt.Printf("Environment Variables:\n")
			fmt.Printf("  PORT                 服务端口 (默认: 8801)\n")
			fmt.Printf("  GIN_MODE             运行模式 (debug/release)\n")
			fmt.Printf("  DATA_DIR             本地数据目录 (默认: data)\n")
			fmt.Printf("  MAX_UPLOAD_SIZE_MB   上传文件大小限制 (默认: 100)\n")
			return
		}
	}

	// 初始化配置
	if err := config.InitConfig(); err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}
	cfg := config.GetConfig()

	log.Printf("启动 %s (模式: %s, 端口: %s)...", serviceName, cfg.Server.Mode, cfg.Server.Port)

	// 设置时区
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		panic("无法加载时区: " + err.Error())
	}
	time.Local = loc

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	app := gin.New()

	// 添加全局中间件
	app.Use(middleware.Recovery())
	app.Use(middleware.ErrorHandler())
	app.Use(middleware.Performance())
	app.Use(middleware.Cors())
	app.Use(middleware.RequestID())

	if cfg.Security.EnableRateLimit {
		app.Use(middleware.RateLimit(cfg.Security.RateLimit))
	}

	// 添加 Prometheus 监控中间件
	app.Use(monitoring.PrometheusMiddleware())

	// 监控指标端点
	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查和业务路由
	router.InitHealth(app)
	router.Init(app)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("服务器启动在端口 :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("服务器强制关闭: %v", err)
	}

	log.Printf("服务器已安全关闭")
}
