package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/patoekipa/internal/app"
	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/logger"
	"github.com/patoekipa/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.Upload.SignSecret) {
			stdLog.Printf("警告: 上传签名密钥过弱或未配置，签名 URL 校验已退化")
		}
		if len(cfg.Auth.LegacyAdmins) > 0 {
			stdLog.Printf("提示: 遗留管理员兜底列表仍然启用 (%s)，建议尽快迁移为数据库记录",
				strings.Join(cfg.Auth.LegacyAdmins, ", "))
		}
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "██████╗  █████╗ ████████╗ ██████╗ ███████╗██╗  ██╗██╗██████╗  █████╗ " + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██╔══██╗╚══██╔══╝██╔═══██╗██╔════╝██║ ██╔╝██║██╔══██╗██╔══██╗" + ansiReset)
	fmt.Println(ansiCyan + "██████╔╝███████║   ██║   ██║   ██║█████╗  █████╔╝ ██║██████╔╝███████║" + ansiReset)
	fmt.Println(ansiCyan + "██╔═══╝ ██╔══██║   ██║   ██║   ██║██╔══╝  ██╔═██╗ ██║██╔═══╝ ██╔══██║" + ansiReset)
	fmt.Println(ansiCyan + "██║     ██║  ██║   ██║   ╚██████╔╝███████╗██║  ██╗██║██║     ██║  ██║" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝     ╚═╝  ╚═╝   ╚═╝    ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝╚═╝     ╚═╝  ╚═╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Patoekipa API" + ansiReset)
	fmt.Println(ansiBlue + "• Site:  https://patoekipa.dev" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
