// 数据库迁移命令
//
//	go run ./cmd/migrate -direction up
//	go run ./cmd/migrate -direction down -steps 1
package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/logger"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/mysql"
)

func main() {
	direction := flag.String("direction", "up", "迁移方向: up | down")
	steps := flag.Int("steps", 1, "down时回滚的版本数")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	switch *direction {
	case "up":
		err = mysql.MigrateUp(cfg.Database, lg)
	case "down":
		err = mysql.MigrateDown(cfg.Database, *steps, lg)
	default:
		lg.Fatal("未知的迁移方向", zap.String("direction", *direction))
	}
	if err != nil {
		lg.Fatal("迁移失败", zap.Error(err))
	}
}
