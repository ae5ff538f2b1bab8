package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/migrations"
)

// newMigrate 基于内嵌脚本创建golang-migrate实例
// 脚本一个文件包含多条语句,连接需要multiStatements=true
func newMigrate(cfg config.DatabaseConfig) (*migrate.Migrate, *sql.DB, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN()+"&multiStatements=true")
	if err != nil {
		return nil, nil, fmt.Errorf("打开迁移连接失败: %w", err)
	}

	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{DatabaseName: cfg.DBName})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("读取迁移脚本失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.DBName, driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("初始化迁移失败: %w", err)
	}
	return m, sqlDB, nil
}

// MigrateUp 执行全部未应用的迁移
func MigrateUp(cfg config.DatabaseConfig, lg *zap.Logger) error {
	m, sqlDB, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			lg.Info("no new migrations")
			return nil
		}
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, _, _ := m.Version()
	lg.Info("migrations applied", zap.Uint("version", version))
	return nil
}

// MigrateDown 回滚steps个版本
func MigrateDown(cfg config.DatabaseConfig, steps int, lg *zap.Logger) error {
	m, sqlDB, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("回滚迁移失败: %w", err)
	}
	lg.Info("migrations rolled back", zap.Int("steps", steps))
	return nil
}
