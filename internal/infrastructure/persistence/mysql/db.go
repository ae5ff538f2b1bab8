package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/storefront/internal/domain/user"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 2. debug模式打印SQL
// 3. 按database.migrate建表
func NewDB(cfg *config.Config, lg *zap.Logger) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	lg.Info("mysql connected",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	// 6. 建表
	switch cfg.Database.Migrate {
	case config.MigrateAuto:
		if err := autoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	case config.MigrateSQL:
		if err := MigrateUp(cfg.Database, lg); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// autoMigrate 开发环境使用GORM AutoMigrate
// 只创建表、添加字段,不会删除或修改现有字段;生产环境使用migrations目录下的版本化脚本
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
	)
}

// UserModel GORM用户模型
// 地址列表与资料以JSON列存储
type UserModel struct {
	ID        string         `gorm:"primaryKey;type:char(36)"`
	Name      string         `gorm:"size:100;not null"`
	Email     string         `gorm:"uniqueIndex;size:100;not null"`
	Password  string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Phone     string         `gorm:"size:30;not null;default:''"`
	Role      string         `gorm:"index;size:20;not null;default:customer"`
	Addresses []user.Address `gorm:"serializer:json;type:json"`
	Profile   *user.Profile  `gorm:"serializer:json;type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型,名称唯一
type CategoryModel struct {
	ID          string `gorm:"primaryKey;type:char(36)"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel GORM商品模型
// review_count为评价数冗余计数,与评价写入在同一事务中维护
type ProductModel struct {
	ID          string          `gorm:"primaryKey;type:char(36)"`
	Name        string          `gorm:"index;size:200;not null"`
	Description string          `gorm:"type:text"`
	CategoryID  string          `gorm:"index;type:char(36);not null"`
	Price       decimal.Decimal `gorm:"index;type:decimal(12,4);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Brand       string          `gorm:"index;size:100;not null;default:''"`
	ReviewCount int             `gorm:"index;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

// OrderModel GORM订单模型,与OrderItemModel一对多
type OrderModel struct {
	ID            string           `gorm:"primaryKey;type:char(36)"`
	OrderNo       string           `gorm:"uniqueIndex;size:32;not null;comment:展示用订单号"`
	UserID        string           `gorm:"index;type:char(36);not null"`
	Total         decimal.Decimal  `gorm:"type:decimal(14,2);not null"`
	PaymentMethod string           `gorm:"size:50;not null"`
	Status        string           `gorm:"index;size:20;not null;default:pending"`
	Items         []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time        `gorm:"index"`
	UpdatedAt     time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// Subtotal为下单时的小计快照,Position保持明细顺序
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   string          `gorm:"index;type:char(36);not null"`
	Position  int             `gorm:"not null;default:0"`
	ProductID string          `gorm:"index;type:char(36);not null"`
	Quantity  int             `gorm:"not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// ReviewModel GORM评价模型
type ReviewModel struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	UserID    string    `gorm:"index;type:char(36);not null"`
	ProductID string    `gorm:"index;type:char(36);not null"`
	Rating    int       `gorm:"type:tinyint;not null"`
	Comment   string    `gorm:"size:1000;not null;default:''"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}
