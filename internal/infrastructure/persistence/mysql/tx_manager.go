package mysql

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 通过context传递事务DB,fn内的所有Repository操作都在同一事务中执行
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn返回error时ROLLBACK,返回nil时COMMIT;嵌套调用时GORM使用Savepoint
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := reviewRepo.Create(ctx, r); err != nil {
//	        return err
//	    }
//	    return productRepo.IncrReviewCount(ctx, r.ProductID, 1)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFrom(ctx, m.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom 优先使用context中的事务DB
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
