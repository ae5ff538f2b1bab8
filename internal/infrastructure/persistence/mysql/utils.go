package mysql

import (
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry Duplicate entry 'xxx' for key 'yyy'
const mysqlDuplicateEntry = 1062

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// TranslateError开启时GORM会转换为ErrDuplicatedKey
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isNotFound 是否为记录不存在
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
