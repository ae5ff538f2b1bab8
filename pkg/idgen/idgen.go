// Package idgen 生成和校验实体ID(UUID字符串)
package idgen

import (
	"github.com/google/uuid"
)

// New 生成新的实体ID
func New() string {
	return uuid.NewString()
}

// Valid 校验ID格式(标准36位UUID)
func Valid(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// AllValid 校验一组ID,任一非法返回false
func AllValid(ids ...string) bool {
	for _, id := range ids {
		if !Valid(id) {
			return false
		}
	}
	return true
}
