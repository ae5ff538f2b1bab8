package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateOrderNo 生成展示用订单号
// 格式:ORD + 秒级时间戳 + 6位随机数,如ORD1699248000123456
// 订单主键是UUID,订单号只用于展示和客服查询
func GenerateOrderNo() string {
	return fmt.Sprintf("ORD%d%06d", time.Now().Unix(), rand.IntN(1000000))
}
