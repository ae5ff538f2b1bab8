package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// setIfExists 商品在购物车中时才更新数量,返回0表示不存在
var setIfExists = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
redis.call("PEXPIRE", KEYS[1], ARGV[3])
return 1
`)

// CartStore 购物车存储
// Key: cart:{user_id} (Hash, field=product_id, value=quantity),每次写入刷新TTL
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStore 创建购物车存储
func NewCartStore(client *redis.Client, cfg *config.Config) cart.Store {
	return &CartStore{client: client, ttl: cfg.Cart.TTL}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (s *CartStore) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "读取购物车失败")
	}

	c := &cart.Cart{UserID: userID, Items: make(map[string]int, len(fields))}
	for productID, raw := range fields {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			// 脏数据跳过
			continue
		}
		c.Items[productID] = qty
	}
	return c, nil
}

func (s *CartStore) Add(ctx context.Context, userID, productID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, cart.ErrInvalidQuantity
	}

	key := cartKey(userID)
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.HIncrBy(ctx, key, productID, int64(quantity))
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(err, "添加购物车失败")
	}
	return int(incr.Val()), nil
}

func (s *CartStore) Set(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}

	updated, err := setIfExists.Run(ctx, s.client,
		[]string{cartKey(userID)},
		productID, quantity, s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return apperrors.Wrap(err, "更新购物车失败")
	}
	if updated == 0 {
		return cart.ErrItemNotInCart
	}
	return nil
}

func (s *CartStore) Remove(ctx context.Context, userID, productID string) error {
	removed, err := s.client.HDel(ctx, cartKey(userID), productID).Result()
	if err != nil {
		return apperrors.Wrap(err, "移除购物车商品失败")
	}
	if removed == 0 {
		return cart.ErrItemNotInCart
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// Restore 先删除再整体写回快照,空快照等价于Clear
func (s *CartStore) Restore(ctx context.Context, c *cart.Cart) error {
	key := cartKey(c.UserID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if c.IsEmpty() {
			return nil
		}
		values := make(map[string]interface{}, len(c.Items))
		for productID, qty := range c.Items {
			values[productID] = qty
		}
		pipe.HSet(ctx, key, values)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "恢复购物车失败")
	}
	return nil
}
