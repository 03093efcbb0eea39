package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho key-value store có TTL.
// Session store dùng interface này; implementation là RedisCache (Redis thật hoặc miniredis).
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// - found = true: data đã unmarshal vào dest
	// - found = false: key không tồn tại, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	Exists(ctx context.Context, key string) (bool, error)

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}
