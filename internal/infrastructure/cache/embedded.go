package cache

import (
	"fmt"

	"github.com/alicebob/miniredis/v2"
)

// EmbeddedRedis là Redis server chạy in-process (miniredis) cùng RedisCache
// trỏ vào nó. Dùng cho development khi không có Redis, CLI và tests;
// mọi thao tác vẫn đi qua go-redis client.
type EmbeddedRedis struct {
	*RedisCache
	Server *miniredis.Miniredis
}

func NewEmbeddedRedis() (*EmbeddedRedis, error) {
	srv, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start embedded redis: %w", err)
	}

	return &EmbeddedRedis{
		RedisCache: NewRedisCache(srv.Addr(), "", 0),
		Server:     srv,
	}, nil
}

// Close đóng client trước rồi tắt server
func (e *EmbeddedRedis) Close() error {
	err := e.RedisCache.Close()
	e.Server.Close()
	return err
}
