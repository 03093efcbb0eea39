package testutil

import (
	"testing"

	infraCache "yatube/internal/infrastructure/cache"
)

// NewRedis khởi động miniredis cho test, tự đóng khi test kết thúc
func NewRedis(t testing.TB) *infraCache.EmbeddedRedis {
	t.Helper()
	rc, err := infraCache.NewEmbeddedRedis()
	if err != nil {
		t.Fatalf("embedded redis: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}
