package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	userModel "yatube/internal/domains/user/model"
	"yatube/internal/shared/urls"
	"yatube/pkg/logger"
)

const currentUserKey = "currentUser"

// SessionResolver biến access token thành user (user service implement)
type SessionResolver interface {
	Authenticate(ctx context.Context, token string) (*userModel.User, error)
}

// Authenticate đọc cookie session và set user hiện tại vào context.
// Token hỏng, hết hạn hay đã logout đều được coi là anonymous, không trả lỗi.
func Authenticate(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		u, err := resolver.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("anonymous request: session rejected", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		c.Set(currentUserKey, u)
		c.Next()
	}
}

// LoginRequired redirect request anonymous về trang login, kèm next=<path hiện tại>
func LoginRequired(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, urls.LoginRedirect(loginURL, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser trả về user đã đăng nhập, nil nếu anonymous
func CurrentUser(c *gin.Context) *userModel.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*userModel.User)
	return u
}
