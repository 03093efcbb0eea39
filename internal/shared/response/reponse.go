package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/shared/middleware"
	"yatube/pkg/logger"
)

const (
	NotFoundTemplate    = "core/404.html"
	ServerErrorTemplate = middleware.ErrorTemplate
)

// Response là envelope JSON, chỉ còn dùng cho /health
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody là phần error của envelope
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Data:    data,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// ========================================
// HTML RESPONSES
// ========================================

// Render render template với data, tự thêm "user" (user đang đăng nhập hoặc nil)
// để base layout vẽ navbar.
func Render(c *gin.Context, statusCode int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["user"]; !ok {
		data["user"] = middleware.CurrentUser(c)
	}
	data["request_path"] = c.Request.URL.Path
	c.HTML(statusCode, name, data)
}

func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, NotFoundTemplate, gin.H{"path": c.Request.URL.Path})
}

// ServerError log lỗi rồi render trang 500
func ServerError(c *gin.Context, err error) {
	logger.Error("request failed", err)
	Render(c, http.StatusInternalServerError, ServerErrorTemplate, gin.H{
		"request_id": c.GetString("request_id"),
	})
}

// Error render theo status đã map từ domain error
func Error(c *gin.Context, status int, err error) {
	switch status {
	case http.StatusNotFound:
		NotFound(c)
	default:
		ServerError(c, err)
	}
}
