package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorTemplate là template render khi handler panic
const ErrorTemplate = "core/500.html"

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(requestIDKey)).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.HTML(http.StatusInternalServerError, ErrorTemplate, gin.H{
					"request_id":   c.GetString(requestIDKey),
					"request_path": c.Request.URL.Path,
					"user":         CurrentUser(c),
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}
