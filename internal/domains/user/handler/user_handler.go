package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yatube/internal/domains/user/model"
	"yatube/internal/domains/user/service"
	"yatube/internal/shared/forms"
	"yatube/internal/shared/response"
	"yatube/internal/shared/urls"
	"yatube/pkg/logger"
)

const msgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// Config: cookie chứa access token và URL trang login
type Config struct {
	CookieName   string
	CookieSecure bool
	LoginURL     string
}

// UserHandler xử lý signup, login, logout (HTML forms)
type UserHandler struct {
	service service.ServiceInterface
	cfg     Config
}

func NewUserHandler(service service.ServiceInterface, cfg Config) *UserHandler {
	return &UserHandler{
		service: service,
		cfg:     cfg,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Signup xử lý GET,POST /auth/signup/.
// Đăng ký thành công thì login luôn và redirect về trang chủ.
func (h *UserHandler) Signup(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.renderSignup(c, model.SignupForm{}, nil)
		return
	}

	var form model.SignupForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	ctx := c.Request.Context()
	if _, err := h.service.Register(ctx, form); err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			h.renderSignup(c, form, ve.Fields)
			return
		}
		response.ServerError(c, err)
		return
	}

	session, err := h.service.Login(ctx, model.LoginForm{Username: form.Username, Password: form.Password})
	if err != nil {
		// User đã được tạo; để họ tự login
		logger.Warn("auto login after signup failed", err)
		c.Redirect(http.StatusFound, urls.LoginRedirect(h.cfg.LoginURL, urls.Index()))
		return
	}

	h.setSessionCookie(c, session)
	c.Redirect(http.StatusFound, urls.Index())
}

// Login xử lý GET,POST /auth/login/. next chỉ nhận path nội bộ.
func (h *UserHandler) Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.renderLogin(c, model.LoginForm{}, nil, c.Query("next"))
		return
	}

	var form model.LoginForm
	_ = c.ShouldBind(&form)
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	session, err := h.service.Login(c.Request.Context(), form)
	if err != nil {
		var ve *forms.ValidationError
		switch {
		case errors.As(err, &ve):
			h.renderLogin(c, form, ve.Fields, next)
		case errors.Is(err, model.ErrInvalidCredentials):
			fe := forms.FieldErrors{}
			fe.Add("__all__", msgInvalidLogin)
			h.renderLogin(c, form, fe, next)
		default:
			response.ServerError(c, err)
		}
		return
	}

	h.setSessionCookie(c, session)
	logger.Info("user logged in", map[string]interface{}{"user_id": session.User.ID.String()})
	c.Redirect(http.StatusFound, urls.SafeNext(next))
}

// Logout xử lý GET,POST /auth/logout/: revoke session phía server và xoá cookie
func (h *UserHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.CookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		// Cookie vẫn bị xoá; session sẽ tự hết hạn theo TTL
		logger.Error("revoke session failed", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)

	response.Render(c, http.StatusOK, "users/logged_out.html", gin.H{"user": nil})
}

// ========================================
// HELPERS
// ========================================

func (h *UserHandler) setSessionCookie(c *gin.Context, s *model.Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, s.Token, maxAge, "/", "", h.cfg.CookieSecure, true)
}

func (h *UserHandler) renderSignup(c *gin.Context, form model.SignupForm, errs forms.FieldErrors) {
	if errs == nil {
		errs = forms.FieldErrors{}
	}
	form.Password, form.PasswordConfirm = "", ""
	response.Render(c, http.StatusOK, "users/signup.html", gin.H{
		"form":   form,
		"errors": errs,
	})
}

func (h *UserHandler) renderLogin(c *gin.Context, form model.LoginForm, errs forms.FieldErrors, next string) {
	if errs == nil {
		errs = forms.FieldErrors{}
	}
	form.Password = ""
	response.Render(c, http.StatusOK, "users/login.html", gin.H{
		"form":   form,
		"errors": errs,
		"next":   next,
	})
}
