package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/homepage/internal/logging"
	"github.com/user/homepage/internal/middleware"
	"github.com/user/homepage/internal/model"
)

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    h.title("Sign in"),
		"Redirect": safeRedirect(c.Query("redirect")),
	}))
}

// Login 管理员登录：邮箱 + bcrypt 密码
func (h *Handler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	redirect := safeRedirect(c.PostForm("redirect"))

	fail := func(code int, msg string) {
		c.HTML(code, "login.html", h.RenderData(c, gin.H{
			"Title":    h.title("Sign in"),
			"Error":    msg,
			"Email":    email,
			"Redirect": redirect,
		}))
	}

	if !h.Config.AdminEnabled() {
		fail(http.StatusServiceUnavailable, "Sign-in is not configured.")
		return
	}

	if !strings.EqualFold(email, h.Config.AdminEmail) ||
		bcrypt.CompareHashAndPassword([]byte(h.Config.AdminPasswordHash), []byte(password)) != nil {
		logging.Ctx(c.Request.Context()).Warn().Str("email", email).Msg("管理员登录失败")
		fail(http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	token, err := middleware.GenerateToken(h.Config.AdminEmail, model.RoleAdmin, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("生成 Token 失败")
		fail(http.StatusInternalServerError, "Sign-in failed, please try again.")
		return
	}
	middleware.SetTokenCookie(c, token, h.Config.JWTExpiry)
	logging.Ctx(c.Request.Context()).Info().Str("email", h.Config.AdminEmail).Msg("管理员登录")

	c.Redirect(http.StatusFound, redirect)
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c)

	if _, ok := c.Get(sessions.DefaultKey); ok {
		session := sessions.Default(c)
		session.Clear()
		_ = session.Save()
	}

	c.Redirect(http.StatusFound, "/")
}

// safeRedirect 只允许站内路径
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/admin"
	}
	return target
}
