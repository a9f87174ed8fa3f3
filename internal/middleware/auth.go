package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/utils"
)

// TokenCookie 登录态 Cookie 名
const TokenCookie = "token"

// Claims JWT 声明
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth 必须登录中间件
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, jwtSecret)
		if err != nil {
			// 页面请求重定向到登录页
			if wantsHTML(c) {
				c.Redirect(http.StatusFound, "/auth/login?redirect="+url.QueryEscape(c.Request.URL.Path))
				c.Abort()
				return
			}
			utils.Unauthorized(c, "")
			c.Abort()
			return
		}

		setUser(c, claims)
		refreshIfNeeded(c, claims, jwtSecret)
		c.Next()
	}
}

// OptionalAuth 可选登录中间件（布局中显示管理入口）
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := extractClaims(c, jwtSecret); err == nil {
			setUser(c, claims)
			refreshIfNeeded(c, claims, jwtSecret)
		}
		c.Next()
	}
}

// RequireAdmin 管理员权限中间件
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != model.RoleAdmin {
			if wantsHTML(c) {
				c.String(http.StatusForbidden, "需要管理员权限")
			} else {
				utils.Forbidden(c, "需要管理员权限")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

func setUser(c *gin.Context, claims *Claims) {
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
}

// refreshIfNeeded 滑动续期：有效期消耗过半时签发新 Token
func refreshIfNeeded(c *gin.Context, claims *Claims, jwtSecret string) {
	if !shouldRefresh(claims) {
		return
	}
	expiry := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	newToken, err := GenerateToken(claims.Email, claims.Role, jwtSecret, expiry)
	if err == nil {
		SetTokenCookie(c, newToken, expiry)
	}
}

// SetTokenCookie 写入登录态 Cookie
func SetTokenCookie(c *gin.Context, token string, expiry time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, int(expiry.Seconds()), "/", "", c.Request.TLS != nil, true)
}

// ClearTokenCookie 清除登录态
func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}

// extractClaims 从 Cookie 或 Header 中提取 JWT Claims
func extractClaims(c *gin.Context, jwtSecret string) (*Claims, error) {
	var tokenString string

	// 优先从 Cookie 获取
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		tokenString = cookie
	} else {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// CurrentUser 从上下文获取登录用户（未登录返回 nil）
func CurrentUser(c *gin.Context) *model.SessionUser {
	email := c.GetString("email")
	if email == "" {
		return nil
	}
	return &model.SessionUser{Email: email, Role: c.GetString("role")}
}

// GenerateToken 生成 JWT Token
func GenerateToken(email, role, jwtSecret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// shouldRefresh 已消耗总有效期的 50% 以上则刷新
func shouldRefresh(claims *Claims) bool {
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return false
	}

	totalDuration := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	elapsedDuration := time.Since(claims.IssuedAt.Time)

	return elapsedDuration > totalDuration/2
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
