package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"github.com/user/homepage/internal/handler"
	"github.com/user/homepage/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(h.NotFound)

	// ==================== 公开页面 ====================
	pages := r.Group("/")
	pages.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		pages.GET("/", h.Home)
		pages.GET("/about", h.About)
		pages.GET("/blog", h.Blog)
		pages.GET("/blog/:slug", h.Post)
		pages.GET("/collections", h.Collections)
		pages.GET("/search", h.Search)
		pages.GET("/contact", h.ContactPage)
		pages.POST("/contact", h.SubmitContact)
	}
	r.GET("/sitemap.xml", h.Sitemap)

	// ==================== 认证页面 ====================
	auth := r.Group("/auth")
	{
		auth.GET("/login", h.LoginPage)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	// ==================== JSON API ====================
	api := r.Group("/api")
	api.Use(middleware.CORS())
	{
		api.GET("/collections", h.CollectionsAPI)
		api.GET("/search/suggest", h.SearchSuggest)
		// 预检请求落到这里，由 CORS 中间件直接应答
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
	}

	// ==================== 管理后台 ====================
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", h.AdminDashboard)
		admin.GET("/feedback", h.AdminFeedback)
		admin.POST("/feedback/:id/status", h.AdminFeedbackStatus)
	}
}

// Pages 页面模板，对应 pages/<name>.html
var Pages = []string{
	"home", "about", "blog", "post", "collections", "search", "contact", "404",
	"login", "admin_dashboard", "admin_feedback",
}

// Fragments htmx 片段，对应 fragments/<name>.html，不套布局
var Fragments = []string{"collections_panel"}

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		// stars 评分转星星，如 4 -> ★★★★☆
		"stars": func(rating int) string {
			if rating <= 0 {
				return ""
			}
			rating = min(rating, 5)
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},
		"add": func(a, b int) int { return a + b },
	}
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(filepath.Join(templatesDir, "partials", "*.html"))
	if err != nil {
		panic(err)
	}

	// 布局在前，执行时以第一个文件为入口
	assemble := func(view string, withLayout bool) []string {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		if !withLayout {
			files = append(files, view)
		} else {
			files = append(files, layouts...)
		}
		files = append(files, partials...)
		if withLayout {
			files = append(files, view)
		}
		return files
	}

	funcMap := FuncMap()

	for _, page := range Pages {
		viewPath := filepath.Join(templatesDir, "pages", page+".html")
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath, true)...)
	}
	for _, fragment := range Fragments {
		viewPath := filepath.Join(templatesDir, "fragments", fragment+".html")
		r.AddFromFilesFuncs(fragment+".html", funcMap, assemble(viewPath, false)...)
	}

	return r
}
