package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/user/homepage/internal/collection"
	"github.com/user/homepage/internal/config"
	"github.com/user/homepage/internal/content"
	"github.com/user/homepage/internal/middleware"
	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/repository"
	"github.com/user/homepage/internal/service"
)

var validate = validator.New()

// FeedbackStore 留言存储
type FeedbackStore interface {
	Create(ctx context.Context, f *model.Feedback) error
	List(ctx context.Context, status string, limit, offset int) ([]*model.Feedback, int64, error)
	UpdateStatus(ctx context.Context, id int, status string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// SearchStats 后台搜索统计
type SearchStats interface {
	GetTrending(ctx context.Context, hours, limit int) ([]*model.TrendingKeyword, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// Handler HTTP 处理器
type Handler struct {
	Config        *config.Config
	Library       *content.Library
	Viewer        *collection.Viewer
	SearchService *service.SearchService
	Feedback      FeedbackStore
	SearchStats   SearchStats
}

// NewHandler 创建处理器；repos 为 nil 时留言与搜索统计不可用
func NewHandler(cfg *config.Config, lib *content.Library, repos *repository.Repositories) *Handler {
	h := &Handler{
		Config:  cfg,
		Library: lib,
		Viewer:  collection.NewViewer(lib.Books, lib.Movies, lib.BucketList),
	}

	var searchLogger service.SearchLogger
	if repos != nil {
		h.Feedback = repos.Feedback
		h.SearchStats = repos.SearchLog
		searchLogger = repos.SearchLog
	}
	h.SearchService = service.NewSearchService(lib, searchLogger)

	return h
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName":   h.Config.SiteName,
		"SiteUrl":    h.Config.SiteUrl,
		"SiteAuthor": h.Config.SiteAuthor,
		"Path":       c.Request.URL.Path,
		"Year":       time.Now().Year(),
		"ActiveMenu": h.getActiveMenu(c.Request.URL.Path),
	}

	// 登录态以 JWT 为准（OptionalAuth / RequireAuth 写入上下文）
	if user := middleware.CurrentUser(c); user != nil {
		res["UserInfo"] = user
	}

	for k, v := range data {
		res[k] = v
	}

	return res
}

// getActiveMenu 根据路径判断当前高亮菜单
func (h *Handler) getActiveMenu(path string) string {
	switch {
	case path == "/":
		return "home"
	case path == "/about":
		return "about"
	case strings.HasPrefix(path, "/blog"):
		return "blog"
	case path == "/collections":
		return "collections"
	case path == "/contact":
		return "contact"
	case strings.HasPrefix(path, "/admin"):
		return "admin"
	default:
		return ""
	}
}

func (h *Handler) title(prefix string) string {
	if prefix == "" {
		return h.Config.SiteName
	}
	return prefix + " | " + h.Config.SiteName
}

// ==================== 公开页面 ====================

// Home 首页
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":   h.title(""),
		"Profile": h.Library.Profile,
		"Posts":   h.Library.LatestPosts(3),
		"Stats":   h.Viewer.Stats(),
	}))
}

// About 关于页
func (h *Handler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", h.RenderData(c, gin.H{
		"Title":   h.title("About"),
		"Profile": h.Library.Profile,
	}))
}

// NotFound 404 页面
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": h.title("Not Found"),
	}))
}
