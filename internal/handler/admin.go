package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/homepage/internal/collection"
	"github.com/user/homepage/internal/logging"
	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/utils"
)

// AdminFeedbackPageSize 后台留言每页条数
const AdminFeedbackPageSize = 20

// ==================== 管理后台 ====================

// AdminDashboard 后台首页：内容统计、留言数量、热搜
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{
		"Title":     h.title("Admin"),
		"Stats":     h.Viewer.Stats(),
		"PostCount": len(h.Library.Posts),
		"DBEnabled": h.Feedback != nil,
	}

	if h.Feedback != nil {
		counts, err := h.Feedback.CountByStatus(ctx)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("获取留言统计失败")
		}
		data["FeedbackCounts"] = counts
	}
	if h.SearchStats != nil {
		trending, err := h.SearchStats.GetTrending(ctx, 24*7, 10)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("获取热搜失败")
		}
		searches, err := h.SearchStats.CountSince(ctx, time.Now().AddDate(0, 0, -7))
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("获取搜索次数失败")
		}
		data["Trending"] = trending
		data["WeeklySearches"] = searches
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", h.RenderData(c, data))
}

// AdminFeedback 留言列表
func (h *Handler) AdminFeedback(c *gin.Context) {
	if h.Feedback == nil {
		h.NotFound(c)
		return
	}

	ctx := c.Request.Context()
	status := c.Query("status")
	if status != "" && !model.IsValidFeedbackStatus(status) {
		status = ""
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	items, total, err := h.Feedback.List(ctx, status, AdminFeedbackPageSize, (page-1)*AdminFeedbackPageSize)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("获取留言列表失败")
		c.HTML(http.StatusInternalServerError, "admin_feedback.html", h.RenderData(c, gin.H{
			"Title": h.title("Feedback"),
			"Error": "Failed to load feedback.",
		}))
		return
	}

	pageCount := collection.PageCount(int(total), AdminFeedbackPageSize)
	links := make([]collection.PageLink, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		v := url.Values{}
		if status != "" {
			v.Set("status", status)
		}
		v.Set("page", strconv.Itoa(i))
		links = append(links, collection.PageLink{Number: i, URL: "/admin/feedback?" + v.Encode(), Current: i == page})
	}

	c.HTML(http.StatusOK, "admin_feedback.html", h.RenderData(c, gin.H{
		"Title":    h.title("Feedback"),
		"Items":    items,
		"Total":    total,
		"Status":   status,
		"Statuses": []string{model.FeedbackPending, model.FeedbackRead, model.FeedbackArchived},
		"Pages":    links,
	}))
}

// AdminFeedbackStatus 修改留言状态
func (h *Handler) AdminFeedbackStatus(c *gin.Context) {
	if h.Feedback == nil {
		utils.NotFound(c, "")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "无效的留言 ID")
		return
	}
	status := c.PostForm("status")
	if !model.IsValidFeedbackStatus(status) {
		utils.BadRequest(c, "无效的状态")
		return
	}

	updated, err := h.Feedback.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Int("id", id).Msg("更新留言状态失败")
		utils.InternalServerError(c, "")
		return
	}
	if !updated {
		utils.NotFound(c, "留言不存在")
		return
	}

	if c.GetHeader("HX-Request") == "true" {
		utils.Success(c, gin.H{"id": id, "status": status})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/feedback")
}
