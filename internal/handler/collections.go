package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/homepage/internal/collection"
)

// collectionView 解析参数并钳制页码
func (h *Handler) collectionView(c *gin.Context) collection.View {
	state := collection.StateFromQuery(c.Request.URL.Query())
	state = h.Viewer.Clamp(state)
	return h.Viewer.View(state)
}

// Collections List 100 页面；htmx 请求只返回面板
func (h *Handler) Collections(c *gin.Context) {
	view := h.collectionView(c)

	// 同一 URL 返回整页或面板，缓存需按 HX-Request 区分；Add 保留 gzip 写入的 Accept-Encoding
	c.Writer.Header().Add("Vary", "HX-Request")
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "collections_panel.html", gin.H{"View": view})
		return
	}

	c.HTML(http.StatusOK, "collections.html", h.RenderData(c, gin.H{
		"Title": h.title("List 100"),
		"View":  view,
	}))
}
