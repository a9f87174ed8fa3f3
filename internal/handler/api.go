package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/homepage/internal/collection"
	"github.com/user/homepage/internal/utils"
)

// SuggestLimit 搜索联想条数
const SuggestLimit = 8

// CollectionsAPI 集合视图 JSON
func (h *Handler) CollectionsAPI(c *gin.Context) {
	view := h.collectionView(c)

	utils.Success(c, gin.H{
		"view": view,
		"page": utils.PageInfo{
			Page:      view.State.Page,
			PageSize:  collection.PageSize,
			Total:     view.FilteredCount,
			PageCount: view.PageCount,
		},
	})
}

// SearchSuggest 搜索联想
func (h *Handler) SearchSuggest(c *gin.Context) {
	utils.Success(c, h.SearchService.Suggest(c.Query("q"), SuggestLimit))
}
