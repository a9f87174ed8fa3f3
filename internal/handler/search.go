package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/service"
)

// 结果分组标题
var kindLabels = map[string]string{
	model.KindPost:       "Posts",
	model.KindBook:       "Books",
	model.KindMovie:      "Movies",
	model.KindBucketList: "Bucket List",
}

// SearchGroup 搜索页分组
type SearchGroup struct {
	Kind  string
	Label string
	Hits  []model.SearchHit
}

// Search 搜索结果页
func (h *Handler) Search(c *gin.Context) {
	result := h.SearchService.Search(c.Request.Context(), c.Query("q"), c.ClientIP())

	c.HTML(http.StatusOK, "search.html", h.RenderData(c, gin.H{
		"Title":   h.title("Search"),
		"Keyword": result.Query,
		"Result":  result,
		"Groups":  groupHits(result),
	}))
}

func groupHits(result *service.SearchResult) []SearchGroup {
	groups := make([]SearchGroup, 0)
	for _, kind := range result.Kinds() {
		groups = append(groups, SearchGroup{Kind: kind, Label: kindLabels[kind], Hits: result.ByKind(kind)})
	}
	return groups
}
