package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/homepage/internal/collection"
)

// BlogPageSize 博客列表每页篇数
const BlogPageSize = 12

// Blog 文章列表，支持 tag 筛选与分页
func (h *Handler) Blog(c *gin.Context) {
	tag := c.Query("tag")
	posts := h.Library.PostsByTag(tag)

	pageCount := collection.PageCount(len(posts), BlogPageSize)
	page, _ := strconv.Atoi(c.Query("page"))
	page = collection.ClampPage(page, pageCount)

	pageURL := func(n int) string {
		v := url.Values{}
		if tag != "" {
			v.Set("tag", tag)
		}
		if n > 1 {
			v.Set("page", strconv.Itoa(n))
		}
		if q := v.Encode(); q != "" {
			return "/blog?" + q
		}
		return "/blog"
	}

	links := make([]collection.PageLink, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		links = append(links, collection.PageLink{Number: i, URL: pageURL(i), Current: i == page})
	}

	title := "Blog"
	if tag != "" {
		title = "#" + tag + " | Blog"
	}

	c.HTML(http.StatusOK, "blog.html", h.RenderData(c, gin.H{
		"Title":     h.title(title),
		"Posts":     collection.Paginate(posts, page, BlogPageSize),
		"Tags":      h.Library.Tags(),
		"Tag":       tag,
		"Page":      page,
		"PageCount": pageCount,
		"Pages":     links,
	}))
}

// Post 文章详情
func (h *Handler) Post(c *gin.Context) {
	post, ok := h.Library.Post(c.Param("slug"))
	if !ok {
		h.NotFound(c)
		return
	}

	// 列表按日期倒序：前一项更新，后一项更旧
	data := gin.H{
		"Title":       h.title(post.Title),
		"Description": post.Summary(),
		"Post":        post,
	}
	for i, p := range h.Library.Posts {
		if p.Slug != post.Slug {
			continue
		}
		if i > 0 {
			data["Newer"] = h.Library.Posts[i-1]
		}
		if i+1 < len(h.Library.Posts) {
			data["Older"] = h.Library.Posts[i+1]
		}
		break
	}

	c.HTML(http.StatusOK, "post.html", h.RenderData(c, data))
}
