package handler

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap 站点地图：静态页面与全部文章
func (h *Handler) Sitemap(c *gin.Context) {
	base := strings.TrimRight(h.Config.SiteUrl, "/")

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, page := range []struct{ path, freq, priority string }{
		{"/", "weekly", "1.0"},
		{"/about", "monthly", "0.8"},
		{"/blog", "weekly", "0.9"},
		{"/collections", "weekly", "0.7"},
		{"/contact", "yearly", "0.5"},
	} {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + page.path, ChangeFreq: page.freq, Priority: page.priority})
	}
	for _, p := range h.Library.Posts {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + p.URL(), LastMod: p.Date.String(), Priority: "0.6"})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
