package service

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/user/homepage/internal/collection"
	"github.com/user/homepage/internal/content"
	"github.com/user/homepage/internal/logging"
	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/utils"
)

const (
	// MaxHitsPerKind 每种类型最多返回的结果数
	MaxHitsPerKind = 10
	// MaxQueryRunes 搜索词最大长度
	MaxQueryRunes = 100

	searchCacheSize = 500
	searchCacheTTL  = time.Hour
	logTimeout      = 5 * time.Second
)

// 结果分组顺序
var kindOrder = []string{model.KindPost, model.KindBook, model.KindMovie, model.KindBucketList}

// SearchLogger 搜索日志落库
type SearchLogger interface {
	Log(ctx context.Context, keyword, ipHash string, kinds []string, hits int) error
}

// SearchResult 搜索结果，缓存共享，调用方只读
type SearchResult struct {
	Query  string            `json:"query"`
	Hits   []model.SearchHit `json:"hits"`
	Counts map[string]int    `json:"counts"`
}

// Total 结果总数
func (r *SearchResult) Total() int {
	return len(r.Hits)
}

// Kinds 有结果的类型，按固定顺序
func (r *SearchResult) Kinds() []string {
	kinds := make([]string, 0, len(kindOrder))
	for _, k := range kindOrder {
		if r.Counts[k] > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// ByKind 某一类型的结果
func (r *SearchResult) ByKind(kind string) []model.SearchHit {
	hits := make([]model.SearchHit, 0)
	for _, h := range r.Hits {
		if h.Kind == kind {
			hits = append(hits, h)
		}
	}
	return hits
}

// SearchService 站内搜索：文章、书籍、电影、愿望清单
type SearchService struct {
	lib    *content.Library
	cache  *utils.SearchCache[*SearchResult]
	sf     singleflight.Group
	logger SearchLogger
	wg     sync.WaitGroup
}

// NewSearchService logger 为 nil 时不记录搜索日志
func NewSearchService(lib *content.Library, logger SearchLogger) *SearchService {
	return &SearchService{
		lib:    lib,
		cache:  utils.NewSearchCache[*SearchResult](searchCacheSize, searchCacheTTL),
		logger: logger,
	}
}

// NormalizeQuery 去掉首尾空白并截断
func NormalizeQuery(query string) string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > MaxQueryRunes {
		query = string([]rune(query)[:MaxQueryRunes])
	}
	return query
}

// Search 搜索并异步记录日志；空查询返回空结果
func (s *SearchService) Search(ctx context.Context, query, clientIP string) *SearchResult {
	result := s.lookup(query)
	if result.Query != "" {
		s.logAsync(ctx, result, clientIP)
	}
	return result
}

// Suggest 输入联想，不记录日志
func (s *SearchService) Suggest(query string, limit int) []model.SearchHit {
	hits := s.lookup(query).Hits
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Wait 等待未完成的日志写入（关闭服务时调用）
func (s *SearchService) Wait() {
	s.wg.Wait()
}

func (s *SearchService) lookup(query string) *SearchResult {
	query = NormalizeQuery(query)
	if query == "" {
		return &SearchResult{Hits: []model.SearchHit{}, Counts: map[string]int{}}
	}

	key := strings.ToLower(query)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	// 并发的相同查询只计算一次
	val, _, _ := s.sf.Do(key, func() (interface{}, error) {
		result := s.search(query)
		s.cache.Set(key, result)
		return result, nil
	})
	return val.(*SearchResult)
}

func (s *SearchService) search(query string) *SearchResult {
	result := &SearchResult{
		Query:  query,
		Hits:   make([]model.SearchHit, 0),
		Counts: make(map[string]int, len(kindOrder)),
	}
	add := func(hit model.SearchHit) bool {
		if result.Counts[hit.Kind] >= MaxHitsPerKind {
			return false
		}
		result.Counts[hit.Kind]++
		result.Hits = append(result.Hits, hit)
		return true
	}

	for _, p := range s.lib.Posts {
		if collection.MatchQuery(query, append([]string{p.Title, p.Description}, p.Tags...)...) {
			if !add(model.SearchHit{Kind: model.KindPost, Title: p.Title, Subtitle: p.Date.Display(), URL: p.URL(), Image: p.Cover}) {
				break
			}
		}
	}
	for _, b := range s.lib.Books {
		if collection.MatchQuery(query, b.Title, b.Author) {
			url := collection.NewState().WithCategory(collection.CategoryBooks).WithQuery(b.Title).URL()
			if !add(model.SearchHit{Kind: model.KindBook, Title: b.Title, Subtitle: b.Author, URL: url, Image: b.CoverImage}) {
				break
			}
		}
	}
	for _, m := range s.lib.Movies {
		if collection.MatchQuery(query, m.Title, m.Director) {
			url := collection.NewState().WithCategory(collection.CategoryMovies).WithQuery(m.Title).URL()
			if !add(model.SearchHit{Kind: model.KindMovie, Title: m.Title, Subtitle: m.Director, URL: url, Image: m.PosterImage}) {
				break
			}
		}
	}
	for _, item := range s.lib.BucketList {
		if collection.MatchQuery(query, item.Title, item.Description) {
			url := collection.NewState().WithCategory(collection.CategoryBucketList).WithQuery(item.Title).URL()
			if !add(model.SearchHit{Kind: model.KindBucketList, Title: item.Title, Subtitle: item.Description, URL: url}) {
				break
			}
		}
	}

	return result
}

// logAsync 日志失败只记录，不影响请求
func (s *SearchService) logAsync(ctx context.Context, result *SearchResult, clientIP string) {
	if s.logger == nil {
		return
	}

	keyword := strings.ToLower(result.Query)
	kinds := result.Kinds()
	hits := result.Total()
	ipHash := utils.HashIP(clientIP)
	requestID := logging.RequestIDFromContext(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		logCtx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()
		logCtx = logging.ContextWithRequestID(logCtx, requestID)

		if err := s.logger.Log(logCtx, keyword, ipHash, kinds, hits); err != nil {
			logging.Ctx(logCtx).Warn().Err(err).Str("keyword", keyword).Msg("记录搜索日志失败")
		}
	}()
}
