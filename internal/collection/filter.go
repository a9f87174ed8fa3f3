// Package collection 实现 List 100 页面的筛选、排序、分页与统计。
//
// 数据在启动时加载且只读；页面状态（分类、搜索词、页码）由不可变的 State 值表示，
// 每次用户操作都生成新的 State。
package collection

import (
	"strings"

	"github.com/user/homepage/internal/model"
)

// MatchQuery 大小写不敏感的子串匹配，任一字段命中即可；空查询匹配一切
func MatchQuery(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterBooks 按书名或作者筛选
func FilterBooks(books []model.Book, query string) []model.Book {
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if MatchQuery(query, b.Title, b.Author) {
			out = append(out, b)
		}
	}
	return out
}

// FilterMovies 按片名或导演筛选
func FilterMovies(movies []model.Movie, query string) []model.Movie {
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if MatchQuery(query, m.Title, m.Director) {
			out = append(out, m)
		}
	}
	return out
}

// FilterBucketList 按标题或描述筛选，不按状态过滤；纯空白查询返回全部
func FilterBucketList(items []model.BucketListItem, query string) []model.BucketListItem {
	if strings.TrimSpace(query) == "" {
		return append([]model.BucketListItem(nil), items...)
	}
	out := make([]model.BucketListItem, 0, len(items))
	for _, item := range items {
		if MatchQuery(query, item.Title, item.Description) {
			out = append(out, item)
		}
	}
	return out
}
