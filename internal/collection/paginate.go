package collection

// PageSize 书籍与电影每页条数
const PageSize = 12

// PageCount 总页数，向上取整
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate 取第 page 页（从 1 开始）。越界页返回空切片，由调用方负责钳制页码
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// ClampPage 将页码钳制到 [1, max(1, pageCount)]
func ClampPage(page, pageCount int) int {
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}
	return page
}
