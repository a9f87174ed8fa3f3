package collection

import (
	"fmt"

	"github.com/user/homepage/internal/model"
)

func book(id int, title, author string, started, completed string) model.Book {
	b := model.Book{
		ID:           id,
		Title:        title,
		Author:       author,
		Status:       model.BookWantToRead,
		GoodreadsUrl: fmt.Sprintf("https://www.goodreads.com/book/show/%d", id),
	}
	if started != "" {
		b.DateStarted = model.MustDate(started)
		b.Status = model.BookReading
	}
	if completed != "" {
		b.DateCompleted = model.MustDate(completed)
		b.Status = model.BookCompleted
	}
	return b
}

func movie(id int, title, director, watched string) model.Movie {
	m := model.Movie{ID: id, Title: title, Director: director}
	if watched != "" {
		m.DateWatched = model.MustDate(watched)
	}
	return m
}

func numberedBooks(n int) []model.Book {
	books := make([]model.Book, 0, n)
	for i := 1; i <= n; i++ {
		books = append(books, book(i, fmt.Sprintf("Book %02d", i), "Author", "", ""))
	}
	return books
}

func titles[T any](items []T, title func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, title(item))
	}
	return out
}

func bookTitle(b model.Book) string   { return b.Title }
func movieTitle(m model.Movie) string { return m.Title }
