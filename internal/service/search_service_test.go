package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/user/homepage/internal/content"
	"github.com/user/homepage/internal/model"
)

type logEntry struct {
	keyword string
	ipHash  string
	kinds   []string
	hits    int
}

type fakeSearchLogger struct {
	mu      sync.Mutex
	entries []logEntry
	err     error
}

func (f *fakeSearchLogger) Log(_ context.Context, keyword, ipHash string, kinds []string, hits int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, logEntry{keyword, ipHash, kinds, hits})
	return f.err
}

func testLibrary() *content.Library {
	lib := &content.Library{
		Posts: []*model.Post{
			{Slug: "go-tips", Title: "Go Tips", Date: *model.MustDate("2024-02-01"), Tags: []string{"golang"}},
			{Slug: "travel", Title: "Travel Notes", Date: *model.MustDate("2024-01-01"), Description: "Hiking the Alps", Tags: []string{}},
		},
		Books: []model.Book{
			{ID: 1, Title: "The Hobbit", Author: "J.R.R. Tolkien", Status: model.BookCompleted},
			{ID: 2, Title: "Learning Go", Author: "Jon Bodner", Status: model.BookReading},
		},
		Movies: []model.Movie{
			{ID: 1, Title: "Gone Girl", Director: "David Fincher"},
		},
		BucketList: []model.BucketListItem{
			{ID: 1, Title: "Hike the Alps", Description: "Two weeks", Status: model.BucketTodo},
		},
	}
	return lib
}

func TestSearchService_Search(t *testing.T) {
	svc := NewSearchService(testLibrary(), nil)

	result := svc.Search(context.Background(), "  GO ", "1.2.3.4")

	if result.Query != "GO" {
		t.Errorf("Query = %q, expected trimmed", result.Query)
	}
	want := []string{"post:Go Tips", "book:Learning Go", "movie:Gone Girl"}
	got := make([]string, 0, len(result.Hits))
	for _, h := range result.Hits {
		got = append(got, h.Kind+":"+h.Title)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("hits = %v, expected %v", got, want)
	}
	if kinds := result.Kinds(); len(kinds) != 3 || kinds[0] != model.KindPost {
		t.Errorf("Kinds = %v", kinds)
	}
	if hits := result.ByKind(model.KindBook); len(hits) != 1 || hits[0].URL != "/collections?q=Learning+Go&tab=books" {
		t.Errorf("book hits = %+v", hits)
	}
}

func TestSearchService_MatchesDescriptionAndTags(t *testing.T) {
	svc := NewSearchService(testLibrary(), nil)

	alps := svc.Search(context.Background(), "alps", "")
	if alps.Counts[model.KindPost] != 1 || alps.Counts[model.KindBucketList] != 1 {
		t.Errorf("counts = %v", alps.Counts)
	}

	tag := svc.Search(context.Background(), "golang", "")
	if tag.Total() != 1 || tag.Hits[0].URL != "/blog/go-tips" {
		t.Errorf("tag search = %+v", tag.Hits)
	}
}

func TestSearchService_BlankQuery(t *testing.T) {
	logger := &fakeSearchLogger{}
	svc := NewSearchService(testLibrary(), logger)

	result := svc.Search(context.Background(), "   ", "1.2.3.4")
	svc.Wait()

	if result.Total() != 0 || result.Hits == nil {
		t.Errorf("blank query should return an empty, non-nil result: %+v", result)
	}
	if len(logger.entries) != 0 {
		t.Errorf("blank query should not be logged")
	}
}

func TestSearchService_CapsPerKind(t *testing.T) {
	lib := &content.Library{}
	for i := 1; i <= 15; i++ {
		lib.Books = append(lib.Books, model.Book{ID: i, Title: fmt.Sprintf("Book %d", i), Author: "Someone"})
	}
	svc := NewSearchService(lib, nil)

	result := svc.Search(context.Background(), "book", "")
	if result.Total() != MaxHitsPerKind {
		t.Errorf("Total = %d, expected %d", result.Total(), MaxHitsPerKind)
	}
}

func TestSearchService_LogsAsync(t *testing.T) {
	logger := &fakeSearchLogger{err: errors.New("db down")}
	svc := NewSearchService(testLibrary(), logger)

	svc.Search(context.Background(), "Hobbit", "10.0.0.1")
	svc.Search(context.Background(), "nothing-matches", "10.0.0.1")
	svc.Wait()

	if len(logger.entries) != 2 {
		t.Fatalf("entries = %d, expected 2", len(logger.entries))
	}
	var hobbit logEntry
	for _, e := range logger.entries {
		if e.keyword == "hobbit" {
			hobbit = e
		}
	}
	if hobbit.hits != 1 || len(hobbit.kinds) != 1 || hobbit.kinds[0] != model.KindBook {
		t.Errorf("hobbit entry = %+v", hobbit)
	}
	if hobbit.ipHash == "" || hobbit.ipHash == "10.0.0.1" {
		t.Errorf("ip should be hashed, got %q", hobbit.ipHash)
	}
}

func TestSearchService_CachesResults(t *testing.T) {
	svc := NewSearchService(testLibrary(), nil)

	first := svc.Search(context.Background(), "Hobbit", "")
	second := svc.Search(context.Background(), "hobbit", "")
	if first != second {
		t.Error("expected case-insensitive cache hit to return the same result")
	}
}

func TestSearchService_Suggest(t *testing.T) {
	svc := NewSearchService(testLibrary(), nil)

	if hits := svc.Suggest("go", 2); len(hits) != 2 {
		t.Errorf("Suggest len = %d, expected 2", len(hits))
	}
	if hits := svc.Suggest("", 8); len(hits) != 0 {
		t.Errorf("blank suggest should be empty")
	}
}

func TestNormalizeQuery(t *testing.T) {
	long := strings.Repeat("é", MaxQueryRunes+5)
	if got := NormalizeQuery(long); len([]rune(got)) != MaxQueryRunes {
		t.Errorf("len = %d", len([]rune(got)))
	}
	if got := NormalizeQuery("  hi  "); got != "hi" {
		t.Errorf("NormalizeQuery = %q", got)
	}
}
