package markdown

import (
	"strings"
	"testing"
)

func TestRenderDocument(t *testing.T) {
	src := "# Title\n\nIntro text.\n\n## First\n\nBody.\n\n### Nested\n\n```go\nx := 1\n```\n\n## Second\n"

	doc, err := NewRenderer().RenderDocument([]byte(src))
	if err != nil {
		t.Fatalf("RenderDocument error: %v", err)
	}

	if len(doc.TOC) != 3 {
		t.Fatalf("TOC len = %d, expected 3: %+v", len(doc.TOC), doc.TOC)
	}
	if doc.TOC[0].ID != "first" || doc.TOC[0].Level != 2 {
		t.Errorf("TOC[0] = %+v", doc.TOC[0])
	}
	if doc.TOC[1].ID != "nested" || doc.TOC[1].Level != 3 || doc.TOC[1].Text != "Nested" {
		t.Errorf("TOC[1] = %+v", doc.TOC[1])
	}
	if strings.Contains(doc.PlainText, "x := 1") {
		t.Errorf("plain text should exclude code: %q", doc.PlainText)
	}
	if !strings.HasPrefix(doc.PlainText, "Title Intro text.") {
		t.Errorf("PlainText = %q", doc.PlainText)
	}
	if doc.ReadingMinutes != 1 {
		t.Errorf("ReadingMinutes = %d, expected 1", doc.ReadingMinutes)
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("short text", 160); got != "short text" {
		t.Errorf("Excerpt short = %q", got)
	}

	long := strings.Repeat("word ", 50)
	got := Excerpt(long, 22)
	if got != "word word word word…" {
		t.Errorf("Excerpt long = %q", got)
	}
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		if got := ReadingMinutes(tt.words); got != tt.want {
			t.Errorf("ReadingMinutes(%d) = %d, expected %d", tt.words, got, tt.want)
		}
	}
}
