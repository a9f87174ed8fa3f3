package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/homepage/internal/config"
	"github.com/user/homepage/internal/content"
	"github.com/user/homepage/internal/handler"
	"github.com/user/homepage/internal/markdown"
	"github.com/user/homepage/internal/middleware"
	"github.com/user/homepage/internal/model"
)

type memoryFeedback struct {
	items []*model.Feedback
}

func (m *memoryFeedback) Create(_ context.Context, f *model.Feedback) error {
	f.ID = len(m.items) + 1
	m.items = append(m.items, f)
	return nil
}

func (m *memoryFeedback) List(context.Context, string, int, int) ([]*model.Feedback, int64, error) {
	return m.items, int64(len(m.items)), nil
}

func (m *memoryFeedback) UpdateStatus(context.Context, int, string) (bool, error) {
	return true, nil
}

func (m *memoryFeedback) CountByStatus(context.Context) (map[string]int64, error) {
	return map[string]int64{model.FeedbackPending: int64(len(m.items))}, nil
}

func testLibrary(t *testing.T) *content.Library {
	t.Helper()
	post, err := content.ParsePost("hello-world",
		[]byte("---\ntitle: Hello World\ndate: 2024-02-01\ntags: [go]\n---\n\n## Intro\n\nFirst post.\n"),
		markdown.NewRenderer())
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}

	return content.NewLibrary(
		[]model.Book{
			{ID: 1, Title: "The Hobbit", Author: "J.R.R. Tolkien", Status: model.BookCompleted, Rating: 5,
				DateCompleted: model.MustDate("2024-01-01"), GoodreadsUrl: "https://www.goodreads.com/book/show/5907"},
		},
		[]model.Movie{{ID: 1, Title: "Arrival", Director: "Denis Villeneuve", Year: 2016}},
		[]model.BucketListItem{
			{ID: 1, Title: "Run a marathon", Description: "Any city", Status: model.BucketCompleted},
			{ID: 2, Title: "Learn piano", Status: model.BucketTodo},
		},
		[]*model.Post{post},
		&model.Profile{Name: "Jason Nguyen", Headline: "Engineer", Bio: []string{"Hello."}},
	)
}

func newTestEngine(t *testing.T) (*gin.Engine, *handler.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SiteName:   "Jason Nguyen",
		SiteUrl:    "http://example.com",
		SiteAuthor: "Jason Nguyen",
		AppSecret:  "test-secret",
		JWTExpiry:  time.Hour,
	}
	h := handler.NewHandler(cfg, testLibrary(t), nil)

	r := gin.New()
	r.HTMLRender = LoadTemplates("../../web/templates")
	RegisterRoutes(r, h)
	return r, h
}

func do(r http.Handler, method, target string, body url.Values, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPages(t *testing.T) {
	r, _ := newTestEngine(t)

	tests := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/", http.StatusOK, "Hi, I'm Jason Nguyen"},
		{"/about", http.StatusOK, "Engineer"},
		{"/blog", http.StatusOK, "Hello World"},
		{"/blog?tag=rust", http.StatusOK, "No posts tagged #rust"},
		{"/blog/missing", http.StatusNotFound, "404"},
		{"/nowhere", http.StatusNotFound, "404"},
		{"/collections", http.StatusOK, "Run a marathon"},
		{"/collections?tab=books", http.StatusOK, "★★★★★"},
		{"/collections?tab=movies&q=zzz", http.StatusOK, "Nothing found"},
		{"/search?q=hobbit", http.StatusOK, "The Hobbit"},
		{"/search", http.StatusOK, "Search"},
		{"/contact", http.StatusOK, "unavailable"},
		{"/auth/login", http.StatusOK, "Sign in"},
		{"/sitemap.xml", http.StatusOK, "http://example.com/blog/hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, expected %d", w.Code, tt.wantCode)
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestPostPage(t *testing.T) {
	r, _ := newTestEngine(t)

	w := do(r, http.MethodGet, "/blog/hello-world", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `<h2 id="intro"`) {
		t.Error("rendered markdown missing heading id")
	}
	if !strings.Contains(body, `href="#intro"`) {
		t.Error("table of contents missing")
	}
}

func TestCollectionsPartial(t *testing.T) {
	r, _ := newTestEngine(t)

	w := do(r, http.MethodGet, "/collections?tab=books", nil, map[string]string{"HX-Request": "true"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("htmx request should get the panel only")
	}
	if !strings.Contains(body, `id="collections-panel"`) || !strings.Contains(body, "The Hobbit") {
		t.Errorf("panel content missing: %s", body)
	}

	full := do(r, http.MethodGet, "/collections?tab=books", nil, nil)
	for name, resp := range map[string]*httptest.ResponseRecorder{"partial": w, "full page": full} {
		if !strings.Contains(resp.Header().Get("Vary"), "HX-Request") {
			t.Errorf("%s response missing Vary: HX-Request, got %q", name, resp.Header().Get("Vary"))
		}
	}
}

func TestContactSubmit(t *testing.T) {
	r, h := newTestEngine(t)
	store := &memoryFeedback{}
	h.Feedback = store

	invalid := do(r, http.MethodPost, "/contact", url.Values{"name": {""}, "email": {"bad"}, "message": {"hi"}}, nil)
	if invalid.Code != http.StatusBadRequest {
		t.Errorf("invalid status = %d", invalid.Code)
	}
	if !strings.Contains(invalid.Body.String(), "valid email") {
		t.Error("missing field error")
	}

	ok := do(r, http.MethodPost, "/contact", url.Values{
		"name":    {"Ann"},
		"email":   {"ann@example.com"},
		"message": {"Hello there!"},
	}, nil)
	if ok.Code != http.StatusSeeOther {
		t.Errorf("submit status = %d", ok.Code)
	}
	if len(store.items) != 1 || store.items[0].Email != "ann@example.com" {
		t.Errorf("stored = %+v", store.items)
	}

	spam := do(r, http.MethodPost, "/contact", url.Values{"website": {"x"}, "name": {"Bot"}}, nil)
	if spam.Code != http.StatusSeeOther || len(store.items) != 1 {
		t.Error("honeypot submission should be dropped")
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	r, h := newTestEngine(t)
	h.Feedback = &memoryFeedback{}

	w := do(r, http.MethodGet, "/admin", nil, map[string]string{"Accept": "text/html"})
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, expected redirect", w.Code)
	}

	token, err := middleware.GenerateToken("me@example.com", model.RoleAdmin, "test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w = do(r, http.MethodGet, "/admin", nil, map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "0 pending") {
		t.Errorf("dashboard missing feedback counts")
	}

	w = do(r, http.MethodGet, "/", nil, map[string]string{"Authorization": "Bearer " + token})
	if !strings.Contains(w.Body.String(), `href="/admin"`) {
		t.Error("signed-in admin should see the admin link")
	}
	if anon := do(r, http.MethodGet, "/", nil, nil); strings.Contains(anon.Body.String(), `href="/admin"`) {
		t.Error("anonymous visitors should not see the admin link")
	}

	w = do(r, http.MethodGet, "/admin/feedback", nil, map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "No feedback") {
		t.Errorf("feedback page status = %d", w.Code)
	}
}

func TestLoginWithoutAdminConfigured(t *testing.T) {
	r, _ := newTestEngine(t)

	w := do(r, http.MethodPost, "/auth/login", url.Values{"email": {"a@b.c"}, "password": {"x"}}, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", w.Code)
	}
}

func TestFuncMap(t *testing.T) {
	fm := FuncMap()
	stars := fm["stars"].(func(int) string)
	if got := stars(3); got != "★★★☆☆" {
		t.Errorf("stars(3) = %q", got)
	}
	if got := stars(0); got != "" {
		t.Errorf("stars(0) = %q", got)
	}
	dict := fm["dict"].(func(...interface{}) (map[string]interface{}, error))
	if _, err := dict("a"); err == nil {
		t.Error("odd dict args should fail")
	}
}

func TestAPIPreflight(t *testing.T) {
	r, _ := newTestEngine(t)
	cors := map[string]string{
		"Origin":                        "http://other.example",
		"Access-Control-Request-Method": http.MethodGet,
	}

	w := do(r, http.MethodOptions, "/api/collections?tab=books", nil, cors)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, expected 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "GET") {
		t.Errorf("Access-Control-Allow-Methods = %q", w.Header().Get("Access-Control-Allow-Methods"))
	}

	w = do(r, http.MethodGet, "/api/collections?tab=books", nil, map[string]string{"Origin": "http://other.example"})
	if w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("GET status = %d, allow-origin = %q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}

	// 页面路由不开放跨域
	w = do(r, http.MethodGet, "/collections", nil, map[string]string{"Origin": "http://other.example"})
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("pages should not send CORS headers")
	}
}
