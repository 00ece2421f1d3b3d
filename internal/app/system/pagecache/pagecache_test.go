package pagecache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

// countingHandler renders a body that changes on every call, standing in
// for a feed whose underlying data changes between requests.
func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "render %d of %s", *calls, r.URL.RequestURI())
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestMiddleware_ServesStaleWithinTTL(t *testing.T) {
	c := New(time.Minute, zap.NewNop())
	calls := 0
	h := c.Middleware(countingHandler(&calls))

	first := get(t, h, "/")
	second := get(t, h, "/")

	if first.Body.String() != second.Body.String() {
		t.Errorf("reads within TTL differ: %q vs %q", first.Body.String(), second.Body.String())
	}
	if calls != 1 {
		t.Errorf("handler rendered %d times, want 1", calls)
	}
}

func TestMiddleware_ExpiryReflectsNewContent(t *testing.T) {
	c := New(20*time.Millisecond, zap.NewNop())
	calls := 0
	h := c.Middleware(countingHandler(&calls))

	first := get(t, h, "/")
	time.Sleep(40 * time.Millisecond)
	second := get(t, h, "/")

	if first.Body.String() == second.Body.String() {
		t.Error("read after TTL expiry should reflect a fresh render")
	}
	if calls != 2 {
		t.Errorf("handler rendered %d times, want 2", calls)
	}
}

func TestMiddleware_KeyIncludesQuery(t *testing.T) {
	c := New(time.Minute, zap.NewNop())
	calls := 0
	h := c.Middleware(countingHandler(&calls))

	p1 := get(t, h, "/?page=1")
	p2 := get(t, h, "/?page=2")

	if p1.Body.String() == p2.Body.String() {
		t.Error("different page numbers must cache separately")
	}
	if calls != 2 {
		t.Errorf("handler rendered %d times, want 2", calls)
	}
}

func TestMiddleware_ReplaysAllHeaders(t *testing.T) {
	c := New(time.Minute, zap.NewNop())
	calls := 0
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Language", "ru")
		fmt.Fprint(w, "body")
	}))

	miss := get(t, h, "/")
	hit := get(t, h, "/")

	if calls != 1 {
		t.Fatalf("handler rendered %d times, want 1", calls)
	}
	for _, rec := range []*httptest.ResponseRecorder{miss, hit} {
		if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := rec.Header().Get("Content-Language"); got != "ru" {
			t.Errorf("Content-Language = %q, want %q", got, "ru")
		}
	}
}

func TestMiddleware_SkipsNonGET(t *testing.T) {
	c := New(time.Minute, zap.NewNop())
	calls := 0
	h := c.Middleware(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	}

	if calls != 2 {
		t.Errorf("POSTs rendered %d times, want 2 (uncached)", calls)
	}
}

func TestMiddleware_DoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute, zap.NewNop())
	calls := 0
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	get(t, h, "/")
	get(t, h, "/")

	if calls != 2 {
		t.Errorf("error responses rendered %d times, want 2 (uncached)", calls)
	}
}

func TestClear(t *testing.T) {
	c := New(time.Minute, zap.NewNop())
	calls := 0
	h := c.Middleware(countingHandler(&calls))

	get(t, h, "/")
	c.Clear()
	get(t, h, "/")

	if calls != 2 {
		t.Errorf("handler rendered %d times after Clear, want 2", calls)
	}
}

func TestGetSet(t *testing.T) {
	c := New(time.Minute, zap.NewNop())

	if _, ok := c.Get("/x"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set("/x", Entry{Status: 200, Body: []byte("hello")})
	e, ok := c.Get("/x")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(e.Body) != "hello" {
		t.Errorf("Body = %q, want %q", e.Body, "hello")
	}
}
