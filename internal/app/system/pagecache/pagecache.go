// internal/app/system/pagecache/pagecache.go

// Package pagecache memoizes fully rendered pages for a bounded time.
//
// The cache is keyed by full request URI (path + query, so each page
// number caches separately) and is never invalidated by writes: a post
// created during the TTL window shows up only after expiry.
package pagecache

import (
	"bytes"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a rendered global-feed page stays cached.
const DefaultTTL = 20 * time.Second

// Entry is a captured response ready for replay.
type Entry struct {
	Status int
	Header http.Header
	Body   []byte
}

// Cache is an explicitly constructed page cache. Construct one per
// server (or per test) with New; there is no package-level state.
type Cache struct {
	ttl   time.Duration
	store *gocache.Cache
	group singleflight.Group
	log   *zap.Logger
}

// New creates a Cache with the given entry TTL. A non-positive ttl
// falls back to DefaultTTL.
func New(ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:   ttl,
		store: gocache.New(ttl, 2*ttl),
		log:   logger,
	}
}

// TTL returns the configured entry time-to-live.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the cached entry for key, if present and unexpired.
func (c *Cache) Get(key string) (Entry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

// Set stores an entry under key for the configured TTL.
func (c *Cache) Set(key string, e Entry) {
	c.store.Set(key, e, gocache.DefaultExpiration)
}

// Clear drops every cached entry. Tests use this for isolation.
func (c *Cache) Clear() {
	c.store.Flush()
}

// capture buffers a handler's response so it can be stored and replayed.
type capture struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (cw *capture) Header() http.Header { return cw.header }

func (cw *capture) WriteHeader(status int) { cw.status = status }

func (cw *capture) Write(p []byte) (int, error) {
	if cw.status == 0 {
		cw.status = http.StatusOK
	}
	return cw.body.Write(p)
}

// Middleware serves GET responses from the cache, rendering through the
// wrapped handler on a miss. Concurrent misses for the same key render
// once (singleflight). Only 200 responses are stored; errors and
// redirects pass through uncached.
func (c *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()

		if e, ok := c.Get(key); ok {
			replay(w, e)
			return
		}

		v, err, _ := c.group.Do(key, func() (any, error) {
			cw := &capture{header: make(http.Header)}
			next.ServeHTTP(cw, r)

			e := Entry{
				Status: cw.status,
				Header: cw.header.Clone(),
				Body:   cw.body.Bytes(),
			}
			if e.Status == http.StatusOK {
				c.Set(key, e)
			}
			return e, nil
		})
		if err != nil {
			// The render function never returns an error; keep the
			// fallthrough anyway so a future change cannot hang requests.
			c.log.Error("page cache render failed", zap.String("key", key), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		replay(w, v.(Entry))
	})
}

func replay(w http.ResponseWriter, e Entry) {
	for k, vs := range e.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	status := e.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(e.Body)
}
