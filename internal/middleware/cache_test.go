package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/mkarimov/production-coverage/internal/config"
)

func cacheTestSetup(t *testing.T) (*echo.Echo, *miniredis.Miniredis, *redis.Client) {
    t.Helper()
    mr, err := miniredis.Run()
    if err != nil {
        t.Fatalf("miniredis: %v", err)
    }
    t.Cleanup(mr.Close)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { rdb.Close() })
    return echo.New(), mr, rdb
}

func TestRedisCacheHitOnSecondGet(t *testing.T) {
    e, _, rdb := cacheTestSetup(t)

    cfg := config.CacheConfig{
        Enabled:      true,
        Methods:      map[string]bool{"GET": true},
        TTL:          time.Minute,
        KeyStrategy:  "route_query",
        Prefix:       "cache",
        MaxBodyBytes: 1 << 20,
    }

    calls := 0
    h := func(c echo.Context) error {
        calls++
        return c.JSON(http.StatusOK, echo.Map{"ok": true})
    }
    e.GET("/v1/schedule/day", h, NewRedisCache(cfg, rdb))

    first := httptest.NewRecorder()
    e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/schedule/day?date=2025-03-10", nil))
    if got := first.Header().Get("X-Cache"); got != "MISS" {
        t.Fatalf("first request X-Cache = %q, want MISS", got)
    }

    second := httptest.NewRecorder()
    e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/v1/schedule/day?date=2025-03-10", nil))
    if got := second.Header().Get("X-Cache"); got != "HIT" {
        t.Fatalf("second request X-Cache = %q, want HIT", got)
    }
    if calls != 1 {
        t.Fatalf("handler ran %d times, want 1", calls)
    }
    if first.Body.String() != second.Body.String() {
        t.Fatalf("cached body %q differs from original %q", second.Body.String(), first.Body.String())
    }
    if second.Code != http.StatusOK {
        t.Fatalf("cached status = %d, want 200", second.Code)
    }
}

func TestRedisCacheKeyIncludesQuery(t *testing.T) {
    e, _, rdb := cacheTestSetup(t)

    cfg := config.CacheConfig{
        Enabled:     true,
        Methods:     map[string]bool{"GET": true},
        TTL:         time.Minute,
        KeyStrategy: "route_query",
        Prefix:      "cache",
    }

    e.GET("/v1/schedule/day", func(c echo.Context) error {
        return c.String(http.StatusOK, c.QueryParam("date"))
    }, NewRedisCache(cfg, rdb))

    rec1 := httptest.NewRecorder()
    e.ServeHTTP(rec1, httptest.NewRequest(http.MethodGet, "/v1/schedule/day?date=2025-03-10", nil))
    rec2 := httptest.NewRecorder()
    e.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/v1/schedule/day?date=2025-03-11", nil))

    if rec2.Header().Get("X-Cache") != "MISS" {
        t.Fatalf("different query served from cache")
    }
    if rec1.Body.String() == rec2.Body.String() {
        t.Fatalf("distinct dates returned identical bodies")
    }
}

func TestRedisCacheSkipsNonCacheableMethod(t *testing.T) {
    e, mr, rdb := cacheTestSetup(t)

    cfg := config.CacheConfig{
        Enabled: true,
        Methods: map[string]bool{"GET": true},
        TTL:     time.Minute,
        Prefix:  "cache",
    }

    e.POST("/v1/ingest/reconcile", func(c echo.Context) error {
        return c.NoContent(http.StatusOK)
    }, NewRedisCache(cfg, rdb))

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/ingest/reconcile", nil))
    if got := rec.Header().Get("X-Cache"); got != "" {
        t.Fatalf("POST got X-Cache = %q, want unset", got)
    }
    if got := len(mr.Keys()); got != 0 {
        t.Fatalf("POST stored %d cache keys, want 0", got)
    }
}
