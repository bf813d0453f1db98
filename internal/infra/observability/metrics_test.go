package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubCache struct {
	found bool
	err   error
}

func (s *stubCache) Save(context.Context, string, any) error { return s.err }

func (s *stubCache) Load(context.Context, string, any) (bool, error) { return s.found, s.err }

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	engine := gin.New()
	engine.Use(m.Middleware())
	engine.GET("/api/v1/score", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/score", nil))
	}
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/score", "200")); got != 2 {
		t.Errorf("score requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched requests = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Error("/metrics does not expose http_requests_total")
	}
}

func TestMetrics_InstrumentCache(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	_, _ = m.InstrumentCache(&stubCache{found: true}).Load(ctx, "k", nil)
	_, _ = m.InstrumentCache(&stubCache{}).Load(ctx, "k", nil)
	failing := m.InstrumentCache(&stubCache{err: errors.New("down")})
	_, _ = failing.Load(ctx, "k", nil)
	_ = failing.Save(ctx, "k", 1)

	for result, want := range map[string]float64{"hit": 1, "miss": 1, "error": 1} {
		if got := testutil.ToFloat64(m.cacheLoads.WithLabelValues(result)); got != want {
			t.Errorf("%s = %v, want %v", result, got, want)
		}
	}
	if got := testutil.ToFloat64(m.cacheSaveErrors); got != 1 {
		t.Errorf("save errors = %v, want 1", got)
	}
	if m.InstrumentCache(nil) != nil {
		t.Error("InstrumentCache(nil) should stay nil")
	}
}
