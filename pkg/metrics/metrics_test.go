package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/cityforest/pkg/observability"
)

func newCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, reg
}

func TestBuildHooksRecordMetrics(t *testing.T) {
	c, _ := newCollector(t)

	c.OnLocalize(0, 3, 1, false, false)
	c.OnLocalize(1, 1, 4, true, true)
	c.OnLocalize(2, 0, 2, true, true)
	c.OnBuildComplete(8, 2, 50*time.Millisecond, nil)
	c.OnBuildComplete(0, 0, 0, errors.New("boom"))

	if got := testutil.ToFloat64(c.Localized.WithLabelValues("local")); got != 1 {
		t.Errorf("localized{local} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Localized.WithLabelValues("fallback")); got != 2 {
		t.Errorf("localized{fallback} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Saturated); got != 2 {
		t.Errorf("saturated = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.EdgesAdded); got != 8 {
		t.Errorf("last_build_edges = %v, want 8", got)
	}
	if got := testutil.ToFloat64(c.Restarts); got != 2 {
		t.Errorf("restarts = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Builds.WithLabelValues("ok")); got != 1 {
		t.Errorf("builds{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Builds.WithLabelValues("error")); got != 1 {
		t.Errorf("builds{error} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.RegionsScanned); got != 1 {
		t.Errorf("regions_scanned series = %d, want 1", got)
	}
}

func TestPipelineAndCacheHooks(t *testing.T) {
	c, _ := newCollector(t)
	ctx := context.Background()

	c.OnStageComplete(ctx, "load", time.Millisecond, nil)
	c.OnStageComplete(ctx, "build", time.Millisecond, errors.New("x"))
	c.OnCacheMiss(ctx, "network")
	c.OnCacheSet(ctx, "network", 100)
	c.OnCacheHit(ctx, "network")
	c.OnCacheHit(ctx, "artifact")

	if got := testutil.CollectAndCount(c.StageDuration); got != 2 {
		t.Errorf("stage series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(c.CacheOperations.WithLabelValues("hit", "network")); got != 1 {
		t.Errorf("cache hit network = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.CacheOperations.WithLabelValues("set", "network")); got != 1 {
		t.Errorf("cache set network = %v, want 1", got)
	}
}

func TestNewCollectorTwiceReusesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewCollector(reg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	a.Saturated.Inc()
	if got := testutil.ToFloat64(b.Saturated); got != 1 {
		t.Errorf("second collector should share counters, got %v", got)
	}
}

func TestInstall(t *testing.T) {
	c, _ := newCollector(t)
	c.Install()
	t.Cleanup(observability.Reset)

	observability.Build().OnLocalize(0, 1, 1, false, false)
	observability.Cache().OnCacheMiss(context.Background(), "network")

	if got := testutil.ToFloat64(c.Localized.WithLabelValues("local")); got != 1 {
		t.Errorf("installed collector missed localize event, got %v", got)
	}
	if got := testutil.ToFloat64(c.CacheOperations.WithLabelValues("miss", "network")); got != 1 {
		t.Errorf("installed collector missed cache event, got %v", got)
	}
}

func TestHandlerAndTextfile(t *testing.T) {
	c, _ := newCollector(t)
	c.OnBuildComplete(6, 0, time.Millisecond, nil)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "cityforest_last_build_edges 6") {
		t.Errorf("handler output missing gauge:\n%s", rr.Body.String())
	}

	path := filepath.Join(t.TempDir(), "cityforest.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "cityforest_builds_total") {
		t.Errorf("textfile missing builds counter:\n%s", data)
	}
}
