package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	promMiddleware, err := NewPrometheusMiddleware(reg)
	if err != nil {
		t.Fatalf("failed to create middleware: %v", err)
	}

	app := fiber.New()
	app.Use(promMiddleware.Handler())

	app.Post("/upload", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/ask", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found."})
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	tests := []struct {
		method, path, status string
		calls                int
	}{
		{"POST", "/upload", "200", 2},
		{"POST", "/ask", "404", 1},
		{"GET", "/fail", "400", 1},
	}

	for _, tt := range tests {
		for i := 0; i < tt.calls; i++ {
			if _, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil)); err != nil {
				t.Fatalf("%s %s: %v", tt.method, tt.path, err)
			}
		}
	}

	for _, tt := range tests {
		got := testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues(tt.method, tt.path, tt.status))
		if got != float64(tt.calls) {
			t.Errorf("%s %s %s: expected count %d, got %f", tt.method, tt.path, tt.status, tt.calls, got)
		}
	}

	if n := testutil.CollectAndCount(promMiddleware.requestDuration, "http_request_duration_seconds"); n != len(tests) {
		t.Errorf("expected %d histogram series, got %d", len(tests), n)
	}
}

func TestPrometheusMiddleware_LabelsSurviveInterleavedRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	promMiddleware, err := NewPrometheusMiddleware(reg)
	if err != nil {
		t.Fatalf("failed to create middleware: %v", err)
	}

	app := fiber.New()
	app.Use(promMiddleware.Handler())
	app.Post("/upload", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})
	app.Delete("/ask", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	sequence := []struct{ method, path string }{
		{"POST", "/upload"},
		{"GET", "/fail"},
		{"DELETE", "/ask"},
		{"GET", "/fail"},
		{"POST", "/upload"},
	}
	const rounds = 5
	for i := 0; i < rounds; i++ {
		for _, r := range sequence {
			if _, err := app.Test(httptest.NewRequest(r.method, r.path, nil)); err != nil {
				t.Fatalf("%s %s: %v", r.method, r.path, err)
			}
		}
	}

	want := map[string]float64{
		"POST /upload 200": 2 * rounds,
		"GET /fail 400":    2 * rounds,
		"DELETE /ask 204":  rounds,
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	got := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			got[labels["method"]+" "+labels["path"]+" "+labels["status"]] += m.GetCounter().GetValue()
		}
	}

	if len(got) != len(want) {
		t.Errorf("expected %d series, got %d: %v", len(want), len(got), got)
	}
	for series, count := range want {
		if got[series] != count {
			t.Errorf("%s: expected count %f, got %f", series, count, got[series])
		}
	}
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	promMiddleware, err := NewPrometheusMiddleware(reg)
	if err != nil {
		t.Fatalf("failed to create middleware: %v", err)
	}

	app := fiber.New()
	app.Use(promMiddleware.Handler())

	for _, p := range []string{"/metrics", "/healthz"} {
		app.Get(p, func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		app.Test(httptest.NewRequest("GET", p, nil))
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range mfs {
		switch mf.GetName() {
		case "http_requests_total", "http_request_duration_seconds":
			if len(mf.GetMetric()) > 0 {
				t.Errorf("expected 0 series for %s, got %d", mf.GetName(), len(mf.GetMetric()))
			}
		}
	}
}

func TestPrometheusMiddleware_PathPattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	promMiddleware, err := NewPrometheusMiddleware(reg)
	if err != nil {
		t.Fatalf("failed to create middleware: %v", err)
	}

	app := fiber.New()
	app.Use(promMiddleware.Handler())

	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/swagger/index.html", nil)
	app.Test(req)

	// Should use /swagger/* as label, not /swagger/index.html
	count := testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues("GET", "/swagger/*", "200"))
	if count != 1 {
		t.Errorf("expected count 1 for pattern /swagger/*, got %f", count)
	}

	// Verify Histogram also recorded
	countDur := testutil.CollectAndCount(promMiddleware.requestDuration)
	if countDur == 0 {
		t.Error("expected histogram metrics to be collected, got 0")
	}
}

func TestPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMiddleware(reg); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := NewPrometheusMiddleware(reg); err == nil {
		t.Error("expected error on duplicate registration")
	}
}
