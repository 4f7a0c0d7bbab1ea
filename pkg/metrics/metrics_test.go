package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterAndHandlerExposeMetrics(t *testing.T) {
	reg := Register()
	ReloadsTotal.Inc()
	Vertices.Set(3)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ratearb_reloads_total") {
		t.Fatalf("body missing ratearb_reloads_total metric:\n%s", body)
	}
	if !strings.Contains(body, "ratearb_vertices 3") {
		t.Fatalf("body missing ratearb_vertices value:\n%s", body)
	}
}
