package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

func TestHeadersApplied(t *testing.T) {
	h := Headers(DefaultHeadersConfig())(ok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("missing X-Frame-Options")
	}
	if !strings.Contains(rr.Header().Get("Content-Security-Policy"), "cdn.jsdelivr.net") {
		t.Fatalf("CSP must allow the chart library CDN")
	}
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must not be sent over plain HTTP")
	}
}

func TestHSTSOverTLS(t *testing.T) {
	h := Headers(DefaultHeadersConfig())(ok)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Fatalf("unexpected HSTS: %q", got)
	}
}

func TestEmptyValuesSkipped(t *testing.T) {
	h := Headers(HeadersConfig{XFrameOptions: "SAMEORIGIN"})(ok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, present := rr.Header()["Content-Security-Policy"]; present {
		t.Fatalf("empty CSP should not be sent")
	}
	if rr.Header().Get("X-Frame-Options") != "SAMEORIGIN" {
		t.Fatalf("configured header missing")
	}
}

func TestStaticAssets(t *testing.T) {
	rr := httptest.NewRecorder()
	StaticAssets(3600)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if rr.Header().Get("Cache-Control") != "public, max-age=3600" {
		t.Fatalf("unexpected Cache-Control: %q", rr.Header().Get("Cache-Control"))
	}
}
