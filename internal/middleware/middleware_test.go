// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const (
	chromeUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	googlebotUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogger(logger)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/news/", nil)
	req.Header.Set("User-Agent", chromeUA)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	line := buf.String()
	for _, want := range []string{"method=GET", "path=/news/", "status=200", "client=Chrome", "device=desktop"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %q: %s", want, line)
		}
	}
}

func TestRequestLoggerClassifiesBots(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogger(logger)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", googlebotUA)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), "device=bot") {
		t.Errorf("bot not classified: %s", buf.String())
	}
}

func TestIsBot(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", googlebotUA)
	if !IsBot(req) {
		t.Error("googlebot not detected")
	}

	req.Header.Set("User-Agent", chromeUA)
	if IsBot(req) {
		t.Error("chrome misclassified as bot")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Errorf("ip = %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.4, 203.0.113.7")
	if got := ClientIP(req); got != "198.51.100.4" {
		t.Errorf("forwarded ip = %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(1, 2)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}

	// A different client has its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.4:40000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d", rec.Code)
	}
}

func TestLimiterCacheReset(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")
	if lc.clearIfExceeds(10) {
		t.Error("cache cleared below threshold")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("cache not cleared above threshold")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("limiters = %d after clear", len(lc.limiters))
	}
}
