package watch

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServer_SVGRoundTrip(t *testing.T) {
	s := NewServer()
	s.Update("<svg>ok</svg>", nil)

	rec := httptest.NewRecorder()
	s.handleSVG(rec, httptest.NewRequest(http.MethodGet, "/preview.svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != "<svg>ok</svg>" {
		t.Errorf("body = %q", body)
	}
}

func TestServer_ErrorWinsOverStaleSVG(t *testing.T) {
	s := NewServer()
	s.Update("<svg>stale</svg>", nil)
	s.Update("", errors.New("3:1: type is required"))

	rec := httptest.NewRecorder()
	s.handleSVG(rec, httptest.NewRequest(http.MethodGet, "/preview.svg", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "type is required") {
		t.Errorf("body = %q", rec.Body.String())
	}

	// A successful rebuild clears the error.
	s.Update("<svg>fresh</svg>", nil)
	rec = httptest.NewRecorder()
	s.handleSVG(rec, httptest.NewRequest(http.MethodGet, "/preview.svg", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "fresh") {
		t.Errorf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func TestServer_IndexServesPreviewPage(t *testing.T) {
	s := NewServer()
	rec := httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "/preview.svg") ||
		!strings.Contains(rec.Body.String(), "EventSource") {
		t.Errorf("index page incomplete:\n%s", rec.Body.String())
	}
}

func TestServer_UpdateNotifiesWithoutBlocking(t *testing.T) {
	s := NewServer()
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	// Two back-to-back updates: the second must not block on the full
	// channel.
	done := make(chan struct{})
	go func() {
		s.Update("<svg>1</svg>", nil)
		s.Update("<svg>2</svg>", nil)
		close(done)
	}()
	<-done

	select {
	case <-ch:
	default:
		t.Error("subscriber not notified")
	}
}
