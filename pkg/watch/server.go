package watch

import (
	"fmt"
	"log"
	"net/http"
	"sync"
)

// Server is the live preview endpoint: it serves the current SVG (or the
// current compile error) and a server-sent-events stream that tells the
// page to reload after each update.
type Server struct {
	mu      sync.RWMutex
	svg     string
	errText string
	subs    map[chan struct{}]struct{}
}

func NewServer() *Server {
	return &Server{subs: make(map[chan struct{}]struct{})}
}

// Update replaces the preview content and notifies connected clients.
// Exactly one of svg/err should be meaningful; err wins when non-nil.
func (s *Server) Update(svg string, err error) {
	s.mu.Lock()
	if err != nil {
		s.errText = err.Error()
	} else {
		s.svg = svg
		s.errText = ""
	}
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
			// A client that is not draining keeps its pending notice.
		}
	}
	s.mu.Unlock()
}

// ListenAndServe blocks serving the preview on addr.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/preview.svg", s.handleSVG)
	mux.HandleFunc("/events", s.handleEvents)
	log.Printf("preview listening on http://%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	svg, errText := s.svg, s.errText
	s.mu.RUnlock()
	if errText != "" {
		http.Error(w, errText, http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, svg)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")

	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}()

	fmt.Fprint(w, "event: ready\ndata: ok\n\n")
	flusher.Flush()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			fmt.Fprint(w, "event: reload\ndata: changed\n\n")
			flusher.Flush()
		}
	}
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>sketchlang preview</title>
<style>
body { margin: 0; background: #2b2b2b; display: flex; justify-content: center; }
img { max-width: 100vw; max-height: 100vh; background: white; }
#err { color: #ff7b72; font-family: monospace; white-space: pre; padding: 2em; }
</style></head>
<body>
<img id="preview" src="/preview.svg">
<pre id="err" hidden></pre>
<script>
const img = document.getElementById("preview");
const err = document.getElementById("err");
async function refresh() {
  const resp = await fetch("/preview.svg?t=" + Date.now());
  if (resp.ok) {
    img.src = "/preview.svg?t=" + Date.now();
    img.hidden = false; err.hidden = true;
  } else {
    err.textContent = await resp.text();
    img.hidden = true; err.hidden = false;
  }
}
new EventSource("/events").addEventListener("reload", refresh);
</script>
</body>
</html>
`
