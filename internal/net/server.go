package net

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"RmBoard/internal/export"
	"RmBoard/internal/logging"
	"RmBoard/internal/state"
)

// PageSummary describes one page in the /pages listing.
type PageSummary struct {
	Page     int `json:"page"`
	Layers   int `json:"layers"`
	Lines    int `json:"lines"`
	Points   int `json:"points"`
	Segments int `json:"segments"`
}

// Server streams a rendered document to browsers on the local network.
type Server struct {
	hub      *Hub
	size     export.PageSize
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	summary []PageSummary
}

// NewServer creates a preview server for pages of the given size.
func NewServer(size export.PageSize) *Server {
	return &Server{
		hub:  NewHub(),
		size: size,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Hub returns the server's client hub.
func (s *Server) Hub() *Hub { return s.hub }

// Load renders doc and publishes it to current and future clients.
func (s *Server) Load(ctx context.Context, doc *state.Document) error {
	rec := export.NewRecorder()
	if err := export.NewRenderer(rec, s.size).Render(ctx, doc); err != nil {
		return err
	}

	msgs := make([]PageMessage, len(rec.Pages))
	summary := make([]PageSummary, len(rec.Pages))
	for i := range rec.Pages {
		msgs[i] = PageMessage{
			Page:    i,
			Pages:   len(rec.Pages),
			Width:   s.size.Width,
			Height:  s.size.Height,
			Strokes: rec.Pages[i].Strokes,
		}
		page, _ := doc.Page(i)
		layers, lines, points := page.Counts()
		summary[i] = PageSummary{
			Page:     i,
			Layers:   layers,
			Lines:    lines,
			Points:   points,
			Segments: rec.Pages[i].NumSegments(),
		}
	}

	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()
	return s.hub.Publish(msgs)
}

// Handler serves the viewer page, /pages and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/pages", s.handlePages)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	summary := s.summary
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logging.Error("encode page summary", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	s.hub.Add(conn)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Info("preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>RmBoard preview</title>
<style>body{background:#eee;margin:0;font-family:sans-serif}canvas{background:#fff;display:block;margin:12px auto;box-shadow:0 1px 4px #999}</style>
</head>
<body>
<div id="pages"></div>
<script>
const root = document.getElementById("pages");
const canvases = {};
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const m = JSON.parse(ev.data);
  if (m.type !== "page") return;
  let c = canvases[m.page];
  if (!c) {
    c = document.createElement("canvas");
    canvases[m.page] = c;
    root.appendChild(c);
  }
  c.width = m.width; c.height = m.height;
  const g = c.getContext("2d");
  g.clearRect(0, 0, c.width, c.height);
  g.lineCap = "round";
  for (const s of m.strokes) {
    g.strokeStyle = "rgb(" + s.color.r*255 + "," + s.color.g*255 + "," + s.color.b*255 + ")";
    g.lineWidth = s.width;
    g.beginPath();
    for (const seg of s.segments || []) {
      g.moveTo(seg.x1, m.height - seg.y1);
      g.lineTo(seg.x2, m.height - seg.y2);
    }
    g.stroke();
  }
};
</script>
</body>
</html>
`
