package main

import (
	"bytes"
	"log"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type server struct {
	client  Fetcher
	layout  Layout
	metrics *metrics
}

func newServer(client Fetcher, layout Layout, m *metrics) *server {
	return &server{client: client, layout: layout, metrics: m}
}

// handler serves the dashboard on / and the Prometheus metrics on /metrics.
func (s *server) handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return gzhttp.GzipHandler(mux)
}

// handleIndex builds a fresh page from the backend on every request. When a
// phase fails the partially filled page is still served, with status 502.
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := NewPage(s.layout)
	err := NewDashboard(s.client, s.layout).Initialize(r.Context(), page)
	s.metrics.observeRender(err)

	status := http.StatusOK
	if err != nil {
		log.Printf("[%s] ERROR: render failed: %v", r.RemoteAddr, err)
		status = http.StatusBadGateway
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		log.Printf("[%s] ERROR: failed to write page: %v", r.RemoteAddr, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
