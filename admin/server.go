/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package admin serves the process-wide health and reporting surface: /live
// and /ready for orchestrator probes, /report.json for the latency summary,
// and /metrics for Prometheus scraping.
package admin

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/sabouaram/ortgo/metrics"
)

// Server is the admin HTTP surface. It is safe to call Handler concurrently
// with in-flight requests to the returned handler.
type Server struct {
	Histogram *metrics.Histogram
	Log       *logrus.Logger
}

// New wires hist into a Server. A nil log falls back to logrus's standard
// logger.
func New(hist *metrics.Histogram, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{Histogram: hist, Log: log}
}

// Handler builds the admin mux: /live, /ready, /report.json, /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", s.handleProbe)
	mux.HandleFunc("/ready", s.handleProbe)
	mux.HandleFunc("/report.json", s.handleReport)

	registry := prometheus.NewRegistry()
	if s.Histogram != nil {
		registry.MustRegister(s.Histogram)
	}
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return mux
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.Histogram == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	report := metrics.BuildReport(s.Histogram)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.Log.WithError(err).Error("failed to encode admin report")
	}
}
