package http

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes добавляет свои обработчики в общий mux.
type Routes interface {
	Register(mux *http.ServeMux)
}

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, routes ...Routes) *Server {
	return &Server{srv: &http.Server{Addr: addr, Handler: NewMux(exposeMetrics, routes...)}}
}

func NewMux(exposeMetrics bool, routes ...Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	for _, r := range routes {
		r.Register(mux)
	}
	return mux
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
