package controller

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// Pprof returns a router exposing the net/http/pprof handlers relative to
// wherever it is mounted, e.g. r.Mount("/debug/pprof", controller.Pprof()).
func Pprof() http.Handler {
	r := chi.NewRouter()

	r.Get("/", pprof.Index)
	r.Get("/cmdline", pprof.Cmdline)
	r.Get("/profile", pprof.Profile)
	r.Get("/symbol", pprof.Symbol)
	r.Post("/symbol", pprof.Symbol)
	r.Get("/trace", pprof.Trace)
	r.Get("/{profile}", func(w http.ResponseWriter, r *http.Request) {
		pprof.Handler(chi.URLParam(r, "profile")).ServeHTTP(w, r)
	})

	return r
}
