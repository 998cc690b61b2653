package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"carswitch/config"
	"carswitch/services"
	"carswitch/utils"
)

// NewHTTPServer returns an HTTP server exposing the dashboard API over the
// given pre-loaded dataset.
func NewHTTPServer(addr string, ds *services.Dataset, cfg *config.Config, logger *utils.Logger) *http.Server {
	h := &httpServer{
		ds:          ds,
		agg:         services.NewAggregator(ds.Profile),
		defaultTopN: cfg.DefaultTopN,
		log:         logger,
	}
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/overview", h.GetOverview).Methods(http.MethodGet)
	r.HandleFunc("/api/models", h.GetModels).Methods(http.MethodGet)
	r.HandleFunc("/api/models/{model}", h.GetModelReport).Methods(http.MethodGet)
	r.HandleFunc("/api/models/{model}/competitors", h.GetCompetitors).Methods(http.MethodGet)
	r.HandleFunc("/api/compare", h.GetCompare).Methods(http.MethodGet)
	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}

type httpServer struct {
	ds          *services.Dataset
	agg         *services.Aggregator
	defaultTopN int
	log         *utils.Logger
}
