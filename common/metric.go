package common

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	_ "github.com/mkevac/debugcharts"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var log = NewLog("common")

// NewMetricServer serves /metrics and /debug/charts on port, e.g. ":9000".
func NewMetricServer(port string) {
	if port == "" {
		port = ":9000"
	}
	log.Info("Starting metric server", "listen", port)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		h := handlers.LoggingHandler(os.Stdout, handlers.RecoveryHandler()(http.DefaultServeMux))
		if err := http.ListenAndServe(port, h); err != nil {
			panic(err)
		}
	}()
}
