package metrics

import (
	"log"
	"net/http"
	"powerdash/internal/config"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Path = "/metrics"

func Handler() http.Handler {
	return promhttp.Handler()
}

// Listen serves metrics on a dedicated address; with an empty port the
// dashboard server mounts Handler on its own router instead
func Listen(conf *config.Config) error {
	if !conf.Metrics.Enabled || conf.Metrics.Port == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle(Path, Handler())
	address := conf.Metrics.BindIP + ":" + conf.Metrics.Port
	log.Println("starting metrics server on " + address)
	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
