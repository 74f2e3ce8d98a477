package counters

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loader",
	Name:      "cache_lookups_total",
	Help:      "Dataset cache lookups by result.",
}, []string{"result"})

var datasetParses = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loader",
	Name:      "parses_total",
	Help:      "Number of times a dataset file was parsed.",
}, []string{"path", "status"})

var datasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "loader",
	Name:      "rows",
	Help:      "Rows in the last parsed dataset.",
}, []string{"path"})

func CacheHit() {
	cacheLookups.With(prometheus.Labels{"result": "hit"}).Inc()
}

func CacheMiss() {
	cacheLookups.With(prometheus.Labels{"result": "miss"}).Inc()
}

func ObserveParse(path string, rows int, err error) {
	if len(path) == 0 {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	datasetParses.With(prometheus.Labels{"path": path, "status": status}).Inc()
	if err == nil {
		datasetRows.With(prometheus.Labels{"path": path}).Set(float64(rows))
	}
}

var renderCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dashboard",
	Name:      "renders_total",
	Help:      "Charts rendered by chart and backend.",
}, []string{"chart", "backend"})

func CountRender(chart, backend string) {
	if len(chart) == 0 {
		return
	}
	renderCounter.With(prometheus.Labels{"chart": chart, "backend": backend}).Inc()
}

var controlEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dashboard",
	Name:      "control_events_total",
	Help:      "User control events by control name.",
}, []string{"control"})

func CountControlEvent(control string) {
	if len(control) == 0 {
		return
	}
	controlEvents.With(prometheus.Labels{"control": control}).Inc()
}

var sessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "server",
	Name:      "sessions_active",
	Help:      "Number of active websocket sessions.",
})

func SessionOpened() {
	sessionsGauge.Inc()
}

func SessionClosed() {
	sessionsGauge.Dec()
}

var mapGaps = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "dashboard",
	Name:      "map_unmatched_cantons",
	Help:      "Joined canton names without a boundary polygon.",
})

func ObserveMapGaps(count int) {
	mapGaps.Set(float64(count))
}
