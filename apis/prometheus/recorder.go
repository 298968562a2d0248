package prometheus

import (
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/redhat-appstudio/incident-kpis/pkg/dashboard"
)

const namespace = "incident_kpi"

// Recorder exports the latest live dashboard of every timeframe as gauges.
// It implements dashboard.Observer.
type Recorder struct {
	registry *prom.Registry

	mtta      *prom.GaugeVec
	mttr      *prom.GaugeVec
	mttd      *prom.GaugeVec
	incidents *prom.GaugeVec
	uptime    *prom.GaugeVec
	cycles    *prom.CounterVec
}

// NewRecorder creates a recorder with its own registry, including the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prom.NewRegistry(),
		mtta: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "mtta_minutes",
			Help:      "Mean time to acknowledge in minutes.",
		}, []string{"timeframe"}),
		mttr: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "mttr_minutes",
			Help:      "Mean time to resolution in minutes.",
		}, []string{"timeframe"}),
		mttd: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "mttd_minutes",
			Help:      "Mean time to detect in minutes.",
		}, []string{"timeframe"}),
		incidents: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "incidents",
			Help:      "Incidents selected by the classification filter.",
		}, []string{"timeframe"}),
		uptime: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_percent",
			Help:      "Share of the window not covered by incidents.",
		}, []string{"timeframe"}),
		cycles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cycles_total",
			Help:      "Dashboard fetch cycles by outcome.",
		}, []string{"timeframe", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.mtta, r.mttr, r.mttd, r.incidents, r.uptime, r.cycles,
	)
	return r
}

// Registry returns the registry the metrics are exported from.
func (r *Recorder) Registry() *prom.Registry {
	return r.registry
}

// Observe records one completed cycle. Gauges only move on live data.
func (r *Recorder) Observe(data *dashboard.Data) {
	if data == nil {
		return
	}

	r.cycles.WithLabelValues(data.Timeframe, string(data.APIStatus)).Inc()
	if !data.IsLive || data.Metrics == nil {
		return
	}

	m := data.Metrics
	r.mtta.WithLabelValues(data.Timeframe).Set(m.MTTA)
	r.mttr.WithLabelValues(data.Timeframe).Set(m.MTTR)
	r.mttd.WithLabelValues(data.Timeframe).Set(m.MTTD)
	r.incidents.WithLabelValues(data.Timeframe).Set(float64(m.IncidentCount))
	r.uptime.WithLabelValues(data.Timeframe).Set(m.Uptime)
}
