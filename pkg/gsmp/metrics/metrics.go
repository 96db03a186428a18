// Package metrics implements the optional Prometheus instrumentation
// decorator described in SPEC_FULL.md's metrics section: a per-registry
// (never global) set of counters and a histogram tracking enable/disable/
// fire activity and inter-fire spacing, orthogonal to the CRN and
// likelihood decorators.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
)

// Config names the registry a Decorator should register its
// collectors against, and an optional metric name prefix so multiple
// independent simulations can share one registry without collisions.
type Config struct {
	Registry *prometheus.Registry
	Prefix   string
}

// Decorator collects gsmp_enables_total, gsmp_disables_total,
// gsmp_fires_total, and a gsmp_inter_fire_time_seconds histogram. It
// does not itself implement sampler.Sampler — context.Context drives it
// directly alongside the sampler chain via the narrow Metrics interface
// context defines, the same "orthogonal decorator" posture as
// crn.Recorder and likelihood.Accountant.
type Decorator struct {
	enables   prometheus.Counter
	disables  prometheus.Counter
	fires     prometheus.Counter
	interFire prometheus.Histogram
}

func metricName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// New registers a fresh set of collectors against cfg.Registry and
// returns a Decorator wired to them. A nil cfg.Registry is invalid and
// returns a nil Decorator with a *gsmperr.ConfigurationError; callers that
// don't want metrics should simply pass nil as context.New's metrics
// argument instead of calling New at all.
func New(cfg Config) (*Decorator, error) {
	if cfg.Registry == nil {
		return nil, gsmperr.NewConfigurationError("metrics: Config.Registry is nil")
	}
	d := &Decorator{
		enables: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricName(cfg.Prefix, "gsmp_enables_total"),
			Help: "Total number of clock enable! calls observed.",
		}),
		disables: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricName(cfg.Prefix, "gsmp_disables_total"),
			Help: "Total number of clock disable! calls observed.",
		}),
		fires: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricName(cfg.Prefix, "gsmp_fires_total"),
			Help: "Total number of clock fire! calls observed.",
		}),
		interFire: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricName(cfg.Prefix, "gsmp_inter_fire_time_seconds"),
			Help:    "Simulated time elapsed between consecutive fires.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	collectors := []prometheus.Collector{d.enables, d.disables, d.fires, d.interFire}
	for _, c := range collectors {
		if err := cfg.Registry.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Decorator) ObserveEnable()  { d.enables.Inc() }
func (d *Decorator) ObserveDisable() { d.disables.Inc() }
func (d *Decorator) ObserveFire(interFireTime float64) {
	d.fires.Inc()
	if interFireTime >= 0 {
		d.interFire.Observe(interFireTime)
	}
}
