// Package metrics provides observability for recovery runs.
package metrics

import (
	"strings"
	"time"

	gometrics "github.com/armon/go-metrics"
)

const serviceName = "vitals"

// Sink retention: one-minute buckets, kept for a day.
const (
	sinkInterval = time.Minute
	sinkRetain   = 24 * time.Hour
)

// Collector gathers recovery metrics into a go-metrics in-memory sink.
// Snapshot aggregates every retained interval of that sink.
type Collector struct {
	StartTime time.Time

	sink *gometrics.InmemSink
	m    *gometrics.Metrics
}

// NewCollector creates a collector with its own in-memory sink.
func NewCollector() *Collector {
	sink := gometrics.NewInmemSink(sinkInterval, sinkRetain)

	conf := gometrics.DefaultConfig(serviceName)
	conf.EnableHostname = false
	conf.EnableRuntimeMetrics = false

	// New only fails when the sink is nil.
	m, _ := gometrics.New(conf, sink)

	return &Collector{
		StartTime: time.Now(),
		sink:      sink,
		m:         m,
	}
}

// Sink returns the in-memory sink backing the collector.
func (c *Collector) Sink() *gometrics.InmemSink {
	return c.sink
}

// RecordRunStarted records a recovery run being started.
func (c *Collector) RecordRunStarted() {
	c.m.IncrCounter([]string{"recovery", "started"}, 1)
}

// RecordTick records one heal application.
func (c *Collector) RecordTick(healed int) {
	c.m.IncrCounter([]string{"recovery", "tick"}, 1)
	c.m.IncrCounter([]string{"recovery", "hp_healed"}, float32(healed))
}

// RecordRunFinished records a terminal outcome and the run's wall time.
func (c *Collector) RecordRunFinished(cancelled bool, latency time.Duration) {
	if cancelled {
		c.m.IncrCounter([]string{"recovery", "cancelled"}, 1)
	} else {
		c.m.IncrCounter([]string{"recovery", "succeeded"}, 1)
	}
	c.m.AddSample([]string{"recovery", "run_ms"}, float32(latency)/float32(time.Millisecond))
}

// aggregate folds one metric across all retained intervals.
type aggregate struct {
	count       int
	sum         float64
	max         float64
	lastUpdated time.Time
}

func (a *aggregate) add(s gometrics.SampledValue) {
	if s.AggregateSample == nil {
		return
	}
	if a.count == 0 || s.Max > a.max {
		a.max = s.Max
	}
	a.count += s.Count
	a.sum += s.Sum
	if s.LastUpdated.After(a.lastUpdated) {
		a.lastUpdated = s.LastUpdated
	}
}

func key(name string) string {
	return strings.Join([]string{serviceName, "recovery", name}, ".")
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	counters := map[string]*aggregate{}
	samples := map[string]*aggregate{}
	fold := func(dst map[string]*aggregate, src map[string]gometrics.SampledValue) {
		for k, v := range src {
			a, ok := dst[k]
			if !ok {
				a = &aggregate{}
				dst[k] = a
			}
			a.add(v)
		}
	}

	// Data returns a private copy of the current interval as the last
	// element; older intervals are shared with the sink and need the lock.
	data := c.sink.Data()
	for i, intv := range data {
		if i < len(data)-1 {
			intv.RLock()
		}
		fold(counters, intv.Counters)
		fold(samples, intv.Samples)
		if i < len(data)-1 {
			intv.RUnlock()
		}
	}

	total := func(name string) int64 {
		if a, ok := counters[key(name)]; ok {
			return int64(a.sum)
		}
		return 0
	}

	var runAvg, runMax float64
	if a, ok := samples[key("run_ms")]; ok && a.count > 0 {
		runAvg = a.sum / float64(a.count)
		runMax = a.max
	}

	last := ""
	if a, ok := counters[key("tick")]; ok && !a.lastUpdated.IsZero() {
		last = a.lastUpdated.Format(time.RFC3339)
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"runs": map[string]interface{}{
			"started":        total("started"),
			"succeeded":      total("succeeded"),
			"cancelled":      total("cancelled"),
			"avg_latency_ms": runAvg,
			"max_latency_ms": runMax,
		},

		"ticks": map[string]interface{}{
			"count":     total("tick"),
			"hp_healed": total("hp_healed"),
			"last_tick": last,
		},
	}
}
