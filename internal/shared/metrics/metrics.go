package metrics

import (
	"bytes"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

var (
	decisionsYesTotal    atomic.Uint64
	decisionsNoTotal     atomic.Uint64
	rejectedTotal        atomic.Uint64
	historyFailuresTotal atomic.Uint64

	textFormat = expfmt.NewFormat(expfmt.TypeTextPlain)

	evaluationDuration = newHistogram([]float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 50})
)

// IncDecision counts one completed evaluation by outcome.
func IncDecision(shouldRepair bool) {
	if shouldRepair {
		decisionsYesTotal.Add(1)
		return
	}
	decisionsNoTotal.Add(1)
}

// IncRejected counts a request rejected for invalid input.
func IncRejected() {
	rejectedTotal.Add(1)
}

// IncHistoryFailure counts an evaluation that could not be recorded.
func IncHistoryFailure() {
	historyFailuresTotal.Add(1)
}

// ObserveEvaluationDurationMs records an evaluation duration in milliseconds.
func ObserveEvaluationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	evaluationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := Render()
		if err != nil {
			c.String(http.StatusInternalServerError, "metrics encode failed")
			return
		}
		c.Data(http.StatusOK, string(textFormat), []byte(body))
	}
}

// Render renders metrics in Prometheus text format.
func Render() (string, error) {
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, textFormat)
	for _, mf := range Families() {
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Families snapshots all metrics as Prometheus metric families.
func Families() []*dto.MetricFamily {
	decisions := &dto.MetricFamily{
		Name: proto.String("turbine_repair_decisions_total"),
		Help: proto.String("Total repair evaluations by decision"),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{
			counterMetric(decisionsNoTotal.Load(), "decision", "no"),
			counterMetric(decisionsYesTotal.Load(), "decision", "yes"),
		},
	}
	return []*dto.MetricFamily{
		decisions,
		counterFamily("turbine_repair_rejected_total", "Total requests rejected for invalid input", rejectedTotal.Load()),
		counterFamily("turbine_repair_history_failures_total", "Total evaluations that could not be recorded", historyFailuresTotal.Load()),
		histogramFamily("turbine_repair_evaluation_duration_ms", "Evaluation duration in milliseconds", evaluationDuration.Snapshot()),
	}
}

// Reset zeroes every metric.
func Reset() {
	decisionsYesTotal.Store(0)
	decisionsNoTotal.Store(0)
	rejectedTotal.Store(0)
	historyFailuresTotal.Store(0)
	evaluationDuration.reset()
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to every bucket it fits, so counts are cumulative.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func (h *histogram) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts = make([]uint64, len(h.buckets))
	h.sum = 0
	h.count = 0
}

func counterMetric(value uint64, labelPairs ...string) *dto.Metric {
	m := &dto.Metric{Counter: &dto.Counter{Value: proto.Float64(float64(value))}}
	for i := 0; i+1 < len(labelPairs); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labelPairs[i]),
			Value: proto.String(labelPairs[i+1]),
		})
	}
	return m
}

func counterFamily(name, help string, value uint64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{counterMetric(value)},
	}
}

func histogramFamily(name, help string, snap histogramSnapshot) *dto.MetricFamily {
	hist := &dto.Histogram{
		SampleCount: proto.Uint64(snap.count),
		SampleSum:   proto.Float64(snap.sum),
	}
	for i, bound := range snap.buckets {
		hist.Bucket = append(hist.Bucket, &dto.Bucket{
			UpperBound:      proto.Float64(bound),
			CumulativeCount: proto.Uint64(snap.counts[i]),
		})
	}
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_HISTOGRAM.Enum(),
		Metric: []*dto.Metric{{Histogram: hist}},
	}
}
