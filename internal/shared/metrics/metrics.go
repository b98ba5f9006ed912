package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	reportStartedTotal   atomic.Uint64
	reportCompletedTotal atomic.Uint64
	reportFailedTotal    atomic.Uint64
	llmFallbackTotal     atomic.Uint64

	workerJobsReceivedTotal      atomic.Uint64
	workerJobsCompletedTotal     atomic.Uint64
	workerJobsFailedTotal        atomic.Uint64
	workerJobsUnrecoverableTotal atomic.Uint64

	reportDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 5000, 30000})
)

// IncReportStarted increments the started counter.
func IncReportStarted() {
	reportStartedTotal.Add(1)
}

// IncReportCompleted increments the completed counter.
func IncReportCompleted() {
	reportCompletedTotal.Add(1)
}

// IncReportFailed increments the failed counter.
func IncReportFailed() {
	reportFailedTotal.Add(1)
}

// IncLLMFallback counts reports generated without external tool suggestions.
func IncLLMFallback() {
	llmFallbackTotal.Add(1)
}

// IncWorkerJobsReceived counts queue messages picked up by the worker.
func IncWorkerJobsReceived() {
	workerJobsReceivedTotal.Add(1)
}

// IncWorkerJobsCompleted counts queue messages processed and deleted.
func IncWorkerJobsCompleted() {
	workerJobsCompletedTotal.Add(1)
}

// IncWorkerJobsFailed counts queue messages whose processing failed.
func IncWorkerJobsFailed() {
	workerJobsFailedTotal.Add(1)
}

// IncWorkerJobsDeletedUnrecoverable counts malformed messages dropped without processing.
func IncWorkerJobsDeletedUnrecoverable() {
	workerJobsUnrecoverableTotal.Add(1)
}

// ObserveReportDurationMs records a report generation duration in milliseconds.
func ObserveReportDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	reportDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "report_started_total", "Total report jobs started", reportStartedTotal.Load())
	writeCounter(&buf, "report_completed_total", "Total report jobs completed", reportCompletedTotal.Load())
	writeCounter(&buf, "report_failed_total", "Total report jobs failed", reportFailedTotal.Load())
	writeCounter(&buf, "report_llm_fallback_total", "Reports generated without external tool suggestions", llmFallbackTotal.Load())
	writeCounter(&buf, "worker_jobs_received_total", "Queue messages received by the worker", workerJobsReceivedTotal.Load())
	writeCounter(&buf, "worker_jobs_completed_total", "Queue messages processed and deleted", workerJobsCompletedTotal.Load())
	writeCounter(&buf, "worker_jobs_failed_total", "Queue messages whose processing failed", workerJobsFailedTotal.Load())
	writeCounter(&buf, "worker_jobs_deleted_unrecoverable_total", "Malformed queue messages dropped", workerJobsUnrecoverableTotal.Load())
	writeHistogram(&buf, "report_duration_ms", "Report generation duration in milliseconds", reportDuration.Snapshot())
	return buf.String()
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
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
