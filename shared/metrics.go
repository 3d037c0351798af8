package shared

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const maxLatencySamples = 1000

// OperationMetrics tracks request counts and latency for a single operation
type OperationMetrics struct {
	mutex              sync.RWMutex
	totalRequests      int64
	successfulRequests int64
	failedRequests     int64
	totalTime          time.Duration
	errorCodes         map[string]int64
	latencies          []time.Duration
	lastUpdated        time.Time
}

// OperationSnapshot is a point-in-time copy of OperationMetrics
type OperationSnapshot struct {
	TotalRequests      int64            `json:"total_requests"`
	SuccessfulRequests int64            `json:"successful_requests"`
	FailedRequests     int64            `json:"failed_requests"`
	SuccessRate        float64          `json:"success_rate"`
	AverageLatency     time.Duration    `json:"average_latency"`
	P95Latency         time.Duration    `json:"p95_latency"`
	MaxLatency         time.Duration    `json:"max_latency"`
	ErrorCodes         map[string]int64 `json:"error_codes,omitempty"`
	LastUpdated        time.Time        `json:"last_updated"`
}

func newOperationMetrics() *OperationMetrics {
	return &OperationMetrics{
		errorCodes: make(map[string]int64),
		latencies:  make([]time.Duration, 0, 64),
	}
}

func (m *OperationMetrics) record(err error, latency time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRequests++
	m.totalTime += latency
	if err == nil {
		m.successfulRequests++
	} else {
		m.failedRequests++
		code := "INTERNAL"
		var serviceErr *ServiceError
		if errors.As(err, &serviceErr) {
			code = serviceErr.Code
		}
		m.errorCodes[code]++
	}

	if len(m.latencies) >= maxLatencySamples {
		m.latencies = m.latencies[1:]
	}
	m.latencies = append(m.latencies, latency)
	m.lastUpdated = time.Now()
}

func (m *OperationMetrics) snapshot() OperationSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := OperationSnapshot{
		TotalRequests:      m.totalRequests,
		SuccessfulRequests: m.successfulRequests,
		FailedRequests:     m.failedRequests,
		LastUpdated:        m.lastUpdated,
	}
	if m.totalRequests > 0 {
		snap.SuccessRate = float64(m.successfulRequests) / float64(m.totalRequests) * 100.0
		snap.AverageLatency = time.Duration(int64(m.totalTime) / m.totalRequests)
	}
	if len(m.errorCodes) > 0 {
		snap.ErrorCodes = make(map[string]int64, len(m.errorCodes))
		for k, v := range m.errorCodes {
			snap.ErrorCodes[k] = v
		}
	}
	if len(m.latencies) > 0 {
		sorted := make([]time.Duration, len(m.latencies))
		copy(sorted, m.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		p95 := int(float64(len(sorted)) * 0.95)
		if p95 >= len(sorted) {
			p95 = len(sorted) - 1
		}
		snap.P95Latency = sorted[p95]
		snap.MaxLatency = sorted[len(sorted)-1]
	}
	return snap
}

// ServiceMetrics groups OperationMetrics by operation name
type ServiceMetrics struct {
	ServiceName string
	mutex       sync.RWMutex
	operations  map[string]*OperationMetrics
}

// NewServiceMetrics creates a new metrics tracker for a service
func NewServiceMetrics(serviceName string) *ServiceMetrics {
	return &ServiceMetrics{
		ServiceName: serviceName,
		operations:  make(map[string]*OperationMetrics),
	}
}

// RecordRequest records one call to operation with its outcome and latency
func (m *ServiceMetrics) RecordRequest(operation string, err error, latency time.Duration) {
	m.mutex.RLock()
	op, ok := m.operations[operation]
	m.mutex.RUnlock()

	if !ok {
		m.mutex.Lock()
		if op, ok = m.operations[operation]; !ok {
			op = newOperationMetrics()
			m.operations[operation] = op
		}
		m.mutex.Unlock()
	}

	op.record(err, latency)
}

// Track returns a func that records the elapsed time since Track was called
func (m *ServiceMetrics) Track(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		m.RecordRequest(operation, err, time.Since(start))
	}
}

// GetSnapshot returns a copy of all operation metrics keyed by operation name
func (m *ServiceMetrics) GetSnapshot() map[string]OperationSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make(map[string]OperationSnapshot, len(m.operations))
	for name, op := range m.operations {
		result[name] = op.snapshot()
	}
	return result
}

// LogSummary logs a metrics summary per operation
func (m *ServiceMetrics) LogSummary() {
	for name, snap := range m.GetSnapshot() {
		logrus.WithFields(logrus.Fields{
			"service_name":    m.ServiceName,
			"operation":       name,
			"total_requests":  snap.TotalRequests,
			"success_rate":    snap.SuccessRate,
			"average_latency": snap.AverageLatency,
			"p95_latency":     snap.P95Latency,
			"error_codes":     snap.ErrorCodes,
		}).Info("Service metrics summary")
	}
}

// Reset clears all recorded metrics
func (m *ServiceMetrics) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.operations = make(map[string]*OperationMetrics)
	logrus.WithField("service_name", m.ServiceName).Info("Service metrics reset")
}
