package shared

import (
	"errors"
	"testing"
	"time"
)

func TestServiceMetricsRecordsOutcomes(t *testing.T) {
	metrics := NewServiceMetrics("test")

	metrics.RecordRequest("search", nil, 10*time.Millisecond)
	metrics.RecordRequest("search", NewEmptyInputError("svc", "op"), 2*time.Millisecond)
	metrics.RecordRequest("search", errors.New("boom"), 30*time.Millisecond)

	snap, ok := metrics.GetSnapshot()["search"]
	if !ok {
		t.Fatalf("expected search snapshot")
	}
	if snap.TotalRequests != 3 || snap.SuccessfulRequests != 1 || snap.FailedRequests != 2 {
		t.Errorf("unexpected counts: %+v", snap)
	}
	if snap.ErrorCodes[CodeEmptyInput] != 1 || snap.ErrorCodes["INTERNAL"] != 1 {
		t.Errorf("unexpected error codes: %v", snap.ErrorCodes)
	}
	if snap.MaxLatency != 30*time.Millisecond {
		t.Errorf("expected max latency 30ms, got %v", snap.MaxLatency)
	}

	metrics.Reset()
	if len(metrics.GetSnapshot()) != 0 {
		t.Errorf("expected no operations after reset")
	}
}

func TestServiceMetricsTrack(t *testing.T) {
	metrics := NewServiceMetrics("test")

	done := metrics.Track("toggle")
	done(nil)

	if snap := metrics.GetSnapshot()["toggle"]; snap.TotalRequests != 1 || snap.SuccessRate != 100 {
		t.Errorf("unexpected toggle snapshot: %+v", snap)
	}
}
