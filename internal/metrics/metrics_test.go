package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	if m.LoginsTotal == nil {
		t.Error("LoginsTotal not initialized")
	}
	if m.HydrationsTotal == nil {
		t.Error("HydrationsTotal not initialized")
	}
	if m.GuardDecisions == nil {
		t.Error("GuardDecisions not initialized")
	}
	if m.GatewayDuration == nil {
		t.Error("GatewayDuration not initialized")
	}
	if m.JournalFailures == nil {
		t.Error("JournalFailures not initialized")
	}
	if m.SessionVersion == nil {
		t.Error("SessionVersion not initialized")
	}
}

func TestMetricsRecording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.LoginsTotal.WithLabelValues("ok").Inc()
	if got := testutil.ToFloat64(m.LoginsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("LoginsTotal = %v, want 1", got)
	}

	m.GuardDecisions.WithLabelValues("/events", "redirect").Inc()
	m.GuardDecisions.WithLabelValues("/events", "redirect").Inc()
	if got := testutil.ToFloat64(m.GuardDecisions.WithLabelValues("/events", "redirect")); got != 2 {
		t.Errorf("GuardDecisions = %v, want 2", got)
	}

	m.SessionVersion.Set(3)
	if got := testutil.ToFloat64(m.SessionVersion); got != 3 {
		t.Errorf("SessionVersion = %v, want 3", got)
	}

	m.GatewayDuration.WithLabelValues("login").Observe(0.05)
	gathered, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	found := false
	for _, mf := range gathered {
		if strings.Contains(mf.GetName(), "gateway_request_duration") {
			found = true
			break
		}
	}
	if !found {
		t.Error("gateway_request_duration histogram not found in gathered metrics")
	}
}
