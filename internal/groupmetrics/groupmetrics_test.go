package groupmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterAndObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New("testns")

	if err := c.Register(reg); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	c.PoolSize.Set(3)
	c.ParsersCreated.Inc()
	c.RequestsOK.Inc()
	c.RequestsErrored.Inc()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	for _, want := range []string{
		"testns_parser_pool_size",
		"testns_parsers_created_total",
		"testns_parsers_over_cap_total",
		"testns_requests_completed_total",
		"testns_requests_errored_total",
	} {
		if !names[want] {
			t.Errorf("expected registered metric %q, got %v", want, names)
		}
	}
}

func TestDoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New("testns")
	if err := c.Register(reg); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	if err := c.Register(reg); err == nil {
		t.Error("second Register() against the same registry should fail")
	}
}
