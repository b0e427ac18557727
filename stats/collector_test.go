package stats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNilCollectorIsNoOp(t *testing.T) {
	var c *Collector
	// None of these should panic.
	c.NodeAllocated()
	c.NodeFreed()
	c.Rebalanced()
	c.Rotated(RotationLeftRight)
	c.VectorPush()
	c.VectorPop()
	c.TransientSpun()
	c.SetArenaLiveNodes(42)
}

func TestCollectorCountsNodeAllocations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	c.NodeAllocated()
	c.NodeAllocated()

	m := &dto.Metric{}
	if err := c.NodesAllocated.Write(m); err != nil {
		t.Fatal(err)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Fatalf("NodesAllocated = %v, want 2", got)
	}
}

func TestCollectorRotationsByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	c.Rotated(RotationLeft)
	c.Rotated(RotationLeft)
	c.Rotated(RotationRight)

	m := &dto.Metric{}
	if err := c.Rotations.WithLabelValues(RotationLeft).(prometheus.Counter).Write(m); err != nil {
		t.Fatal(err)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Fatalf("Rotations{left} = %v, want 2", got)
	}
}
