// Package stats provides an optional, nil-safe metrics sink for the
// AVL engine and the persistent vector. A nil *Collector is valid and
// every method on it is a no-op, so callers that don't care about
// observability never have to special-case it — the same pattern the
// teacher's config.Config getters use for an absent configuration
// value.
//
// bst.Tree and trievec.Slice each hold an optional *Collector, set via
// SetCollector after construction; with none set every call into this
// package is the nil no-op path, so instrumentation costs nothing
// until a caller opts in by constructing one with New and wiring it
// through, the way gloudx-ues-lite's api.Metrics is built once and
// threaded through request handlers rather than reached for globally.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the Prometheus instruments this module exposes. The
// zero value is not usable directly — construct one with New — but a
// nil *Collector is: every method below guards against it.
type Collector struct {
	NodesAllocated  prometheus.Counter
	NodesFreed      prometheus.Counter
	Rebalances      prometheus.Counter
	Rotations       *prometheus.CounterVec // label "kind": left, right, left_right, right_left
	VectorPushes    prometheus.Counter
	VectorPops      prometheus.Counter
	TransientsSpun  prometheus.Counter
	ArenaLiveNodes  prometheus.Gauge
}

// New registers and returns a Collector under reg. Passing
// prometheus.DefaultRegisterer matches the common case of a single
// process-wide registry.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		NodesAllocated: factory.NewCounter(prometheus.CounterOpts{
			Name: "treevec_nodes_allocated_total",
			Help: "Total BST nodes allocated across all trees.",
		}),
		NodesFreed: factory.NewCounter(prometheus.CounterOpts{
			Name: "treevec_nodes_freed_total",
			Help: "Total BST nodes freed across all trees.",
		}),
		Rebalances: factory.NewCounter(prometheus.CounterOpts{
			Name: "treevec_rebalances_total",
			Help: "Total rebalance passes performed after insert/delete.",
		}),
		Rotations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "treevec_rotations_total",
			Help: "Total AVL rotations performed, by kind.",
		}, []string{"kind"}),
		VectorPushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "treevec_vector_pushes_total",
			Help: "Total persistent vector push operations.",
		}),
		VectorPops: factory.NewCounter(prometheus.CounterOpts{
			Name: "treevec_vector_pops_total",
			Help: "Total persistent vector pop operations.",
		}),
		TransientsSpun: factory.NewCounter(prometheus.CounterOpts{
			Name: "treevec_transients_total",
			Help: "Total transient vectors minted.",
		}),
		ArenaLiveNodes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "treevec_arena_live_nodes",
			Help: "Current live node count in arena-backed trees.",
		}),
	}
}

func (c *Collector) incNodesAllocated() {
	if c == nil {
		return
	}
	c.NodesAllocated.Inc()
}

// NodeAllocated records a node allocation, heap or arena-backed.
func (c *Collector) NodeAllocated() { c.incNodesAllocated() }

// NodeFreed records a node free.
func (c *Collector) NodeFreed() {
	if c == nil {
		return
	}
	c.NodesFreed.Inc()
}

// Rebalanced records one rebalance pass.
func (c *Collector) Rebalanced() {
	if c == nil {
		return
	}
	c.Rebalances.Inc()
}

// Rotation kinds recorded by Rotated.
const (
	RotationLeft      = "left"
	RotationRight     = "right"
	RotationLeftRight = "left_right"
	RotationRightLeft = "right_left"
)

// Rotated records one rotation of the given kind.
func (c *Collector) Rotated(kind string) {
	if c == nil {
		return
	}
	c.Rotations.WithLabelValues(kind).Inc()
}

// VectorPush records a persistent vector push.
func (c *Collector) VectorPush() {
	if c == nil {
		return
	}
	c.VectorPushes.Inc()
}

// VectorPop records a persistent vector pop.
func (c *Collector) VectorPop() {
	if c == nil {
		return
	}
	c.VectorPops.Inc()
}

// TransientSpun records a transient being minted.
func (c *Collector) TransientSpun() {
	if c == nil {
		return
	}
	c.TransientsSpun.Inc()
}

// SetArenaLiveNodes reports the current live node count for an
// arena-backed tree.
func (c *Collector) SetArenaLiveNodes(n int) {
	if c == nil {
		return
	}
	c.ArenaLiveNodes.Set(float64(n))
}
