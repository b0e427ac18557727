package trievec

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treevec.dev/core/stats"
)

func build(t *testing.T, n int) *Slice[int] {
	t.Helper()
	s, err := New[int](DefaultParameters)
	require.NoError(t, err)
	tr := s.MakeTransient()
	for i := 0; i < n; i++ {
		tr.Push(i)
	}
	return tr.Persist()
}

func TestPushAndAt(t *testing.T) {
	s := build(t, 100)
	assert.Equal(t, 100, s.Len())
	for i := 0; i < 100; i++ {
		v, err := s.At(i)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestAtOutOfRange(t *testing.T) {
	s := build(t, 5)
	_, err := s.At(5)
	assert.Error(t, err)
	_, err = s.At(-1)
	assert.Error(t, err)
}

// TestGrowAcrossShiftBoundary is scenario S5: pushing past a single
// leaf's capacity must promote the tree to the next height and keep
// every prior value intact.
func TestGrowAcrossShiftBoundary(t *testing.T) {
	s, err := New[int](Parameters{EShift: 2, IShift: 2}) // leaf size 4, fanout 4
	require.NoError(t, err)
	tr := s.MakeTransient()
	const n = 4*4*4 + 7 // spans three tree levels plus a partial tail
	for i := 0; i < n; i++ {
		tr.Push(i)
	}
	out := tr.Persist()
	require.Equal(t, n, out.Len())
	for i := 0; i < n; i++ {
		v, err := out.At(i)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestPopUnderflow(t *testing.T) {
	s, err := New[int](DefaultParameters)
	require.NoError(t, err)
	tr := s.MakeTransient()
	_, err = tr.Pop()
	assert.Error(t, err)
}

func TestPushPopRoundTrip(t *testing.T) {
	s, err := New[int](DefaultParameters)
	require.NoError(t, err)
	tr := s.MakeTransient()
	for i := 0; i < 50; i++ {
		tr.Push(i)
	}
	for i := 49; i >= 0; i-- {
		v, err := tr.Pop()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, tr.Len())
}

func TestSetMutatesOnlyTransient(t *testing.T) {
	base := build(t, 50)
	tr := base.MakeTransient()
	require.NoError(t, tr.Set(10, -1))
	v, _ := base.At(10)
	assert.Equal(t, 10, v, "original Slice must be unaffected by Transient.Set")
	nv, _ := tr.At(10)
	assert.Equal(t, -1, nv)
}

// TestPersistentPathCopyNonInterference is scenario S6: two Transients
// derived from the same Slice, writing to overlapping index ranges,
// must not see each other's writes, and the common ancestor Slice must
// remain exactly as it was.
func TestPersistentPathCopyNonInterference(t *testing.T) {
	base := build(t, 200)

	t1 := base.MakeTransient()
	t2 := base.MakeTransient()

	require.NoError(t, t1.Set(5, 1000))
	require.NoError(t, t1.Set(150, 2000))
	require.NoError(t, t2.Set(5, -1000))
	require.NoError(t, t2.Set(150, -2000))

	s1 := t1.Persist()
	s2 := t2.Persist()

	assert.False(t, s1.SameAs(s2), "independently edited Transients must not share a root")
	assert.False(t, s1.SameAs(base), "an edited Slice must not be SameAs its unedited ancestor")

	v1a, _ := s1.At(5)
	v1b, _ := s1.At(150)
	assert.Equal(t, 1000, v1a)
	assert.Equal(t, 2000, v1b)

	v2a, _ := s2.At(5)
	v2b, _ := s2.At(150)
	assert.Equal(t, -1000, v2a)
	assert.Equal(t, -2000, v2b)

	for i := 0; i < 200; i++ {
		if i == 5 || i == 150 {
			continue
		}
		v, _ := base.At(i)
		assert.Equal(t, i, v)
		a, _ := s1.At(i)
		assert.Equal(t, i, a)
		b, _ := s2.At(i)
		assert.Equal(t, i, b)
	}
}

// TestCollectorWiring confirms a Collector passed to SetCollector
// actually observes pushes and transients spun through ordinary use,
// not just its own unit tests.
func TestCollectorWiring(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := stats.New(reg)
	s, err := New[int](DefaultParameters)
	require.NoError(t, err)
	s.SetCollector(c)

	tr := s.MakeTransient()
	tr.Push(1)
	tr.Push(2)
	_, err = tr.Pop()
	require.NoError(t, err)

	m := &dto.Metric{}
	require.NoError(t, c.TransientsSpun.Write(m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue())

	m = &dto.Metric{}
	require.NoError(t, c.VectorPushes.Write(m))
	assert.Equal(t, float64(2), m.GetCounter().GetValue())

	m = &dto.Metric{}
	require.NoError(t, c.VectorPops.Write(m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue())
}

func TestSameAsIdentity(t *testing.T) {
	base := build(t, 200)
	assert.True(t, base.SameAs(base))

	tr := base.MakeTransient()
	unchanged := tr.Persist()
	assert.True(t, base.SameAs(unchanged), "Persist with no writes must keep the same root")
}

func TestResizeGrowShrink(t *testing.T) {
	s, err := New[int](DefaultParameters)
	require.NoError(t, err)
	tr := s.MakeTransient()
	for i := 0; i < 20; i++ {
		tr.Push(i)
	}
	require.NoError(t, tr.Resize(10))
	assert.Equal(t, 10, tr.Len())
	for i := 0; i < 10; i++ {
		v, _ := tr.At(i)
		assert.Equal(t, i, v)
	}
	require.NoError(t, tr.Resize(15))
	assert.Equal(t, 15, tr.Len())
}

func TestAppendMultiple(t *testing.T) {
	s, err := New[int](DefaultParameters)
	require.NoError(t, err)
	tr := s.MakeTransient()
	tr.Append(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	out := tr.Persist()
	require.Equal(t, 10, out.Len())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, out.All())
}
