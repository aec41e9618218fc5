package safevec_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/safevec/pkg/safevec"
)

// tracked pairs a handle with the element id it is expected to denote;
// -1 means the end sentinel.
type tracked struct {
	it   safevec.Iterator[int]
	want int
}

// model mirrors a vector of unique ids and predicts where handles land.
type model struct {
	ids     []int
	handles []*tracked
	next    int
}

func (m *model) fresh(n int) []int {
	out := make([]int, n)
	for i := range out {
		m.next++
		out[i] = m.next
	}
	return out
}

func (m *model) pos(want int) int {
	if want == -1 {
		return len(m.ids)
	}
	return slices.Index(m.ids, want)
}

// remove predicts the effect of removing [i, j): handles on removed elements
// move to the element that followed the range.
func (m *model) remove(i, j int) {
	follow := -1
	if j < len(m.ids) {
		follow = m.ids[j]
	}
	for _, h := range m.handles {
		if p := m.pos(h.want); p >= i && p < j {
			h.want = follow
		}
	}
	m.ids = slices.Delete(m.ids, i, j)
}

func (m *model) verify(t *testing.T, v *safevec.Vector[int], step int) {
	t.Helper()
	require.Equal(t, m.ids, v.ToSlice(), "step %d", step)
	for k, h := range m.handles {
		require.Equal(t, m.pos(h.want), h.it.Index(), "step %d handle %d", step, k)
		if h.want == -1 {
			require.True(t, h.it.Done(), "step %d handle %d", step, k)
			continue
		}
		require.Equal(t, h.want, h.it.Get(), "step %d handle %d", step, k)
	}
	require.Equal(t, len(m.handles), v.LiveIterators(), "step %d", step)
}

func TestVector_RandomMutationsKeepHandlesOnTheirElements(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		m := &model{}
		v := safevec.New[int](safevec.WithCapacity(1))

		for step := 0; step < 400; step++ {
			n := len(m.ids)
			switch op := rng.IntN(15); {
			case op == 0:
				i := rng.IntN(n + 1)
				vals := m.fresh(1 + rng.IntN(3))
				v.InsertAt(i, vals...)
				m.ids = slices.Insert(m.ids, i, vals...)
			case op == 1 && n > 0:
				i := rng.IntN(n)
				j := i + rng.IntN(n-i+1)
				v.EraseRangeAt(i, j)
				m.remove(i, j)
			case op == 2:
				vals := m.fresh(1 + rng.IntN(2))
				v.PushBack(vals...)
				m.ids = append(m.ids, vals...)
			case op == 3 && n > 0:
				require.Equal(t, m.ids[n-1], v.PopBack())
				m.remove(n-1, n)
			case op == 4 && n > 0:
				size := rng.IntN(n + 1)
				v.Resize(size)
				m.remove(size, n)
			case op == 5:
				if rng.IntN(2) == 0 {
					v.Reserve(rng.IntN(2 * (n + 1)))
				} else {
					v.ShrinkToFit()
				}
			case op == 6 || op == 7:
				i := rng.IntN(n + 1)
				want := -1
				if i < n {
					want = m.ids[i]
				}
				m.handles = append(m.handles, &tracked{it: v.IterAt(i), want: want})
			case op == 8 && len(m.handles) > 0:
				k := rng.IntN(len(m.handles))
				m.handles[k].it.Release()
				m.handles = slices.Delete(m.handles, k, k+1)
			case op == 9 && len(m.handles) > 0:
				h := m.handles[rng.IntN(len(m.handles))]
				if h.want == -1 {
					continue
				}
				p := m.pos(h.want)
				h.it.Erase()
				m.remove(p, p+1)
			case op == 10 && len(m.handles) > 0:
				h := m.handles[rng.IntN(len(m.handles))]
				p := m.pos(h.want)
				val := m.fresh(1)
				got := v.Insert(h.it, val[0])
				require.Equal(t, p, got.Index())
				require.Equal(t, val[0], got.Get())
				got.Release()
				m.ids = slices.Insert(m.ids, p, val...)
			case op == 11 && len(m.handles) > 0:
				h := m.handles[rng.IntN(len(m.handles))]
				p := m.pos(h.want)
				vals := m.fresh(rng.IntN(4))
				got := v.InsertN(h.it, len(vals), 0)
				for k, id := range vals {
					got.SetAt(k, id)
				}
				require.Equal(t, p, got.Index())
				got.Release()
				m.ids = slices.Insert(m.ids, p, vals...)
			case op == 12 && len(m.handles) > 0:
				h := m.handles[rng.IntN(len(m.handles))]
				p := m.pos(h.want)
				val := m.fresh(1)
				got := v.Emplace(h.it, func(e *int) { *e = val[0] })
				require.Equal(t, val[0], got.Get())
				got.Release()
				m.ids = slices.Insert(m.ids, p, val...)
			case op == 13 && len(m.handles) > 1:
				lo := m.handles[rng.IntN(len(m.handles))]
				hi := m.handles[rng.IntN(len(m.handles))]
				if m.pos(lo.want) > m.pos(hi.want) {
					lo, hi = hi, lo
				}
				i, j := m.pos(lo.want), m.pos(hi.want)
				next := v.EraseRange(lo.it, hi.it)
				m.remove(i, j)
				require.Equal(t, i, next.Index())
				require.True(t, next.Equal(lo.it))
			case op == 14:
				vals := m.fresh(1 + rng.IntN(4))
				v.ResizeWith(n+len(vals), -1)
				for k, id := range vals {
					require.Equal(t, -1, v.At(n+k))
					v.Set(n+k, id)
				}
				m.ids = append(m.ids, vals...)
			}
			m.verify(t, v, step)
		}

		for _, h := range m.handles {
			h.it.Release()
		}
		require.Equal(t, 0, v.LiveIterators())
		v.Clear()
	}
}
