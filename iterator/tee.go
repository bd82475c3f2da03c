package iterator

type (
	// teeGroup is the state shared by all branches of a Tee.
	teeGroup[T any] struct {
		it Iterator[T]
		// buf holds the values between the slowest and fastest branches
		buf []T
		// base is the (upstream) index of buf[0]
		base int
		// pos is the index of the next value, for each branch
		pos  []int
		done bool
	}

	teeBranch[T any] struct {
		group *teeGroup[T]
		id    int
	}
)

// Tee returns n independent iterators, each of which yield the same values
// as it, in the same order. The input iterator must not be used after
// calling Tee.
//
// Values are buffered only until they have been read by all branches, i.e.
// memory usage is proportional to the distance between the fastest and
// slowest branches. Tee panics if n is less than 1.
func Tee[T any](it Iterator[T], n int) []Iterator[T] {
	if n < 1 {
		panic(`iterator: tee requires at least 1 branch`)
	}
	group := &teeGroup[T]{it: it, pos: make([]int, n)}
	branches := make([]Iterator[T], n)
	for i := range branches {
		branches[i] = &teeBranch[T]{group: group, id: i}
	}
	return branches
}

func (x *teeBranch[T]) Next() (v T, ok bool) {
	g := x.group
	p := g.pos[x.id]
	if p == g.base+len(g.buf) {
		// at the frontier
		if g.done {
			return
		}
		if v, ok = g.it.Next(); !ok {
			g.done = true
			g.it = nil
			return
		}
		g.buf = append(g.buf, v)
	} else {
		v, ok = g.buf[p-g.base], true
	}
	g.pos[x.id] = p + 1
	if p == g.base {
		g.evict()
	}
	return
}

// evict drops buffered values that every branch has advanced past
func (g *teeGroup[T]) evict() {
	least := g.pos[0]
	for _, p := range g.pos[1:] {
		least = min(least, p)
	}
	var zero T
	for g.base < least && len(g.buf) != 0 {
		g.buf[0] = zero
		g.buf = g.buf[1:]
		g.base++
	}
}
