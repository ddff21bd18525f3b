package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// cycleError reports entries that depend on each other.
type cycleError struct {
	names []string
}

func (e *cycleError) Error() string {
	return "dependency cycle involving " + strings.Join(e.names, ", ")
}

// order returns entry indices so that every entry follows the entries it refers to.
func (ix *index) order() ([]int, error) {
	order, stuck, err := topoSort(len(ix.entries), func(i int) []int {
		return ix.deps(ix.entries[i])
	})
	if err != nil {
		return nil, err
	}

	if len(stuck) > 0 {
		names := make([]string, 0, len(stuck))
		for _, i := range stuck {
			names = append(names, ix.entries[i].name)
		}

		return nil, &cycleError{names: names}
	}

	return order, nil
}

// topoSort returns indices in dependency order.
//
// Nodes are by index in the input slice.
// depsFn(i) yields indices that must come before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. Nodes left over because of a cycle are returned, sorted, as stuck.
func topoSort(n int, depsFn func(i int) []int) (order, stuck []int, err error) {
	if n <= 0 {
		return nil, nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	for i := range n {
		if indeg[i] > 0 {
			stuck = append(stuck, i)
		}
	}

	return order, stuck, nil
}
