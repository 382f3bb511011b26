package network

import (
	"sort"
	"strings"
)

// stronglyConnectedComponents partitions the stations into strongly
// connected components using Kosaraju's two-pass algorithm (iterative,
// so deep line graphs cannot overflow the stack). Components are returned
// with their member IDs sorted, ordered by each component's smallest ID,
// so the diagnostic in ErrDisconnected is stable across runs.
//
// Time: O(S + E). Memory: O(S + E) for the reverse adjacency.
func stronglyConnectedComponents(n *Network) [][]string {
	// Forward DFS over every station, recording finish order.
	var (
		finished = make([]string, 0, len(n.ids))
		seen     = make(map[string]bool, len(n.ids))
	)
	for _, root := range n.ids {
		if seen[root] {
			continue
		}
		// Iterative DFS with an explicit post-visit marker.
		type frame struct {
			id   string
			next int // index into outgoing edges
		}
		stack := []frame{{id: root}}
		seen[root] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := n.outgoing[top.id]
			advanced := false
			for top.next < len(edges) {
				to := edges[top.next].To
				top.next++
				if !seen[to] {
					seen[to] = true
					stack = append(stack, frame{id: to})
					advanced = true

					break
				}
			}
			if !advanced {
				finished = append(finished, top.id)
				stack = stack[:len(stack)-1]
			}
		}
	}

	// Reverse adjacency for the second pass.
	rev := make(map[string][]string, len(n.ids))
	for _, e := range n.edges {
		rev[e.To] = append(rev[e.To], e.From)
	}

	// Second pass: DFS on the reversed graph in decreasing finish order.
	var (
		comps   [][]string
		claimed = make(map[string]bool, len(n.ids))
	)
	for i := len(finished) - 1; i >= 0; i-- {
		root := finished[i]
		if claimed[root] {
			continue
		}
		comp := []string{}
		work := []string{root}
		claimed[root] = true
		for len(work) > 0 {
			id := work[len(work)-1]
			work = work[:len(work)-1]
			comp = append(comp, id)
			for _, from := range rev[id] {
				if !claimed[from] {
					claimed[from] = true
					work = append(work, from)
				}
			}
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}

	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })

	return comps
}

// formatComponents renders components as "[A B C] [D E]" for diagnostics.
func formatComponents(comps [][]string) string {
	var b strings.Builder
	for i, c := range comps {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('[')
		b.WriteString(strings.Join(c, " "))
		b.WriteByte(']')
	}

	return b.String()
}
