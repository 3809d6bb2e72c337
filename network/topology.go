package network

import "slices"

// ResolveEndpoints returns the bus-list positions of a branch's endpoints.
//
// The scan visits every bus once and checks the from-number before the to-number
// on each position, so a branch whose two ends carry the same number never
// resolves its to-end. ok is false when either end is missing; builders skip
// such branches silently.
//
// Complexity: O(N) per branch.
func ResolveEndpoints[B Numbered](buses []B, br Endpoints) (from, to int, ok bool) {
	from, to = -1, -1
	fromNum, toNum := br.FromBus(), br.ToBus()
	for j, b := range buses {
		num := b.Number()
		if num == fromNum {
			from = j
		} else if num == toNum {
			to = j
		}
	}

	return from, to, from != -1 && to != -1
}

// Islands groups buses into connected components over the branches that resolve.
// Each component lists bus numbers in bus-list order; components are ordered by
// their first bus. An isolated bus forms its own component.
//
// Implementation:
//   - Stage 1: resolve branches into an adjacency list over positions.
//   - Stage 2: BFS from every unseen position in bus-list order.
//
// Complexity: O(N·E) for resolution, O(N+E) for the traversal.
func Islands[B Numbered, L Endpoints](buses []B, branches []L) [][]int {
	n := len(buses)
	adj := make([][]int, n)
	for _, br := range branches {
		from, to, ok := ResolveEndpoints(buses, br)
		if !ok {
			continue
		}
		adj[from] = append(adj[from], to)
		adj[to] = append(adj[to], from)
	}

	seen := make([]bool, n)
	var comps [][]int
	for i0 := 0; i0 < n; i0++ {
		if seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		var comp []int
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			comp = append(comp, u)
			for _, v := range adj[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		slices.Sort(comp)
		numbers := make([]int, len(comp))
		for k, pos := range comp {
			numbers[k] = buses[pos].Number()
		}
		comps = append(comps, numbers)
	}

	return comps
}

// CountUnresolved returns how many branches have at least one endpoint missing.
func CountUnresolved[B Numbered, L Endpoints](buses []B, branches []L) int {
	var skipped int
	for _, br := range branches {
		if _, _, ok := ResolveEndpoints(buses, br); !ok {
			skipped++
		}
	}

	return skipped
}
