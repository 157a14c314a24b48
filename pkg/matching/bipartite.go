package matching

// unmatched marks a node without a partner.
const unmatched = -1

// frame is one level of an augmenting-path search. left is the
// actual node being placed, next the first expected node not yet
// tried and right the expected node it was last routed through.
type frame struct {
	left  int
	next  int
	right int
}

// maxMatching computes a maximum bipartite matching over an
// adjacency matrix with one row per actual element and cols
// expected elements. It returns the partner of every actual node
// and of every expected node, or unmatched.
//
// Actual nodes are placed in index order and candidates are tried
// in index order, so the result is deterministic for a given
// matrix.
func maxMatching(adj [][]bool, cols int) (actualTo, expectedTo []int) {
	actualTo = filled(len(adj), unmatched)
	expectedTo = filled(cols, unmatched)

	visited := make([]bool, cols)
	stack := make([]frame, 0, len(adj))
	for root := range adj {
		clear(visited)
		stack = augment(root, adj, actualTo, expectedTo, visited, stack[:0])
	}
	return actualTo, expectedTo
}

// augment searches for an augmenting path starting at root and
// flips it if one exists. It returns the stack for reuse.
func augment(
	root int,
	adj [][]bool,
	actualTo, expectedTo []int,
	visited []bool,
	stack []frame,
) []frame {
	cols := len(expectedTo)
	stack = append(stack, frame{left: root, right: unmatched})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= cols {
			stack = stack[:len(stack)-1]
			continue
		}

		e := top.next
		top.next++
		if visited[e] || !adj[top.left][e] {
			continue
		}
		visited[e] = true
		top.right = e

		if expectedTo[e] == unmatched {
			for _, f := range stack {
				actualTo[f.left] = f.right
				expectedTo[f.right] = f.left
			}
			return stack
		}
		stack = append(stack, frame{left: expectedTo[e], right: unmatched})
	}
	return stack
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}
