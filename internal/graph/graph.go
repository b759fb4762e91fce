// Package graph implements the match-cost graph builder shared by every
// clownlzss format backend: a forward Dijkstra-equivalent relaxation over a
// DAG of literal and match edges, picking the globally cheapest way to
// factor an input into an LZSS parse.
package graph

import "math"

// NoNode is the predecessor sentinel for node 0 and the terminator for the
// forward next-chain built during path extraction.
const NoNode = -1

// Node is one position in the input, plus the terminal node at len(data).
//
// costOrNext holds the minimum-cost-to-reach value during the forward pass;
// after path extraction it is overwritten with the index of the next node on
// the chosen path. Exactly one interpretation is live at a time, matching
// the original implementation's union of the two fields.
type Node struct {
	costOrNext int
	Previous   int
	Length     int
	Offset     int
}

func newNodes(n int) []Node {
	nodes := make([]Node, n+1)
	for i := 1; i <= n; i++ {
		nodes[i].costOrNext = math.MaxInt
	}
	return nodes
}

// Relax offers an incoming edge from -> to of the given length/offset/cost.
// It is exported so that a Backend's FindExtraMatches hook can inject
// format-specific edges (run-length, self-overlapping, long-range
// dictionary references) using the same relaxation rule as the core search:
// cost == 0 means "refused" and the edge is ignored.
func Relax(nodes []Node, from, to, length, offset, cost int) {
	if cost != 0 && nodes[from].costOrNext+cost < nodes[to].costOrNext {
		nodes[to].costOrNext = nodes[from].costOrNext + cost
		nodes[to].Previous = from
		nodes[to].Length = length
		nodes[to].Offset = offset
	}
}

// Backend supplies the per-format parameters and cost function the builder
// needs to weigh literal and match edges. Symbol equality (via comparable)
// is the only operation the builder performs on data values.
type Backend[S comparable] interface {
	// MaxLen is the longest match the format can encode, in symbols.
	MaxLen() int
	// MaxDist is the furthest a match may reach back, in symbols.
	MaxDist() int
	// LiteralCost is the fixed weight of a literal edge.
	LiteralCost() int
	// MatchCost weighs a candidate match; 0 means the backend refuses this
	// (distance, length) combination and the edge must be skipped.
	MatchCost(distance, length int) int
	// FindExtraMatches is a hook for backend-specific edges beyond the plain
	// substring matches the builder already considers. The default (via
	// NoExtraMatches) is a no-op.
	FindExtraMatches(data []S, pos int, nodes []Node)
}

// NoExtraMatches is embedded by backends with no extra-edge hook.
type NoExtraMatches[S comparable] struct{}

func (NoExtraMatches[S]) FindExtraMatches(data []S, pos int, nodes []Node) {}

// Edge is one step of the optimal parse: either a literal at Pos, or a match
// of Length symbols starting at Pos copying from the absolute source
// position Offset (Distance == Pos-Offset, in symbol units).
type Edge struct {
	Literal  bool
	Pos      int
	Length   int
	Distance int
	Offset   int
}

// Parse finds the minimum-cost factorization of data into literal and match
// edges under backend's cost model, and returns it as an ordered edge list.
//
// Candidate sources are explored nearest-back to farthest-back; combined
// with relaxation's strict less-than, this makes the chosen offset
// deterministic for a given winning length at a given target node. Literal
// edges are relaxed with <=, not <, so that on a cost tie a literal wins —
// literal edges never constrain downstream choices, so this tends to
// shorten the resulting encoding.
//
// This is the exhaustive form: every candidate source in the window is
// checked for every position, which is what guarantees the result is
// globally optimal — no single-edge local change to the chosen parse ever
// lowers its total cost. It deliberately does not hash-accelerate or cap
// the candidate search the way a greedy matcher would.
func Parse[S comparable](data []S, backend Backend[S]) []Edge {
	n := len(data)
	if n == 0 {
		return nil
	}

	nodes := newNodes(n)
	maxLen := backend.MaxLen()
	maxDist := backend.MaxDist()
	literalCost := backend.LiteralCost()

	for i := 0; i < n; i++ {
		maxAhead := maxLen
		if n-i < maxAhead {
			maxAhead = n - i
		}
		minBehind := i - maxDist
		if minBehind < 0 {
			minBehind = 0
		}

		backend.FindExtraMatches(data, i, nodes)

		for j := i - 1; j >= minBehind; j-- {
			for k := 0; k < maxAhead; k++ {
				if data[i+k] != data[j+k] {
					break
				}
				cost := backend.MatchCost(i-j, k+1)
				Relax(nodes, i, i+k+1, k+1, j, cost)
			}
		}

		if nodes[i].costOrNext+literalCost <= nodes[i+1].costOrNext {
			nodes[i+1].costOrNext = nodes[i].costOrNext + literalCost
			nodes[i+1].Previous = i
			nodes[i+1].Length = 0
		}
	}

	return extractPath(nodes, n)
}

// extractPath reverses the previous-links of the winning nodes into a
// forward next-chain, then walks it emitting one Edge per step.
func extractPath(nodes []Node, n int) []Edge {
	nodes[0].Previous = NoNode
	nodes[n].costOrNext = NoNode

	for idx := n; nodes[idx].Previous != NoNode; idx = nodes[idx].Previous {
		nodes[nodes[idx].Previous].costOrNext = idx
	}

	var edges []Edge
	for idx := 0; nodes[idx].costOrNext != NoNode; {
		next := nodes[idx].costOrNext
		length := nodes[next].Length
		if length == 0 {
			edges = append(edges, Edge{Literal: true, Pos: idx})
		} else {
			offset := nodes[next].Offset
			edges = append(edges, Edge{
				Literal:  false,
				Pos:      idx,
				Length:   length,
				Offset:   offset,
				Distance: idx - offset,
			})
		}
		idx = next
	}
	return edges
}

// Walk drives emitLiteral/emitMatch over an edge list in input order, the
// shape every format backend's Compress uses to turn a parse into bytes.
func Walk[S any](data []S, edges []Edge, emitLiteral func(S), emitMatch func(distance, length, offset int)) {
	for _, e := range edges {
		if e.Literal {
			emitLiteral(data[e.Pos])
		} else {
			emitMatch(e.Distance, e.Length, e.Offset)
		}
	}
}
