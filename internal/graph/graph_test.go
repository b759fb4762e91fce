package graph

import "testing"

// constBackend is a tiny byte backend used to exercise Parse in isolation,
// without any format-specific bit packing.
type constBackend struct {
	NoExtraMatches[byte]
	maxLen, maxDist   int
	literalCost       int
	matchFlatCost     int
	minMatchLen       int
}

func (b constBackend) MaxLen() int  { return b.maxLen }
func (b constBackend) MaxDist() int { return b.maxDist }
func (b constBackend) LiteralCost() int { return b.literalCost }
func (b constBackend) MatchCost(distance, length int) int {
	if length < b.minMatchLen {
		return 0
	}
	return b.matchFlatCost
}

func edgesToString(data []byte, edges []Edge) (literals int, matches int, rebuilt []byte) {
	for _, e := range edges {
		if e.Literal {
			literals++
			rebuilt = append(rebuilt, data[e.Pos])
		} else {
			matches++
			for k := 0; k < e.Length; k++ {
				rebuilt = append(rebuilt, rebuilt[len(rebuilt)-e.Distance])
			}
		}
	}
	return
}

func TestParseEmptyInput(t *testing.T) {
	b := constBackend{maxLen: 16, maxDist: 16, literalCost: 9, matchFlatCost: 17, minMatchLen: 2}
	edges := Parse[byte](nil, b)
	if edges != nil {
		t.Fatalf("expected nil edges for empty input, got %v", edges)
	}
}

func TestParseAllLiteralsWhenMatchRefused(t *testing.T) {
	b := constBackend{maxLen: 16, maxDist: 16, literalCost: 9, matchFlatCost: 0, minMatchLen: 2}
	data := []byte("aaaaaaaa")
	edges := Parse(data, b)
	literals, matches, rebuilt := edgesToString(data, edges)
	if matches != 0 {
		t.Fatalf("expected no matches when MatchCost always refuses, got %d", matches)
	}
	if literals != len(data) {
		t.Fatalf("expected %d literals, got %d", len(data), literals)
	}
	if string(rebuilt) != string(data) {
		t.Fatalf("rebuilt %q != input %q", rebuilt, data)
	}
}

func TestParseRoundTripsRepeatedRun(t *testing.T) {
	b := constBackend{maxLen: 255, maxDist: 2047, literalCost: 9, matchFlatCost: 17, minMatchLen: 2}
	data := []byte("ABCABCABCABC")
	edges := Parse(data, b)
	_, matches, rebuilt := edgesToString(data, edges)
	if matches == 0 {
		t.Fatalf("expected at least one match edge for a repeated pattern")
	}
	if string(rebuilt) != string(data) {
		t.Fatalf("rebuilt %q != input %q", rebuilt, data)
	}
}

// TestParsePrefersNearestSourceOnTie checks the documented determinism rule:
// candidates are scanned nearest-back to farthest-back, and strict-less-than
// relaxation means the first (nearest) source offering a given length wins.
func TestParsePrefersNearestSourceOnTie(t *testing.T) {
	b := constBackend{maxLen: 255, maxDist: 2047, literalCost: 9, matchFlatCost: 17, minMatchLen: 2}
	data := []byte("XYXYXY")
	edges := Parse(data, b)
	for _, e := range edges {
		if !e.Literal && e.Length == 2 {
			// "XY" at position 4 could copy from offset 0 or offset 2;
			// nearest-back means offset 2 (distance 2) must win.
			if e.Pos == 4 && e.Distance != 2 {
				t.Fatalf("expected nearest-back match (distance 2) at pos 4, got distance %d", e.Distance)
			}
		}
	}
}

func TestParseLiteralPreferredOnCostTie(t *testing.T) {
	// A match costing exactly as much as covering the same ground with
	// literals must lose to the literal edges (<=, not <, in the literal
	// relaxation step).
	b := constBackend{maxLen: 255, maxDist: 2047, literalCost: 9, matchFlatCost: 18, minMatchLen: 2}
	data := []byte("ABAB")
	edges := Parse(data, b)
	for _, e := range edges {
		if !e.Literal && e.Length == 2 && e.Pos == 2 {
			t.Fatalf("expected literal edges preferred on a cost tie, got a match at pos 2")
		}
	}
}

// TestParseNoLocalImprovement checks the "no single-edge local modification
// yields a lower cost" optimality invariant: for every chosen node, no
// alternative edge into it (from any earlier reachable node) beats the edge
// actually chosen.
func TestParseNoLocalImprovement(t *testing.T) {
	b := constBackend{maxLen: 8, maxDist: 64, literalCost: 9, matchFlatCost: 17, minMatchLen: 2}
	data := []byte("the quick brown fox the quick brown fox")

	costs := make([]int, len(data)+1)
	for i := range costs {
		costs[i] = 1 << 30
	}
	costs[0] = 0
	pick := make([]int, len(data)+1) // cost actually paid to reach i, per the chosen parse

	edges := Parse(data, b)
	pos := 0
	for _, e := range edges {
		if e.Literal {
			pick[pos+1] = pick[pos] + b.LiteralCost()
			pos++
		} else {
			pick[pos+e.Length] = pick[pos] + b.matchFlatCost
			pos += e.Length
		}
	}

	// Recompute true minimum cost to each node by brute force and compare.
	for i := 0; i < len(data); i++ {
		if costs[i] >= 1<<30 {
			continue
		}
		if costs[i]+b.literalCost < costs[i+1] {
			costs[i+1] = costs[i] + b.literalCost
		}
		maxAhead := b.maxLen
		if len(data)-i < maxAhead {
			maxAhead = len(data) - i
		}
		minBehind := i - b.maxDist
		if minBehind < 0 {
			minBehind = 0
		}
		for j := minBehind; j < i; j++ {
			k := 0
			for k < maxAhead && data[i+k] == data[j+k] {
				k++
				cost := b.MatchCost(i-j, k)
				if cost != 0 && costs[i]+cost < costs[i+k] {
					costs[i+k] = costs[i] + cost
				}
			}
		}
	}

	if pick[len(data)] != costs[len(data)] {
		t.Fatalf("chosen parse cost %d, brute-force optimum %d", pick[len(data)], costs[len(data)])
	}
}

func TestParseDeterministic(t *testing.T) {
	b := constBackend{maxLen: 255, maxDist: 2047, literalCost: 9, matchFlatCost: 17, minMatchLen: 2}
	data := []byte("deterministic output deterministic output deterministic")
	first := Parse(data, b)
	second := Parse(data, b)
	if len(first) != len(second) {
		t.Fatalf("edge count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("edge %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFindExtraMatchesHook(t *testing.T) {
	// A backend whose FindExtraMatches injects a long run-length match
	// to the very end of the buffer, verifying the hook is reachable and
	// that Relax honours "cost == 0 means refused".
	data := []byte("zzzzzzzzzzzz")
	hookBackend := hookTestBackend{constBackend{maxLen: 2, maxDist: 64, literalCost: 9, matchFlatCost: 17, minMatchLen: 99}}
	edges := Parse(data, hookBackend)
	_, matches, rebuilt := edgesToString(data, edges)
	if matches == 0 {
		t.Fatalf("expected the hook's injected edge to be used")
	}
	if string(rebuilt) != string(data) {
		t.Fatalf("rebuilt %q != input %q", rebuilt, data)
	}
}

type hookTestBackend struct {
	constBackend
}

func (b hookTestBackend) FindExtraMatches(data []byte, pos int, nodes []Node) {
	if pos == 0 {
		return
	}
	// Offer a cheap direct hop from 1 straight to pos+1, copying the byte
	// at position 0 (distance 1), simulating a format-specific long-range
	// reference the core search wouldn't find given its small maxLen.
	Relax(nodes, 1, pos+1, pos, 0, 5)
}
