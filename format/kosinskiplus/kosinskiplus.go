// Package kosinskiplus implements the Kosinski+ compressor, a variant that
// adds a dedicated run-length tier via the engine's find_extra_matches
// hook: a byte run (distance == 1) is encoded without any distance bytes at
// all, instead of through the format's general long-match tier.
//
// As with kosinski, the exact bit widths here are not pinned by any shipped
// reference decoder; the parameters follow kosinski's own shape with an
// added RLE tier layered on top, which is Kosinski+'s defining feature over
// plain Kosinski.
package kosinskiplus

import (
	"github.com/KrysBlu/clownlzss/internal/bitio"
	"github.com/KrysBlu/clownlzss/internal/graph"
	"github.com/KrysBlu/clownlzss/internal/moduled"
)

const (
	maxLen  = 0x100
	maxDist = 0x2000

	literalCost = 1 + 8  // descriptor bit, value byte
	fullCost    = 2 + 24 // 2 tier-select bits, 2 distance bytes, length byte
	rleCost     = 2 + 8  // 2 tier-select bits, length byte (distance implied 1)

	alignment = 1
)

type backend struct{}

func (backend) MaxLen() int      { return maxLen }
func (backend) MaxDist() int     { return maxDist }
func (backend) LiteralCost() int { return literalCost }

// MatchCost refuses distance == 1 outright: that case is only ever offered
// through FindExtraMatches's dedicated, cheaper RLE edges instead of the
// general long-match tier.
func (backend) MatchCost(distance, length int) int {
	if distance == 1 {
		return 0
	}
	if length >= 2 && length <= maxLen && distance <= maxDist {
		return fullCost
	}
	return 0
}

// FindExtraMatches offers every run length, up to maxLen, of the byte
// immediately preceding pos, at the flat RLE cost.
func (backend) FindExtraMatches(data []byte, pos int, nodes []graph.Node) {
	if pos == 0 {
		return
	}
	run := data[pos-1]
	maxAhead := maxLen
	if len(data)-pos < maxAhead {
		maxAhead = len(data) - pos
	}
	k := 0
	for k < maxAhead && data[pos+k] == run {
		k++
		graph.Relax(nodes, pos, pos+k, k, pos-1, rleCost)
	}
}

func emitLiteral(w *bitio.Writer, value byte) {
	w.PutBit(true)
	w.PutByte(value)
}

func emitMatch(w *bitio.Writer, distance, length int) {
	if distance == 1 {
		w.PutBit(false)
		w.PutBit(true)
		w.PutByte(byte(length - 1))
		return
	}
	w.PutBit(false)
	w.PutBit(false)
	d := distance - 1
	w.PutByte(byte(d & 0xFF))
	w.PutByte(byte((d >> 8) & 0x1F))
	w.PutByte(byte(length - 1))
}

// CompressStream compresses data and appends the interleaved
// descriptor/payload groups to out.
func CompressStream(data []byte, out []byte) []byte {
	w := bitio.NewWriter(16, bitio.LSBFirst, false)
	b := backend{}
	edges := graph.Parse(data, b)
	graph.Walk(data, edges, func(v byte) {
		emitLiteral(w, v)
	}, func(distance, length, _ int) {
		emitMatch(w, distance, length)
	})

	// Terminator: full-tier sentinel with all-zero payload bytes (distance-
	// minus-one field 0, length 1) — unambiguous
	// since MatchCost never accepts a full-tier match shorter than 2.
	w.PutBit(false)
	w.PutBit(false)
	w.PutByte(0)
	w.PutByte(0)
	w.PutByte(0)

	w.Flush()
	return append(out, w.Bytes()...)
}

// Compress encodes data as a single, standalone Kosinski+ stream.
func Compress(data []byte) []byte {
	return moduled.Regular(data, CompressStream)
}

// ModuledCompress splits data into moduleSize chunks, each an independent
// Kosinski+ stream, prefixed by the moduled wrapper's total-size header.
func ModuledCompress(data []byte, moduleSize int) ([]byte, error) {
	return moduled.Compress(data, moduleSize, alignment, CompressStream)
}
