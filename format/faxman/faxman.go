// Package faxman implements the Faxman compressor: an 8-bit, MSB-first,
// interleaved-group descriptor with a single flat-cost, 3-byte match
// encoding over a wide window.
//
// No reference Faxman decoder ships in this pack; the window and match
// shape here mirror rage's wider-window sibling rather than inventing yet
// another bit-packing scheme for the family.
package faxman

import (
	"github.com/KrysBlu/clownlzss/internal/bitio"
	"github.com/KrysBlu/clownlzss/internal/graph"
	"github.com/KrysBlu/clownlzss/internal/moduled"
)

const (
	maxLen  = 0x100
	maxDist = 0x2000

	literalCost = 1 + 8  // descriptor bit, value byte
	matchCost   = 1 + 24 // descriptor bit, 2 distance bytes, length byte

	alignment = 1
)

type backend struct {
	graph.NoExtraMatches[byte]
}

func (backend) MaxLen() int      { return maxLen }
func (backend) MaxDist() int     { return maxDist }
func (backend) LiteralCost() int { return literalCost }

func (backend) MatchCost(distance, length int) int {
	if length >= 2 && length <= maxLen && distance <= maxDist {
		return matchCost
	}
	return 0
}

func emitLiteral(w *bitio.Writer, value byte) {
	w.PutBit(true)
	w.PutByte(value)
}

func emitMatch(w *bitio.Writer, distance, length int) {
	w.PutBit(false)
	d := distance - 1
	w.PutByte(byte(d & 0xFF))
	w.PutByte(byte((d >> 8) & 0x1F))
	w.PutByte(byte(length - 1))
}

// CompressStream compresses data and appends the interleaved
// descriptor/payload groups to out.
func CompressStream(data []byte, out []byte) []byte {
	w := bitio.NewWriter(8, bitio.MSBFirst, false)
	b := backend{}
	edges := graph.Parse(data, b)
	graph.Walk(data, edges, func(v byte) {
		emitLiteral(w, v)
	}, func(distance, length, _ int) {
		emitMatch(w, distance, length)
	})

	// Terminator: all-zero payload bytes (distance-minus-one field 0,
	// length 1) — never a legitimate match (min length is 2).
	w.PutBit(false)
	w.PutByte(0)
	w.PutByte(0)
	w.PutByte(0)

	w.Flush()
	return append(out, w.Bytes()...)
}

// Compress encodes data as a single, standalone Faxman stream.
func Compress(data []byte) []byte {
	return moduled.Regular(data, CompressStream)
}

// ModuledCompress splits data into moduleSize chunks, each an independent
// Faxman stream, prefixed by the moduled wrapper's total-size header.
func ModuledCompress(data []byte, moduleSize int) ([]byte, error) {
	return moduled.Compress(data, moduleSize, alignment, CompressStream)
}
