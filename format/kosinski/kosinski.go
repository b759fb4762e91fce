// Package kosinski implements the Kosinski compressor.
//
// Kosinski's exact bit widths and tier boundaries vary across target
// decompressors rather than being fixed by the format name alone. The
// parameters here — a 16-bit, LSB-first, interleaved descriptor; an inline
// short-match tier; and a full long-match tier — are modeled on the
// well-documented public shape of the classic Sega/Sonic-era Kosinski
// format.
package kosinski

import (
	"github.com/KrysBlu/clownlzss/internal/bitio"
	"github.com/KrysBlu/clownlzss/internal/graph"
	"github.com/KrysBlu/clownlzss/internal/moduled"
)

const (
	maxLen  = 0x100
	maxDist = 0x2000

	literalCost    = 1 + 8  // descriptor bit, value byte
	inlineMaxLen   = 5
	inlineMaxDist  = 0x100
	inlineCost     = 4 + 8  // 2 tier-select bits, 2 length bits, distance byte
	fullCost       = 2 + 24 // 2 tier-select bits, 2 distance bytes, length byte

	alignment = 1
)

type backend struct {
	graph.NoExtraMatches[byte]
}

func (backend) MaxLen() int      { return maxLen }
func (backend) MaxDist() int     { return maxDist }
func (backend) LiteralCost() int { return literalCost }

func (backend) MatchCost(distance, length int) int {
	switch {
	case length >= 2 && length <= inlineMaxLen && distance <= inlineMaxDist:
		return inlineCost
	case length >= 2 && length <= maxLen && distance <= maxDist:
		return fullCost
	default:
		return 0
	}
}

func emitLiteral(w *bitio.Writer, value byte) {
	w.PutBit(true)
	w.PutByte(value)
}

func emitMatch(w *bitio.Writer, distance, length int) {
	if length <= inlineMaxLen && distance <= inlineMaxDist {
		w.PutBit(false)
		w.PutBit(true)
		l := length - 2
		w.PutBit(l&2 != 0)
		w.PutBit(l&1 != 0)
		w.PutByte(byte(distance - 1))
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
	// minus-one field 0, length 1). A genuine
	// full-tier match never has length 1 (MatchCost requires length >= 2),
	// so this pattern is unambiguous to a decoder.
	w.PutBit(false)
	w.PutBit(false)
	w.PutByte(0)
	w.PutByte(0)
	w.PutByte(0)

	w.Flush()
	return append(out, w.Bytes()...)
}

// Compress encodes data as a single, standalone Kosinski stream.
func Compress(data []byte) []byte {
	return moduled.Regular(data, CompressStream)
}

// ModuledCompress splits data into moduleSize chunks, each an independent
// Kosinski stream, prefixed by the moduled wrapper's total-size header.
func ModuledCompress(data []byte, moduleSize int) ([]byte, error) {
	return moduled.Compress(data, moduleSize, alignment, CompressStream)
}
