// Package rocket implements the Rocket compressor: an 8-bit, LSB-first
// descriptor format whose stream begins with an uncompressed-size header
// and a compressed-size field that is back-patched once the payload length
// is known.
package rocket

import (
	"github.com/KrysBlu/clownlzss/internal/bitio"
	"github.com/KrysBlu/clownlzss/internal/graph"
	"github.com/KrysBlu/clownlzss/internal/moduled"
)

const (
	maxLen  = 0x40
	maxDist = 0x400

	literalCost = 1 + 8  // descriptor bit, value byte
	matchCost   = 1 + 16 // descriptor bit, two offset/length bytes

	alignment = 1

	// offsetRotation is rocket.c's `(offset + 0x3C0) & 0x3FF` adjustment.
	// It is preserved byte-for-byte from the original: no reference decoder
	// ships with this pack to re-derive or confirm it against.
	offsetRotation = 0x3C0
	offsetMask     = 0x3FF
)

type backend struct {
	graph.NoExtraMatches[byte]
}

func (backend) MaxLen() int      { return maxLen }
func (backend) MaxDist() int     { return maxDist }
func (backend) LiteralCost() int { return literalCost }
func (backend) MatchCost(distance, length int) int {
	return matchCost
}

func emitLiteral(w *bitio.Writer, value byte) {
	w.PutBit(true)
	w.PutByte(value)
}

func emitMatch(w *bitio.Writer, length, offset int) {
	offsetAdjusted := (offset + offsetRotation) & offsetMask
	w.PutBit(false)
	w.PutByte(byte(((offsetAdjusted >> 8) & 3) | ((length - 1) << 2)))
	w.PutByte(byte(offsetAdjusted & 0xFF))
}

// CompressStream compresses data and appends the result to out: a 4-byte
// header (2-byte big-endian uncompressed size, 2-byte placeholder) followed
// by the interleaved descriptor/payload groups, with the placeholder
// back-patched in place once the payload length is known.
func CompressStream(data []byte, out []byte) []byte {
	headerAt := len(out)
	out = append(out,
		byte(len(data)>>8), byte(len(data)),
		0, 0, // placeholder, back-patched below
	)

	w := bitio.NewWriter(8, bitio.LSBFirst, false)
	b := backend{}
	edges := graph.Parse(data, b)
	graph.Walk(data, edges, func(v byte) {
		emitLiteral(w, v)
	}, func(_, length, offset int) {
		emitMatch(w, length, offset)
	})

	// Rocket has no explicit terminator pattern: the 2-byte uncompressed
	// size already written into the header tells the decoder exactly how
	// many output bytes to produce, so decoding simply stops there.
	w.Flush()
	out = append(out, w.Bytes()...)

	compressedSize := len(out) - headerAt - 2
	out[headerAt+2] = byte(compressedSize >> 8)
	out[headerAt+3] = byte(compressedSize)
	return out
}

// Compress encodes data as a single, standalone Rocket stream.
func Compress(data []byte) []byte {
	return moduled.Regular(data, CompressStream)
}

// ModuledCompress splits data into moduleSize chunks, each an independent,
// self-headered Rocket stream, prefixed by the moduled wrapper's own
// total-size header.
func ModuledCompress(data []byte, moduleSize int) ([]byte, error) {
	return moduled.Compress(data, moduleSize, alignment, CompressStream)
}
