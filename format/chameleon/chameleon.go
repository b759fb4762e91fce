// Package chameleon implements the Chameleon compressor: an 8-bit,
// split-file descriptor format with a three-tier match encoding
// distinguishing short same-page matches from longer, farther ones.
package chameleon

import (
	"encoding/binary"

	"github.com/KrysBlu/clownlzss/internal/bitio"
	"github.com/KrysBlu/clownlzss/internal/graph"
	"github.com/KrysBlu/clownlzss/internal/moduled"
)

const (
	maxLen  = 0xFF
	maxDist = 0x7FF

	literalCost = 8 + 1 // descriptor bit, value byte

	// Alignment between moduled chunks; Chameleon has none of its own.
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
	case length >= 2 && length <= 3 && distance < 256:
		return 2 + 8 + 1 // tier-select bits, offset byte, length-select bit
	case length >= 3 && length <= 5:
		return 2 + 3 + 8 + 2 // tier-select, high offset bits, offset byte, length-select bits
	case length >= 6:
		return 2 + 3 + 8 + 2 + 8 // as above, plus the explicit length byte
	default:
		return 0
	}
}

func emitLiteral(w *bitio.Writer, value byte) {
	w.PutBit(true)
	w.PutByte(value)
}

func emitMatch(w *bitio.Writer, distance, length int) {
	switch {
	case length >= 2 && length <= 3 && distance < 256:
		w.PutBit(false)
		w.PutBit(false)
		w.PutByte(byte(distance))
		w.PutBit(length == 3)
	case length >= 3 && length <= 5:
		w.PutBit(false)
		w.PutBit(true)
		w.PutBit(distance&(1<<10) != 0)
		w.PutBit(distance&(1<<9) != 0)
		w.PutBit(distance&(1<<8) != 0)
		w.PutByte(byte(distance & 0xFF))
		w.PutBit(length == 5)
		w.PutBit(length == 4)
	default: // length >= 6
		w.PutBit(false)
		w.PutBit(true)
		w.PutBit(distance&(1<<10) != 0)
		w.PutBit(distance&(1<<9) != 0)
		w.PutBit(distance&(1<<8) != 0)
		w.PutByte(byte(distance & 0xFF))
		w.PutBit(true)
		w.PutBit(true)
		w.PutByte(byte(length))
	}
}

// CompressStream compresses data and appends the result to out, in the
// shape the moduled wrapper expects: a 2-byte big-endian size of the
// descriptor stream, the descriptor bytes, then the payload bytes.
func CompressStream(data []byte, out []byte) []byte {
	w := bitio.NewWriter(8, bitio.MSBFirst, true)

	b := backend{}
	edges := graph.Parse(data, b)
	graph.Walk(data, edges, func(v byte) {
		emitLiteral(w, v)
	}, func(distance, length, _ int) {
		emitMatch(w, distance, length)
	})

	// Terminator match: the length>=6 encoding with distance 0, length 0 —
	// a pattern no real match ever produces (a real length>=6 match never
	// has a literal length byte of 0).
	w.PutBit(false)
	w.PutBit(true)
	w.PutBit(false)
	w.PutBit(false)
	w.PutBit(false)
	w.PutByte(0)
	w.PutBit(true)
	w.PutBit(true)
	w.PutByte(0)

	w.Flush()

	descBytes := w.DescriptorBytes()
	var sizeField [2]byte
	binary.BigEndian.PutUint16(sizeField[:], uint16(len(descBytes)))
	out = append(out, sizeField[:]...)
	out = append(out, descBytes...)
	out = append(out, w.PayloadBytes()...)
	return out
}

// Compress encodes data as a single, standalone Chameleon stream.
func Compress(data []byte) []byte {
	return moduled.Regular(data, CompressStream)
}

// ModuledCompress splits data into moduleSize chunks, each an independent
// Chameleon stream, prefixed by the moduled wrapper's total-size header.
func ModuledCompress(data []byte, moduleSize int) ([]byte, error) {
	return moduled.Compress(data, moduleSize, alignment, CompressStream)
}
