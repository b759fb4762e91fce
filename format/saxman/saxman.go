// Package saxman implements the Saxman compressor: an 8-bit, LSB-first,
// interleaved-group descriptor with an optional 2-byte uncompressed-size
// header (main.c's "-s" vs "-sn" distinction).
//
// No reference Saxman decoder ships in this pack; the window and
// nibble-packed match shape here follow the classic Sega Saxman
// length/distance encoding, and the header toggle follows main.c's "-s"
// (with header) vs "-sn" (without) distinction directly.
package saxman

import (
	"encoding/binary"

	"github.com/KrysBlu/clownlzss/internal/bitio"
	"github.com/KrysBlu/clownlzss/internal/graph"
	"github.com/KrysBlu/clownlzss/internal/moduled"
)

const (
	maxLen  = 18 // encoded as length-3 in 4 bits: 3..18
	maxDist = 0xFFF

	literalCost = 1 + 8  // descriptor bit, value byte
	matchCost   = 1 + 16 // descriptor bit, 2 payload bytes

	alignment = 1
)

type backend struct {
	graph.NoExtraMatches[byte]
}

func (backend) MaxLen() int      { return maxLen }
func (backend) MaxDist() int     { return maxDist }
func (backend) LiteralCost() int { return literalCost }

func (backend) MatchCost(distance, length int) int {
	if length >= 3 && length <= maxLen && distance >= 1 && distance <= maxDist {
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
	w.PutByte(byte(distance & 0xFF))
	w.PutByte(byte((distance>>8)&0xF) | byte((length-3)<<4))
}

// compressBody runs the optimal parse and appends the interleaved
// descriptor/payload groups (no header) to out.
func compressBody(data []byte, out []byte) []byte {
	w := bitio.NewWriter(8, bitio.LSBFirst, false)
	b := backend{}
	edges := graph.Parse(data, b)
	graph.Walk(data, edges, func(v byte) {
		emitLiteral(w, v)
	}, func(distance, length, _ int) {
		emitMatch(w, distance, length)
	})

	// Terminator: distance 0 (never legitimate: distance >= 1 always),
	// length 3 (the minimum, so the length nibble reads 0).
	w.PutBit(false)
	w.PutByte(0)
	w.PutByte(0)

	w.Flush()
	return append(out, w.Bytes()...)
}

// CompressStream compresses data with the 2-byte uncompressed-size header
// main.c's "-s" mode writes, and appends the result to out.
func CompressStream(data []byte, out []byte) []byte {
	var header [2]byte
	binary.BigEndian.PutUint16(header[:], uint16(len(data)))
	out = append(out, header[:]...)
	return compressBody(data, out)
}

// CompressStreamNoHeader is main.c's "-sn" mode: identical encoding, with
// no leading uncompressed-size field.
func CompressStreamNoHeader(data []byte, out []byte) []byte {
	return compressBody(data, out)
}

// Compress encodes data as a single, standalone Saxman stream. withHeader
// selects between the "-s" (size-prefixed) and "-sn" (header-less) modes.
func Compress(data []byte, withHeader bool) []byte {
	if withHeader {
		return moduled.Regular(data, CompressStream)
	}
	return moduled.Regular(data, CompressStreamNoHeader)
}

// ModuledCompress splits data into moduleSize chunks, each an independent
// Saxman stream, prefixed by the moduled wrapper's total-size header.
func ModuledCompress(data []byte, withHeader bool, moduleSize int) ([]byte, error) {
	stream := CompressStreamNoHeader
	if withHeader {
		stream = CompressStream
	}
	return moduled.Compress(data, moduleSize, alignment, stream)
}
