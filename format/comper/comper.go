// Package comper implements the Comper compressor: a 16-bit-symbol LZSS
// format with a flat match cost and a 16-bit, big-endian, interleaved-group
// descriptor.
package comper

import (
	"errors"

	"github.com/KrysBlu/clownlzss/internal/bitio"
	"github.com/KrysBlu/clownlzss/internal/graph"
	"github.com/KrysBlu/clownlzss/internal/moduled"
)

const (
	maxLen  = 0x100
	maxDist = 0x100

	// Descriptor bit, offset byte, length byte.
	literalCost = 1 + 16
	matchCost   = 1 + 16

	alignment = 1
)

type backend struct {
	graph.NoExtraMatches[uint16]
}

func (backend) MaxLen() int      { return maxLen }
func (backend) MaxDist() int     { return maxDist }
func (backend) LiteralCost() int { return literalCost }
func (backend) MatchCost(distance, length int) int {
	return matchCost
}

func emitLiteral(w *bitio.Writer, value uint16) {
	w.PutBit(false)
	w.PutByte(byte(value))
	w.PutByte(byte(value >> 8))
}

func emitMatch(w *bitio.Writer, distance, length int) {
	w.PutBit(true)
	w.PutByte(byte(-distance))
	w.PutByte(byte(length - 1))
}

// symbolsFromBytes reinterprets data as little-endian uint16 symbols, the
// same layout the original's direct (unsigned short*) cast over the raw
// byte buffer produces on a little-endian target.
func symbolsFromBytes(data []byte) []uint16 {
	symbols := make([]uint16, len(data)/2)
	for i := range symbols {
		symbols[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return symbols
}

// CompressStream compresses data (which must have an even length) and
// appends the interleaved descriptor/payload groups to out.
func CompressStream(data []byte, out []byte) []byte {
	symbols := symbolsFromBytes(data)

	w := bitio.NewWriter(16, bitio.MSBFirst, false)
	b := backend{}
	edges := graph.Parse(symbols, b)
	graph.Walk(symbols, edges, func(v uint16) {
		emitLiteral(w, v)
	}, func(distance, length, _ int) {
		emitMatch(w, distance, length)
	})

	// Terminator match: distance 0, length 1 (length-1 byte of 0).
	w.PutBit(true)
	w.PutByte(0)
	w.PutByte(0)

	w.Flush()
	return append(out, w.Bytes()...)
}

// Compress encodes data as a single, standalone Comper stream. data must
// have an even length; Comper's 16-bit symbols have no well-defined
// behaviour for a trailing odd byte, so one is rejected rather than
// silently dropped or zero-padded.
func Compress(data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, errors.New("comper: input length must be even")
	}
	return moduled.Regular(data, CompressStream), nil
}

// ModuledCompress splits data into moduleSize chunks, each an independent
// Comper stream, prefixed by the moduled wrapper's total-size header.
// moduleSize must be even: with an even total length, that is what
// guarantees every chunk (including the last) is itself even-length.
func ModuledCompress(data []byte, moduleSize int) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, errors.New("comper: input length must be even")
	}
	if moduleSize%2 != 0 {
		return nil, errors.New("comper: module size must be even")
	}
	return moduled.Compress(data, moduleSize, alignment, CompressStream)
}
