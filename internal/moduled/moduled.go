// Package moduled implements the two wrapper contracts every clownlzss
// format backend is compressed through: the regular wrapper (run the
// backend's stream function once, no extra framing) and the moduled
// wrapper (split the input into fixed-size chunks, each compressed
// independently, prefixed by a header giving the total uncompressed size).
package moduled

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// StreamCompressor appends the compressed encoding of data to out (which may
// be nil) and returns the grown slice. Backends that need to reserve and
// later back-patch header bytes of their own (Rocket) do so against out
// directly, the same way the original C implementation streamed straight
// into a shared output buffer rather than building a standalone one per
// chunk.
type StreamCompressor func(data []byte, out []byte) []byte

// maxUncompressedSize is the ceiling the moduled header's 16-bit
// total-uncompressed-size field can represent.
const maxUncompressedSize = 0xFFFF

// Regular runs compress once over the whole input, with no framing beyond
// whatever the backend itself emits.
func Regular(data []byte, compress StreamCompressor) []byte {
	return compress(data, nil)
}

// Compress splits data into chunks of at most moduleSize bytes (the last
// chunk may be shorter), compresses each chunk independently with compress,
// and pads each chunk's encoded bytes up to alignment. The result is
// prefixed with a 16-bit big-endian header giving the total uncompressed
// size.
//
// Sizes the 16-bit header field cannot represent are rejected outright
// rather than silently emitting a truncated or ambiguous header (the
// original only warned, for sizes above the smaller and poorly-supported
// 0x1000 threshold).
func Compress(data []byte, moduleSize int, alignment int, compress StreamCompressor) ([]byte, error) {
	if moduleSize <= 0 {
		return nil, errors.New("moduled: module size must be positive")
	}
	if len(data) > maxUncompressedSize {
		return nil, fmt.Errorf("moduled: input of %d bytes exceeds the header's %d-byte limit", len(data), maxUncompressedSize)
	}

	out := make([]byte, 2, 2+len(data))
	binary.BigEndian.PutUint16(out, uint16(len(data)))

	if len(data) == 0 {
		out = compress(nil, out)
		return pad(out, alignment, 2), nil
	}

	for off := 0; off < len(data); off += moduleSize {
		end := off + moduleSize
		if end > len(data) {
			end = len(data)
		}
		chunkStart := len(out)
		out = compress(data[off:end], out)
		out = pad(out, alignment, chunkStart)
	}
	return out, nil
}

// pad appends zero bytes until the region starting at from is a multiple of
// alignment bytes long; alignment <= 1 means no padding at all.
func pad(out []byte, alignment int, from int) []byte {
	if alignment <= 1 {
		return out
	}
	for (len(out)-from)%alignment != 0 {
		out = append(out, 0)
	}
	return out
}
