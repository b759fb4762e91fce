package kosinskiplus

import (
	"bytes"
	"math/rand"
	"testing"
)

// decode is a test-only reference decoder used to validate round-trip
// correctness; decompression is not part of the public API.
// It returns the decoded bytes and encoded bytes consumed, so moduled
// streams of concatenated substreams can be walked one module at a time.
func decode(encoded []byte) (out []byte, consumed int) {
	pos := 0
	var descriptor uint16
	var bitsRemaining uint

	readBit := func() bool {
		if bitsRemaining == 0 {
			descriptor = uint16(encoded[pos]) | uint16(encoded[pos+1])<<8
			pos += 2
			bitsRemaining = 16
		}
		bit := descriptor&1 != 0
		descriptor >>= 1
		bitsRemaining--
		return bit
	}
	readByte := func() byte {
		b := encoded[pos]
		pos++
		return b
	}

	for {
		if readBit() {
			out = append(out, readByte())
			continue
		}
		if readBit() {
			length := int(readByte()) + 1
			start := len(out) - 1
			for i := 0; i < length; i++ {
				out = append(out, out[start])
			}
		} else {
			b1 := readByte()
			b2 := readByte()
			lengthByte := readByte()
			if b1 == 0 && b2 == 0 && lengthByte == 0 {
				return out, pos
			}
			distance := (int(b2)<<8 | int(b1)) + 1
			length := int(lengthByte) + 1
			start := len(out) - distance
			for i := 0; i < length; i++ {
				out = append(out, out[start+i])
			}
		}
	}
}

func TestCompressRoundTripRun(t *testing.T) {
	data := bytes.Repeat([]byte{0x99}, 300) // exceeds maxLen, spans two edges
	got, _ := decode(Compress(data))
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch for a long run")
	}
}

func TestCompressEmpty(t *testing.T) {
	got, _ := decode(Compress(nil))
	if len(got) != 0 {
		t.Fatalf("expected empty round trip, got %v", got)
	}
}

func TestCompressRoundTripRandom4KiB(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	data := make([]byte, 4096)
	r.Read(data)
	got, _ := decode(Compress(data))
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch over random input")
	}
}

func TestCompressRoundTripAtMaxLenBoundaries(t *testing.T) {
	for _, n := range []int{maxLen, maxLen + 1} {
		data := bytes.Repeat([]byte{1, 2, 3, 4}, n)
		got, _ := decode(Compress(data))
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch at length %d", n)
		}
	}
}

func TestCompressIsDeterministic(t *testing.T) {
	data := []byte("deterministic output deterministic output")
	if !bytes.Equal(Compress(data), Compress(data)) {
		t.Fatalf("Compress is not deterministic")
	}
}

func TestModuledCompressRoundTrip(t *testing.T) {
	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(i % 97)
	}
	encoded, err := ModuledCompress(data, 4096)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := int(encoded[0])<<8 | int(encoded[1])
	if total != len(data) {
		t.Fatalf("header size %d != input size %d", total, len(data))
	}

	var got []byte
	rest := encoded[2:]
	for len(rest) > 0 {
		chunk, n := decode(rest)
		got = append(got, chunk...)
		rest = rest[n:]
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("moduled round trip mismatch")
	}
}
