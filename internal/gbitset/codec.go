// Package gbitset encodes leaf-difference bitsets for transfer or storage.
//
// An encoded bitset begins with a one-byte header
// and the uvarint bit length.
// The words follow either raw, as little endian uint64 values,
// or as a uvarint-prefixed snappy block,
// whichever is smaller.
package gbitset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/golang/snappy"
)

const (
	rawEncoding    byte = 0
	snappyEncoding byte = 1
)

// MaxLen is the largest bit length a [Decoder] accepts.
const MaxLen = 1 << 32

// Encoder writes bitsets, reusing its buffers across calls.
// The zero value is ready to use.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	// Little endian words of the bitset.
	wordBuf []byte

	// Snappy block of wordBuf.
	encBuf []byte
}

// Encode writes bs to w.
func (e *Encoder) Encode(w io.Writer, bs *bitset.BitSet) error {
	n := bs.Len()
	e.fillWords(bs)

	maxEnc := snappy.MaxEncodedLen(len(e.wordBuf))
	if cap(e.encBuf) < maxEnc {
		e.encBuf = make([]byte, maxEnc)
	} else {
		e.encBuf = e.encBuf[:maxEnc]
	}
	enc := snappy.Encode(e.encBuf, e.wordBuf)

	// Header, bit length, and possibly the snappy length.
	var hdr [1 + 2*binary.MaxVarintLen64]byte
	hdrLen := 1 + binary.PutUvarint(hdr[1:], uint64(n))

	var body []byte
	if encLen := uvarintLen(uint64(len(enc))) + len(enc); encLen < len(e.wordBuf) {
		hdr[0] = snappyEncoding
		hdrLen += binary.PutUvarint(hdr[hdrLen:], uint64(len(enc)))
		body = enc
	} else {
		hdr[0] = rawEncoding
		body = e.wordBuf
	}

	if _, err := w.Write(hdr[:hdrLen]); err != nil {
		return fmt.Errorf("failed to write bitset header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write bitset body: %w", err)
	}
	return nil
}

func (e *Encoder) fillWords(bs *bitset.BitSet) {
	nWords := wordsNeeded(bs.Len())
	nBytes := 8 * nWords
	if cap(e.wordBuf) < nBytes {
		e.wordBuf = make([]byte, nBytes)
	} else {
		e.wordBuf = e.wordBuf[:nBytes]
	}

	words := bs.Words()
	for i := range nWords {
		var w uint64
		if i < len(words) {
			w = words[i]
		}
		// Little endian is more likely to match a modern machine's endianness.
		binary.LittleEndian.PutUint64(e.wordBuf[i*8:], w)
	}
}

// Decoder reads bitsets written by an [Encoder].
// The zero value is ready to use.
// A Decoder is not safe for concurrent use.
//
// Memory use is bounded by the bytes actually read,
// not by the declared bit length,
// so a short input claiming a huge bitset fails cheaply.
type Decoder struct {
	// Raw words or the snappy block, as read from the stream.
	body bytes.Buffer

	// Snappy-decoded words.
	wordBuf []byte
}

// maxSnappyExpansion bounds the decoded-to-encoded size ratio.
// The densest snappy element is a 3-byte copy of 64 bytes.
const maxSnappyExpansion = 22

// Decode reads one bitset from r.
func (d *Decoder) Decode(r io.Reader) (*bitset.BitSet, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = byteReader{r: r}
	}

	h, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("failed to read bitset header: %w", err)
	}

	n, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read bitset length: %w", err)
	}
	if n > MaxLen {
		return nil, fmt.Errorf("bitset length %d exceeds maximum %d", n, uint64(MaxLen))
	}
	nBytes := 8 * wordsNeeded(uint(n))

	var wordBytes []byte
	switch h {
	case rawEncoding:
		if err := d.readBody(r, int64(nBytes)); err != nil {
			return nil, fmt.Errorf("failed to read raw bitset data: %w", err)
		}
		wordBytes = d.body.Bytes()

	case snappyEncoding:
		encSz, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("failed to read snappy length for bitset: %w", err)
		}
		if encSz > uint64(snappy.MaxEncodedLen(nBytes)) {
			return nil, fmt.Errorf(
				"snappy length %d too large for %d-bit bitset", encSz, n,
			)
		}

		if err := d.readBody(r, int64(encSz)); err != nil {
			return nil, fmt.Errorf("failed to read snappy-encoded bitset: %w", err)
		}
		enc := d.body.Bytes()

		decSz, err := snappy.DecodedLen(enc)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate snappy-decoded bitset length: %w", err)
		}
		if decSz != nBytes {
			return nil, fmt.Errorf(
				"calculated decoded size of %d bytes but expected %d",
				decSz, nBytes,
			)
		}
		if decSz > maxSnappyExpansion*len(enc) {
			return nil, fmt.Errorf(
				"snappy block of %d bytes cannot decode to %d bytes",
				len(enc), decSz,
			)
		}

		// snappy.Decode may return nil on error,
		// so only keep its result on success.
		wb, err := snappy.Decode(d.wordBuf, enc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode snappy bitset: %w", err)
		}
		d.wordBuf = wb
		wordBytes = wb

	default:
		return nil, fmt.Errorf("unknown bitset header byte 0x%x", h)
	}

	words := make([]uint64, nBytes/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(wordBytes[i*8:])
	}
	return bitset.FromWithLength(uint(n), words), nil
}

// readBody reads exactly n bytes from r into d.body.
// The buffer grows with the data received,
// so a truncated stream never triggers an allocation of size n.
func (d *Decoder) readBody(r io.Reader, n int64) error {
	d.body.Reset()
	if _, err := io.CopyN(&d.body, r, n); err != nil {
		return err
	}
	return nil
}

func wordsNeeded(bits uint) int {
	return int((bits + 63) / 64)
}

func uvarintLen(x uint64) int {
	var buf [binary.MaxVarintLen64]byte
	return binary.PutUvarint(buf[:], x)
}

// byteReader adapts an io.Reader for binary.ReadUvarint
// without buffering past the bytes it consumes.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}
