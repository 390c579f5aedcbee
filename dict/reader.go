// Package dict implements the immutable morphological dictionary: the
// binary reader, the double-array trie index, the character classifier,
// and the loader that assembles them from an on-disk bundle.
package dict

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxStringLen bounds the length prefix accepted by Reader.String, guarding
// against a corrupt or adversarial length field forcing a huge allocation.
const maxStringLen = 1 << 20 // 1 MiB

// Sentinel errors surfaced by the binary reader. The loader folds all of
// these into the CorruptInput/MissingData taxonomy of spec §7.
var (
	ErrShortRead       = errors.New("dict: short read")
	ErrOversizedString = errors.New("dict: string length exceeds sanity ceiling")
	ErrVarintOverflow  = errors.New("dict: varint exceeds 10 bytes")
)

// Reader decodes the little-endian fixed-width integers and length-prefixed
// strings used throughout the dictionary bundle sub-files.
type Reader struct {
	r io.Reader
}

// NewReader wraps r for sequential binary decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) readFull(buf []byte) error {
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		return err
	}
	return nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	var buf [8]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	var buf [2]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// Int16 reads a little-endian int16.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// String reads a u64 length prefix followed by that many UTF-8 bytes.
func (r *Reader) String() (string, error) {
	n, err := r.Uint64()
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", fmt.Errorf("%w: %d bytes", ErrOversizedString, n)
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Bytes reads exactly n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// All reads every remaining byte of the stream.
func (r *Reader) All() ([]byte, error) {
	return io.ReadAll(r.r)
}

// maxVarintBytes is the upstream limit: 10 groups of 7 bits (70 bits)
// cover a full 64-bit value with six bits to spare.
const maxVarintBytes = 10

// Varint reads an unsigned LEB128-style varint: continuation bit on the high
// bit of each byte, little-endian 7-bit groups.
func (r *Reader) Varint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		var b [1]byte
		if err := r.readFull(b[:]); err != nil {
			return 0, err
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, ErrVarintOverflow
}

// SignedVarint reads a zig-zag encoded signed varint.
func (r *Reader) SignedVarint() (int64, error) {
	u, err := r.Varint()
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}
