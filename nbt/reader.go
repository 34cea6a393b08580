package nbt

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// The readers below take the buffer and a cursor and return the value
// together with the advanced cursor. They never read past len(buf).

func need(buf []byte, off, n int) error {
	if off < 0 || n < 0 || off > len(buf) || len(buf)-off < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, off, max(len(buf)-off, 0))
	}
	return nil
}

func readU8(buf []byte, off int) (uint8, int, error) {
	if err := need(buf, off, 1); err != nil {
		return 0, off, err
	}
	return buf[off], off + 1, nil
}

func readU16(buf []byte, off int) (uint16, int, error) {
	if err := need(buf, off, 2); err != nil {
		return 0, off, err
	}
	return binary.BigEndian.Uint16(buf[off:]), off + 2, nil
}

func readU32(buf []byte, off int) (uint32, int, error) {
	if err := need(buf, off, 4); err != nil {
		return 0, off, err
	}
	return binary.BigEndian.Uint32(buf[off:]), off + 4, nil
}

func readU64(buf []byte, off int) (uint64, int, error) {
	if err := need(buf, off, 8); err != nil {
		return 0, off, err
	}
	return binary.BigEndian.Uint64(buf[off:]), off + 8, nil
}

func readI8(buf []byte, off int) (int8, int, error) {
	v, next, err := readU8(buf, off)
	return int8(v), next, err
}

func readI16(buf []byte, off int) (int16, int, error) {
	v, next, err := readU16(buf, off)
	return int16(v), next, err
}

func readI32(buf []byte, off int) (int32, int, error) {
	v, next, err := readU32(buf, off)
	return int32(v), next, err
}

func readI64(buf []byte, off int) (int64, int, error) {
	v, next, err := readU64(buf, off)
	return int64(v), next, err
}

func readF32(buf []byte, off int) (float32, int, error) {
	v, next, err := readU32(buf, off)
	return math.Float32frombits(v), next, err
}

func readF64(buf []byte, off int) (float64, int, error) {
	v, next, err := readU64(buf, off)
	return math.Float64frombits(v), next, err
}

func readString(buf []byte, off int) (string, int, error) {
	n, next, err := readU16(buf, off)
	if err != nil {
		return "", off, err
	}
	if err := need(buf, next, int(n)); err != nil {
		return "", off, err
	}
	raw := buf[next : next+int(n)]
	if !utf8.Valid(raw) {
		return "", off, fmt.Errorf("%w: string at offset %d is not valid UTF-8", ErrInvalidValue, off)
	}
	return string(raw), next + int(n), nil
}

// readLength reads the signed 32 bit element count of arrays and lists and
// checks that at least size bytes per element remain.
func readLength(buf []byte, off, size int) (int, int, error) {
	n, next, err := readI32(buf, off)
	if err != nil {
		return 0, off, err
	}
	if n < 0 {
		return 0, off, fmt.Errorf("%w: negative length %d at offset %d", ErrInvalidValue, n, off)
	}
	if total := int64(n) * int64(size); total > int64(len(buf)-next) {
		return 0, off, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, total, next, len(buf)-next)
	}
	return int(n), next, nil
}

func readArray[T any](buf []byte, off, size int, decode func([]byte) T) ([]T, int, error) {
	n, next, err := readLength(buf, off, size)
	if err != nil {
		return nil, off, err
	}
	out := make([]T, n)
	for i := range out {
		out[i] = decode(buf[next:])
		next += size
	}
	return out, next, nil
}
