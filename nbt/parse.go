package nbt

import (
	"encoding/binary"
	"fmt"
)

// maxDepth bounds list and compound nesting.
const maxDepth = 512

// Parse decodes a complete NBT document. The document must start with a
// compound tag; its name is skipped and the compound payload returned.
func Parse(buf []byte) (Compound, error) {
	id, off, err := readU8(buf, 0)
	if err != nil {
		return nil, err
	}
	if TagID(id) != TagCompound {
		return nil, fmt.Errorf("%w: expected root tag to be compound (%d), but got %d", ErrInvalidValue, TagCompound, id)
	}
	if _, off, err = readString(buf, off); err != nil {
		return nil, fmt.Errorf("could not read root name: %w", err)
	}

	tag, _, err := ReadTag(TagCompound, buf, off)
	if err != nil {
		return nil, err
	}
	return tag.(Compound), nil
}

// ReadTag decodes the payload of a value of type id starting at off. It
// returns the value and the offset just past it.
func ReadTag(id TagID, buf []byte, off int) (Tag, int, error) {
	return readTag(id, buf, off, 0)
}

func readTag(id TagID, buf []byte, off, depth int) (Tag, int, error) {
	switch id {
	case TagEnd:
		return End{}, off, nil
	case TagByte:
		v, next, err := readI8(buf, off)
		return Byte(v), next, err
	case TagShort:
		v, next, err := readI16(buf, off)
		return Short(v), next, err
	case TagInt:
		v, next, err := readI32(buf, off)
		return Int(v), next, err
	case TagLong:
		v, next, err := readI64(buf, off)
		return Long(v), next, err
	case TagFloat:
		v, next, err := readF32(buf, off)
		return Float(v), next, err
	case TagDouble:
		v, next, err := readF64(buf, off)
		return Double(v), next, err
	case TagByteArray:
		v, next, err := readArray(buf, off, 1, func(b []byte) int8 { return int8(b[0]) })
		if err != nil {
			return nil, off, err
		}
		return ByteArray(v), next, nil
	case TagString:
		v, next, err := readString(buf, off)
		return String(v), next, err
	case TagList:
		return readList(buf, off, depth+1)
	case TagCompound:
		return readCompound(buf, off, depth+1)
	case TagIntArray:
		v, next, err := readArray(buf, off, 4, func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) })
		if err != nil {
			return nil, off, err
		}
		return IntArray(v), next, nil
	case TagLongArray:
		v, next, err := readArray(buf, off, 8, func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) })
		if err != nil {
			return nil, off, err
		}
		return LongArray(v), next, nil
	default:
		return nil, off, &UnknownTagError{ID: byte(id), Offset: off}
	}
}

func readList(buf []byte, off, depth int) (Tag, int, error) {
	if depth > maxDepth {
		return nil, off, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidValue, maxDepth)
	}

	elem, next, err := readU8(buf, off)
	if err != nil {
		return nil, off, err
	}
	n, next, err := readLength(buf, next, 0)
	if err != nil {
		return nil, off, err
	}
	if n > 0 && TagID(elem) == TagEnd {
		return nil, off, fmt.Errorf("%w: list of %d TAG_End elements at offset %d", ErrInvalidValue, n, off)
	}

	// Every element takes at least one byte except End, so the remaining
	// input bounds the allocation.
	list := List{ElemID: TagID(elem), Items: make([]Tag, 0, min(n, len(buf)-next))}
	for i := 0; i < n; i++ {
		var item Tag
		item, next, err = readTag(TagID(elem), buf, next, depth)
		if err != nil {
			return nil, off, err
		}
		list.Items = append(list.Items, item)
	}
	return list, next, nil
}

func readCompound(buf []byte, off, depth int) (Tag, int, error) {
	if depth > maxDepth {
		return nil, off, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidValue, maxDepth)
	}

	compound := make(Compound)
	next := off
	for {
		id, after, err := readU8(buf, next)
		if err != nil {
			return nil, off, err
		}
		if TagID(id) == TagEnd {
			return compound, after, nil
		}
		if TagID(id) > TagLongArray {
			return nil, off, &UnknownTagError{ID: id, Offset: next}
		}

		name, after, err := readString(buf, after)
		if err != nil {
			return nil, off, err
		}
		value, after, err := readTag(TagID(id), buf, after, depth)
		if err != nil {
			return nil, off, err
		}
		compound[name] = value
		next = after
	}
}
