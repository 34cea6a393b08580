// Package nbttest assembles NBT documents and region files for tests.
package nbttest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

// Document serialises root as an unnamed root compound.
func Document(root nbt.Compound) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(nbt.TagCompound))
	writeString(&buf, "")
	writePayload(&buf, root)
	return buf.Bytes()
}

// Payload serialises the value of t without its type byte.
func Payload(t nbt.Tag) []byte {
	var buf bytes.Buffer
	writePayload(&buf, t)
	return buf.Bytes()
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

func writePayload(buf *bytes.Buffer, t nbt.Tag) {
	switch v := t.(type) {
	case nbt.End:
	case nbt.Byte:
		buf.WriteByte(byte(v))
	case nbt.Short:
		binary.Write(buf, binary.BigEndian, int16(v))
	case nbt.Int:
		binary.Write(buf, binary.BigEndian, int32(v))
	case nbt.Long:
		binary.Write(buf, binary.BigEndian, int64(v))
	case nbt.Float:
		binary.Write(buf, binary.BigEndian, math.Float32bits(float32(v)))
	case nbt.Double:
		binary.Write(buf, binary.BigEndian, math.Float64bits(float64(v)))
	case nbt.ByteArray:
		binary.Write(buf, binary.BigEndian, int32(len(v)))
		binary.Write(buf, binary.BigEndian, []int8(v))
	case nbt.String:
		writeString(buf, string(v))
	case nbt.List:
		buf.WriteByte(byte(v.ElemID))
		binary.Write(buf, binary.BigEndian, int32(len(v.Items)))
		for _, item := range v.Items {
			writePayload(buf, item)
		}
	case nbt.Compound:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			buf.WriteByte(byte(v[k].ID()))
			writeString(buf, k)
			writePayload(buf, v[k])
		}
		buf.WriteByte(byte(nbt.TagEnd))
	case nbt.IntArray:
		binary.Write(buf, binary.BigEndian, int32(len(v)))
		binary.Write(buf, binary.BigEndian, []int32(v))
	case nbt.LongArray:
		binary.Write(buf, binary.BigEndian, int32(len(v)))
		binary.Write(buf, binary.BigEndian, []int64(v))
	default:
		panic(fmt.Sprintf("nbttest: cannot encode %T", t))
	}
}

// ListOf builds a list whose element id is taken from the first item.
func ListOf(items ...nbt.Tag) nbt.List {
	l := nbt.List{ElemID: nbt.TagEnd, Items: items}
	if len(items) > 0 {
		l.ElemID = items[0].ID()
	}
	return l
}
