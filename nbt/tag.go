// Package nbt decodes Minecraft's Named Binary Tag format into a tree of
// typed values and converts those values into Go types.
package nbt

import (
	"fmt"
	"slices"
)

// TagID is the one byte type prefix of every NBT value.
type TagID byte

const (
	TagEnd TagID = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagNames = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

func (id TagID) String() string {
	if int(id) < len(tagNames) {
		return tagNames[id]
	}
	return fmt.Sprintf("TAG_Unknown(%d)", byte(id))
}

// Tag is a single decoded NBT value. The concrete type identifies the variant.
type Tag interface {
	ID() TagID
}

type (
	End       struct{}
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []int8
	String    string
	IntArray  []int32
	LongArray []int64

	// Compound maps names to values. Key order carries no meaning.
	Compound map[string]Tag
)

// List is an ordered sequence of values which all share ElemID. Lists without
// items keep whatever element id was written but do not enforce it.
type List struct {
	ElemID TagID
	Items  []Tag
}

func (End) ID() TagID       { return TagEnd }
func (Byte) ID() TagID      { return TagByte }
func (Short) ID() TagID     { return TagShort }
func (Int) ID() TagID       { return TagInt }
func (Long) ID() TagID      { return TagLong }
func (Float) ID() TagID     { return TagFloat }
func (Double) ID() TagID    { return TagDouble }
func (ByteArray) ID() TagID { return TagByteArray }
func (String) ID() TagID    { return TagString }
func (List) ID() TagID      { return TagList }
func (Compound) ID() TagID  { return TagCompound }
func (IntArray) ID() TagID  { return TagIntArray }
func (LongArray) ID() TagID { return TagLongArray }

// Len returns the number of items in the list.
func (l List) Len() int { return len(l.Items) }

// Clone returns a shallow copy of the compound. Values are shared.
func (c Compound) Clone() Compound {
	out := make(Compound, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Copy returns a deep copy of t. Arrays, lists and compounds are not shared
// with the original.
func Copy(t Tag) Tag {
	switch v := t.(type) {
	case ByteArray:
		return slices.Clone(v)
	case IntArray:
		return slices.Clone(v)
	case LongArray:
		return slices.Clone(v)
	case List:
		items := make([]Tag, len(v.Items))
		for i, item := range v.Items {
			items[i] = Copy(item)
		}
		return List{ElemID: v.ElemID, Items: items}
	case Compound:
		out := make(Compound, len(v))
		for k, item := range v {
			out[k] = Copy(item)
		}
		return out
	default:
		return t
	}
}

// Take removes key from the compound and returns its value.
func (c Compound) Take(key string) (Tag, bool) {
	v, ok := c[key]
	if ok {
		delete(c, key)
	}
	return v, ok
}

func idOf(t Tag) TagID {
	if t == nil {
		return TagEnd
	}
	return t.ID()
}
