package nbt_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/Julian-Alberts/mc-map-reader/internal/nbttest"
	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

func TestReadTagPayloads(t *testing.T) {
	tests := []struct {
		name string
		id   nbt.TagID
		data []byte
		want nbt.Tag
	}{
		{"end", nbt.TagEnd, []byte{}, nbt.End{}},
		{"byte", nbt.TagByte, []byte{0x7f}, nbt.Byte(math.MaxInt8)},
		{"negative byte", nbt.TagByte, []byte{0x80}, nbt.Byte(math.MinInt8)},
		{"short", nbt.TagShort, []byte{0xff, 0xfe}, nbt.Short(-2)},
		{"short max", nbt.TagShort, []byte{0x7f, 0xff}, nbt.Short(math.MaxInt16)},
		{"int", nbt.TagInt, []byte{0x80, 0, 0, 0}, nbt.Int(math.MinInt32)},
		{"long", nbt.TagLong, []byte{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, nbt.Long(math.MaxInt64)},
		{"negative long", nbt.TagLong, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, nbt.Long(-1)},
		{"float", nbt.TagFloat, []byte{0x3f, 0x00, 0x00, 0x00}, nbt.Float(0.5)},
		{"double", nbt.TagDouble, []byte{0x3f, 0xe8, 0, 0, 0, 0, 0, 0}, nbt.Double(0.75)},
		{"byte array", nbt.TagByteArray, []byte{0, 0, 0, 2, 0xff, 0x01}, nbt.ByteArray{-1, 1}},
		{"empty byte array", nbt.TagByteArray, []byte{0, 0, 0, 0}, nbt.ByteArray{}},
		{"string", nbt.TagString, []byte{0, 5, 'h', 'e', 'l', 'l', 'o'}, nbt.String("hello")},
		{"empty string", nbt.TagString, []byte{0, 0}, nbt.String("")},
		{"list", nbt.TagList, []byte{byte(nbt.TagShort), 0, 0, 0, 2, 0, 1, 0, 2}, nbt.List{ElemID: nbt.TagShort, Items: []nbt.Tag{nbt.Short(1), nbt.Short(2)}}},
		{"empty list", nbt.TagList, []byte{byte(nbt.TagEnd), 0, 0, 0, 0}, nbt.List{ElemID: nbt.TagEnd, Items: []nbt.Tag{}}},
		{"compound", nbt.TagCompound, []byte{byte(nbt.TagByte), 0, 1, 'a', 3, byte(nbt.TagEnd)}, nbt.Compound{"a": nbt.Byte(3)}},
		{"empty compound", nbt.TagCompound, []byte{byte(nbt.TagEnd)}, nbt.Compound{}},
		{"int array", nbt.TagIntArray, []byte{0, 0, 0, 2, 0x7f, 0xff, 0xff, 0xff, 0x80, 0, 0, 0}, nbt.IntArray{math.MaxInt32, math.MinInt32}},
		{"long array", nbt.TagLongArray, []byte{0, 0, 0, 1, 0x80, 0, 0, 0, 0, 0, 0, 0}, nbt.LongArray{math.MinInt64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Prefix and suffix bytes make sure the cursor is honoured.
			buf := append([]byte{0xAA, 0xBB}, tt.data...)
			buf = append(buf, 0xCC)

			got, next, err := nbt.ReadTag(tt.id, buf, 2)
			if err != nil {
				t.Fatalf("ReadTag: %v", err)
			}
			if next != 2+len(tt.data) {
				t.Errorf("cursor advanced to %d, want %d", next, 2+len(tt.data))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %s want %s", spew.Sdump(got), spew.Sdump(tt.want))
			}
			if got.ID() != tt.id {
				t.Errorf("ID() = %s, want %s", got.ID(), tt.id)
			}
		})
	}
}

func TestIDDispatchRoundTrip(t *testing.T) {
	values := []nbt.Tag{
		nbt.Byte(-5), nbt.Short(300), nbt.Int(-70000), nbt.Long(1 << 40),
		nbt.Float(1.25), nbt.Double(-2.5), nbt.ByteArray{1, 2, 3}, nbt.String("stone"),
		nbttest.ListOf(nbt.Int(1), nbt.Int(2)), nbt.Compound{"x": nbt.Int(1)},
		nbt.IntArray{4, 5}, nbt.LongArray{6},
	}
	for _, v := range values {
		payload := nbttest.Payload(v)
		got, next, err := nbt.ReadTag(v.ID(), payload, 0)
		if err != nil {
			t.Fatalf("%s: %v", v.ID(), err)
		}
		if next != len(payload) {
			t.Errorf("%s: consumed %d of %d bytes", v.ID(), next, len(payload))
		}
		if reflect.TypeOf(got) != reflect.TypeOf(v) {
			t.Errorf("%s: decoded %T, want %T", v.ID(), got, v)
		}
	}
}

func TestParseRoot(t *testing.T) {
	root := nbt.Compound{
		"DataVersion": nbt.Int(3465),
		"Status":      nbt.String("minecraft:full"),
		"sections":    nbttest.ListOf(nbt.Compound{"Y": nbt.Byte(-4)}),
	}
	got, err := nbt.Parse(nbttest.Document(root))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, root) {
		t.Fatalf("got %s", spew.Sdump(got))
	}
}

func TestParseRootSkipsName(t *testing.T) {
	doc := []byte{byte(nbt.TagCompound), 0, 0, byte(nbt.TagByte), 0, 1, 'b', 1, 0}
	got, err := nbt.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got["b"] != nbt.Byte(1) {
		t.Fatalf("got %v", got)
	}

	named := []byte{byte(nbt.TagCompound), 0, 2, 'h', 'i', byte(nbt.TagByte), 0, 1, 'b', 1, 0}
	if got, err = nbt.Parse(named); err != nil || got["b"] != nbt.Byte(1) {
		t.Fatalf("named root: %v %v", got, err)
	}
}

func TestParseRootMustBeCompound(t *testing.T) {
	_, err := nbt.Parse([]byte{byte(nbt.TagInt), 0, 0, 0, 0, 0, 1})
	if !errors.Is(err, nbt.ErrInvalidValue) {
		t.Fatalf("got %v, want ErrInvalidValue", err)
	}
}

func TestUnknownTagID(t *testing.T) {
	_, _, err := nbt.ReadTag(13, []byte{0, 0}, 0)
	var unknown *nbt.UnknownTagError
	if !errors.As(err, &unknown) || unknown.ID != 13 {
		t.Fatalf("top level: got %v", err)
	}

	nested := []byte{byte(nbt.TagCompound), 0, 0, 13, 0, 1, 'x', 0}
	_, err = nbt.Parse(nested)
	if !errors.As(err, &unknown) || unknown.ID != 13 {
		t.Fatalf("nested: got %v", err)
	}
	if !errors.Is(err, nbt.ErrUnknownTag) {
		t.Fatalf("nested: %v does not match ErrUnknownTag", err)
	}

	list := []byte{13, 0, 0, 0, 1, 0}
	if _, _, err = nbt.ReadTag(nbt.TagList, list, 0); !errors.As(err, &unknown) {
		t.Fatalf("list: got %v", err)
	}
}

func TestTruncatedInput(t *testing.T) {
	inputs := map[string]struct {
		id   nbt.TagID
		data []byte
	}{
		"int":                {nbt.TagInt, []byte{0, 0, 1}},
		"string":             {nbt.TagString, []byte{0, 4, 'a'}},
		"byte array":         {nbt.TagByteArray, []byte{0, 0, 0, 3, 1}},
		"long array length":  {nbt.TagLongArray, []byte{0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0}},
		"compound no end":    {nbt.TagCompound, []byte{byte(nbt.TagByte), 0, 1, 'a', 1}},
		"list short":         {nbt.TagList, []byte{byte(nbt.TagInt), 0, 0, 0, 2, 0, 0, 0, 1}},
		"huge list no bytes": {nbt.TagList, []byte{byte(nbt.TagByte), 0x7f, 0xff, 0xff, 0xff}},
	}
	for name, in := range inputs {
		_, _, err := nbt.ReadTag(in.id, in.data, 0)
		if !errors.Is(err, nbt.ErrTruncated) {
			t.Errorf("%s: got %v, want ErrTruncated", name, err)
		}
	}

	if _, err := nbt.Parse(nil); !errors.Is(err, nbt.ErrTruncated) {
		t.Errorf("empty document: got %v", err)
	}
}

func TestInvalidValues(t *testing.T) {
	inputs := map[string]struct {
		id   nbt.TagID
		data []byte
	}{
		"bad utf8":       {nbt.TagString, []byte{0, 2, 0xff, 0xfe}},
		"negative array": {nbt.TagIntArray, []byte{0xff, 0xff, 0xff, 0xff}},
		"list of ends":   {nbt.TagList, []byte{byte(nbt.TagEnd), 0, 0, 0, 3}},
		"negative list":  {nbt.TagList, []byte{byte(nbt.TagByte), 0x80, 0, 0, 0}},
	}
	for name, in := range inputs {
		_, _, err := nbt.ReadTag(in.id, in.data, 0)
		if !errors.Is(err, nbt.ErrInvalidValue) {
			t.Errorf("%s: got %v, want ErrInvalidValue", name, err)
		}
	}
}

func TestDuplicateKeysLastWins(t *testing.T) {
	data := []byte{
		byte(nbt.TagByte), 0, 1, 'k', 1,
		byte(nbt.TagString), 0, 1, 'k', 0, 1, 'z',
		byte(nbt.TagEnd),
	}
	got, _, err := nbt.ReadTag(nbt.TagCompound, data, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.(nbt.Compound)["k"] != nbt.String("z") {
		t.Fatalf("got %v", got)
	}
}

func TestNestingLimit(t *testing.T) {
	var data []byte
	for i := 0; i < 600; i++ {
		data = append(data, byte(nbt.TagList), 0, 0, 0, 1)
	}
	data = append(data, byte(nbt.TagEnd), 0, 0, 0, 0)
	if _, _, err := nbt.ReadTag(nbt.TagList, data, 0); !errors.Is(err, nbt.ErrInvalidValue) {
		t.Fatalf("got %v", err)
	}
}
