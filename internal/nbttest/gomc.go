package nbttest

import (
	"testing"

	gomcnbt "github.com/Tnze/go-mc/nbt"
)

// Marshal encodes v with go-mc's encoder as an unnamed root compound. It
// gives fixtures that do not come from Document's writer.
func Marshal(t testing.TB, v any) []byte {
	t.Helper()
	data, err := gomcnbt.Marshal(v)
	if err != nil {
		t.Fatalf("nbttest: marshal %T: %v", v, err)
	}
	return data
}

// Unmarshal decodes a document with go-mc's decoder.
func Unmarshal(t testing.TB, data []byte, v any) {
	t.Helper()
	if err := gomcnbt.Unmarshal(data, v); err != nil {
		t.Fatalf("nbttest: unmarshal into %T: %v", v, err)
	}
}
