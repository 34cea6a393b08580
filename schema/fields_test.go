package schema_test

import (
	"errors"
	"testing"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

func TestDecodeFieldKinds(t *testing.T) {
	c := nbt.Compound{
		"req":     nbt.Int(7),
		"opt":     nbt.String("name"),
		"extra":   nbt.Byte(1),
		"default": nbt.Short(3),
	}

	var (
		req      int32
		opt      *string
		absent   *string
		def      int16
		fallback int64
	)
	err := schema.Decode("Record", c,
		schema.Required("req", &req, nbt.AsInt),
		schema.Optional("opt", &opt, nbt.AsString),
		schema.Optional("absent", &absent, nbt.AsString),
		schema.Default("default", &def, 9, nbt.AsShort),
		schema.Default("fallback", &fallback, 42, nbt.AsLong),
	)
	if err != nil {
		t.Fatal(err)
	}
	if req != 7 || opt == nil || *opt != "name" || absent != nil || def != 3 || fallback != 42 {
		t.Fatalf("req=%d opt=%v absent=%v def=%d fallback=%d", req, opt, absent, def, fallback)
	}
	if len(c) != 1 || c["extra"] != nbt.Byte(1) {
		t.Fatalf("consumed keys left behind or unknown key dropped: %v", c)
	}
}

func TestDecodeMissingRequired(t *testing.T) {
	var a, b int32
	err := schema.Decode("Record", nbt.Compound{"a": nbt.Int(1)},
		schema.Required("a", &a, nbt.AsInt),
		schema.Required("b", &b, nbt.AsInt),
	)
	var missing *schema.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v", err)
	}
	if missing.Record != "Record" || missing.Field != "b" {
		t.Fatalf("got %+v", missing)
	}
	if !errors.Is(err, schema.ErrMissingField) {
		t.Fatal("MissingFieldError does not match ErrMissingField")
	}
}

func TestDecodeConversionFailure(t *testing.T) {
	var a int32
	err := schema.Decode("Record", nbt.Compound{"a": nbt.String("x")},
		schema.Required("a", &a, nbt.AsInt),
	)
	var fieldErr *schema.FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "a" {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, nbt.ErrInvalidValue) {
		t.Fatalf("cause lost: %v", err)
	}
	if errors.Is(err, schema.ErrMissingField) {
		t.Fatal("a present but mistyped field is not missing")
	}
}

func TestFieldPath(t *testing.T) {
	type inner struct{ ID string }
	decodeInner := func(c nbt.Compound) (v inner, err error) {
		err = schema.Decode("Inner", c, schema.Required("id", &v.ID, nbt.AsString))
		return
	}

	var items []inner
	err := schema.Decode("Outer", nbt.Compound{
		"Items": nbt.List{ElemID: nbt.TagCompound, Items: []nbt.Tag{
			nbt.Compound{"id": nbt.String("a")},
			nbt.Compound{},
		}},
	}, schema.Required("Items", &items, nbt.ListOf(schema.FromCompound(decodeInner))))

	if got, want := schema.FieldPath(err), "Outer.Items[1].id"; got != want {
		t.Fatalf("FieldPath = %q, want %q", got, want)
	}
	if got, want := err.Error(), "schema: Outer.Items[1].id: missing required field"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	var missing *schema.MissingFieldError
	if !errors.As(err, &missing) || missing.Record != "Inner" {
		t.Fatalf("innermost error not reachable: %v", err)
	}
}
