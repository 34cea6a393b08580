// Package schema maps decoded NBT compounds onto typed chunk, block entity
// and entity records.
//
// Each record is described by a table of fields. Decode consumes the keys it
// knows from the compound, converts them and then checks that every required
// field was seen. Keys nobody asked for stay in the compound, which is what
// catch-all records keep.
package schema

import (
	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

// Field describes one key of a record.
type Field interface {
	Key() string
	decode(nbt.Tag) error
	// finish applies defaults and reports whether the field is satisfied.
	finish() bool
}

type required[T any] struct {
	key  string
	dst  *T
	conv nbt.Converter[T]
	seen bool
}

// Required fails the record with a MissingFieldError when key is absent.
func Required[T any](key string, dst *T, conv nbt.Converter[T]) Field {
	return &required[T]{key: key, dst: dst, conv: conv}
}

func (f *required[T]) Key() string { return f.key }

func (f *required[T]) decode(t nbt.Tag) (err error) {
	*f.dst, err = f.conv(t)
	f.seen = err == nil
	return
}

func (f *required[T]) finish() bool { return f.seen }

type optional[T any] struct {
	key  string
	dst  **T
	conv nbt.Converter[T]
}

// Optional leaves *dst nil when key is absent.
func Optional[T any](key string, dst **T, conv nbt.Converter[T]) Field {
	return &optional[T]{key: key, dst: dst, conv: conv}
}

func (f *optional[T]) Key() string { return f.key }

func (f *optional[T]) decode(t nbt.Tag) error {
	v, err := f.conv(t)
	if err != nil {
		return err
	}
	*f.dst = &v
	return nil
}

func (f *optional[T]) finish() bool { return true }

type withDefault[T any] struct {
	key  string
	dst  *T
	def  T
	conv nbt.Converter[T]
	seen bool
}

// Default stores def in *dst when key is absent.
func Default[T any](key string, dst *T, def T, conv nbt.Converter[T]) Field {
	return &withDefault[T]{key: key, dst: dst, def: def, conv: conv}
}

// OrZero is Default with the zero value of T, typically a nil slice or map.
func OrZero[T any](key string, dst *T, conv nbt.Converter[T]) Field {
	var zero T
	return Default(key, dst, zero, conv)
}

func (f *withDefault[T]) Key() string { return f.key }

func (f *withDefault[T]) decode(t nbt.Tag) (err error) {
	*f.dst, err = f.conv(t)
	f.seen = err == nil
	return
}

func (f *withDefault[T]) finish() bool {
	if !f.seen {
		*f.dst = f.def
	}
	return true
}

// Decode fills a record from c. Every key named by fields is removed from c
// when present. A failed conversion is returned at once as a FieldError; once
// all keys are consumed the first unsatisfied required field is returned as
// a MissingFieldError.
func Decode(record string, c nbt.Compound, fields ...Field) error {
	for _, f := range fields {
		tag, ok := c.Take(f.Key())
		if !ok {
			continue
		}
		if err := f.decode(tag); err != nil {
			return &FieldError{Record: record, Field: f.Key(), Err: err}
		}
	}
	for _, f := range fields {
		if !f.finish() {
			return &MissingFieldError{Record: record, Field: f.Key()}
		}
	}
	return nil
}

// FromCompound lifts a compound decoder into a converter so records nest
// inside lists, maps and other records.
func FromCompound[T any](decode func(nbt.Compound) (T, error)) nbt.Converter[T] {
	return func(t nbt.Tag) (T, error) {
		c, err := nbt.AsCompound(t)
		if err != nil {
			var zero T
			return zero, err
		}
		return decode(c)
	}
}
