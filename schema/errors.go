package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
)

var ErrMissingField = errors.New("schema: missing required field")

// MissingFieldError names the required field a record could not find.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("schema: %s is missing required field %q", e.Record, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// FieldError wraps a failure below one field of a record. Nested records
// produce a chain of FieldErrors and nbt.ElementErrors ending in the cause.
type FieldError struct {
	Record string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: %s: %s", FieldPath(e), cause(e))
}

func (e *FieldError) Unwrap() error { return e.Err }

// FieldPath renders the location of a decode failure, for example
// ChunkData.block_entities[3].Items[0].id. It returns "" for errors that do
// not come from a record.
func FieldPath(err error) string {
	var b strings.Builder
	for err != nil {
		switch e := err.(type) {
		case *FieldError:
			if b.Len() == 0 {
				b.WriteString(e.Record)
			}
			b.WriteString(".")
			b.WriteString(e.Field)
		case *MissingFieldError:
			if b.Len() == 0 {
				b.WriteString(e.Record)
			}
			b.WriteString(".")
			b.WriteString(e.Field)
			return b.String()
		case *nbt.ElementError:
			b.WriteString(e.Position())
		}
		err = errors.Unwrap(err)
	}
	return b.String()
}

func cause(err error) string {
	for {
		switch e := err.(type) {
		case *FieldError:
			err = e.Err
		case *nbt.ElementError:
			err = e.Err
		case *MissingFieldError:
			return "missing required field"
		default:
			return err.Error()
		}
	}
}
