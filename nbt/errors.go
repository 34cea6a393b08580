package nbt

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated    = errors.New("nbt: unexpected end of input")
	ErrInvalidValue = errors.New("nbt: invalid value")
	ErrUnknownTag   = errors.New("nbt: unknown tag id")
)

// UnknownTagError reports a type byte outside of the 0-12 range.
type UnknownTagError struct {
	ID     byte
	Offset int
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("nbt: unknown tag id %d at offset %d", e.ID, e.Offset)
}

func (e *UnknownTagError) Is(target error) bool { return target == ErrUnknownTag }

// TypeError reports a value of a different variant than the one requested.
type TypeError struct {
	Want TagID
	Got  TagID
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("nbt: expected %s, got %s", e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool { return target == ErrInvalidValue }

// ElementError locates a failed conversion inside a list or compound.
type ElementError struct {
	Index int
	Key   string
	InMap bool
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("nbt: element %s: %s", e.Position(), e.Err)
}

// Position renders the index or key as it would appear in a field path.
func (e *ElementError) Position() string {
	if e.InMap {
		return fmt.Sprintf("[%q]", e.Key)
	}
	return fmt.Sprintf("[%d]", e.Index)
}

func (e *ElementError) Unwrap() error { return e.Err }
