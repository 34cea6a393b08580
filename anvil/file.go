package anvil

import (
	"fmt"
	"os"
)

// ReadError is an I/O failure while reading a region file, as opposed to a
// problem with its contents.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("anvil: could not read %s: %s", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ReadFile loads a whole region file into memory.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return data, nil
}

// DecodeRegionFile reads and decodes the region file at path.
func DecodeRegionFile(path string, opts ...Option) (*AnvilSave, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	save, err := DecodeRegion(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return save, nil
}

// DecodeEntityRegionFile reads and decodes the entities region file at path.
func DecodeEntityRegionFile(path string, opts ...Option) (*EntitySave, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	save, err := DecodeEntityRegion(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return save, nil
}
