package nbt

// Converter turns a Tag into a Go value of type T.
type Converter[T any] func(Tag) (T, error)

func as[T Tag](t Tag, want TagID) (T, error) {
	v, ok := t.(T)
	if !ok {
		var zero T
		return zero, &TypeError{Want: want, Got: idOf(t)}
	}
	return v, nil
}

func AsByte(t Tag) (int8, error) {
	v, err := as[Byte](t, TagByte)
	return int8(v), err
}

func AsShort(t Tag) (int16, error) {
	v, err := as[Short](t, TagShort)
	return int16(v), err
}

func AsInt(t Tag) (int32, error) {
	v, err := as[Int](t, TagInt)
	return int32(v), err
}

func AsLong(t Tag) (int64, error) {
	v, err := as[Long](t, TagLong)
	return int64(v), err
}

func AsFloat(t Tag) (float32, error) {
	v, err := as[Float](t, TagFloat)
	return float32(v), err
}

func AsDouble(t Tag) (float64, error) {
	v, err := as[Double](t, TagDouble)
	return float64(v), err
}

func AsByteArray(t Tag) ([]int8, error) {
	v, err := as[ByteArray](t, TagByteArray)
	return []int8(v), err
}

// AsBytes returns a byte array reinterpreted as unsigned bytes, which is how
// light and nibble arrays are consumed.
func AsBytes(t Tag) ([]byte, error) {
	v, err := as[ByteArray](t, TagByteArray)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(v))
	for i, b := range v {
		out[i] = byte(b)
	}
	return out, nil
}

func AsString(t Tag) (string, error) {
	v, err := as[String](t, TagString)
	return string(v), err
}

func AsList(t Tag) (List, error) {
	return as[List](t, TagList)
}

func AsCompound(t Tag) (Compound, error) {
	return as[Compound](t, TagCompound)
}

func AsIntArray(t Tag) ([]int32, error) {
	v, err := as[IntArray](t, TagIntArray)
	return []int32(v), err
}

func AsLongArray(t Tag) ([]int64, error) {
	v, err := as[LongArray](t, TagLongArray)
	return []int64(v), err
}

// Bool reads the boolean convention of the format: a byte equal to 1 is true,
// every other byte value is false. Non-byte tags are a type error.
func Bool(t Tag) (bool, error) {
	v, err := as[Byte](t, TagByte)
	return v == 1, err
}

// Raw passes the tag through unchanged.
func Raw(t Tag) (Tag, error) { return t, nil }

// ListOf converts every item of a list with conv. The first failing item
// aborts the conversion.
func ListOf[T any](conv Converter[T]) Converter[[]T] {
	return func(t Tag) ([]T, error) {
		list, err := AsList(t)
		if err != nil {
			return nil, err
		}
		out := make([]T, 0, len(list.Items))
		for i, item := range list.Items {
			v, err := conv(item)
			if err != nil {
				return nil, &ElementError{Index: i, Err: err}
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// MapOf converts every value of a compound with conv. The first failing value
// aborts the conversion.
func MapOf[T any](conv Converter[T]) Converter[map[string]T] {
	return func(t Tag) (map[string]T, error) {
		c, err := AsCompound(t)
		if err != nil {
			return nil, err
		}
		out := make(map[string]T, len(c))
		for k, item := range c {
			v, err := conv(item)
			if err != nil {
				return nil, &ElementError{Key: k, InMap: true, Err: err}
			}
			out[k] = v
		}
		return out, nil
	}
}
