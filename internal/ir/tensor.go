package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementType is the scalar element type of a tensor. The set is fixed;
// element types are compared by equality only.
type ElementType uint8

const (
	I1 ElementType = iota
	I32
	I64
	F32
	F64
)

// String returns the tag used in mnemonics and type renderings.
func (t ElementType) String() string {
	switch t {
	case I1:
		return "i1"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("elem(%d)", uint8(t))
	}
}

// IsFloat reports whether the element type is a floating point type.
func (t ElementType) IsFloat() bool {
	return t == F32 || t == F64
}

// ParseElementType resolves a tag like "i32" back to its element type.
func ParseElementType(s string) (ElementType, error) {
	for _, t := range []ElementType{I1, I32, I64, F32, F64} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

// MaxRank bounds the ranks the dialect instantiates families over.
const MaxRank = 4

// Rank is the number of dimensions of a tensor. Rank 0 is a scalar.
type Rank int

// InvalidRankError reports a negative rank at construction time.
type InvalidRankError struct {
	Rank int
}

func (e *InvalidRankError) Error() string {
	return fmt.Sprintf("invalid rank %d: rank must be non-negative", e.Rank)
}

// TensorType pairs an element type with a rank. Two tensor types are
// equal iff both fields are equal.
type TensorType struct {
	Elem ElementType
	Rank Rank
}

// NewTensorType builds a tensor type, rejecting negative ranks.
func NewTensorType(elem ElementType, rank int) (TensorType, error) {
	if rank < 0 {
		return TensorType{}, &InvalidRankError{Rank: rank}
	}
	return TensorType{Elem: elem, Rank: Rank(rank)}, nil
}

// String renders the canonical "<elem>.<rank>" form, e.g. "i32.2".
// The rendering doubles as the type suffix of generated mnemonics.
func (t TensorType) String() string {
	return t.Elem.String() + "." + strconv.Itoa(int(t.Rank))
}

// ParseTensorType parses the canonical "<elem>.<rank>" rendering.
func ParseTensorType(s string) (TensorType, error) {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return TensorType{}, fmt.Errorf("malformed tensor type %q: want <elem>.<rank>", s)
	}
	elem, err := ParseElementType(s[:i])
	if err != nil {
		return TensorType{}, fmt.Errorf("malformed tensor type %q: %w", s, err)
	}
	rank, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return TensorType{}, fmt.Errorf("malformed tensor type %q: bad rank", s)
	}
	return NewTensorType(elem, rank)
}
