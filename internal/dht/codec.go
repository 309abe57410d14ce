package dht

import (
	"fmt"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/ir"
)

// Custom attribute codecs. Each consumes exactly the literals implied
// by the descriptor's bound type parameters and produces output its
// printer counterpart emits unchanged.

func arityErr(d *catalog.Descriptor, format string, args ...any) error {
	return &catalog.CodecError{
		Kind:     catalog.ErrCodeAttributeArityMismatch,
		Mnemonic: d.Mnemonic,
		Message:  fmt.Sprintf(format, args...),
	}
}

func typeErr(d *catalog.Descriptor, format string, args ...any) error {
	return &catalog.CodecError{
		Kind:     catalog.ErrCodeTypeMismatch,
		Mnemonic: d.Mnemonic,
		Message:  fmt.Sprintf(format, args...),
	}
}

// parseShapeAttr binds one integer list literal as the shape. Its
// length must equal the rank baked into the mnemonic.
func parseShapeAttr(d *catalog.Descriptor, lits []ir.Attr) (map[string]ir.Attr, error) {
	if len(lits) != 1 {
		return nil, arityErr(d, "expected one shape literal, got %d", len(lits))
	}
	dims, ok := lits[0].(ir.IntListAttr)
	if !ok {
		return nil, typeErr(d, "shape must be an integer list, got %s", ir.KindOf(lits[0]))
	}
	if len(dims) != int(d.Rank) {
		return nil, arityErr(d, "shape has %d dimensions, expected %d", len(dims), d.Rank)
	}
	return map[string]ir.Attr{catalog.AttrShape: dims}, nil
}

func printShapeAttr(d *catalog.Descriptor, attrs map[string]ir.Attr) ([]ir.Attr, error) {
	shape, ok := attrs[catalog.AttrShape]
	if !ok {
		return nil, fmt.Errorf("missing attribute %q", catalog.AttrShape)
	}
	return []ir.Attr{shape}, nil
}

// parseScalarAttr binds one scalar literal whose kind must match the
// operation's element type: an integer for integer element types, a
// float for floating point ones.
func parseScalarAttr(d *catalog.Descriptor, lits []ir.Attr) (map[string]ir.Attr, error) {
	if len(lits) != 1 {
		return nil, arityErr(d, "expected one constant literal, got %d", len(lits))
	}
	want := ir.ScalarAttrKind(d.Elem)
	if got := ir.KindOf(lits[0]); got != want {
		return nil, typeErr(d, "constant is %s, expected %s for element type %s", got, want, d.Elem)
	}
	return map[string]ir.Attr{catalog.AttrValue: lits[0]}, nil
}

func printScalarAttr(d *catalog.Descriptor, attrs map[string]ir.Attr) ([]ir.Attr, error) {
	v, ok := attrs[catalog.AttrValue]
	if !ok {
		return nil, fmt.Errorf("missing attribute %q", catalog.AttrValue)
	}
	return []ir.Attr{v}, nil
}

// parseValuesAttr binds one list literal whose element kind must match
// the operation's element type. The list length is checked against the
// tensor operand's shape by the verifier, which sees the whole program.
func parseValuesAttr(d *catalog.Descriptor, lits []ir.Attr) (map[string]ir.Attr, error) {
	if len(lits) != 1 {
		return nil, arityErr(d, "expected one value list literal, got %d", len(lits))
	}
	want := ir.ListAttrKind(d.Elem)
	lit := lits[0]
	// An empty list lexes as an integer list; widen it for float ops.
	if il, ok := lit.(ir.IntListAttr); ok && len(il) == 0 && want == ir.AttrFloats {
		lit = ir.FloatListAttr{}
	}
	if got := ir.KindOf(lit); got != want {
		return nil, typeErr(d, "values are %s, expected %s for element type %s", got, want, d.Elem)
	}
	return map[string]ir.Attr{catalog.AttrValues: lit}, nil
}

func printValuesAttr(d *catalog.Descriptor, attrs map[string]ir.Attr) ([]ir.Attr, error) {
	v, ok := attrs[catalog.AttrValues]
	if !ok {
		return nil, fmt.Errorf("missing attribute %q", catalog.AttrValues)
	}
	return []ir.Attr{v}, nil
}
