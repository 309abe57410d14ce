package ir

import (
	"strconv"
	"strings"
)

// Attr is a sealed interface over the literal kinds an attribute may
// hold: integer, float, integer list, float list. Only the four types
// below implement it.
type Attr interface {
	attr()
	String() string
}

// IntAttr is an integer literal.
type IntAttr int64

func (IntAttr) attr() {}

func (a IntAttr) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// FloatAttr is a floating point literal.
type FloatAttr float64

func (FloatAttr) attr() {}

// String always renders a form the parser reads back as a float, so a
// round-tripped instance keeps its literal kinds.
func (a FloatAttr) String() string {
	s := strconv.FormatFloat(float64(a), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// IntListAttr is an ordered list of integer literals. A shape attribute
// is an IntListAttr whose length equals the operation's rank.
type IntListAttr []int64

func (IntListAttr) attr() {}

func (a IntListAttr) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FloatListAttr is an ordered list of float literals.
type FloatListAttr []float64

func (FloatListAttr) attr() {}

func (a FloatListAttr) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = FloatAttr(v).String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// AttrKind classifies attribute literals for schema checks.
type AttrKind uint8

const (
	AttrInt AttrKind = iota
	AttrFloat
	AttrInts
	AttrFloats
)

func (k AttrKind) String() string {
	switch k {
	case AttrInt:
		return "int"
	case AttrFloat:
		return "float"
	case AttrInts:
		return "ints"
	case AttrFloats:
		return "floats"
	default:
		return "attr"
	}
}

// ScalarAttrKind is the scalar literal kind matching an element type.
func ScalarAttrKind(elem ElementType) AttrKind {
	if elem.IsFloat() {
		return AttrFloat
	}
	return AttrInt
}

// ListAttrKind is the list literal kind matching an element type.
func ListAttrKind(elem ElementType) AttrKind {
	if elem.IsFloat() {
		return AttrFloats
	}
	return AttrInts
}

// KindOf returns the literal kind of an attribute value.
func KindOf(a Attr) AttrKind {
	switch a.(type) {
	case IntAttr:
		return AttrInt
	case FloatAttr:
		return AttrFloat
	case IntListAttr:
		return AttrInts
	default:
		return AttrFloats
	}
}

// Len returns the element count of a list attribute, or 1 for scalars.
func Len(a Attr) int {
	switch v := a.(type) {
	case IntListAttr:
		return len(v)
	case FloatListAttr:
		return len(v)
	default:
		return 1
	}
}

// AttrEqual compares two attribute literals structurally.
func AttrEqual(a, b Attr) bool {
	switch av := a.(type) {
	case IntAttr:
		bv, ok := b.(IntAttr)
		return ok && av == bv
	case FloatAttr:
		bv, ok := b.(FloatAttr)
		return ok && av == bv
	case IntListAttr:
		bv, ok := b.(IntListAttr)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case FloatListAttr:
		bv, ok := b.(FloatListAttr)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	}
	return false
}

// CountDynamic marks an attribute whose element count is not fixed by
// the descriptor (it depends on another value, such as a tensor shape).
const CountDynamic = -1

// AttrSpec declares one attribute in a descriptor's schema: its name,
// literal kind, and arity rule. Count is the required element count for
// list attributes, or CountDynamic when the count is derived at
// verification time.
type AttrSpec struct {
	Name  string
	Kind  AttrKind
	Count int
}

func (s AttrSpec) String() string {
	if s.Count >= 0 && (s.Kind == AttrInts || s.Kind == AttrFloats) {
		return s.Name + ": " + s.Kind.String() + "[" + strconv.Itoa(s.Count) + "]"
	}
	return s.Name + ": " + s.Kind.String()
}
