package ir

// KindClass discriminates the three kinds of values an operation can
// consume or produce.
type KindClass uint8

const (
	// KindTensor is a tensor value with an element type and, usually,
	// a statically known rank.
	KindTensor KindClass = iota
	// KindBuffer is an opaque host buffer.
	KindBuffer
	// KindChain is an ordering-only chain token. It carries no data;
	// threading one from a producer to a consumer pins their relative
	// order in an otherwise order-free graph.
	KindChain
)

// ValueKind describes the kind of one operand or result slot. Tensor
// kinds may leave the rank open (Ranked == false) on descriptors of
// type-only families, where the rank is not part of the mnemonic.
type ValueKind struct {
	Class  KindClass
	Elem   ElementType // tensors only
	Rank   Rank        // tensors only, meaningful when Ranked
	Ranked bool
}

// TensorKind is a tensor kind with a statically known rank.
func TensorKind(elem ElementType, rank Rank) ValueKind {
	return ValueKind{Class: KindTensor, Elem: elem, Rank: rank, Ranked: true}
}

// UnrankedTensorKind is a tensor kind constrained by element type only.
func UnrankedTensorKind(elem ElementType) ValueKind {
	return ValueKind{Class: KindTensor, Elem: elem}
}

// BufferKind is the opaque buffer kind.
func BufferKind() ValueKind {
	return ValueKind{Class: KindBuffer}
}

// ChainKind is the ordering token kind.
func ChainKind() ValueKind {
	return ValueKind{Class: KindChain}
}

// IsChain reports whether the kind is a chain token.
func (k ValueKind) IsChain() bool {
	return k.Class == KindChain
}

// TensorType returns the concrete tensor type, if the kind is a tensor
// with a known rank.
func (k ValueKind) TensorType() (TensorType, bool) {
	if k.Class != KindTensor || !k.Ranked {
		return TensorType{}, false
	}
	return TensorType{Elem: k.Elem, Rank: k.Rank}, true
}

// Accepts reports whether a value of kind v may occupy a slot declared
// as k. An unranked tensor slot accepts any rank of the same element
// type; there is no coercion between element types.
func (k ValueKind) Accepts(v ValueKind) bool {
	if k.Class != v.Class {
		return false
	}
	if k.Class != KindTensor {
		return true
	}
	if k.Elem != v.Elem {
		return false
	}
	if !k.Ranked {
		return true
	}
	return v.Ranked && k.Rank == v.Rank
}

// String renders "chain", "buffer", "i32.2", or "i32.*" for an
// unranked tensor slot.
func (k ValueKind) String() string {
	switch k.Class {
	case KindChain:
		return "chain"
	case KindBuffer:
		return "buffer"
	default:
		if k.Ranked {
			return TensorType{Elem: k.Elem, Rank: k.Rank}.String()
		}
		return k.Elem.String() + ".*"
	}
}

// ParseValueKind parses the renderings produced by String, except the
// unranked form, which never appears in programs.
func ParseValueKind(s string) (ValueKind, error) {
	switch s {
	case "chain":
		return ChainKind(), nil
	case "buffer":
		return BufferKind(), nil
	}
	t, err := ParseTensorType(s)
	if err != nil {
		return ValueKind{}, err
	}
	return TensorKind(t.Elem, t.Rank), nil
}

// ValueRef names one value in a program together with its bound kind.
type ValueRef struct {
	Name string
	Kind ValueKind
}
