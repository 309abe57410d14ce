package catalog

import (
	"fmt"
	"strings"

	"github.com/tensorhost/dialect/internal/ir"
)

// Well-known attribute names. The verifier derives arity expectations
// from them: a "shape" attribute's length must equal the bound rank,
// and a "values" attribute's length must equal the element count of
// the tensor operand when its shape is statically known.
const (
	AttrShape  = "shape"
	AttrValue  = "value"
	AttrValues = "values"
)

// Codec selects how an operation's attributes are printed and parsed.
// The variant is fixed per descriptor at registration time.
type Codec interface {
	isCodec()
}

// GenericCodec is the fixed-arity fallback: attributes appear as a
// bracketed name/literal dictionary with no operation-specific logic.
type GenericCodec struct{}

func (GenericCodec) isCodec() {}

// CustomCodec is a dedicated printer/parser pair for operations whose
// attribute shape depends on the descriptor's type parameters. The
// printer must produce output the parser accepts unchanged.
type CustomCodec struct {
	Parse AttrParseFunc
	Print AttrPrintFunc
}

func (CustomCodec) isCodec() {}

// AttrParseFunc binds the raw attribute literals of one textual
// operation to named attributes, checking kinds and arities implied by
// the descriptor's type parameters.
type AttrParseFunc func(d *Descriptor, lits []ir.Attr) (map[string]ir.Attr, error)

// AttrPrintFunc is the inverse: it lays the named attributes out as
// the literal sequence the paired parser consumes.
type AttrPrintFunc func(d *Descriptor, attrs map[string]ir.Attr) ([]ir.Attr, error)

// Codec error kinds.
const (
	ErrCodeAttributeArityMismatch = "ATTRIBUTE_ARITY_MISMATCH"
	ErrCodeTypeMismatch           = "TYPE_MISMATCH"
)

// CodecError reports a custom codec rejecting the attribute literals
// of one operation. It is instance-scoped and non-fatal.
type CodecError struct {
	Kind     string
	Mnemonic string
	Message  string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Mnemonic, e.Message)
}

// Descriptor is the structural template of one fully monomorphized
// operation: its mnemonic, operand and result kinds in order, attribute
// schema, side-effect flag, and codec.
//
// Elem and Rank record the type parameters the family generator bound;
// Ranked is false for type-only families. Custom codecs and the
// verifier read them back instead of re-parsing the mnemonic.
type Descriptor struct {
	Mnemonic string
	Base     string
	Elem     ir.ElementType
	Rank     ir.Rank
	Ranked   bool

	Operands []ir.ValueKind
	Results  []ir.ValueKind
	Attrs    []ir.AttrSpec

	// SideEffecting marks operations that touch a resource outside the
	// dataflow graph. Such operations take exactly one chain operand
	// and produce exactly one chain result.
	SideEffecting bool

	Codec Codec
}

// AttrSpec returns the schema entry for the named attribute.
func (d *Descriptor) AttrSpec(name string) (ir.AttrSpec, bool) {
	for _, s := range d.Attrs {
		if s.Name == name {
			return s, true
		}
	}
	return ir.AttrSpec{}, false
}

func countChains(kinds []ir.ValueKind) int {
	n := 0
	for _, k := range kinds {
		if k.IsChain() {
			n++
		}
	}
	return n
}

// ChainsBalanced reports whether the descriptor declares exactly one
// chain operand and one chain result.
func (d *Descriptor) ChainsBalanced() bool {
	return countChains(d.Operands) == 1 && countChains(d.Results) == 1
}

// Signature renders the descriptor in the stable one-line form used by
// catalog dumps:
//
//	dht.fill_tensor_with_constant.i32 : (i32.*, chain) -> (chain) {value: int} side_effecting
func (d *Descriptor) Signature() string {
	var b strings.Builder
	b.WriteString(d.Mnemonic)
	b.WriteString(" : (")
	b.WriteString(joinKinds(d.Operands))
	b.WriteString(") -> (")
	b.WriteString(joinKinds(d.Results))
	b.WriteString(")")
	if len(d.Attrs) > 0 {
		b.WriteString(" {")
		for i, s := range d.Attrs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.String())
		}
		b.WriteString("}")
	}
	if d.SideEffecting {
		b.WriteString(" side_effecting")
	}
	return b.String()
}

func joinKinds(kinds []ir.ValueKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}
