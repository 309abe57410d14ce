package ir

import (
	"sort"

	"github.com/tensorhost/dialect/internal/diag"
)

// OpInstance is one concrete operation in a program: a descriptor
// reference (by mnemonic, never an embedded copy), bound operand and
// result values, and attribute literals. Instances are immutable once
// verified.
type OpInstance struct {
	Mnemonic string
	Operands []ValueRef
	Results  []ValueRef
	Attrs    map[string]Attr

	// Loc is the source position the instance was parsed from, when it
	// came from text. Excluded from equality and canonical encoding.
	Loc diag.Location
}

// Attr returns the named attribute literal, if present.
func (i *OpInstance) Attr(name string) (Attr, bool) {
	a, ok := i.Attrs[name]
	return a, ok
}

// AttrNames returns the attribute names in sorted order.
func (i *OpInstance) AttrNames() []string {
	names := make([]string, 0, len(i.Attrs))
	for name := range i.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChainOperand returns the first chain-kind operand, if any.
func (i *OpInstance) ChainOperand() (ValueRef, bool) {
	return firstChain(i.Operands)
}

// ChainResult returns the first chain-kind result, if any.
func (i *OpInstance) ChainResult() (ValueRef, bool) {
	return firstChain(i.Results)
}

func firstChain(refs []ValueRef) (ValueRef, bool) {
	for _, r := range refs {
		if r.Kind.IsChain() {
			return r, true
		}
	}
	return ValueRef{}, false
}

// Equal compares two instances structurally: mnemonic, operands,
// results, and attribute literals. Source locations are ignored.
func (i *OpInstance) Equal(o *OpInstance) bool {
	if i.Mnemonic != o.Mnemonic {
		return false
	}
	if !refsEqual(i.Operands, o.Operands) || !refsEqual(i.Results, o.Results) {
		return false
	}
	if len(i.Attrs) != len(o.Attrs) {
		return false
	}
	for name, a := range i.Attrs {
		b, ok := o.Attrs[name]
		if !ok || !AttrEqual(a, b) {
			return false
		}
	}
	return true
}

func refsEqual(a, b []ValueRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Program is an ordered sequence of operation instances plus the
// graph-entry values (root chains, buffers, tensors) they may consume.
// The order of Ops is construction order; it carries no execution
// semantics beyond the data and chain edges between instances.
type Program struct {
	Inputs []ValueRef
	Ops    []*OpInstance
}

// Equal compares two programs structurally.
func (p *Program) Equal(o *Program) bool {
	if !refsEqual(p.Inputs, o.Inputs) || len(p.Ops) != len(o.Ops) {
		return false
	}
	for i := range p.Ops {
		if !p.Ops[i].Equal(o.Ops[i]) {
			return false
		}
	}
	return true
}
