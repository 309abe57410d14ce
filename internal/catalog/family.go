package catalog

import (
	"strconv"

	"github.com/tensorhost/dialect/internal/ir"
)

// Mnemonic builds the name of a type-only family member:
// base + "." + elem tag.
func Mnemonic(base string, elem ir.ElementType) string {
	return base + "." + elem.String()
}

// RankedMnemonic builds the name of a type-and-rank family member:
// base + "." + elem tag + "." + rank.
//
// Every type parameter appears in the name, so distinct parameter
// tuples of one family can never collapse to the same mnemonic, and
// two families collide only if their bases do - which Register rejects.
func RankedMnemonic(base string, elem ir.ElementType, rank ir.Rank) string {
	return Mnemonic(base, elem) + "." + strconv.Itoa(int(rank))
}

// Template produces the descriptor skeleton of a type-only family for
// one element type. The generator fills in Mnemonic and Elem.
type Template func(elem ir.ElementType) *Descriptor

// RankedTemplate produces the skeleton of a type-and-rank family for
// one (element type, rank) pair.
type RankedTemplate func(elem ir.ElementType, rank ir.Rank) *Descriptor

// RegisterTypeFamily expands a type-only family over the declared
// element types, in declaration order, registering one descriptor per
// element type. Any registration failure aborts the expansion.
func RegisterTypeFamily(r *Registry, elems []ir.ElementType, tmpl Template) error {
	for _, elem := range elems {
		d := tmpl(elem)
		d.Mnemonic = Mnemonic(d.Base, elem)
		d.Elem = elem
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTypeRankFamily expands a type-and-rank family over the cross
// product of the declared element types and ranks, ranks innermost,
// both in declaration order.
func RegisterTypeRankFamily(r *Registry, elems []ir.ElementType, ranks []ir.Rank, tmpl RankedTemplate) error {
	for _, elem := range elems {
		for _, rank := range ranks {
			d := tmpl(elem, rank)
			d.Mnemonic = RankedMnemonic(d.Base, elem, rank)
			d.Elem = elem
			d.Rank = rank
			d.Ranked = true
			if err := r.Register(d); err != nil {
				return err
			}
		}
	}
	return nil
}
