package dht

import (
	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/ir"
)

// Family base mnemonics.
const (
	BaseCreateUninitialized = "dht.create_uninitialized_tensor"
	BaseMakeTensor          = "dht.make_tensor"
	BaseFillConstant        = "dht.fill_tensor_with_constant"
	BaseSetValues           = "dht.set_tensor_with_constant_values"
	BaseTensorEqual         = "dht.tensor_equal"
	BasePrintTensor         = "dht.print_tensor"
)

// ElementTypes is the declared element type set the dialect
// instantiates its families over, in declaration order.
func ElementTypes() []ir.ElementType {
	return []ir.ElementType{ir.I32, ir.I64, ir.F32, ir.F64}
}

// Ranks is the declared rank set for type-and-rank families.
func Ranks() []ir.Rank {
	ranks := make([]ir.Rank, 0, ir.MaxRank+1)
	for r := ir.Rank(0); r <= ir.MaxRank; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// NewRegistry builds the full dht catalog over the declared element
// types and ranks. The catalog is read-only once built.
func NewRegistry() (*catalog.Registry, error) {
	r := catalog.NewRegistry()
	if err := Register(r, ElementTypes(), Ranks()); err != nil {
		return nil, err
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on a malformed catalog.
// Registration only fails on a naming collision, so a panic here means
// a programming error, never bad user input.
func MustRegistry() *catalog.Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Register expands every dht family over the given parameter sets into
// an existing registry. Tests use it to build reduced catalogs.
func Register(r *catalog.Registry, elems []ir.ElementType, ranks []ir.Rank) error {
	if err := catalog.RegisterTypeRankFamily(r, elems, ranks, createUninitialized); err != nil {
		return err
	}
	for _, tmpl := range []catalog.Template{makeTensor, fillConstant, setValues, tensorEqual, printTensor} {
		if err := catalog.RegisterTypeFamily(r, elems, tmpl); err != nil {
			return err
		}
	}
	return nil
}

// createUninitialized allocates a tensor of a static shape without
// initializing its buffer. The shape attribute's length is the rank
// baked into the mnemonic; rank 0 takes an empty shape.
func createUninitialized(elem ir.ElementType, rank ir.Rank) *catalog.Descriptor {
	return &catalog.Descriptor{
		Base:    BaseCreateUninitialized,
		Results: []ir.ValueKind{ir.TensorKind(elem, rank)},
		Attrs: []ir.AttrSpec{
			{Name: catalog.AttrShape, Kind: ir.AttrInts, Count: int(rank)},
		},
		Codec: catalog.CustomCodec{Parse: parseShapeAttr, Print: printShapeAttr},
	}
}

// makeTensor wraps an existing host buffer as a tensor.
func makeTensor(elem ir.ElementType) *catalog.Descriptor {
	return &catalog.Descriptor{
		Base:          BaseMakeTensor,
		Operands:      []ir.ValueKind{ir.BufferKind(), ir.ChainKind()},
		Results:       []ir.ValueKind{ir.UnrankedTensorKind(elem), ir.ChainKind()},
		SideEffecting: true,
	}
}

// fillConstant writes one scalar constant into every element.
func fillConstant(elem ir.ElementType) *catalog.Descriptor {
	return &catalog.Descriptor{
		Base:          BaseFillConstant,
		Operands:      []ir.ValueKind{ir.UnrankedTensorKind(elem), ir.ChainKind()},
		Results:       []ir.ValueKind{ir.ChainKind()},
		SideEffecting: true,
		Attrs: []ir.AttrSpec{
			{Name: catalog.AttrValue, Kind: ir.ScalarAttrKind(elem), Count: 1},
		},
		Codec: catalog.CustomCodec{Parse: parseScalarAttr, Print: printScalarAttr},
	}
}

// setValues writes an explicit value list into a tensor. The list
// length must equal the tensor's element count; the verifier checks it
// whenever the operand's shape is statically known.
func setValues(elem ir.ElementType) *catalog.Descriptor {
	return &catalog.Descriptor{
		Base:          BaseSetValues,
		Operands:      []ir.ValueKind{ir.UnrankedTensorKind(elem), ir.ChainKind()},
		Results:       []ir.ValueKind{ir.ChainKind()},
		SideEffecting: true,
		Attrs: []ir.AttrSpec{
			{Name: catalog.AttrValues, Kind: ir.ListAttrKind(elem), Count: ir.CountDynamic},
		},
		Codec: catalog.CustomCodec{Parse: parseValuesAttr, Print: printValuesAttr},
	}
}

// tensorEqual compares two tensors element-wise, producing a scalar i1.
func tensorEqual(elem ir.ElementType) *catalog.Descriptor {
	return &catalog.Descriptor{
		Base: BaseTensorEqual,
		Operands: []ir.ValueKind{
			ir.UnrankedTensorKind(elem),
			ir.UnrankedTensorKind(elem),
			ir.ChainKind(),
		},
		Results:       []ir.ValueKind{ir.TensorKind(ir.I1, 0), ir.ChainKind()},
		SideEffecting: true,
	}
}

// printTensor renders a tensor to the host's output.
func printTensor(elem ir.ElementType) *catalog.Descriptor {
	return &catalog.Descriptor{
		Base:          BasePrintTensor,
		Operands:      []ir.ValueKind{ir.UnrankedTensorKind(elem), ir.ChainKind()},
		Results:       []ir.ValueKind{ir.ChainKind()},
		SideEffecting: true,
	}
}
