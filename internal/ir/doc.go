// Package ir defines the value types of the tensor op dialect: element
// types, ranks, tensor type descriptors, attribute literals, value
// kinds, and operation instances.
//
// Everything here is an immutable value type. Instances are built once
// (by the graph builder or the textual parser), verified once, and
// never mutated afterwards. The package imports nothing internal except
// diag; all other internal packages build on top of it.
package ir
