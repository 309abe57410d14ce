// Package syntax implements the line-oriented surface syntax of the
// dialect:
//
//	input %ch0 chain
//	%t = dht.create_uninitialized_tensor.i32.2 [3, 2]
//	%ch1 = dht.fill_tensor_with_constant.i32 %t, %ch0 41
//
// Each operation line is "<results> = <mnemonic> <operands>
// <attributes>"; the results part is omitted for operations with no
// results. Attributes are either a generic "{name = literal, ...}"
// dictionary or, for operations registered with a custom codec, a bare
// literal sequence whose shape depends on the operation's type
// parameters. Printing and parsing round-trip: parsing printed output
// yields a structurally equal program.
//
// Parse failures are non-fatal and line-scoped: the offending line is
// skipped, a diagnostic with the source location is emitted, and
// parsing continues.
package syntax
