// Package ir provides the in-memory document representation produced by
// the stream builder and consumed by driver adapters.
//
// # Node Structure
//
// A Node is a recursive tagged union: values are placed in fields depending
// on the node type.
//
//   - NullType: null value
//   - BoolType: boolean, in Bool
//   - NumberType: numeric value, see Numbers
//   - StringType: string value, in String
//   - BinaryType: byte content, in Bytes
//   - OpaqueType: an already materialized value, in Opaque, never inspected
//   - ArrayType: ordered list of nodes, in Values
//   - ObjectType: key-value pairs, keys in Fields and values in Values
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the string key for the value at
// Values[i]. Keys occur once. Set replaces the value of an existing key in
// place, so the last write for a key wins and the key keeps its first
// position.
//
// # Numbers
//
// NumKind records the numeric subtype, which is kept distinct all the way to
// the driver:
//
//   - Int32Kind, Int64Kind: value in Int64
//   - Float32Kind, Float64Kind: value in Float64
//   - BigIntKind, DecimalKind: canonical decimal text in Number
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "a", Val: ir.FromInt32(1)},
//	    {Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x")})},
//	})
//
// # Comparison
//
//	equal := ir.Compare(a, b) == 0 // key order sensitive
//	same := ir.Equal(a, b)         // key order insensitive
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
package ir
