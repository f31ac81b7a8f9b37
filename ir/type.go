package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
	BinaryType
	OpaqueType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType: "Object",
		ArrayType:  "Array",
		StringType: "String",
		NumberType: "Number",
		BoolType:   "Bool",
		NullType:   "Null",
		BinaryType: "Binary",
		OpaqueType: "Opaque",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Number": NumberType,
		"String": StringType,
		"Array":  ArrayType,
		"Object": ObjectType,
		"Binary": BinaryType,
		"Opaque": OpaqueType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil

}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		ObjectType,
		ArrayType,
		BinaryType,
		OpaqueType,
	}
}

// IsLeaf reports whether t has no child nodes.
func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}

// NumberKind records which numeric representation produced a NumberType
// node. Kinds are never merged: an Int32Kind 1 and an Int64Kind 1 are
// different values.
type NumberKind int

const (
	// Int32Kind is the machine-width integer of the mapping layer.
	Int32Kind NumberKind = iota
	Int64Kind
	BigIntKind
	Float32Kind
	Float64Kind
	DecimalKind
)

func (k NumberKind) String() string {
	switch k {
	case Int32Kind:
		return "int32"
	case Int64Kind:
		return "int64"
	case BigIntKind:
		return "bigint"
	case Float32Kind:
		return "float32"
	case Float64Kind:
		return "float64"
	case DecimalKind:
		return "decimal"
	default:
		return "<unknown number kind>"
	}
}

func (k NumberKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *NumberKind) UnmarshalText(d []byte) error {
	kk, ok := map[string]NumberKind{
		"int32":   Int32Kind,
		"int64":   Int64Kind,
		"bigint":  BigIntKind,
		"float32": Float32Kind,
		"float64": Float64Kind,
		"decimal": DecimalKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized number kind %q", d)
	}
	*k = kk
	return nil
}

// IsInteger reports whether k is one of the integer kinds.
func (k NumberKind) IsInteger() bool {
	return k == Int32Kind || k == Int64Kind || k == BigIntKind
}
