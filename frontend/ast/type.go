package ast

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Type is the static type of an expression.
//
// Types are compared structurally with TypesEqual, never by identity.
// The set of types is closed over *NatType, *BoolType, *ArrowType,
// *RecordType and *UnionType.
type Type interface {
	typeNode()
	fmt.Stringer
}

var (
	_ Type = (*NatType)(nil)
	_ Type = (*BoolType)(nil)
	_ Type = (*ArrowType)(nil)
	_ Type = (*RecordType)(nil)
	_ Type = (*UnionType)(nil)
)

var (
	Nat  Type = &NatType{}
	Bool Type = &BoolType{}
)

type NatType struct{}

func (*NatType) typeNode()        {}
func (t *NatType) String() string { return TypeString(t) }

type BoolType struct{}

func (*BoolType) typeNode()        {}
func (t *BoolType) String() string { return TypeString(t) }

// ArrowType is the signature of lambdas and primitives; its arity is len(Inputs)
type ArrowType struct {
	Inputs []Type
	Output Type
}

func (*ArrowType) typeNode()        {}
func (t *ArrowType) String() string { return TypeString(t) }

func Arrow(output Type, inputs ...Type) *ArrowType {
	return &ArrowType{Inputs: inputs, Output: output}
}

type RecordType struct {
	Fields map[string]Type
}

func (*RecordType) typeNode()        {}
func (t *RecordType) String() string { return TypeString(t) }

// UnionType maps variant names to their payload type.
// An empty UnionType is what an unchecked union injection is given.
type UnionType struct {
	Variants map[string]Type
}

func (*UnionType) typeNode()        {}
func (t *UnionType) String() string { return TypeString(t) }

// TypesEqual reports whether a and b are structurally equal: same variant,
// and recursively equal arity, member names and member types.
func TypesEqual(a, b Type) bool {
	switch a := a.(type) {
	case *NatType:
		_, ok := b.(*NatType)
		return ok
	case *BoolType:
		_, ok := b.(*BoolType)
		return ok
	case *ArrowType:
		b, ok := b.(*ArrowType)
		if !ok || len(a.Inputs) != len(b.Inputs) {
			return false
		}
		return slices.EqualFunc(a.Inputs, b.Inputs, TypesEqual) && TypesEqual(a.Output, b.Output)
	case *RecordType:
		b, ok := b.(*RecordType)
		return ok && membersEqual(a.Fields, b.Fields)
	case *UnionType:
		b, ok := b.(*UnionType)
		return ok && membersEqual(a.Variants, b.Variants)
	default:
		panic(fmt.Sprintf("unexpected type %T", a))
	}
}

func membersEqual(a, b map[string]Type) bool {
	aKeys, bKeys := MemberNames(a), MemberNames(b)
	if aKeys.Size() != bKeys.Size() || !aKeys.Subset(bKeys) {
		return false
	}
	for name, t := range a {
		if !TypesEqual(t, b[name]) {
			return false
		}
	}
	return true
}

// MemberNames returns the sorted key set of a record or union member mapping
func MemberNames(members map[string]Type) *set.TreeSet[string] {
	return set.TreeSetFrom(slices.Collect(maps.Keys(members)), cmp.Compare[string])
}

// MemberDiff returns the member names only present in a and only present in b, sorted.
func MemberDiff(a, b map[string]Type) (onlyA, onlyB []string) {
	aKeys, bKeys := MemberNames(a), MemberNames(b)
	return aKeys.Difference(bKeys).Slice(), bKeys.Difference(aKeys).Slice()
}

// TypeString renders t in the surface syntax accepted by the translator,
// with record and union members sorted by name.
func TypeString(t Type) string {
	sb := &strings.Builder{}
	writeType(sb, t)
	return sb.String()
}

func writeType(sb *strings.Builder, t Type) {
	switch t := t.(type) {
	case *NatType:
		sb.WriteString("Nat")
	case *BoolType:
		sb.WriteString("Bool")
	case *ArrowType:
		sb.WriteString("(->")
		for _, in := range t.Inputs {
			sb.WriteString(" ")
			writeType(sb, in)
		}
		sb.WriteString(" ")
		writeType(sb, t.Output)
		sb.WriteString(")")
	case *RecordType:
		sb.WriteString("(rec")
		for _, name := range MemberNames(t.Fields).Slice() {
			sb.WriteString(" " + name + " ")
			writeType(sb, t.Fields[name])
		}
		sb.WriteString(")")
	case *UnionType:
		sb.WriteString("(union (")
		for i, name := range MemberNames(t.Variants).Slice() {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(name + " ")
			writeType(sb, t.Variants[name])
		}
		sb.WriteString("))")
	case nil:
		sb.WriteString("nil")
	default:
		panic(fmt.Sprintf("unexpected type %T", t))
	}
}
