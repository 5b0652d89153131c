// Package types implements Rue's closed type-variant set and its
// subtyping relation (spec.md §3). Unlike the teacher, which is
// dynamically typed end to end, this has no direct analogue in nilan;
// it's built fresh to the spec, following the Go idiom the teacher uses
// everywhere else — a small closed set of variants distinguished by a
// Kind tag, one constructor function per variant.
package types

import "fmt"

type Kind int

const (
	KindNil Kind = iota
	KindBytes
	KindBytes32
	KindInt
	KindBool
	KindAny
	KindArray
	KindStruct
	KindEnum
	KindEnumVariant
	KindFunc
)

// Type is Rue's closed type-variant set. Struct/Enum/EnumVariant types are
// nominal: two Type values denote the same struct/enum iff they share the
// same *StructType/*EnumType pointer (spec.md §3 — "nominal structs/enums
// equal only by identity").
type Type struct {
	Kind    Kind
	Elem    *Type       // KindArray: element type
	Struct  *StructType // KindStruct
	Enum    *EnumType   // KindEnum or KindEnumVariant
	Variant *EnumVariant // KindEnumVariant
	Func    *FuncType   // KindFunc
}

type Field struct {
	Name string
	Type *Type
}

type StructType struct {
	Name   string
	Fields []Field
}

type EnumVariant struct {
	Name        string
	Discriminant int64
	Fields      []Field
	Parent      *EnumType
}

type EnumType struct {
	Name     string
	Variants []*EnumVariant
}

type FuncType struct {
	Params []*Type
	Return *Type
}

// Singleton leaf types. Safe to compare by pointer since they're never
// copied by value elsewhere in the compiler.
var (
	Nil     = &Type{Kind: KindNil}
	Bytes   = &Type{Kind: KindBytes}
	Bytes32 = &Type{Kind: KindBytes32}
	Int     = &Type{Kind: KindInt}
	Bool    = &Type{Kind: KindBool}
	Any     = &Type{Kind: KindAny}
)

func Array(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

func Struct(s *StructType) *Type {
	return &Type{Kind: KindStruct, Struct: s}
}

func Enum(e *EnumType) *Type {
	return &Type{Kind: KindEnum, Enum: e}
}

func Variant(v *EnumVariant) *Type {
	return &Type{Kind: KindEnumVariant, Enum: v.Parent, Variant: v}
}

func Func(f *FuncType) *Type {
	return &Type{Kind: KindFunc, Func: f}
}

// FieldByName returns the named field of a struct type or enum variant
// type, if any.
func (t *Type) FieldByName(name string) (Field, bool) {
	var fields []Field
	switch t.Kind {
	case KindStruct:
		fields = t.Struct.Fields
	case KindEnumVariant:
		fields = t.Variant.Fields
	default:
		return Field{}, false
	}
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Equal reports whether a and b denote the same type. Nominal types
// (struct/enum/enum-variant) compare by underlying declaration identity;
// everything else compares structurally.
func Equal(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray:
		return Equal(a.Elem, b.Elem)
	case KindStruct:
		return a.Struct == b.Struct
	case KindEnum:
		return a.Enum == b.Enum
	case KindEnumVariant:
		return a.Variant == b.Variant
	case KindFunc:
		if len(a.Func.Params) != len(b.Func.Params) {
			return false
		}
		for i := range a.Func.Params {
			if !Equal(a.Func.Params[i], b.Func.Params[i]) {
				return false
			}
		}
		return Equal(a.Func.Return, b.Func.Return)
	default:
		return true // leaf kinds with matching Kind are equal
	}
}

// Subtype reports whether a ≤ b under spec.md §3's subtyping relation:
// everything ≤ Any; Bytes32 ≤ Bytes; E::V ≤ E; arrays invariant; nominal
// types equal only by identity.
func Subtype(a, b *Type) bool {
	if Equal(a, b) {
		return true
	}
	if b.Kind == KindAny {
		return true
	}
	if a.Kind == KindBytes32 && b.Kind == KindBytes {
		return true
	}
	if a.Kind == KindEnumVariant && b.Kind == KindEnum {
		return a.Variant.Parent == b.Enum
	}
	return false
}

// Overlaps reports whether a and b can denote the same value under the
// subtyping relation — i.e. one is a subtype of the other. Flow-sensitive
// narrowing (spec.md §4.5, "if T ≤ typeof(e) or they overlap") only ever
// narrows to a type that passes this check; narrowing to something wholly
// unrelated to the operand's static type would assert a fact the type
// system has no basis for.
func Overlaps(a, b *Type) bool {
	return Subtype(a, b) || Subtype(b, a)
}

// LeastCommonSupertype computes the type assignable from both a and b, as
// required when typing `if` branches and list-literal elements
// (spec.md §4.5). ok is always true: when no common supertype narrower
// than Any can be found structurally, Any itself is returned as a safe
// (if imprecise) fallback — callers that want strict no-common-type
// errors should compare the result against Any themselves.
func LeastCommonSupertype(a, b *Type) (*Type, bool) {
	if Subtype(a, b) {
		return b, true
	}
	if Subtype(b, a) {
		return a, true
	}
	if a.Kind == KindArray && b.Kind == KindArray {
		if elem, ok := LeastCommonSupertype(a.Elem, b.Elem); ok {
			return Array(elem), true
		}
	}
	return Any, true
}

func (t *Type) String() string {
	switch t.Kind {
	case KindNil:
		return "Nil"
	case KindBytes:
		return "Bytes"
	case KindBytes32:
		return "Bytes32"
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindAny:
		return "Any"
	case KindArray:
		return t.Elem.String() + "[]"
	case KindStruct:
		return t.Struct.Name
	case KindEnum:
		return t.Enum.Name
	case KindEnumVariant:
		return t.Variant.Parent.Name + "::" + t.Variant.Name
	case KindFunc:
		return fmt.Sprintf("(%d params) -> %s", len(t.Func.Params), t.Func.Return)
	default:
		return "?"
	}
}
