package check

import (
	"rue/ast"
	"rue/types"
)

// resolveTypeExpr resolves a parsed TypeExpr (base name plus trailing `[]`
// suffixes) to a types.Type, wrapping the base in one types.Array per
// suffix.
func (c *Checker) resolveTypeExpr(te ast.TypeExpr) (*types.Type, bool) {
	base, ok := c.baseType(te.Name())
	if !ok {
		return nil, false
	}
	for i := 0; i < te.ArrayDepth(); i++ {
		base = types.Array(base)
	}
	return base, true
}

func (c *Checker) baseType(name string) (*types.Type, bool) {
	switch name {
	case "Nil":
		return types.Nil, true
	case "Bytes":
		return types.Bytes, true
	case "Bytes32":
		return types.Bytes32, true
	case "Int":
		return types.Int, true
	case "Bool":
		return types.Bool, true
	case "Any":
		return types.Any, true
	}
	if st, ok := c.structTypes[name]; ok {
		return types.Struct(st), true
	}
	if et, ok := c.enumTypes[name]; ok {
		return types.Enum(et), true
	}
	return nil, false
}
