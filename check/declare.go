package check

import (
	"rue/ast"
	"rue/symtab"
	"rue/syntax"
	"rue/types"
)

// declare performs the two-pass declaration pre-pass of spec.md §4.4: first
// every top-level name (function, struct, enum, enum variant) is registered
// with a forward-declared symbol, then field/parameter/return types are
// filled in once every name in the file is known to exist — so a struct
// declared first can reference one declared last, and functions can call
// each other and themselves regardless of source order.
func (c *Checker) declare(prog ast.Program) {
	items := prog.Items()

	for _, item := range items {
		switch item.Kind() {
		case syntax.StructItem:
			c.declareStructSkeleton(item)
		case syntax.EnumItem:
			c.declareEnumSkeleton(item)
		case syntax.FunctionItem:
			c.declareFuncSkeleton(item)
		}
	}

	for name, st := range c.structTypes {
		c.fillStructFields(name, st)
	}
	for name, et := range c.enumTypes {
		c.fillEnumVariants(name, et)
	}
	for _, name := range c.funcOrder {
		c.fillFuncSignature(name)
	}
}

func (c *Checker) declareStructSkeleton(item ast.Item) {
	s, _ := item.AsStruct()
	name, ok := s.Name()
	if !ok {
		return
	}
	if _, dup := c.structTypes[name.Name()]; dup {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
		return
	}
	if _, dup := c.enumTypes[name.Name()]; dup {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
		return
	}
	st := &types.StructType{Name: name.Name()}
	c.structTypes[name.Name()] = st
	c.structNodes[name.Name()] = s
	if _, ok := c.table.Declare(name.Name(), symtab.SymStruct, types.Struct(st)); !ok {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
	}
}

func (c *Checker) declareEnumSkeleton(item ast.Item) {
	e, _ := item.AsEnum()
	name, ok := e.Name()
	if !ok {
		return
	}
	if _, dup := c.structTypes[name.Name()]; dup {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
		return
	}
	if _, dup := c.enumTypes[name.Name()]; dup {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
		return
	}
	et := &types.EnumType{Name: name.Name()}
	c.enumTypes[name.Name()] = et
	c.enumNodes[name.Name()] = e
	if _, ok := c.table.Declare(name.Name(), symtab.SymEnum, types.Enum(et)); !ok {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
	}

	for i, vd := range e.Variants() {
		vname, ok := vd.Name()
		if !ok {
			continue
		}
		variant := &types.EnumVariant{Name: vname.Name(), Discriminant: int64(i), Parent: et}
		et.Variants = append(et.Variants, variant)
		qualified := name.Name() + "::" + vname.Name()
		if _, dup := c.table.Resolve(qualified); dup {
			c.nameError(vname.Span(), "duplicate enum variant %q", qualified)
			continue
		}
		c.table.Declare(qualified, symtab.SymEnumVariant, types.Variant(variant))
	}
}

func (c *Checker) declareFuncSkeleton(item ast.Item) {
	f, _ := item.AsFunction()
	name, ok := f.Name()
	if !ok {
		return
	}
	if _, dup := c.funcs[name.Name()]; dup {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
		return
	}
	sig := &types.FuncType{}
	sym, declared := c.table.Declare(name.Name(), symtab.SymFunc, types.Func(sig))
	if !declared {
		c.nameError(name.Span(), "duplicate top-level name %q", name.Name())
	}
	c.funcs[name.Name()] = &funcInfo{Symbol: sym, Sig: sig, Node: f}
	c.funcOrder = append(c.funcOrder, name.Name())
}

func (c *Checker) fillStructFields(name string, st *types.StructType) {
	node := c.structNodes[name]
	for _, fd := range node.Fields() {
		fname, ok := fd.Name()
		if !ok {
			continue
		}
		te, ok := fd.Type()
		ft := types.Any
		if ok {
			if resolved, ok := c.resolveTypeExpr(te); ok {
				ft = resolved
			} else {
				c.nameError(te.Node.Span(), "unknown type %q", te.Name())
			}
		}
		st.Fields = append(st.Fields, types.Field{Name: fname.Name(), Type: ft})
	}
}

func (c *Checker) fillEnumVariants(name string, et *types.EnumType) {
	node := c.enumNodes[name]
	for i, vd := range node.Variants() {
		if i >= len(et.Variants) {
			break
		}
		variant := et.Variants[i]
		for _, fd := range vd.Fields() {
			fname, ok := fd.Name()
			if !ok {
				continue
			}
			te, ok := fd.Type()
			ft := types.Any
			if ok {
				if resolved, ok := c.resolveTypeExpr(te); ok {
					ft = resolved
				} else {
					c.nameError(te.Node.Span(), "unknown type %q", te.Name())
				}
			}
			variant.Fields = append(variant.Fields, types.Field{Name: fname.Name(), Type: ft})
		}
	}
}

func (c *Checker) fillFuncSignature(name string) {
	fi := c.funcs[name]
	for _, p := range fi.Node.Params() {
		pname, ok := p.Name()
		if !ok {
			continue
		}
		pt := types.Any
		if te, ok := p.Type(); ok {
			if resolved, ok := c.resolveTypeExpr(te); ok {
				pt = resolved
			} else {
				c.nameError(te.Node.Span(), "unknown type %q", te.Name())
			}
		}
		fi.Sig.Params = append(fi.Sig.Params, pt)
		fi.Params = append(fi.Params, pname.Name())
	}
	ret := types.Nil
	if te, ok := fi.Node.ReturnType(); ok {
		if resolved, ok := c.resolveTypeExpr(te); ok {
			ret = resolved
		} else {
			c.nameError(te.Node.Span(), "unknown type %q", te.Name())
		}
	}
	fi.Sig.Return = ret
}
