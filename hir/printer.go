package hir

import (
	"encoding/json"
)

// printer implements Visitor and builds a JSON-friendly map/slice tree,
// generalizing the teacher's astPrinter (parser/printer.go) from the
// Nilan AST to typed HIR — every node additionally reports its resolved
// type.
type printer struct{}

func (p printer) VisitIntLit(n *IntLit) any {
	return map[string]any{"kind": "IntLit", "type": n.Typ.String(), "value": n.Value.String()}
}

func (p printer) VisitBytesLit(n *BytesLit) any {
	return map[string]any{"kind": "BytesLit", "type": n.Typ.String(), "value": n.Value}
}

func (p printer) VisitNilLit(n *NilLit) any {
	return map[string]any{"kind": "NilLit", "type": n.Typ.String()}
}

func (p printer) VisitRef(n *Ref) any {
	return map[string]any{"kind": "Ref", "type": n.Typ.String(), "name": n.Symbol.Name}
}

func (p printer) VisitIf(n *If) any {
	m := map[string]any{"kind": "If", "type": n.Typ.String(), "cond": accept(n.Cond, p)}
	if n.Then != nil {
		m["then"] = accept(n.Then, p)
	}
	if n.Else != nil {
		m["else"] = accept(n.Else, p)
	}
	return m
}

func (p printer) VisitLet(n *Let) any {
	return map[string]any{
		"kind": "Let", "type": n.Typ.String(), "name": n.Symbol.Name,
		"init": accept(n.Init, p), "body": accept(n.Body, p),
	}
}

func (p printer) VisitCall(n *Call) any {
	args := make([]any, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, accept(a, p))
	}
	return map[string]any{"kind": "Call", "type": n.Typ.String(), "callee": n.Callee.Name, "args": args}
}

func (p printer) VisitList(n *List) any {
	els := make([]any, 0, len(n.Elements))
	for _, e := range n.Elements {
		els = append(els, map[string]any{"value": accept(e.Value, p), "spread": e.Spread})
	}
	return map[string]any{"kind": "List", "type": n.Typ.String(), "elements": els}
}

func (p printer) VisitPath(n *Path) any {
	return map[string]any{"kind": "Path", "type": n.Typ.String(), "variant": n.Variant.Name}
}

func (p printer) VisitConstruct(n *Construct) any {
	fields := make(map[string]any, len(n.Fields))
	for _, f := range n.Fields {
		fields[f.Name] = accept(f.Value, p)
	}
	return map[string]any{"kind": "Construct", "type": n.Typ.String(), "fields": fields}
}

func (p printer) VisitFieldAccess(n *FieldAccess) any {
	return map[string]any{"kind": "FieldAccess", "type": n.Typ.String(), "base": accept(n.Base, p), "field": n.Field}
}

func (p printer) VisitIsTest(n *IsTest) any {
	return map[string]any{"kind": "IsTest", "type": n.Typ.String(), "operand": accept(n.Operand, p), "target": n.Target.String()}
}

func (p printer) VisitAsCoerce(n *AsCoerce) any {
	return map[string]any{"kind": "AsCoerce", "type": n.Typ.String(), "operand": accept(n.Operand, p)}
}

func (p printer) VisitBuiltinCall(n *BuiltinCall) any {
	args := make([]any, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, accept(a, p))
	}
	return map[string]any{"kind": "BuiltinCall", "type": n.Typ.String(), "name": n.Name, "args": args}
}

func (p printer) VisitBlock(n *Block) any {
	stmts := make([]any, 0, len(n.Stmts))
	for _, s := range n.Stmts {
		stmts = append(stmts, accept(s, p))
	}
	m := map[string]any{"kind": "Block", "type": n.Typ.String(), "stmts": stmts}
	if n.Tail != nil {
		m["tail"] = accept(n.Tail, p)
	}
	return m
}

func (p printer) VisitReturn(n *Return) any {
	m := map[string]any{"kind": "Return", "type": n.Typ.String()}
	if n.Value != nil {
		m["value"] = accept(n.Value, p)
	}
	return m
}

func (p printer) VisitPoison(n *Poison) any {
	return map[string]any{"kind": "Poison", "type": n.Typ.String()}
}

func accept(n Node, p printer) any {
	if n == nil {
		return nil
	}
	return n.Accept(p)
}

func printFunction(f *Function) any {
	params := make([]any, 0, len(f.Params))
	for _, s := range f.Params {
		params = append(params, map[string]any{"name": s.Name, "type": s.Type.String()})
	}
	return map[string]any{
		"name":       f.Symbol.Name,
		"params":     params,
		"returnType": f.ReturnType.String(),
		"body":       accept(f.Body, printer{}),
	}
}

// DumpJSON renders a Program as indented JSON, for the CLI's -dump-hir
// flag, generalizing parser.PrintASTJSON/WriteASTJSONToFile.
func DumpJSON(prog *Program) (string, error) {
	fns := make([]any, 0, len(prog.Functions))
	for _, f := range prog.Functions {
		fns = append(fns, printFunction(f))
	}
	out := map[string]any{"functions": fns}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
