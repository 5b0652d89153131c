package lir

import "encoding/json"

// printer implements Visitor and builds a JSON-friendly map/slice tree,
// matching hir/printer.go's shape for the CLI's -dump-lir flag.
type printer struct{}

func printConst(c *Const) any {
	if c == nil {
		return nil
	}
	if c.IsPair {
		return map[string]any{"car": printConst(c.Left), "cdr": printConst(c.Right)}
	}
	return map[string]any{"atom": c.Atom}
}

func (p printer) VisitQuote(n *Quote) any {
	return map[string]any{"kind": "Quote", "value": printConst(n.Value)}
}

func (p printer) VisitEnvRef(n *EnvRef) any {
	return map[string]any{"kind": "EnvRef", "path": int64(n.Path)}
}

func (p printer) VisitIf(n *If) any {
	return map[string]any{
		"kind": "If", "cond": accept(n.Cond, p), "then": accept(n.Then, p), "else": accept(n.Else, p),
	}
}

func (p printer) VisitCons(n *Cons) any {
	return map[string]any{"kind": "Cons", "car": accept(n.Car, p), "cdr": accept(n.Cdr, p)}
}

func (p printer) VisitOp(n *Op) any {
	args := make([]any, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, accept(a, p))
	}
	return map[string]any{"kind": "Op", "name": n.Name, "args": args}
}

func (p printer) VisitApply(n *Apply) any {
	return map[string]any{"kind": "Apply", "target": accept(n.Target, p), "args": accept(n.Args, p)}
}

func accept(n Node, p printer) any {
	if n == nil {
		return nil
	}
	return n.Accept(p)
}

func printFunction(f *Function) any {
	return map[string]any{"name": f.Name, "arity": f.Arity, "body": accept(f.Body, printer{})}
}

// DumpJSON renders a Program as indented JSON, for the CLI's -dump-lir
// flag.
func DumpJSON(prog *Program) (string, error) {
	fns := make([]any, 0, len(prog.Functions))
	for _, f := range prog.Functions {
		fns = append(fns, printFunction(f))
	}
	out := map[string]any{"functions": fns, "entry": prog.Entry}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
