package syntax

import (
	"encoding/json"

	"rue/token"
)

// printNode renders one CST node as a JSON-friendly map, listing child
// nodes and significant tokens (trivia and the empty EOF token are left
// out), marking
// ErrorNode kinds so the CLI's -dump-cst flag can highlight recovered
// regions (SPEC_FULL.md's error-recovery supplement), mirroring
// hir/printer.go's map/slice shape.
func printNode(n *Node) any {
	children := make([]any, 0, len(n.Elements))
	for _, el := range n.Elements {
		if el.Node != nil {
			children = append(children, printNode(el.Node))
		} else if !el.Token.Kind.IsTrivia() && el.Token.Kind != token.EOF {
			children = append(children, map[string]any{"token": el.Token.Kind.String(), "text": el.Token.Text})
		}
	}
	out := map[string]any{"kind": n.Kind.String(), "children": children}
	if n.Kind == ErrorNode || n.Recovered {
		out["error"] = true
	}
	return out
}

// DumpJSON renders root as indented JSON, for the CLI's -dump-cst flag.
func DumpJSON(root *Node) (string, error) {
	bytes, err := json.MarshalIndent(printNode(root), "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
