package parser

import (
	"encoding/json"
	"testing"

	"rue/diag"
	"rue/lexer"
	"rue/syntax"
)

// parseJSON lexes and parses src, then round-trips the CST through
// syntax.DumpJSON into a generic map — the same unmarshal-to-map shape
// assertion style as the teacher's parser/printer_test.go.
func parseJSON(t *testing.T, src string) (map[string]any, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	tokens := lexer.New(src, bag).Scan()
	root := Parse(tokens, bag)

	jsonStr, err := syntax.DumpJSON(root)
	if err != nil {
		t.Fatalf("DumpJSON error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	return out, bag
}

func TestParseFunctionItemShape(t *testing.T) {
	out, bag := parseJSON(t, `
fun main(x: Int) -> Int {
	x + 1
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if out["kind"] != "SourceFile" {
		t.Fatalf("expected root kind SourceFile, got %v", out["kind"])
	}
	children := out["children"].([]any)
	if len(children) != 1 {
		t.Fatalf("expected 1 top-level item, got %d", len(children))
	}
	fn := children[0].(map[string]any)
	if fn["kind"] != "FunctionItem" {
		t.Fatalf("expected kind FunctionItem, got %v", fn["kind"])
	}
	if _, isError := fn["error"]; isError {
		t.Errorf("did not expect the FunctionItem to be marked as an error node")
	}
}

func TestParseErrorRecoveryMarksErrorNode(t *testing.T) {
	out, bag := parseJSON(t, `fun main(x: Int) -> Int {`)
	if !bag.HasErrors() {
		t.Errorf("expected a diagnostic for a truncated function body")
	}
	if found := findErrorNode(out); !found {
		t.Errorf("expected the CST to contain a node marked \"error\": true")
	}
}

func findErrorNode(n map[string]any) bool {
	if v, ok := n["error"]; ok && v == true {
		return true
	}
	children, ok := n["children"].([]any)
	if !ok {
		return false
	}
	for _, c := range children {
		if cm, ok := c.(map[string]any); ok && findErrorNode(cm) {
			return true
		}
	}
	return false
}

func TestParseIfExprAndBinaryPrecedence(t *testing.T) {
	out, bag := parseJSON(t, `
fun main() -> Int {
	if x > 0 { 1 } else { 2 }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if !containsKind(out, "IfExpr") {
		t.Errorf("expected the CST to contain an IfExpr node")
	}
	if !containsKind(out, "BinaryExpr") {
		t.Errorf("expected the CST to contain a BinaryExpr node for x > 0")
	}
}

func containsKind(n map[string]any, kind string) bool {
	if n["kind"] == kind {
		return true
	}
	children, ok := n["children"].([]any)
	if !ok {
		return false
	}
	for _, c := range children {
		if cm, ok := c.(map[string]any); ok && containsKind(cm, kind) {
			return true
		}
	}
	return false
}

func TestParseCallExpression(t *testing.T) {
	out, bag := parseJSON(t, `
fun main() -> Int {
	helper(1, 2)
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if !containsKind(out, "CallExpr") {
		t.Errorf("expected the CST to contain a CallExpr node")
	}
	if !containsKind(out, "ArgList") {
		t.Errorf("expected the CST to contain an ArgList node")
	}
}
