package lir

import (
	"strings"
	"testing"
)

func TestDumpJSONIncludesEntryAndFunctionShape(t *testing.T) {
	prog := &Program{
		Functions: []*Function{
			{Name: "entry", Arity: 1, Body: &If{
				Cond: &EnvRef{Path: Root.First()},
				Then: &Quote{Value: NilConst},
				Else: &Apply{Target: &EnvRef{Path: 2}, Args: &EnvRef{Path: 3}},
			}},
		},
		Entry: 0,
	}

	out, err := DumpJSON(prog)
	if err != nil {
		t.Fatalf("DumpJSON returned an error: %v", err)
	}
	for _, want := range []string{`"entry": 0`, `"name": "entry"`, `"kind": "If"`, `"kind": "Apply"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected dumped JSON to contain %q, got:\n%s", want, out)
		}
	}
}
