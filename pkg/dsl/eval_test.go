package dsl

import (
	"testing"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pkg/utils"
)

func TestExprEvaluate(t *testing.T) {
	item := core.NewCandidate(core.NewItem("Alien", 1979), 0.8)
	item.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
	rctx := &core.RecommendContext{
		K:      2,
		Params: map[string]any{"blocked": []any{"Heat"}},
	}

	tests := []struct {
		expr string
		want bool
	}{
		{expr: "", want: true},
		{expr: "item.year >= 1980", want: false},
		{expr: "item.year < 1980 && item.score > 0.5", want: true},
		{expr: `label.recall_source == "content"`, want: true},
		{expr: `item.name in rctx.params.blocked`, want: false},
		{expr: `rctx.k == 2`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() err = %v", err)
			}
			got, err := e.Evaluate(item, rctx)
			if err != nil {
				t.Fatalf("Evaluate() err = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile("item.year >="); err == nil {
		t.Error("Compile() expected error for malformed expression")
	}
}

func TestNonBoolean(t *testing.T) {
	e, err := Compile("item.score")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Evaluate(core.NewCandidate(core.NewItem("A", 1), 1), nil); err == nil {
		t.Error("Evaluate() expected error for non-boolean result")
	}
}
