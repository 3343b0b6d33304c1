package rerank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pkg/utils"
)

func cands(scores ...float64) []*core.Candidate {
	out := make([]*core.Candidate, len(scores))
	for i, s := range scores {
		out[i] = core.NewCandidate(core.NewItem(string(rune('a'+i)), 2000), s)
	}
	return out
}

func names(items []*core.Candidate) string {
	var s string
	for _, it := range items {
		s += it.Item.Name
	}
	return s
}

func TestSortNode(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   string
	}{
		{name: "descending", scores: []float64{1, 3, 2}, want: "bca"},
		{name: "ties keep input order", scores: []float64{2, 5, 2, 5}, want: "bdac"},
		{name: "nan last", scores: []float64{math.NaN(), 1, math.NaN(), 2}, want: "dbac"},
		{name: "empty", scores: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&SortNode{}).Process(context.Background(), nil, cands(tt.scores...))
			if err != nil {
				t.Fatal(err)
			}
			if names(got) != tt.want {
				t.Errorf("Process() = %s, want %s", names(got), tt.want)
			}
		})
	}
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 2, want: "ab"},
		{n: 5, want: "abc"},
		{n: 0, want: "abc"},
	}
	for _, tt := range tests {
		got, _ := (&TopNNode{N: tt.n}).Process(context.Background(), nil, cands(3, 2, 1))
		if names(got) != tt.want {
			t.Errorf("TopN(%d) = %s, want %s", tt.n, names(got), tt.want)
		}
	}
}

func TestDiversity(t *testing.T) {
	items := []*core.Candidate{
		core.NewCandidate(core.NewItem("Dune", 1984), 3),
		core.NewCandidate(core.NewItem("Dune", 2021), 2),
		core.NewCandidate(core.NewItem("Heat", 1995), 1),
	}
	got, _ := (&Diversity{}).Process(context.Background(), nil, items)
	if len(got) != 2 || got[0].Item.Year != 1984 || got[1].Item.Name != "Heat" {
		t.Errorf("Diversity by name = %v", got)
	}

	for i, genre := range []string{"scifi", "", "scifi"} {
		items[i].Labels = nil
		items[i].PutLabel("genre", utils.Label{Value: genre})
	}
	got, _ = (&Diversity{LabelKey: "genre"}).Process(context.Background(), nil, items)
	if len(got) != 2 || got[1].Item.Year != 2021 {
		t.Errorf("Diversity by label = %v", got)
	}
}
