package core

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/rushteam/vecrec/pkg/utils"
)

func TestCompare(t *testing.T) {
	items := []Item{
		NewItem("Heat", 1995),
		NewItem("Dune", 2021),
		NewItem("Alien", 1979),
		NewItem("Dune", 1984),
	}
	slices.SortFunc(items, Compare)
	want := []Item{
		NewItem("Alien", 1979),
		NewItem("Dune", 1984),
		NewItem("Dune", 2021),
		NewItem("Heat", 1995),
	}
	if !slices.Equal(items, want) {
		t.Errorf("sorted = %v, want %v", items, want)
	}
	if !Less(NewItem("Dune", 1984), NewItem("Dune", 2021)) || Less(NewItem("a", 1), NewItem("a", 1)) {
		t.Error("Less() mismatch")
	}
}

func TestDomainErrorWrapping(t *testing.T) {
	base := Errorf(ModuleCatalog, ErrorCodeNotFound, "item %q not registered", "Alien")
	wrapped := fmt.Errorf("predict: %w", base)

	if base.Error() != `catalog: item "Alien" not registered` {
		t.Errorf("Error() = %q", base.Error())
	}
	if !IsNotFound(wrapped) || IsInvalidState(wrapped) || !IsDomainError(wrapped) {
		t.Errorf("checkers failed on %v", wrapped)
	}
	if !errors.Is(wrapped, &DomainError{Code: ErrorCodeNotFound}) {
		t.Error("errors.Is should match by code when target module is empty")
	}
	if errors.Is(wrapped, ErrStoreNotFound) {
		t.Error("errors.Is should not match a different module")
	}
	if !IsStoreNotFound(fmt.Errorf("get: %w", ErrStoreNotFound)) {
		t.Error("IsStoreNotFound should see through wrapping")
	}
	if IsNotFound(errors.New("plain")) || GetDomainError(nil) != nil {
		t.Error("plain errors are not domain errors")
	}
}

func TestCandidateLabels(t *testing.T) {
	c := NewCandidate(NewItem("Alien", 1979), 0.5)
	c.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
	c.PutLabel("recall_source", utils.Label{Value: "i2i", Source: "recall"})
	if got := c.Labels["recall_source"]; got.Value != "content|i2i" || got.Source != "recall,recall" {
		t.Errorf("merged label = %+v", got)
	}

	var rctx *RecommendContext
	if rctx.Ratings() != nil || rctx.UserName() != "" {
		t.Error("nil context should have no user")
	}
	rctx = &RecommendContext{}
	rctx.PutLabel("segment", utils.Label{Value: "new"})
	if lbl, ok := rctx.GetLabel("segment"); !ok || lbl.Value != "new" {
		t.Errorf("GetLabel() = %+v, %v", lbl, ok)
	}
}
