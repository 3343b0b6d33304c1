package engine

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/user"
)

func newEngine(t *testing.T, items map[string][]float64, opts ...Option) *Engine {
	t.Helper()
	e := New(nil, opts...)
	for name, features := range items {
		if _, err := e.Register(name, 2000, features); err != nil {
			t.Fatalf("Register(%s) err = %v", name, err)
		}
	}
	return e
}

func mustItem(t *testing.T, e *Engine, name string) core.Item {
	t.Helper()
	it, ok := e.Lookup(name, 2000)
	if !ok {
		t.Fatalf("Lookup(%s) not found", name)
	}
	return it
}

func TestRecommendByContent(t *testing.T) {
	e := newEngine(t, map[string][]float64{"A": {1, 0}, "B": {0, 1}, "C": {1, 1}})
	u := user.New("alice", core.Ratings{mustItem(t, e, "A"): 5, mustItem(t, e, "B"): 1})

	got, err := e.RecommendByContent(u)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "C" {
		t.Errorf("RecommendByContent() = %v, want C", got)
	}
}

func TestPredictScoreByName(t *testing.T) {
	e := newEngine(t, map[string][]float64{"A": {1, 0}, "B": {0, 1}, "C": {1, 1}, "D": {2, 2}})
	u := user.New("bob", core.Ratings{
		mustItem(t, e, "A"): 4,
		mustItem(t, e, "B"): 2,
		mustItem(t, e, "C"): 5,
	})

	got, err := e.PredictScoreByName(u, "D", 2000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := 6 - math.Sqrt2; math.Abs(got-want) > 1e-9 {
		t.Errorf("PredictScoreByName() = %v, want %v", got, want)
	}

	if _, err := e.PredictScoreByName(u, "D", 1999, 2); !core.IsNotFound(err) {
		t.Errorf("unknown year err = %v, want NOT_FOUND", err)
	}
	if _, err := e.PredictScoreByName(u, "D", 2000, 4); !core.IsInvalidArgument(err) {
		t.Errorf("k=4 err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestRecommendErrors(t *testing.T) {
	e := newEngine(t, map[string][]float64{"A": {1, 0}, "B": {0, 1}})
	empty := user.New("empty", nil)
	all := user.New("all", core.Ratings{mustItem(t, e, "A"): 1, mustItem(t, e, "B"): 2})

	if _, err := e.RecommendByContent(empty); !core.IsInvalidState(err) {
		t.Errorf("content with no ratings err = %v, want INVALID_STATE", err)
	}
	if _, err := e.RecommendByContent(all); !core.IsNoCandidates(err) {
		t.Errorf("content with everything rated err = %v, want NO_CANDIDATES", err)
	}
	if _, err := e.RecommendByCF(all, 1); !core.IsNoCandidates(err) {
		t.Errorf("cf with everything rated err = %v, want NO_CANDIDATES", err)
	}
	if _, err := e.RecommendByContent(nil); !core.IsInvalidArgument(err) {
		t.Errorf("nil user err = %v, want INVALID_ARGUMENT", err)
	}
	_, err := e.RecommendByContent(all)
	if err == nil || !strings.Contains(err.Error(), `"all"`) {
		t.Errorf("error should name the user, got %v", err)
	}
}

func TestAddItemFlow(t *testing.T) {
	e := New(nil)
	u := user.New("carol", nil)
	for _, tt := range []struct {
		name     string
		features []float64
		rating   float64
	}{
		{"Alien", []float64{0.9, 0.1}, 9},
		{"Amelie", []float64{0.1, 0.9}, 2},
	} {
		if _, err := u.AddItem(e, tt.name, 1980, tt.features, tt.rating); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := e.Register("Aliens", 1986, []float64{0.95, 0.15}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Register("Chocolat", 2000, []float64{0.2, 0.8}); err != nil {
		t.Fatal(err)
	}

	got, err := e.RecommendByContent(u)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Aliens" {
		t.Errorf("RecommendByContent() = %v, want Aliens", got)
	}
	if unrated := e.UnratedItems(u); len(unrated) != 2 {
		t.Errorf("UnratedItems() = %v, want 2 items", unrated)
	}
	if want := "Alien\nAliens\nAmelie\nChocolat\n"; e.String() != want {
		t.Errorf("String() = %q, want %q", e.String(), want)
	}
}

func TestRecommendBatchMatchesSequential(t *testing.T) {
	e := newEngine(t, map[string][]float64{
		"A": {1, 0, 0}, "B": {0, 1, 0}, "C": {0, 0, 1},
		"D": {1, 1, 0}, "E": {0, 1, 1}, "F": {1, 0, 1},
	}, WithBatchConcurrency(2))

	users := []core.Rater{
		user.New("u1", core.Ratings{mustItem(t, e, "A"): 5, mustItem(t, e, "B"): 1}),
		user.New("u2", core.Ratings{mustItem(t, e, "C"): 4, mustItem(t, e, "E"): 2}),
		user.New("u3", core.Ratings{mustItem(t, e, "D"): 1, mustItem(t, e, "F"): 5, mustItem(t, e, "B"): 3}),
		user.New("u4", nil),
	}

	for _, strategy := range []Strategy{StrategyContent, StrategyCF} {
		t.Run(string(strategy), func(t *testing.T) {
			results, err := e.RecommendBatch(context.Background(), users, strategy, 2)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != len(users) {
				t.Fatalf("got %d results, want %d", len(results), len(users))
			}
			for i, u := range users {
				var want core.Item
				var wantErr error
				if strategy == StrategyContent {
					want, wantErr = e.RecommendByContent(u)
				} else {
					want, wantErr = e.RecommendByCF(u, 2)
				}
				r := results[i]
				if r.User != u.Name() {
					t.Errorf("results[%d].User = %q, want %q", i, r.User, u.Name())
				}
				if (r.Err == nil) != (wantErr == nil) {
					t.Errorf("%s: err = %v, want %v", u.Name(), r.Err, wantErr)
					continue
				}
				if r.Item != want {
					t.Errorf("%s: item = %v, want %v", u.Name(), r.Item, want)
				}
			}
		})
	}
}

func TestRecommendBatchErrors(t *testing.T) {
	e := newEngine(t, map[string][]float64{"A": {1, 0}, "B": {0, 1}})
	users := []core.Rater{user.New("u", core.Ratings{mustItem(t, e, "A"): 1})}

	if _, err := e.RecommendBatch(context.Background(), users, Strategy("mf"), 1); !core.IsInvalidArgument(err) {
		t.Errorf("unknown strategy err = %v, want INVALID_ARGUMENT", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.RecommendBatch(ctx, users, StrategyContent, 1); err == nil {
		t.Error("cancelled context expected error")
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "content", want: StrategyContent},
		{in: " CF ", want: StrategyCF},
		{in: "mf", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEngineLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	e := New(nil, WithLogger(logger))
	if _, err := e.Register("A", 2000, []float64{1}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Register("A", 2000, []float64{1}); !core.IsAlreadyExists(err) {
		t.Fatalf("duplicate err = %v, want ALREADY_EXISTS", err)
	}
	out := buf.String()
	for _, want := range []string{`"component":"engine"`, `"item registered"`, `"register rejected"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}
