package user

import (
	"context"
	"testing"

	"github.com/rushteam/vecrec/catalog"
	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/store"
)

func TestUserRatingsAreCopied(t *testing.T) {
	in := core.Ratings{core.NewItem("A", 1): 3}
	u := New("alice", in)
	in[core.NewItem("B", 2)] = 1

	got := u.Ratings()
	if len(got) != 1 {
		t.Fatalf("New() kept caller map: %v", got)
	}
	got[core.NewItem("C", 3)] = 5
	if len(u.Ratings()) != 1 {
		t.Errorf("Ratings() exposed internal map")
	}
}

func TestAddItem(t *testing.T) {
	cat := catalog.New()
	u := New("bob", nil)

	it, err := u.AddItem(cat, "Alien", 1979, []float64{1, 0}, 4.5)
	if err != nil {
		t.Fatal(err)
	}
	if r := u.Ratings()[it]; r != 4.5 {
		t.Errorf("rating = %v, want 4.5", r)
	}
	if _, ok := cat.Lookup("Alien", 1979); !ok {
		t.Errorf("AddItem() did not register item")
	}

	// 重复注册失败时不写评分
	if _, err := u.AddItem(cat, "Alien", 1979, []float64{0, 1}, 1); !core.IsAlreadyExists(err) {
		t.Fatalf("AddItem() err = %v, want ALREADY_EXISTS", err)
	}
	if r := u.Ratings()[it]; r != 4.5 {
		t.Errorf("rating changed after failed AddItem: %v", r)
	}
}

func TestDescribe(t *testing.T) {
	cat := catalog.New()
	cat.Register("Heat", 1995, []float64{1})
	cat.Register("Alien", 1979, []float64{1})

	u := New("carol", nil)
	want := "name: carol\nAlien\nHeat\n\n"
	if got := u.Describe(cat); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
	if got := u.String(); got != "name: carol\n\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestRatingStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rs := NewRatingStore(store.NewMemoryStore(), "")

	alice := New("alice", core.Ratings{
		core.NewItem("Matrix", 1999): 5,
		core.NewItem("Matrix", 2003): 2.5,
		core.NewItem("Alien", 1979):  4,
	})
	if err := rs.Save(ctx, alice); err != nil {
		t.Fatal(err)
	}

	loaded, err := rs.Load(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name() != "alice" {
		t.Errorf("Name() = %q", loaded.Name())
	}
	want := alice.Ratings()
	got := loaded.Ratings()
	if len(got) != len(want) {
		t.Fatalf("Load() = %v, want %v", got, want)
	}
	for it, r := range want {
		if got[it] != r {
			t.Errorf("rating[%v] = %v, want %v", it, got[it], r)
		}
	}

	if _, err := rs.Load(ctx, "nobody"); !core.IsNotFound(err) {
		t.Errorf("Load(nobody) err = %v, want NOT_FOUND", err)
	}

	users, err := rs.LoadMany(ctx, []string{"nobody", "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Name() != "alice" {
		t.Errorf("LoadMany() = %v", users)
	}

	if err := rs.Delete(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := rs.Load(ctx, "alice"); !core.IsNotFound(err) {
		t.Errorf("Load() after Delete err = %v", err)
	}
}

func TestEncodeRatingsIsOrdered(t *testing.T) {
	data, err := encodeRatings(core.Ratings{
		core.NewItem("B", 1): 1,
		core.NewItem("A", 2): 2,
		core.NewItem("A", 1): 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"name":"A","year":1,"rating":3},{"name":"A","year":2,"rating":2},{"name":"B","year":1,"rating":1}]`
	if string(data) != want {
		t.Errorf("encodeRatings() = %s, want %s", data, want)
	}
}
