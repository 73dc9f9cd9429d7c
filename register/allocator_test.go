package register

import "testing"

func TestAllocateLowestFreeId(t *testing.T) {
	a := New()

	r1, err := a.Allocate("a", "")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if r1.Id != MinId {
		t.Fatalf("expected id %d, got %d", MinId, r1.Id)
	}

	r2, err := a.Allocate("b", "")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if r2.Id != MinId+1 {
		t.Fatalf("expected id %d, got %d", MinId+1, r2.Id)
	}

	a.Free(r1)

	r3, err := a.Allocate("c", "")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if r3.Id != r1.Id {
		t.Fatalf("expected freed id %d to be reused, got %d", r1.Id, r3.Id)
	}
}

func TestAssignConflict(t *testing.T) {
	a := New()
	if _, err := a.Assign(5, "x", ""); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := a.Assign(5, "y", ""); err == nil {
		t.Fatal("expected conflict error, got nil")
	}
}

func TestFreeIsIdempotent(t *testing.T) {
	a := New()
	r, _ := a.Allocate("x", "")
	a.Free(r)
	a.Free(r) // must not panic
	if a.Occupied(r.Id) {
		t.Fatal("expected slot to be free")
	}
}

func TestOutOfRegisters(t *testing.T) {
	a := New()
	for id := MinId; id <= MaxId; id++ {
		if _, err := a.Allocate("", ""); err != nil {
			t.Fatalf("allocate %d: %v", id, err)
		}
	}
	if _, err := a.Allocate("overflow", ""); err == nil {
		t.Fatal("expected out-of-registers error, got nil")
	}
}

func TestRegisterString(t *testing.T) {
	cases := []struct {
		r    Register
		want string
	}{
		{Register{Id: 3}, "r:3"},
		{Register{Id: 3, Name: "velocity"}, "r:velocity"},
		{Register{Id: 3, Name: "new"}, "r:'new'"},
		{Register{Id: 3, Name: "x", Tag: "local:x"}, "r:x /*local:x*/"},
	}
	for _, c := range cases {
		if got := c.r.String(); got != c.want {
			t.Errorf("Register{%+v}.String() = %q, want %q", c.r, got, c.want)
		}
	}
}
