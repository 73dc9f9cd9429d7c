package optimize

import "testing"

func join(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func TestCoalescePushesMergesConsecutivePushes(t *testing.T) {
	in := []string{
		"push 'a'",
		"push 'b'",
		"push 123",
		"setVariable",
		"push 123",
		"setVariable",
		"pop",
	}
	want := []string{
		"push 'a', 'b', 123",
		"setVariable",
		"push 123",
		"setVariable",
		"pop",
	}
	got := CoalescePushes(in)
	if join(got) != join(want) {
		t.Fatalf("got:\n%s\nwant:\n%s", join(got), join(want))
	}
}

func TestCoalescePushesPreservesFirstLineIndent(t *testing.T) {
	in := []string{
		"  push 1",
		"  push 2",
		"  add",
	}
	want := []string{
		"  push 1, 2",
		"  add",
	}
	got := CoalescePushes(in)
	if join(got) != join(want) {
		t.Fatalf("got:\n%s\nwant:\n%s", join(got), join(want))
	}
}

func TestCoalescePushesLeavesNonPushLinesAlone(t *testing.T) {
	in := []string{
		"function2 'f' () (r:1='this')",
		"push 1",
		"end // of function f",
	}
	got := CoalescePushes(in)
	if join(got) != join(in) {
		t.Fatalf("got:\n%s\nwant:\n%s", join(got), join(in))
	}
}

// TestCoalescePushesIdempotent pins the idempotence property: running
// the pass twice matches running it once.
func TestCoalescePushesIdempotent(t *testing.T) {
	in := []string{
		"push 'a'",
		"push 'b'",
		"push 123",
		"setVariable",
		"push 123",
		"setVariable",
		"pop",
	}
	once := CoalescePushes(in)
	twice := CoalescePushes(once)
	if join(once) != join(twice) {
		t.Fatalf("not idempotent:\nonce:\n%s\ntwice:\n%s", join(once), join(twice))
	}
}
