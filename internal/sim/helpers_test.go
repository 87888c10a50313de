package sim

import "testing"

// newWorld builds a TestWorld or fails the test.
func newWorld(t *testing.T, opts ...WorldOption) *TestWorld {
	t.Helper()
	tw, err := NewTestWorld(opts...)
	if err != nil {
		t.Fatalf("NewTestWorld: %v", err)
	}
	return tw
}

// dumpLog prints the full EventLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, tw *TestWorld) {
	t.Helper()
	entries := tw.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// countMessages returns how many active messages carry text.
func countMessages(w *World, text string) int {
	n := 0
	for _, m := range w.Messages().Active() {
		if m.Text == text {
			n++
		}
	}
	return n
}
