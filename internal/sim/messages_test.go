package sim

import "testing"

func TestMessageBoard_Dedup(t *testing.T) {
	mb := NewMessageBoard(3)
	if !mb.Post("Built House", 0) {
		t.Fatal("first post should create a message")
	}
	if mb.Post("Built House", 1) {
		t.Fatal("identical text while active should be dropped")
	}
	if !mb.Post("Built Farm", 1) {
		t.Fatal("different text should be added")
	}
	if n := len(mb.Active()); n != 2 {
		t.Fatalf("expected 2 active messages, got %d", n)
	}
}

func TestMessageBoard_ExpiryAllowsRepost(t *testing.T) {
	mb := NewMessageBoard(3)
	mb.Post("Wave 2 is coming!", 10)
	mb.Expire(12.9)
	if len(mb.Active()) != 1 {
		t.Fatal("message should still be active before its duration elapses")
	}
	mb.Expire(13)
	if len(mb.Active()) != 0 {
		t.Fatal("message should expire once its duration has elapsed")
	}
	if !mb.Post("Wave 2 is coming!", 13) {
		t.Fatal("text should be postable again after expiry")
	}
}

func TestEventLog_FilterAndSince(t *testing.T) {
	el := NewEventLog(false)
	el.Add(1, "A1", "ally", CatTarget, "acquire", "Archer → Goblin", 3)
	el.AddVerbose(1, "A1", "ally", CatState, "position", "(1,1)", 0)
	el.Add(2, "H3", "hostile", CatDeath, "hostile", "Goblin", 0)

	if el.Len() != 2 {
		t.Fatalf("verbose entry should be dropped, got %d entries", el.Len())
	}
	if !el.HasEntry(CatTarget, "acquire", "Goblin") {
		t.Fatal("expected acquire entry")
	}
	if got := el.Since(1); len(got) != 1 || got[0].Entity != "H3" {
		t.Fatalf("Since(1) = %v", got)
	}
	if last, ok := el.LastOf(CatDeath, ""); !ok || last.Tick != 2 {
		t.Fatalf("LastOf death = %v, %v", last, ok)
	}
	if len(el.FilterEntity("A1")) != 1 || len(el.FilterTickRange(2, 2)) != 1 {
		t.Fatal("entity or tick filters wrong")
	}
}
