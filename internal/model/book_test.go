package model

import "testing"

func TestBookFormNormalize(t *testing.T) {
	for _, v := range []int{-3, 0} {
		f := BookForm{Volumes: v}
		f.Normalize()
		if f.Volumes != 1 {
			t.Errorf("volumes %d should clamp to 1, got %d", v, f.Volumes)
		}
	}
	f := BookForm{Volumes: 7}
	f.Normalize()
	if f.Volumes != 7 {
		t.Errorf("volumes should stay 7, got %d", f.Volumes)
	}
}

func TestBookFormApplyKeepsIdentity(t *testing.T) {
	b := &Book{ID: "id-1", UserID: "u-1", Title: "old", Volumes: 2, CreatedAt: 42}
	BookForm{Title: "new", Author: "a", Volumes: 0, Notes: "n"}.Apply(b)

	if b.ID != "id-1" || b.UserID != "u-1" || b.CreatedAt != 42 {
		t.Fatalf("identity fields changed: %+v", b)
	}
	if b.Title != "new" || b.Author != "a" || b.Notes != "n" || b.Volumes != 1 {
		t.Fatalf("editable fields not applied: %+v", b)
	}
	if got := b.Form(); got.Title != "new" || got.Volumes != 1 {
		t.Fatalf("unexpected form: %+v", got)
	}
}
