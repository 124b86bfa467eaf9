package util

import "testing"

func TestUserIDFromEmail(t *testing.T) {
	a := UserIDFromEmail("Reader@Example.com")
	b := UserIDFromEmail("  reader@example.com ")
	if a != b {
		t.Fatalf("same email should give same id: %s != %s", a, b)
	}
	if UserIDFromEmail("other@example.com") == a {
		t.Fatalf("different emails should give different ids")
	}
	if UserIDFromEmail("") == UserIDFromEmail("") {
		t.Fatalf("empty email should give random ids")
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             bool
	}{
		{"The Go Programming Language", "go prog", true},
		{"The Go Programming Language", "", true},
		{"", "", true},
		{"", "x", false},
		{"Rust", "go", false},
	}
	for _, test := range tests {
		if got := ContainsFold(test.haystack, test.needle); got != test.want {
			t.Errorf("ContainsFold(%q, %q) = %v", test.haystack, test.needle, got)
		}
	}
}

func TestEmailHelpers(t *testing.T) {
	if EmailLocalPart("name@example.com") != "name" {
		t.Errorf("unexpected local part")
	}
	if EmailLocalPart("plain") != "plain" {
		t.Errorf("unexpected local part without @")
	}
	if !ValidateEmail("name@example.com") || ValidateEmail("not an email") {
		t.Errorf("unexpected email validation")
	}
	if NormalizeTitle("  Al-Kitab ") != "al-kitab" {
		t.Errorf("unexpected normalized title")
	}
}
