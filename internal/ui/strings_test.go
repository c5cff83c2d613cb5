package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"charmander", 20, "charmander"},
		{"charmander", 7, "char..."},
		{"charmander", 3, "cha"},
		{"charmander", 0, ""},
		{"  pikachu  ", 7, "pikachu"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"charmander": "Charmander",
		"mr-mime":    "Mr Mime",
		"ho-oh":      "Ho Oh",
		"":           "",
		"--":         "",
	}
	for in, want := range tests {
		if got := displayName(in); got != want {
			t.Fatalf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 3); got != 3 {
		t.Fatalf("clamp high = %d", got)
	}
	if got := clamp(-1, 0, 3); got != 0 {
		t.Fatalf("clamp low = %d", got)
	}
	if got := clamp(2, 0, -1); got != 0 {
		t.Fatalf("clamp empty range = %d, want 0", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight long = %q", got)
	}
}
