package helpers

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"hello world", "hello world"},
		{"  hello\n\t world \n", "hello world"},
		{"a\n\n\nb  c", "a b c"},
	}
	for _, c := range cases {
		if got := CollapseWhitespace(c.in); got != c.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	got, cut := Truncate("hello", 10)
	if got != "hello" || cut {
		t.Errorf("short input should pass through, got %q cut=%v", got, cut)
	}

	got, cut = Truncate("hello", 3)
	if got != "hel" || !cut {
		t.Errorf("expected hel/true, got %q cut=%v", got, cut)
	}

	// rune boundaries, not byte boundaries
	got, cut = Truncate("héllo", 2)
	if got != "hé" || !cut {
		t.Errorf("expected hé/true, got %q cut=%v", got, cut)
	}

	got, cut = Truncate("hello", 0)
	if got != "hello" || cut {
		t.Errorf("max<=0 disables truncation, got %q cut=%v", got, cut)
	}
}
