package content

import "testing"

func TestHandleRoundTrip(t *testing.T) {
	tests := []struct {
		in   Handle
		want string
	}{
		{Handle{Kind: KindThread, Ref: "threads/go-generics.md"}, "thread:threads/go-generics.md"},
		{Handle{Kind: KindNote, Ref: "notes/2026-01-03-101500.md"}, "note:notes/2026-01-03-101500.md"},
		{Handle{Kind: KindGraph}, "graph"},
		{Handle{Kind: KindTerminal}, "terminal"},
		{Handle{Kind: KindSettings}, "settings"},
		{Handle{}, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.in.String()
			if got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
			back, err := ParseHandle(got)
			if err != nil {
				t.Fatalf("ParseHandle(%q): %v", got, err)
			}
			if back != tt.in {
				t.Errorf("round trip = %+v, want %+v", back, tt.in)
			}
		})
	}
}

func TestParseHandleUnknownKind(t *testing.T) {
	if _, err := ParseHandle("spreadsheet:q3.xlsx"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Generics in Go! (Draft)", "generics-in-go-draft"},
		{"2026-01-01 Episode 12", "2026-01-01-episode-12"},
		{"", ""},
		{"Already-Slugged", "already-slugged"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
