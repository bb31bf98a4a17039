package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func checkPopulated(t *testing.T, name string, th Theme) {
	t.Helper()
	fields := []struct {
		name  string
		color lipgloss.Color
	}{
		{"Accent", th.Accent},
		{"Subtle", th.Subtle},
		{"Text", th.Text},
		{"Dim", th.Dim},
		{"Border", th.Border},
		{"StatusBg", th.StatusBg},
		{"StatusFg", th.StatusFg},
		{"Error", th.Error},
		{"Focus", th.Focus},
		{"Armed", th.Armed},
		{"Zoomed", th.Zoomed},
	}
	for _, f := range fields {
		if string(f.color) == "" {
			t.Errorf("%s.%s is empty", name, f.name)
		}
	}
}

func TestPalettesPopulated(t *testing.T) {
	checkPopulated(t, "Default", Default())
	checkPopulated(t, "Plain", Plain())
}

func TestNamed(t *testing.T) {
	if Named("plain") != Plain() {
		t.Error("Named(plain) should return the plain palette")
	}
	if Named("") != Default() {
		t.Error("Named should fall back to the default palette")
	}
	if Named("bogus") != Default() {
		t.Error("unknown names fall back to the default palette")
	}
}
