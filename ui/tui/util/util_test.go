package util

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestClamp(t *testing.T) {
	if got := Clamp(0, -3, 5); got != 0 {
		t.Fatalf("Clamp low = %d", got)
	}
	if got := Clamp(0, 9, 5); got != 5 {
		t.Fatalf("Clamp high = %d", got)
	}
	if got := Clamp(0, 3, 5); got != 3 {
		t.Fatalf("Clamp mid = %d", got)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct{ i, d, n, want int }{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{1, -4, 3, 0},
		{5, 1, 0, 0},
	}
	for _, c := range cases {
		if got := Wrap(c.i, c.d, c.n); got != c.want {
			t.Errorf("Wrap(%d, %d, %d) = %d; want %d", c.i, c.d, c.n, got, c.want)
		}
	}
}

func TestSize(t *testing.T) {
	var s Size
	if s.Known() {
		t.Fatal("zero size should be unknown")
	}
	if s.Update(tea.KeyMsg{}) {
		t.Fatal("key messages are not sizes")
	}
	if !s.Update(tea.WindowSizeMsg{Width: 80, Height: 24}) || !s.Known() {
		t.Fatal("window size not recorded")
	}
	if m := s.ToMsg(); m.Width != 80 || m.Height != 24 {
		t.Fatalf("ToMsg = %+v", m)
	}
}
