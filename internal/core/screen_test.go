package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, 'X', ColorRed)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Errorf("Get out of bounds = %q, expected space", s.Get(-1, 0))
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColor(2, 2, '#', ColorGreen)
	s.Clear()

	if got := s.GetCell(2, 2); got != (Cell{Rune: ' ', Color: ColorDefault}) {
		t.Errorf("after Clear() cell = %+v, expected blank", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColor(7, 0, "Held: 8", ColorYellow)

	if got := s.Row(0); got != "       Hel" {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}
	if s.GetCell(8, 0).Color != ColorYellow {
		t.Error("text should keep its color")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "·@·", ColorDefault)

	if got := s.Row(0); got != "   ·@·   " {
		t.Errorf("Row(0) = %q, expected centered runes", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	want := []string{"┌──┐", "│  │", "└──┘"}
	for y, line := range want {
		if got := s.Row(y); got != line {
			t.Errorf("Row(%d) = %q, want %q", y, got, line)
		}
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	if got := s.String(); got != "abc\ndef" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(4, 1)
	if s.Width() != 4 || s.Height() != 1 {
		t.Errorf("Resize() dims = %dx%d, want 4x1", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("Resize() should clear content, got %q", s.String())
	}
}
