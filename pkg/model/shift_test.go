package model

import "testing"

func TestMod9(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{-1, 8},
		{-9, 0},
		{-10, 8},
	}
	for _, c := range cases {
		if got := Mod9(c.in); got != c.want {
			t.Errorf("Mod9(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPatternAt(t *testing.T) {
	want := []Shift{Morning, Morning, Afternoon, Afternoon, Off, Night, Night, Off, Off}
	for i, w := range want {
		if got := Pattern.At(i); got != w {
			t.Errorf("Pattern.At(%d) = %s, want %s", i, got, w)
		}
	}
	// wraps and goes negative correctly
	if got := Pattern.At(9); got != want[0] {
		t.Errorf("Pattern.At(9) = %s, want %s", got, want[0])
	}
	if got := Pattern.At(-1); got != want[8] {
		t.Errorf("Pattern.At(-1) = %s, want %s", got, want[8])
	}
}

func TestParseShift(t *testing.T) {
	if _, err := ParseShift("Off"); err == nil {
		t.Error("Off should not be a valid request shiftType")
	}
	for _, s := range WorkingShifts {
		got, err := ParseShift(string(s))
		if err != nil || got != s {
			t.Errorf("ParseShift(%q) = %v, %v; want %s, nil", s, got, err, s)
		}
	}
	if _, err := ParseShift("bogus"); err == nil {
		t.Error("expected error for unknown shiftType")
	}
}

func TestParseLocation(t *testing.T) {
	for _, l := range Locations {
		got, err := ParseLocation(string(l))
		if err != nil || got != l {
			t.Errorf("ParseLocation(%q) = %v, %v; want %s, nil", l, got, err, l)
		}
	}
	if _, err := ParseLocation("North"); err == nil {
		t.Error("expected error for unknown location")
	}
}
