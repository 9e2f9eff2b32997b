package timecode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "minutes seconds", in: "10:00", want: 600},
		{name: "hours minutes seconds", in: "1:10:00", want: 4200},
		{name: "zero", in: "0:00", want: 0},
		{name: "no hour clamping", in: "90:00", want: 5400},
		{name: "fractional seconds", in: "01:02.5", want: 62.5},
		{name: "padded hours", in: "01:00:01", want: 3601},
		{name: "spaces around parts", in: " 10: 00 ", want: 600},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %v; want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"abc", "1:2:3:4", "", "aa:10", "10:bb", "1:x:00", "1.5:00"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", in)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Parse(%q) error type = %T; want *FormatError", in, err)
			}
			if fe.Input != in {
				t.Errorf("FormatError.Input = %q; want %q", fe.Input, in)
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("errors.Is(err, ErrFormat) = false for %q", in)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	w, err := ParseRange("10:00;1:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start != 600 || w.End != 3600 {
		t.Fatalf("got %+v; want {600 3600}", w)
	}

	// fenêtre inversée : acceptée telle quelle
	w, err = ParseRange("20:00;10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start != 1200 || w.End != 600 {
		t.Fatalf("reversed window altered: %+v", w)
	}
}

func TestParseRangeRejectsMalformed(t *testing.T) {
	for _, in := range []string{"10:00", "10:00;20:00;30:00", "", "10:00;abc", "x;20:00"} {
		if _, err := ParseRange(in); !errors.Is(err, ErrFormat) {
			t.Errorf("ParseRange(%q) err = %v; want ErrFormat", in, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := map[float64]string{
		0:      "00:00:00",
		65:     "00:01:05",
		3661.7: "01:01:01",
		5400:   "01:30:00",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%v) = %q; want %q", in, got, want)
		}
	}
}
