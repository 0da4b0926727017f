package transpose

import (
	"testing"

	"trumpetcoach/backend/internal/models"
)

func TestConcertToWritten_BbTrumpet(t *testing.T) {
	// Concert A4 (69) -> written B4 (71), per spec §4.5's worked example.
	got := ConcertToWritten(69, BbTrumpet)
	if got != 71 {
		t.Errorf("ConcertToWritten(69) = %d, want 71", got)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []int{40, 55, 60, 69, 84, 96}
	for _, x := range cases {
		written := ConcertToWritten(x, BbTrumpet)
		back := WrittenToConcert(written, BbTrumpet)
		if back != x {
			t.Errorf("WrittenToConcert(ConcertToWritten(%d)) = %d, want %d", x, back, x)
		}
	}
}

func TestRoundTrip_Identity(t *testing.T) {
	identity := models.Transpose{}
	if ConcertToWritten(60, identity) != 60 {
		t.Errorf("identity transpose should not change pitch")
	}
}

func TestRoundTripFloat(t *testing.T) {
	cases := []float64{60.0, 69.3, 71.95}
	for _, x := range cases {
		written := ConcertToWrittenFloat(x, BbTrumpet)
		back := WrittenToConcertFloat(written, BbTrumpet)
		if back != x {
			t.Errorf("float round trip for %v = %v, want %v", x, back, x)
		}
	}
}

func TestOctaveChange(t *testing.T) {
	tr := models.Transpose{Chromatic: 2, OctaveChange: 1}
	// Concert A4 (69) written an octave higher than the base B4 (71) -> 83.
	if got := ConcertToWritten(69, tr); got != 83 {
		t.Errorf("ConcertToWritten with octave change = %d, want 83", got)
	}
}
