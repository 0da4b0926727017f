// Package transpose maps MIDI numbers between concert pitch and a
// transposing instrument's written pitch (spec §4.5).
package transpose

import "trumpetcoach/backend/internal/models"

// BbTrumpet is the standard transpose block for a B-flat trumpet: a
// written note sounds a major second lower, so the trumpet reads a major
// second above concert and concert-to-written adds 2 semitones. Chromatic
// is therefore +2 in the concert-to-written sense ConcertToWritten uses,
// i.e. concert A4 (69) is written as B4 (71).
var BbTrumpet = models.Transpose{
	Chromatic:    2,
	Diatonic:     1,
	OctaveChange: 0,
}

// ConcertToWritten maps a concert-pitch MIDI number to the written MIDI
// number for the given transpose block.
func ConcertToWritten(midiConcert int, t models.Transpose) int {
	return midiConcert + t.Chromatic + 12*t.OctaveChange
}

// WrittenToConcert is the inverse of ConcertToWritten.
func WrittenToConcert(midiWritten int, t models.Transpose) int {
	return midiWritten - t.Chromatic - 12*t.OctaveChange
}

// ConcertToWrittenFloat applies the same mapping to a fractional MIDI
// number, for converting a detected concert-pitch fundamental into the
// written frame before comparing it against a score note.
func ConcertToWrittenFloat(midiConcert float64, t models.Transpose) float64 {
	return midiConcert + float64(t.Chromatic) + 12*float64(t.OctaveChange)
}

// WrittenToConcertFloat is the float inverse of ConcertToWrittenFloat.
func WrittenToConcertFloat(midiWritten float64, t models.Transpose) float64 {
	return midiWritten - float64(t.Chromatic) - 12*float64(t.OctaveChange)
}
