// Package exercise synthesizes practice Scores for a handful of named
// drill types (spec §4.4). Every generator stays inside the caller's MIDI
// range and produces a Score whose TotalBeats exactly matches the sum of
// its note and rest durations (spec §8, testable property 7).
package exercise

import (
	"fmt"

	"trumpetcoach/backend/internal/models"
)

// majorScaleDegrees are the seven semitone offsets of a major scale,
// repeated every octave by adding 12*octave to the degree's offset.
var majorScaleDegrees = []int{0, 2, 4, 5, 7, 9, 11}

// harmonicSeries lists the first eight brass partials as semitone offsets
// above the fundamental, used for lip-slur drills.
var harmonicSeries = []int{0, 12, 19, 24, 28, 31, 34, 36}

const ticksDivisions = 4 // quarter note = 4 ticks; matches spec §4.4 "divisions = 4"

// builder accumulates NoteEvents at a running beat cursor.
type builder struct {
	cursor float64
	notes  []models.NoteEvent
}

func (b *builder) note(midi int, durationBeats float64) {
	b.notes = append(b.notes, models.NoteEvent{
		StartBeat:     b.cursor,
		DurationBeats: durationBeats,
		Midi:          midi,
	})
	b.cursor += durationBeats
}

func (b *builder) rest(durationBeats float64) {
	b.notes = append(b.notes, models.NoteEvent{
		StartBeat:     b.cursor,
		DurationBeats: durationBeats,
		IsRest:        true,
	})
	b.cursor += durationBeats
}

// Generate builds a Score for the named exercise type. key is a note name
// with optional accidental and octave (e.g. "C4", "Bb3"); tempo is passed
// through verbatim; midiLow/midiHigh bound every emitted pitch.
func Generate(exerciseType models.ExerciseType, key string, tempo float64, difficulty, midiLow, midiHigh int) (models.Score, error) {
	if midiLow > midiHigh {
		return models.Score{}, fmt.Errorf("midi range is inverted: low=%d > high=%d", midiLow, midiHigh)
	}
	if midiLow == midiHigh {
		return models.Score{}, fmt.Errorf("midi range is empty: low=high=%d", midiLow)
	}

	tonic, err := parseTonicMidi(key)
	if err != nil {
		return models.Score{}, err
	}

	b := &builder{}

	switch exerciseType {
	case models.ExerciseLongTones:
		genLongTones(b, tonic, midiLow, midiHigh)
	case models.ExerciseMajorScale:
		genMajorScale(b, tonic, difficulty, midiLow, midiHigh)
	case models.ExerciseChromatic:
		genChromatic(b, midiLow, midiHigh, difficulty)
	case models.ExerciseLipSlurs:
		genLipSlurs(b, tonic, difficulty, midiLow, midiHigh)
	case models.ExerciseIntervals:
		genIntervals(b, tonic, difficulty, midiLow, midiHigh)
	case models.ExerciseArpeggios:
		genArpeggios(b, tonic, midiLow, midiHigh)
	default:
		return models.Score{}, fmt.Errorf("unknown exercise type: %q", exerciseType)
	}

	if len(b.notes) == 0 {
		return models.Score{}, fmt.Errorf("exercise %q produced no notes for the given range", exerciseType)
	}

	score := models.Score{
		Tempo:     tempo,
		Divisions: ticksDivisions,
		TimeSignature: models.TimeSignature{Beats: 4, BeatType: 4},
		Notes:     b.notes,
		Measures:  []models.MeasureInfo{{Number: 1, StartBeat: 0}},
	}
	score.RecomputeTotalBeats()
	return score, nil
}

// genLongTones emits whole notes ascending by scale step from the tonic,
// each followed by a whole-note rest.
func genLongTones(b *builder, tonic, low, high int) {
	for i := 0; ; i++ {
		octave := i / 7
		degree := i % 7
		p := tonic + 12*octave + majorScaleDegrees[degree]
		if p > high {
			break
		}
		if p < low {
			continue
		}
		b.note(p, 4)
		b.rest(4)
	}
}

// genMajorScale emits one octave (two if difficulty >= 2) ascending then
// descending from the tonic, in quarter notes. If two octaves would carry
// the scale above high, it falls back to one; if even one octave does not
// fit in [low, high], it emits nothing.
func genMajorScale(b *builder, tonic, difficulty, low, high int) {
	if tonic < low || tonic > high {
		return
	}

	octaves := 1
	if difficulty >= 2 {
		octaves = 2
	}
	for octaves > 1 && tonic+12*octaves > high {
		octaves--
	}
	if tonic+12*octaves > high {
		return
	}

	var ascending []int
	for i := 0; i <= 7*octaves; i++ {
		octave := i / 7
		degree := i % 7
		if i == 7*octaves {
			ascending = append(ascending, tonic+12*octaves)
			break
		}
		ascending = append(ascending, tonic+12*octave+majorScaleDegrees[degree])
	}

	for _, p := range ascending {
		b.note(p, 1)
	}
	for i := len(ascending) - 2; i >= 0; i-- {
		b.note(ascending[i], 1)
	}
}

// genChromatic emits every semitone from low to high and back.
func genChromatic(b *builder, low, high, difficulty int) {
	dur := 1.0
	if difficulty >= 2 {
		dur = 0.5
	}
	for p := low; p <= high; p++ {
		b.note(p, dur)
	}
	for p := high - 1; p >= low; p-- {
		b.note(p, dur)
	}
}

// genLipSlurs emits slurred pairs walking up the harmonic series rooted
// at the tonic, as half notes. Pairs whose members fall outside the
// caller's range are skipped.
func genLipSlurs(b *builder, tonic, difficulty, low, high int) {
	pairCount := 2*difficulty + 1
	for i := 0; i < pairCount && i+1 < len(harmonicSeries); i++ {
		from := tonic + harmonicSeries[i]
		to := tonic + harmonicSeries[i+1]
		if from < low || from > high || to < low || to > high {
			continue
		}
		b.note(from, 2)
		b.note(to, 2)
	}
}

// genIntervals emits, for each scale-degree starting pitch in range, an
// ascending interval of size 2+difficulty semitones followed by its
// descending inverse, in quarter notes.
func genIntervals(b *builder, tonic, difficulty, low, high int) {
	size := 2 + difficulty
	for i := 0; ; i++ {
		octave := i / 7
		degree := i % 7
		start := tonic + 12*octave + majorScaleDegrees[degree]
		if start > high {
			break
		}
		top := start + size
		if start < low || top > high {
			continue
		}
		b.note(start, 1)
		b.note(top, 1)
		b.note(top, 1)
		b.note(start, 1)
	}
}

// genArpeggios emits a major triad (root, 3rd, 5th, octave) on every
// pitch-class occurrence of the tonic within range, as quarter notes.
// A root is skipped if its octave note would fall outside the range.
func genArpeggios(b *builder, tonic, low, high int) {
	pitchClass := ((tonic % 12) + 12) % 12
	for root := low; root <= high; root++ {
		if ((root%12)+12)%12 != pitchClass {
			continue
		}
		octaveNote := root + 12
		if octaveNote > high {
			continue
		}
		b.note(root, 1)
		b.note(root+4, 1)
		b.note(root+7, 1)
		b.note(octaveNote, 1)
	}
}
