package models

// ExerciseType is the tag-like string identifying the shape of an exercise
// (see exercise.Generate for the recognized set).
type ExerciseType string

const (
	ExerciseLongTones ExerciseType = "long_tones"
	ExerciseMajorScale ExerciseType = "major_scale"
	ExerciseChromatic ExerciseType = "chromatic"
	ExerciseLipSlurs ExerciseType = "lip_slurs"
	ExerciseIntervals ExerciseType = "intervals"
	ExerciseArpeggios ExerciseType = "arpeggios"
)

// TempoRange is an inclusive (min, max) BPM band suggested for an exercise.
type TempoRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// MidiRange is an inclusive (low, high) MIDI note band an exercise stays
// within.
type MidiRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// ExerciseSpec describes one practice item a learner can generate and play.
type ExerciseSpec struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	ExerciseType ExerciseType `json:"exerciseType"`
	Keys         []string     `json:"keys"`
	TempoRange   TempoRange   `json:"tempoRange"`
	Difficulty   int          `json:"difficulty"`
	MidiRange    MidiRange    `json:"midiRange"`
}

// Stage groups a handful of exercises a learner works through together.
type Stage struct {
	StageNumber int            `json:"stageNumber"`
	Name        string         `json:"name"`
	Exercises   []ExerciseSpec `json:"exercises"`
}

// Curriculum is the full ordered sequence of stages.
type Curriculum []Stage
