package models

// PlayedNote is a single segmented onset emitted by the UI's onset
// collaborator (see spec §4.3, §9 "Onset detection location").
type PlayedNote struct {
	OnsetBeat   float64 `json:"onsetBeat"`
	MidiFloat   float64 `json:"midiFloat"`
	MidiRounded int     `json:"midiRounded"`
	Confidence  float64 `json:"confidence"`
}

// PitchResult is the output of a single pitch-detection call. Beat is only
// meaningful when the result is an element of a pitch trail (spec §4.3
// "Technique"); pitch.Detect leaves it zero since a single detection call
// has no timeline of its own — the caller stamps Beat when assembling a
// trail for analyzer.Analyze.
type PitchResult struct {
	Beat       float64 `json:"beat"`
	Hz         float64 `json:"hz"`
	Confidence float64 `json:"confidence"`
	MidiFloat  float64 `json:"midiFloat"`
}

// PitchTendency classifies the sign of the average pitch error.
type PitchTendency string

const (
	TendencyFlat    PitchTendency = "flat"
	TendencySharp   PitchTendency = "sharp"
	TendencyInTune  PitchTendency = "in_tune"
)

// TimingTendency classifies the sign of the average timing error.
type TimingTendency string

const (
	TendencyEarly   TimingTendency = "early"
	TendencyLate    TimingTendency = "late"
	TendencyOnTime  TimingTendency = "on_time"
)

// IntervalProblem names a melodic interval that repeatedly trips up the
// player (spec §4.3 "Interval problems").
type IntervalProblem struct {
	FromMidi     int `json:"fromMidi"`
	ToMidi       int `json:"toMidi"`
	FailureCount int `json:"failureCount"`
}

// PerformanceAnalysis is the full report produced by a single call to
// analyzer.Analyze.
type PerformanceAnalysis struct {
	NotesCorrect    int `json:"notesCorrect"`
	NotesWrongPitch int `json:"notesWrongPitch"`
	NotesMissed     int `json:"notesMissed"`
	NotesExtra      int `json:"notesExtra"`

	AvgPitchErrorCents  float64 `json:"avgPitchErrorCents"`
	AvgTimingErrorBeats float64 `json:"avgTimingErrorBeats"`

	PitchTendency  PitchTendency  `json:"pitchTendency"`
	TimingTendency TimingTendency `json:"timingTendency"`

	// Technique metrics are optional: zero value means "not computed"
	// because no pitch trail was supplied.
	HasTechnique   bool    `json:"hasTechnique"`
	PitchStability float64 `json:"pitchStability"`
	AttackQuality  float64 `json:"attackQuality"`
	BreathSupport  float64 `json:"breathSupport"`
	EnduranceDelta float64 `json:"enduranceDelta"`

	IntervalProblems []IntervalProblem `json:"intervalProblems"`

	OverallScore int `json:"overallScore"`

	Feedback          []string `json:"feedback"`
	TechniqueFeedback []string `json:"techniqueFeedback"`
}
