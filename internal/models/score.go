// Package models holds the plain data structures shared by every core
// package: scores, played notes, pitch results, performance analyses and
// curriculum data. Nothing in here carries behavior beyond simple derived
// accessors — the packages that produce and consume these types own the
// logic.
package models

// Transpose records a transposing instrument's concert-to-written offset.
// Chromatic is the semitone offset; OctaveChange shifts by whole octaves.
type Transpose struct {
	Chromatic    int `json:"chromatic"`
	Diatonic     int `json:"diatonic"`
	OctaveChange int `json:"octaveChange"`
}

// TimeSignature is a beats/beat-type pair, e.g. (4, 4).
type TimeSignature struct {
	Beats    int `json:"beats"`
	BeatType int `json:"beatType"`
}

// NoteEvent is a single note or rest on the written staff.
type NoteEvent struct {
	StartBeat     float64 `json:"startBeat"`
	DurationBeats float64 `json:"durationBeats"`
	Midi          int     `json:"midi"`
	IsRest        bool    `json:"isRest"`
}

// EndBeat is the beat at which this note or rest finishes sounding.
func (n NoteEvent) EndBeat() float64 {
	return n.StartBeat + n.DurationBeats
}

// MeasureInfo records where a measure begins in score beats.
type MeasureInfo struct {
	Number     int     `json:"number"`
	StartBeat  float64 `json:"startBeat"`
}

// Score is the fully parsed or generated timeline for a single part/voice.
type Score struct {
	Tempo         float64       `json:"tempo"`
	Divisions     int           `json:"divisions"`
	TimeSignature TimeSignature `json:"timeSignature"`
	KeyFifths     int           `json:"keyFifths"`
	Transpose     Transpose     `json:"transpose"`
	Notes         []NoteEvent   `json:"notes"`
	Measures      []MeasureInfo `json:"measures"`
	TotalBeats    float64       `json:"totalBeats"`
}

// RecomputeTotalBeats sets TotalBeats to the max end beat over all notes,
// per spec: zero for an empty score. Producers of a Score call this once
// after the note list is final.
func (s *Score) RecomputeTotalBeats() {
	total := 0.0
	for _, n := range s.Notes {
		if end := n.EndBeat(); end > total {
			total = end
		}
	}
	s.TotalBeats = total
}

// NonRestCount returns the number of notes that are not rests.
func (s Score) NonRestCount() int {
	count := 0
	for _, n := range s.Notes {
		if !n.IsRest {
			count++
		}
	}
	return count
}
