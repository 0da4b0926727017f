// Package midiexport renders a Score to a Standard MIDI File so a learner
// can drop a generated exercise or a parsed score straight into a DAW or
// hardware sequencer.
package midiexport

import (
	"bytes"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"trumpetcoach/backend/internal/models"
)

// ticksPerQuarter is the SMF time-division resolution; 480 is the same
// value the chord tutor's hand-rolled writer used.
const ticksPerQuarter = 480

// Export renders score as a format-0 Standard MIDI File. Rests accumulate
// as delta-time gaps rather than emitting any event, matching how rests
// are represented in the note stream itself (spec §3).
func Export(score models.Score) ([]byte, error) {
	tempo := score.Tempo
	if tempo <= 0 {
		tempo = 120
	}
	beats := score.TimeSignature.Beats
	beatType := score.TimeSignature.BeatType
	if beats == 0 {
		beats = 4
	}
	if beatType == 0 {
		beatType = 4
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(tempo))
	tr.Add(0, smf.MetaMeter(uint8(beats), uint8(beatType)))

	var pendingTicks uint32
	for _, n := range score.Notes {
		dur := beatsToTicks(n.DurationBeats)
		if n.IsRest {
			pendingTicks += dur
			continue
		}
		tr.Add(pendingTicks, midi.NoteOn(0, clampMidi(n.Midi), 100))
		pendingTicks = 0
		tr.Add(dur, midi.NoteOff(0, clampMidi(n.Midi)))
	}
	tr.Close(pendingTicks)

	if err := s.Add(tr); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func beatsToTicks(beats float64) uint32 {
	return uint32(beats * float64(ticksPerQuarter))
}

// clampMidi guards against out-of-band values reaching the wire format;
// MIDI note numbers are a single byte.
func clampMidi(m int) uint8 {
	if m < 0 {
		return 0
	}
	if m > 127 {
		return 127
	}
	return uint8(m)
}
