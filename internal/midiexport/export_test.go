package midiexport

import (
	"testing"

	"trumpetcoach/backend/internal/models"
)

func TestExport_ProducesBytes(t *testing.T) {
	score := models.Score{
		Tempo:         120,
		Divisions:     4,
		TimeSignature: models.TimeSignature{Beats: 4, BeatType: 4},
		Notes: []models.NoteEvent{
			{StartBeat: 0, DurationBeats: 1, Midi: 60},
			{StartBeat: 1, DurationBeats: 1, IsRest: true},
			{StartBeat: 2, DurationBeats: 1, Midi: 64},
		},
	}

	out, err := Export(score)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty MIDI bytes")
	}
	if string(out[:4]) != "MThd" {
		t.Errorf("expected output to start with an MThd chunk, got %q", out[:4])
	}
}

func TestExport_DefaultsTempo(t *testing.T) {
	score := models.Score{
		Notes: []models.NoteEvent{{StartBeat: 0, DurationBeats: 1, Midi: 60}},
	}
	out, err := Export(score)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty MIDI bytes even with zero tempo")
	}
}
