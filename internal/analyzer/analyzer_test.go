package analyzer

import (
	"testing"

	"trumpetcoach/backend/internal/models"
)

func twoNoteScore() models.Score {
	return models.Score{
		Tempo:     120,
		Divisions: 4,
		Notes: []models.NoteEvent{
			{StartBeat: 0, DurationBeats: 1, Midi: 60},
			{StartBeat: 1, DurationBeats: 1, Midi: 64},
		},
	}
}

// S4 — a clean take: every note correct, in tune, on time.
func TestAnalyze_PerfectTake(t *testing.T) {
	played := []models.PlayedNote{
		{OnsetBeat: 0, MidiFloat: 60, MidiRounded: 60, Confidence: 0.9},
		{OnsetBeat: 1, MidiFloat: 64, MidiRounded: 64, Confidence: 0.9},
	}
	a := Analyze(twoNoteScore(), played, 0, 0, nil)

	if a.NotesCorrect != 2 || a.NotesWrongPitch != 0 || a.NotesMissed != 0 || a.NotesExtra != 0 {
		t.Fatalf("unexpected note counts: %+v", a)
	}
	if a.PitchTendency != models.TendencyInTune {
		t.Errorf("PitchTendency = %v, want in_tune", a.PitchTendency)
	}
	if a.TimingTendency != models.TendencyOnTime {
		t.Errorf("TimingTendency = %v, want on_time", a.TimingTendency)
	}
	if a.OverallScore != 100 {
		t.Errorf("OverallScore = %d, want 100", a.OverallScore)
	}
}

// S5 — a flat take: every note 20 cents flat.
func TestAnalyze_FlatTake(t *testing.T) {
	played := []models.PlayedNote{
		{OnsetBeat: 0, MidiFloat: 59.8, MidiRounded: 60, Confidence: 0.9},
		{OnsetBeat: 1, MidiFloat: 63.8, MidiRounded: 64, Confidence: 0.9},
	}
	a := Analyze(twoNoteScore(), played, 0, 0, nil)

	if a.PitchTendency != models.TendencyFlat {
		t.Errorf("PitchTendency = %v, want flat", a.PitchTendency)
	}
	found := false
	for _, f := range a.Feedback {
		if f == "You're playing consistently flat, support the pitch with more air" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected flat feedback, got %v", a.Feedback)
	}
}

// S6 — a take missing the second note entirely.
func TestAnalyze_MissedNote(t *testing.T) {
	played := []models.PlayedNote{
		{OnsetBeat: 0, MidiFloat: 60, MidiRounded: 60, Confidence: 0.9},
	}
	a := Analyze(twoNoteScore(), played, 0, 0, nil)

	if a.NotesCorrect != 1 || a.NotesMissed != 1 {
		t.Fatalf("unexpected note counts: %+v", a)
	}
	if a.OverallScore != 50 {
		t.Errorf("OverallScore = %d, want 50 (1 of 2 notes correct)", a.OverallScore)
	}
}

func TestAnalyze_NoNotesDetected(t *testing.T) {
	a := Analyze(twoNoteScore(), nil, 0, 0, nil)
	if len(a.Feedback) != 1 || a.Feedback[0] != "No notes detected" {
		t.Errorf("Feedback = %v, want [\"No notes detected\"]", a.Feedback)
	}
	if a.NotesMissed != 2 {
		t.Errorf("NotesMissed = %d, want 2", a.NotesMissed)
	}
}

// Invariant 5: a take closer to the reference scores at least as high as
// one further away, holding note coverage fixed.
func TestAnalyze_MonotonicityInPitchError(t *testing.T) {
	score := models.Score{Notes: []models.NoteEvent{{StartBeat: 0, DurationBeats: 1, Midi: 60}}}

	close := Analyze(score, []models.PlayedNote{{OnsetBeat: 0, MidiFloat: 60.05, MidiRounded: 60, Confidence: 0.9}}, 0, 0, nil)
	far := Analyze(score, []models.PlayedNote{{OnsetBeat: 0, MidiFloat: 60.45, MidiRounded: 60, Confidence: 0.9}}, 0, 0, nil)

	if close.OverallScore < far.OverallScore {
		t.Errorf("closer take scored lower: close=%d far=%d", close.OverallScore, far.OverallScore)
	}
}

// Invariant 6: flat and sharp errors of equal magnitude affect the score
// symmetrically.
func TestAnalyze_FlatSharpSymmetry(t *testing.T) {
	score := models.Score{Notes: []models.NoteEvent{{StartBeat: 0, DurationBeats: 1, Midi: 60}}}

	flat := Analyze(score, []models.PlayedNote{{OnsetBeat: 0, MidiFloat: 59.7, MidiRounded: 60, Confidence: 0.9}}, 0, 0, nil)
	sharp := Analyze(score, []models.PlayedNote{{OnsetBeat: 0, MidiFloat: 60.3, MidiRounded: 60, Confidence: 0.9}}, 0, 0, nil)

	if flat.OverallScore != sharp.OverallScore {
		t.Errorf("expected symmetric scores, got flat=%d sharp=%d", flat.OverallScore, sharp.OverallScore)
	}
	if flat.PitchTendency != models.TendencyFlat || sharp.PitchTendency != models.TendencySharp {
		t.Errorf("expected opposite tendencies, got flat=%v sharp=%v", flat.PitchTendency, sharp.PitchTendency)
	}
}

// Matching must minimize |midi_rounded - s.midi|, not |midi_float - s.midi|:
// candidate A is pitch-exact (rounded) but further in cents; candidate B is
// a full semitone off (rounded) but numerically closer in raw float terms.
// Spec requires picking A.
func TestAnalyze_MatchUsesMidiRounded(t *testing.T) {
	score := models.Score{Notes: []models.NoteEvent{{StartBeat: 0, DurationBeats: 1, Midi: 60}}}
	played := []models.PlayedNote{
		{OnsetBeat: 0.1, MidiFloat: 60.49, MidiRounded: 60, Confidence: 0.9},
		{OnsetBeat: 0.05, MidiFloat: 59.9, MidiRounded: 59, Confidence: 0.9},
	}
	a := Analyze(score, played, 0, 0, nil)

	if a.NotesCorrect != 1 {
		t.Fatalf("expected the rounded-pitch-exact candidate to match as correct, got %+v", a)
	}
	if a.NotesExtra != 1 {
		t.Errorf("expected the other candidate to be left over as extra, got NotesExtra=%d", a.NotesExtra)
	}
}

// A caller-supplied tighter pitch tolerance must be able to turn an
// otherwise-correct match into wrong_pitch.
func TestAnalyze_PitchTolOverride(t *testing.T) {
	score := models.Score{Notes: []models.NoteEvent{{StartBeat: 0, DurationBeats: 1, Midi: 60}}}
	played := []models.PlayedNote{{OnsetBeat: 0, MidiFloat: 60.3, MidiRounded: 60, Confidence: 0.9}}

	loose := Analyze(score, played, 50, 0, nil)
	if loose.NotesCorrect != 1 {
		t.Fatalf("expected correct under the default 50-cent tolerance, got %+v", loose)
	}

	strict := Analyze(score, played, 20, 0, nil)
	if strict.NotesWrongPitch != 1 || strict.NotesCorrect != 0 {
		t.Fatalf("expected wrong_pitch under a 20-cent tolerance, got %+v", strict)
	}
}

// A caller-supplied tighter timing tolerance must be able to turn an
// otherwise-matched note into missed.
func TestAnalyze_TimingTolOverride(t *testing.T) {
	score := models.Score{Notes: []models.NoteEvent{{StartBeat: 0, DurationBeats: 1, Midi: 60}}}
	played := []models.PlayedNote{{OnsetBeat: 0.25, MidiFloat: 60, MidiRounded: 60, Confidence: 0.9}}

	loose := Analyze(score, played, 0, 0.3, nil)
	if loose.NotesMissed != 0 {
		t.Fatalf("expected a match within the default 0.3-beat tolerance, got %+v", loose)
	}

	strict := Analyze(score, played, 0, 0.1, nil)
	if strict.NotesMissed != 1 {
		t.Fatalf("expected a miss outside a 0.1-beat tolerance, got %+v", strict)
	}
}

// Interval problems key on adjacent SCORE note pairs, counting a failure
// whenever the later note of the pair is wrong_pitch or missed - not on the
// (score, played) pitch pair of a single wrong note.
func TestAnalyze_IntervalProblemsKeyOnScorePairs(t *testing.T) {
	score := models.Score{Notes: []models.NoteEvent{
		{StartBeat: 0, DurationBeats: 1, Midi: 62},
		{StartBeat: 1, DurationBeats: 1, Midi: 64},
		{StartBeat: 2, DurationBeats: 1, Midi: 62},
		{StartBeat: 3, DurationBeats: 1, Midi: 64},
	}}
	played := []models.PlayedNote{
		{OnsetBeat: 0, MidiFloat: 62, MidiRounded: 62, Confidence: 0.9}, // matches note 0: correct
		// note 1 (midi 64) goes unmatched: missed
		{OnsetBeat: 2, MidiFloat: 62, MidiRounded: 62, Confidence: 0.9},  // matches note 2: correct
		{OnsetBeat: 3, MidiFloat: 63, MidiRounded: 63, Confidence: 0.9},  // matches note 3: wrong_pitch
	}
	a := Analyze(score, played, 0, 0, nil)

	if a.NotesCorrect != 2 || a.NotesMissed != 1 || a.NotesWrongPitch != 1 {
		t.Fatalf("unexpected note counts: %+v", a)
	}
	if len(a.IntervalProblems) != 1 {
		t.Fatalf("got %d interval problems, want 1: %+v", len(a.IntervalProblems), a.IntervalProblems)
	}
	ip := a.IntervalProblems[0]
	if ip.FromMidi != 62 || ip.ToMidi != 64 || ip.FailureCount != 2 {
		t.Errorf("IntervalProblems[0] = %+v, want {62 64 2}", ip)
	}
}

func TestAnalyze_TechniqueMetrics(t *testing.T) {
	score := twoNoteScore()
	played := []models.PlayedNote{
		{OnsetBeat: 0, MidiFloat: 60, MidiRounded: 60, Confidence: 0.9},
		{OnsetBeat: 1, MidiFloat: 64, MidiRounded: 64, Confidence: 0.9},
	}
	// Note 0 spans beats [0,1]: attack near 0, stable window [0.1,0.9],
	// quintiles [0,0.2] and [0.8,1.0]. Note 1 spans [1,2]: attack near 1,
	// stable window [1.1,1.9], quintiles [1,1.2] and [1.8,2.0].
	trail := []models.PitchResult{
		{Beat: 0.05, MidiFloat: 60.02, Confidence: 0.9},
		{Beat: 0.15, MidiFloat: 60.01, Confidence: 0.9},
		{Beat: 0.5, MidiFloat: 60.03, Confidence: 0.9},
		{Beat: 0.8, MidiFloat: 59.98, Confidence: 0.9},
		{Beat: 1.05, MidiFloat: 64.02, Confidence: 0.9},
		{Beat: 1.2, MidiFloat: 64.01, Confidence: 0.9},
		{Beat: 1.5, MidiFloat: 64.0, Confidence: 0.9},
		{Beat: 1.85, MidiFloat: 63.99, Confidence: 0.9},
	}
	a := Analyze(score, played, 0, 0, trail)

	if !a.HasTechnique {
		t.Fatal("expected HasTechnique = true with a non-empty pitch trail")
	}
	if a.PitchStability <= 0 {
		t.Errorf("PitchStability = %v, want > 0", a.PitchStability)
	}
	if a.AttackQuality != 100 {
		t.Errorf("AttackQuality = %v, want 100 (both attacks within tolerance)", a.AttackQuality)
	}
	if a.BreathSupport != 100 {
		t.Errorf("BreathSupport = %v, want 100 (no growth past threshold)", a.BreathSupport)
	}
}
