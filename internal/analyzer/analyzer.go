// Package analyzer matches a recorded take against its reference Score and
// derives the metrics and feedback strings a trumpet student sees after a
// practice take (spec §4.3).
package analyzer

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"trumpetcoach/backend/internal/models"
)

const (
	// DefaultPitchTolCents is the pitch-error tolerance applied when a
	// caller passes a non-positive value.
	DefaultPitchTolCents = 50.0

	// DefaultTimingTolBeats is the timing-error tolerance applied when a
	// caller passes a non-positive value.
	DefaultTimingTolBeats = 0.3

	// centsInTuneThreshold is the pitch-error magnitude, in cents, below
	// which a note counts as in tune for the tendency calculation.
	centsInTuneThreshold = 10.0

	// timingOnTimeThresholdBeats is the timing-error magnitude, in beats,
	// below which a note counts as on time for the tendency calculation.
	timingOnTimeThresholdBeats = 0.1

	// intervalProblemThreshold is the minimum failure count before an
	// interval is reported as a recurring problem.
	intervalProblemThreshold = 2

	// attackWindowBeats bounds how soon after onset a trail point must
	// fall to count toward attack_quality.
	attackWindowBeats = 0.15

	// attackCentsThreshold is the max pitch error an attack point may
	// carry and still count as a clean attack.
	attackCentsThreshold = 50.0

	// breathCentsGrowthThreshold is the max allowed growth, in cents, of
	// pitch deviation from a note's first to last quintile.
	breathCentsGrowthThreshold = 20.0
)

// noteClass is the outcome of matching one score note against the take.
type noteClass int

const (
	classMissed noteClass = iota
	classCorrect
	classWrongPitch
)

// Analyze matches played notes against the reference score and returns the
// resulting performance analysis. pitchTolCents and timingTolBeats bound the
// matching and classification steps (spec §4.3 "Inputs"); a non-positive
// value falls back to the spec default. pitchTrail, if non-empty, is a
// sequence of per-frame pitch results spanning the whole take, each tagged
// with the beat it was sampled at, used to derive technique metrics; a nil
// or empty trail leaves HasTechnique false and the technique fields zeroed.
func Analyze(score models.Score, played []models.PlayedNote, pitchTolCents, timingTolBeats float64, pitchTrail []models.PitchResult) models.PerformanceAnalysis {
	if pitchTolCents <= 0 {
		pitchTolCents = DefaultPitchTolCents
	}
	if timingTolBeats <= 0 {
		timingTolBeats = DefaultTimingTolBeats
	}

	scoreNotes := nonRestNotes(score.Notes)

	if len(scoreNotes) == 0 || len(played) == 0 {
		return models.PerformanceAnalysis{
			NotesMissed: len(scoreNotes),
			NotesExtra:  len(played),
			Feedback:    []string{"No notes detected"},
		}
	}

	classes := make([]noteClass, len(scoreNotes))
	matchedTo := make([]int, len(scoreNotes))
	for i := range matchedTo {
		matchedTo[i] = -1
	}
	matchedPlayed := make([]bool, len(played))

	for si, sn := range scoreNotes {
		best := -1
		bestPitchDist := math.MaxFloat64
		bestTimeDist := math.MaxFloat64
		for pi, pn := range played {
			if matchedPlayed[pi] {
				continue
			}
			timeDist := math.Abs(pn.OnsetBeat - sn.StartBeat)
			if timeDist > timingTolBeats {
				continue
			}
			pitchDist := math.Abs(float64(pn.MidiRounded - sn.Midi))
			if best == -1 || pitchDist < bestPitchDist ||
				(pitchDist == bestPitchDist && timeDist < bestTimeDist) {
				best = pi
				bestPitchDist = pitchDist
				bestTimeDist = timeDist
			}
		}

		if best == -1 {
			classes[si] = classMissed
			continue
		}

		matchedPlayed[best] = true
		matchedTo[si] = best

		pn := played[best]
		centsErr := (pn.MidiFloat - float64(sn.Midi)) * 100
		if pn.MidiRounded == sn.Midi && math.Abs(centsErr) <= pitchTolCents {
			classes[si] = classCorrect
		} else {
			classes[si] = classWrongPitch
		}
	}

	analysis := models.PerformanceAnalysis{}
	var pitchErrorsCents []float64
	var timingErrorsBeats []float64

	for si, class := range classes {
		switch class {
		case classMissed:
			analysis.NotesMissed++
			continue
		case classCorrect:
			analysis.NotesCorrect++
		case classWrongPitch:
			analysis.NotesWrongPitch++
		}
		sn := scoreNotes[si]
		pn := played[matchedTo[si]]
		pitchErrorsCents = append(pitchErrorsCents, (pn.MidiFloat-float64(sn.Midi))*100)
		timingErrorsBeats = append(timingErrorsBeats, pn.OnsetBeat-sn.StartBeat)
	}

	for _, matched := range matchedPlayed {
		if !matched {
			analysis.NotesExtra++
		}
	}

	if len(pitchErrorsCents) > 0 {
		analysis.AvgPitchErrorCents = mean(pitchErrorsCents)
		analysis.AvgTimingErrorBeats = mean(timingErrorsBeats)
	}

	switch {
	case analysis.AvgPitchErrorCents < -centsInTuneThreshold:
		analysis.PitchTendency = models.TendencyFlat
	case analysis.AvgPitchErrorCents > centsInTuneThreshold:
		analysis.PitchTendency = models.TendencySharp
	default:
		analysis.PitchTendency = models.TendencyInTune
	}

	switch {
	case analysis.AvgTimingErrorBeats < -timingOnTimeThresholdBeats:
		analysis.TimingTendency = models.TendencyEarly
	case analysis.AvgTimingErrorBeats > timingOnTimeThresholdBeats:
		analysis.TimingTendency = models.TendencyLate
	default:
		analysis.TimingTendency = models.TendencyOnTime
	}

	problemCounts := map[[2]int]int{}
	for i := 1; i < len(scoreNotes); i++ {
		if classes[i] == classWrongPitch || classes[i] == classMissed {
			key := [2]int{scoreNotes[i-1].Midi, scoreNotes[i].Midi}
			problemCounts[key]++
		}
	}
	for pair, count := range problemCounts {
		if count >= intervalProblemThreshold {
			analysis.IntervalProblems = append(analysis.IntervalProblems, models.IntervalProblem{
				FromMidi:     pair[0],
				ToMidi:       pair[1],
				FailureCount: count,
			})
		}
	}
	sort.Slice(analysis.IntervalProblems, func(i, j int) bool {
		return analysis.IntervalProblems[i].FailureCount > analysis.IntervalProblems[j].FailureCount
	})

	if len(pitchTrail) > 0 {
		applyTechniqueMetrics(&analysis, scoreNotes, classes, pitchTrail)
	}

	analysis.OverallScore = overallScore(analysis, len(scoreNotes))
	analysis.Feedback = buildFeedback(analysis)
	if analysis.HasTechnique {
		analysis.TechniqueFeedback = buildTechniqueFeedback(analysis)
	}

	return analysis
}

func nonRestNotes(notes []models.NoteEvent) []models.NoteEvent {
	out := make([]models.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if !n.IsRest {
			out = append(out, n)
		}
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// applyTechniqueMetrics derives the four technique scores from a trail of
// per-frame pitch detections spanning the take, each windowed against the
// correct score notes per spec §4.3 "Technique".
func applyTechniqueMetrics(analysis *models.PerformanceAnalysis, scoreNotes []models.NoteEvent, classes []noteClass, trail []models.PitchResult) {
	var correctIdx []int
	for i, c := range classes {
		if c == classCorrect {
			correctIdx = append(correctIdx, i)
		}
	}
	if len(correctIdx) == 0 {
		return
	}

	analysis.HasTechnique = true
	analysis.PitchStability = pitchStability(scoreNotes, correctIdx, trail)
	analysis.AttackQuality = attackQuality(scoreNotes, correctIdx, trail)
	analysis.BreathSupport = breathSupport(scoreNotes, correctIdx, trail)
	analysis.EnduranceDelta = enduranceDelta(scoreNotes, classes)
}

// pitchStability is the mean, over correct notes, of the cents-deviation
// standard deviation within each note's stable window (the middle 80% of
// its duration), inverted into a 0-100 UI score.
func pitchStability(scoreNotes []models.NoteEvent, correctIdx []int, trail []models.PitchResult) float64 {
	var stdevs []float64
	for _, i := range correctIdx {
		sn := scoreNotes[i]
		lo := sn.StartBeat + 0.1*sn.DurationBeats
		hi := sn.StartBeat + 0.9*sn.DurationBeats
		cents := centsInWindow(trail, sn.Midi, lo, hi)
		if len(cents) < 2 {
			continue
		}
		_, sd := stat.MeanStdDev(cents, nil)
		stdevs = append(stdevs, sd)
	}
	if len(stdevs) == 0 {
		return 0
	}
	inverted := 1 - mean(stdevs)/30
	if inverted < 0 {
		inverted = 0
	}
	return inverted * 100
}

// attackQuality is the percentage (0-100) of correct notes whose first
// trail point within attackWindowBeats of onset lands within
// attackCentsThreshold. It is not returned as a 0-1 fraction.
func attackQuality(scoreNotes []models.NoteEvent, correctIdx []int, trail []models.PitchResult) float64 {
	good := 0
	for _, i := range correctIdx {
		sn := scoreNotes[i]
		pt, ok := firstTrailPointNear(trail, sn.StartBeat, attackWindowBeats)
		if !ok {
			continue
		}
		cents := math.Abs((pt.MidiFloat - float64(sn.Midi)) * 100)
		if cents <= attackCentsThreshold {
			good++
		}
	}
	return 100 * float64(good) / float64(len(correctIdx))
}

// breathSupport is the percentage (0-100) of correct notes whose mean
// absolute pitch deviation does not grow by more than
// breathCentsGrowthThreshold from the note's first to last quintile. It is
// not returned as a 0-1 fraction.
func breathSupport(scoreNotes []models.NoteEvent, correctIdx []int, trail []models.PitchResult) float64 {
	good := 0
	for _, i := range correctIdx {
		sn := scoreNotes[i]
		quintile := sn.DurationBeats / 5
		firstCents, okFirst := meanAbsCentsInWindow(trail, sn.Midi, sn.StartBeat, sn.StartBeat+quintile)
		lastCents, okLast := meanAbsCentsInWindow(trail, sn.Midi, sn.StartBeat+4*quintile, sn.StartBeat+5*quintile)
		if !okFirst || !okLast {
			continue
		}
		if lastCents-firstCents <= breathCentsGrowthThreshold {
			good++
		}
	}
	return 100 * float64(good) / float64(len(correctIdx))
}

// enduranceDelta is the percentage-point drop in note-correctness rate from
// the first third of the score to the last third, clamped at zero (no
// negative "improvement" credit).
func enduranceDelta(scoreNotes []models.NoteEvent, classes []noteClass) float64 {
	third := len(scoreNotes) / 3
	if third == 0 {
		return 0
	}
	firstAcc := fractionCorrect(classes[:third])
	lastAcc := fractionCorrect(classes[len(classes)-third:])
	delta := 100 * (firstAcc - lastAcc)
	if delta < 0 {
		delta = 0
	}
	return delta
}

func fractionCorrect(cs []noteClass) float64 {
	if len(cs) == 0 {
		return 0
	}
	correct := 0
	for _, c := range cs {
		if c == classCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(cs))
}

// centsInWindow returns the cents deviation from targetMidi of every trail
// point whose Beat falls in [lo, hi].
func centsInWindow(trail []models.PitchResult, targetMidi int, lo, hi float64) []float64 {
	var cents []float64
	for _, p := range trail {
		if p.Beat >= lo && p.Beat <= hi {
			cents = append(cents, (p.MidiFloat-float64(targetMidi))*100)
		}
	}
	return cents
}

// meanAbsCentsInWindow is centsInWindow reduced to the mean absolute
// deviation, or false if the window contains no trail points.
func meanAbsCentsInWindow(trail []models.PitchResult, targetMidi int, lo, hi float64) (float64, bool) {
	var cents []float64
	for _, p := range trail {
		if p.Beat >= lo && p.Beat <= hi {
			cents = append(cents, math.Abs((p.MidiFloat-float64(targetMidi))*100))
		}
	}
	if len(cents) == 0 {
		return 0, false
	}
	return mean(cents), true
}

// firstTrailPointNear returns the earliest trail point within window beats
// of onset, scanning the trail in its given (chronological) order.
func firstTrailPointNear(trail []models.PitchResult, onset, window float64) (models.PitchResult, bool) {
	for _, p := range trail {
		if math.Abs(p.Beat-onset) <= window {
			return p, true
		}
	}
	return models.PitchResult{}, false
}

// overallScore blends pitch and timing accuracy with note coverage. The
// exact coefficients are a design decision: accuracy (correct / total
// reference notes) carries the most weight, with deductions for large
// average pitch and timing error.
func overallScore(a models.PerformanceAnalysis, totalScoreNotes int) int {
	if totalScoreNotes == 0 {
		return 0
	}
	accuracy := float64(a.NotesCorrect) / float64(totalScoreNotes)
	pitchPenalty := math.Min(math.Abs(a.AvgPitchErrorCents)/50, 1)
	timingPenalty := math.Min(math.Abs(a.AvgTimingErrorBeats)/0.5, 1)

	raw := 100*accuracy - 15*pitchPenalty - 10*timingPenalty
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func buildFeedback(a models.PerformanceAnalysis) []string {
	var fb []string
	switch a.PitchTendency {
	case models.TendencyFlat:
		fb = append(fb, "You're playing consistently flat, support the pitch with more air")
	case models.TendencySharp:
		fb = append(fb, "You're playing consistently sharp, relax your embouchure slightly")
	case models.TendencyInTune:
		fb = append(fb, "Your intonation is solid")
	}
	switch a.TimingTendency {
	case models.TendencyEarly:
		fb = append(fb, "You're rushing ahead of the beat")
	case models.TendencyLate:
		fb = append(fb, "You're dragging behind the beat")
	case models.TendencyOnTime:
		fb = append(fb, "Your timing is steady")
	}
	if a.NotesMissed > 0 {
		fb = append(fb, fmt.Sprintf("%d note(s) were missed entirely", a.NotesMissed))
	}
	for _, ip := range a.IntervalProblems {
		fb = append(fb, fmt.Sprintf("The interval from MIDI %d to %d is giving you trouble", ip.FromMidi, ip.ToMidi))
	}
	return fb
}

func buildTechniqueFeedback(a models.PerformanceAnalysis) []string {
	var fb []string
	if a.PitchStability < 60 {
		fb = append(fb, "Work on holding a steadier pitch within each note")
	}
	if a.AttackQuality < 60 {
		fb = append(fb, "Your note attacks are inconsistent, focus on a clean tongued start")
	}
	if a.BreathSupport < 60 {
		fb = append(fb, "Your breath support is fading, slow down and take fuller breaths")
	}
	if a.EnduranceDelta > 15 {
		fb = append(fb, "Your pitch control degrades over the take, this take may be too long for your current endurance")
	}
	return fb
}
