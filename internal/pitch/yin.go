// Package pitch implements a monophonic fundamental-frequency estimator
// for a single window of microphone samples, using the classical YIN
// algorithm (spec §4.2). The implementation is purely numeric: one
// scratch buffer sized to the lag search range, no allocation beyond
// that, no global state.
package pitch

import (
	"math"

	"trumpetcoach/backend/internal/models"
)

const (
	// MinFrequencyHz and MaxFrequencyHz bound the trumpet's working
	// range; detections outside this band are rejected (spec §4.2
	// "Rejection").
	MinFrequencyHz = 80.0
	MaxFrequencyHz = 1200.0

	// DefaultThreshold is the absolute threshold applied to the
	// cumulative mean normalized difference function.
	DefaultThreshold = 0.15

	// MinConfidence is the confidence floor below which a detection is
	// discarded as noise.
	MinConfidence = 0.1
)

// Detect runs the YIN algorithm over one window of mono samples and
// returns the estimated fundamental. sampleRate is in Hz. Callers should
// supply a window of at least 2048 samples for a stable estimate. A window
// shorter than tauMax+1 samples is not refused: the lag search is capped at
// len(samples)-1, which raises the lowest detectable frequency. Fewer than
// 8 samples, or a lag range that collapses, yields no detection.
func Detect(samples []float64, sampleRate float64) models.PitchResult {
	return detectWithThreshold(samples, sampleRate, DefaultThreshold)
}

func detectWithThreshold(samples []float64, sampleRate, threshold float64) models.PitchResult {
	none := models.PitchResult{Hz: 0, Confidence: 0}
	if sampleRate <= 0 || len(samples) < 8 {
		return none
	}

	tauMin := int(math.Ceil(sampleRate / MaxFrequencyHz))
	tauMax := int(math.Floor(sampleRate / MinFrequencyHz))
	if tauMin < 1 {
		tauMin = 1
	}
	if tauMax >= len(samples) {
		tauMax = len(samples) - 1
	}
	if tauMax <= tauMin {
		return none
	}

	diff := squaredDifference(samples, tauMax)
	cmnd := cumulativeMeanNormalizedDifference(diff)

	tau, found := firstLocalMinimumBelowThreshold(cmnd, tauMin, tauMax, threshold)
	if !found {
		tau = argMin(cmnd, tauMin, tauMax)
	}

	tauHat := parabolicInterpolate(cmnd, tau)
	if tauHat <= 0 {
		return none
	}

	hz := sampleRate / tauHat
	confidence := clamp01(1 - cmnd[tau])

	if hz < MinFrequencyHz || hz > MaxFrequencyHz || confidence < MinConfidence {
		return none
	}

	return models.PitchResult{
		Hz:         hz,
		Confidence: confidence,
		MidiFloat:  HzToMidiFloat(hz),
	}
}

// squaredDifference computes d(tau) for tau in [1, tauMax], per YIN step 1.
// d[0] is unused (defined as 0) so indices line up with tau directly.
func squaredDifference(samples []float64, tauMax int) []float64 {
	n := len(samples)
	d := make([]float64, tauMax+1)
	for tau := 1; tau <= tauMax; tau++ {
		sum := 0.0
		limit := n - tau
		for j := 0; j < limit; j++ {
			delta := samples[j] - samples[j+tau]
			sum += delta * delta
		}
		d[tau] = sum
	}
	return d
}

// cumulativeMeanNormalizedDifference computes d'(tau) per YIN step 2,
// with d'(0) defined as 1 per spec. It works in place: d is overwritten
// with d' and returned.
func cumulativeMeanNormalizedDifference(d []float64) []float64 {
	cmnd := d
	cmnd[0] = 1
	runningSum := 0.0
	for tau := 1; tau < len(d); tau++ {
		runningSum += d[tau]
		if runningSum == 0 {
			cmnd[tau] = 1
			continue
		}
		cmnd[tau] = d[tau] * float64(tau) / runningSum
	}
	return cmnd
}

// firstLocalMinimumBelowThreshold scans tau ascending for the first value
// under threshold that is also a local minimum (spec §4.2 step 3).
func firstLocalMinimumBelowThreshold(cmnd []float64, tauMin, tauMax int, threshold float64) (int, bool) {
	for tau := tauMin; tau <= tauMax; tau++ {
		if cmnd[tau] >= threshold {
			continue
		}
		for tau+1 <= tauMax && cmnd[tau+1] < cmnd[tau] {
			tau++
		}
		return tau, true
	}
	return 0, false
}

// argMin returns the tau in [tauMin, tauMax] minimizing cmnd, used when no
// candidate clears the threshold.
func argMin(cmnd []float64, tauMin, tauMax int) int {
	best := tauMin
	for tau := tauMin + 1; tau <= tauMax; tau++ {
		if cmnd[tau] < cmnd[best] {
			best = tau
		}
	}
	return best
}

// parabolicInterpolate refines the integer lag tau using the neighboring
// two samples of the normalized difference function (spec §4.2 step 4).
func parabolicInterpolate(cmnd []float64, tau int) float64 {
	if tau <= 0 || tau >= len(cmnd)-1 {
		return float64(tau)
	}
	s0, s1, s2 := cmnd[tau-1], cmnd[tau], cmnd[tau+1]
	denom := s0 + s2 - 2*s1
	if denom == 0 {
		return float64(tau)
	}
	shift := 0.5 * (s0 - s2) / denom
	return float64(tau) + shift
}

// HzToMidiFloat converts a frequency to a fractional MIDI note number.
// Callers must gate on hz > 0 themselves; this function does not guard
// against it since log2(0) is only ever reached through misuse.
func HzToMidiFloat(hz float64) float64 {
	return 69 + 12*math.Log2(hz/440)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
