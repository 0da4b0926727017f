// Package musicxml stream-parses a single-part, single-voice MusicXML
// partwise document into a models.Score (spec §4.1). Parsing is
// SAX-style: the decoder is walked token by token and a small amount of
// state (current measure, running beat cursor, in-progress note) is
// threaded through as elements open and close. There is no DOM
// intermediate and no retry-on-error: a malformed document fails the
// whole parse, per spec §4.1 "Errors".
package musicxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"trumpetcoach/backend/internal/models"
)

var stepSemitone = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

// pendingNote accumulates the fields of a <note> element while its
// children are being read.
type pendingNote struct {
	hasPitch bool
	step     string
	alter    int
	octave   int
	hasOctave bool
	duration  int
	hasDuration bool
	isRest    bool
	isChord   bool
}

// parseState is the parser's entire mutable state for one document.
type parseState struct {
	divisions int
	tempo     float64
	hasTempo  bool
	beats     int
	beatType  int
	hasTime   bool
	keyFifths int
	transpose models.Transpose
	hasTranspose bool

	measureNumber   int
	measureStartBeat float64
	cursorBeats      float64

	notes    []models.NoteEvent
	measures []models.MeasureInfo

	note      pendingNote
	inNote    bool
	inPitch   bool
	inAttributes bool
	inTranspose  bool
	inKey        bool
	inTime       bool
	inMetronome  bool
	inDirectionType bool

	metroPerMinute int
	hasMetroPerMinute bool

	lastNonNoteDuration     int
	haveLastNonNoteDuration bool

	text strings.Builder
}

// ParseError wraps a streaming-parse failure with positional context,
// matching spec §4.1's "descriptive error string on malformed input".
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// Parse reads a MusicXML partwise document and returns the Score it
// describes, or a descriptive error on malformed or unsupported input.
func Parse(xmlDoc string) (models.Score, error) {
	return ParseReader(strings.NewReader(xmlDoc))
}

// ParseReader is the streaming entry point used by Parse.
func ParseReader(r io.Reader) (models.Score, error) {
	dec := xml.NewDecoder(r)

	st := &parseState{
		divisions: 1,
		beats:     4,
		beatType:  4,
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Score{}, parseErrorf("malformed XML: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := st.handleStart(t); err != nil {
				return models.Score{}, err
			}
		case xml.CharData:
			st.text.Write(t)
		case xml.EndElement:
			if err := st.handleEnd(t.Name.Local); err != nil {
				return models.Score{}, err
			}
		}
	}

	if !st.hasTempo {
		st.tempo = 120
	}

	sort.SliceStable(st.notes, func(i, j int) bool {
		return st.notes[i].StartBeat < st.notes[j].StartBeat
	})

	score := models.Score{
		Tempo:     st.tempo,
		Divisions: st.divisions,
		TimeSignature: models.TimeSignature{
			Beats:    st.beats,
			BeatType: st.beatType,
		},
		KeyFifths: st.keyFifths,
		Transpose: st.transpose,
		Notes:     st.notes,
		Measures:  st.measures,
	}
	score.RecomputeTotalBeats()
	return score, nil
}

func (st *parseState) handleStart(t xml.StartElement) error {
	name := t.Name.Local
	st.text.Reset()

	switch name {
	case "measure":
		st.measureNumber++
		for _, a := range t.Attr {
			if a.Name.Local == "number" {
				if n, err := strconv.Atoi(a.Value); err == nil {
					st.measureNumber = n
				}
			}
		}
		st.measureStartBeat = st.cursorStartForNewMeasure()
		st.cursorBeats = 0
		st.measures = append(st.measures, models.MeasureInfo{
			Number:    st.measureNumber,
			StartBeat: st.measureStartBeat,
		})
	case "attributes":
		st.inAttributes = true
	case "key":
		st.inKey = true
	case "time":
		st.inTime = true
	case "transpose":
		st.inTranspose = true
		st.hasTranspose = true
	case "note":
		st.inNote = true
		st.note = pendingNote{}
	case "pitch":
		st.inPitch = true
	case "rest":
		if st.inNote {
			st.note.isRest = true
		}
	case "chord":
		if st.inNote {
			st.note.isChord = true
		}
	case "direction-type":
		st.inDirectionType = true
	case "metronome":
		st.inMetronome = true
	case "sound":
		for _, a := range t.Attr {
			if a.Name.Local == "tempo" {
				v, err := strconv.ParseFloat(a.Value, 64)
				if err != nil {
					return parseErrorf("sound tempo attribute is not numeric: %q", a.Value)
				}
				st.tempo = v
				st.hasTempo = true
			}
		}
	case "backup", "forward":
		// duration is read on the matching end tag via chardata buffer
	}
	return nil
}

// cursorStartForNewMeasure returns the beat at which the next measure
// begins, given the measures seen so far.
func (st *parseState) cursorStartForNewMeasure() float64 {
	if len(st.measures) == 0 {
		return 0
	}
	prev := st.measures[len(st.measures)-1]
	// The previous measure's end is its start plus however far the
	// cursor advanced while inside it.
	return prev.StartBeat + st.cursorBeats
}

func (st *parseState) handleEnd(name string) error {
	text := strings.TrimSpace(st.text.String())
	st.text.Reset()

	switch name {
	case "divisions":
		if st.inAttributes && !st.inKey && !st.inTime && !st.inTranspose {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("divisions is not an integer: %q", text)
			}
			if v <= 0 {
				return parseErrorf("divisions must be positive, got %d", v)
			}
			st.divisions = v
		}
	case "fifths":
		if st.inKey {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("key fifths is not an integer: %q", text)
			}
			st.keyFifths = v
		}
	case "beats":
		if st.inTime {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("time beats is not an integer: %q", text)
			}
			st.beats = v
			st.hasTime = true
		}
	case "beat-type":
		if st.inTime {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("time beat-type is not an integer: %q", text)
			}
			st.beatType = v
			st.hasTime = true
		}
	case "chromatic":
		if st.inTranspose {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("transpose chromatic is not an integer: %q", text)
			}
			st.transpose.Chromatic = v
		}
	case "diatonic":
		if st.inTranspose {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("transpose diatonic is not an integer: %q", text)
			}
			st.transpose.Diatonic = v
		}
	case "octave-change":
		if st.inTranspose {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("transpose octave-change is not an integer: %q", text)
			}
			st.transpose.OctaveChange = v
		}
	case "key":
		st.inKey = false
	case "time":
		st.inTime = false
	case "transpose":
		st.inTranspose = false
	case "attributes":
		st.inAttributes = false
	case "per-minute":
		if st.inMetronome {
			v, err := strconv.Atoi(text)
			if err == nil {
				st.metroPerMinute = v
				st.hasMetroPerMinute = true
			}
		}
	case "metronome":
		st.inMetronome = false
		if st.hasMetroPerMinute && !st.hasTempo {
			st.tempo = float64(st.metroPerMinute)
			st.hasTempo = true
		}
	case "direction-type":
		st.inDirectionType = false
	case "step":
		if st.inPitch {
			st.note.step = text
		}
	case "alter":
		if st.inPitch {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("pitch alter is not an integer: %q", text)
			}
			st.note.alter = v
		}
	case "octave":
		if st.inPitch {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("pitch octave is not an integer: %q", text)
			}
			st.note.octave = v
			st.note.hasOctave = true
		}
	case "pitch":
		st.inPitch = false
		st.note.hasPitch = true
	case "duration":
		if st.inNote {
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("note duration is not an integer: %q", text)
			}
			st.note.duration = v
			st.note.hasDuration = true
		} else {
			// backup/forward duration
			v, err := strconv.Atoi(text)
			if err != nil {
				return parseErrorf("backup/forward duration is not an integer: %q", text)
			}
			st.lastNonNoteDuration = v
			st.haveLastNonNoteDuration = true
		}
	case "note":
		if err := st.finishNote(); err != nil {
			return err
		}
		st.inNote = false
	case "backup":
		if st.haveLastNonNoteDuration {
			st.cursorBeats -= float64(st.lastNonNoteDuration) / float64(st.divisions)
			st.haveLastNonNoteDuration = false
		}
	case "forward":
		if st.haveLastNonNoteDuration {
			st.cursorBeats += float64(st.lastNonNoteDuration) / float64(st.divisions)
			st.haveLastNonNoteDuration = false
		}
	}
	return nil
}

func (st *parseState) finishNote() error {
	n := st.note
	if n.isChord {
		// A <chord/> note is a simultaneity against the immediately
		// preceding primary note: it does not advance the cursor and is
		// not emitted (spec §4.1 "Ambiguity").
		return nil
	}
	if !n.hasDuration {
		return parseErrorf("note at measure %d is missing duration", st.measureNumber)
	}
	if n.duration <= 0 {
		return parseErrorf("note at measure %d has non-positive duration", st.measureNumber)
	}

	durationBeats := float64(n.duration) / float64(st.divisions)
	startBeat := st.measureStartBeat + st.cursorBeats

	midi := 0
	if !n.isRest {
		if !n.hasPitch || !n.hasOctave {
			return parseErrorf("note at measure %d is missing pitch data", st.measureNumber)
		}
		semitone, ok := stepSemitone[n.step]
		if !ok {
			return parseErrorf("note at measure %d has unrecognized step %q", st.measureNumber, n.step)
		}
		midi = (n.octave+1)*12 + semitone + n.alter
	}

	st.notes = append(st.notes, models.NoteEvent{
		StartBeat:     startBeat,
		DurationBeats: durationBeats,
		Midi:          midi,
		IsRest:        n.isRest,
	})
	st.cursorBeats += durationBeats
	return nil
}
