package exercise

import (
	"fmt"
	"strconv"
	"strings"
)

// pitchClass maps a note name (with optional accidental) to a semitone
// offset from C, the same table the rest of the pack's key-parsing code
// uses (grounded on ako-backing-tracks/theory.NoteToMidi).
var pitchClass = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4, "Fb": 4, "E#": 5,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11, "Cb": 11, "B#": 0,
}

// parseTonicMidi parses a key string such as "C4" or "Bb3" into the MIDI
// number of its tonic. It returns an error for anything that doesn't
// resolve to a known note name (spec §4.4 "Key parsing").
func parseTonicMidi(key string) (int, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, fmt.Errorf("empty key string")
	}

	letter := strings.ToUpper(key[:1])
	rest := key[1:]

	name := letter
	if len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		name += string(rest[0])
		rest = rest[1:]
	}

	pc, ok := pitchClass[name]
	if !ok {
		return 0, fmt.Errorf("unknown key: %q", key)
	}

	octave := 4
	if rest != "" {
		o, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("unknown key: %q", key)
		}
		octave = o
	}

	return (octave+1)*12 + pc, nil
}
