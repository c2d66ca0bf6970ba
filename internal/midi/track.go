package midi

import (
	"encoding/binary"
	"math"

	"github.com/roach88/partch/internal/eval"
	"github.com/roach88/partch/internal/scala"
)

var endOfTrack = []byte{0x00, 0xFF, 0x2F, 0x00}

// trackChunk wraps event bytes in an MTrk chunk: ASCII id, big-endian
// payload length, payload.
func trackChunk(body []byte) []byte {
	chunk := make([]byte, 0, len(body)+8)
	chunk = append(chunk, "MTrk"...)
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(body)))
	return append(chunk, body...)
}

// TempoTrack builds the leading tempo-only track. MIDI tempo is
// microseconds per quarter note; timeUnit is seconds per beat and one
// beat is one quarter note.
func TempoTrack(timeUnit float64) ([]byte, error) {
	us := math.RoundToEven(timeUnit / 1e-6)
	if !(us > 0) || us > 0xFFFFFF {
		return nil, encodingErrorf(ErrCodeTempoOutOfRange,
			"time unit %v seconds does not fit the tempo meta event", timeUnit)
	}
	n := int64(us)
	body := []byte{0x00, 0xFF, 0x51, 0x03, byte(n >> 16), byte(n >> 8), byte(n)}
	body = append(body, endOfTrack...)
	return trackChunk(body), nil
}

// programChanges emits one program change per channel. Program 1
// selects the first General MIDI program, so the byte sent is program-1.
func programChanges(program int, channels []int) []byte {
	var out []byte
	for _, c := range channels {
		out = append(out, 0x00, 0xC0|byte(c), byte(program-1))
	}
	return out
}

// notesOf flattens a part element into its notes, a lone note being a
// one-note chord.
func notesOf(e eval.Element) []eval.Note {
	switch v := e.(type) {
	case eval.Note:
		return []eval.Note{v}
	case eval.Chord:
		return v
	}
	return nil
}

// chordEvents emits the events sounding one chord with pitch-bend
// tuning. Each note goes on its own channel so it can bend
// independently: first every bend, then every note-on, then every
// note-off. The chord's duration rides on the first note-off's delta
// time; the rest follow at delta zero.
func chordEvents(notes []eval.Note, channels []int, pitchBendRange int) ([]byte, error) {
	if len(notes) > len(channels) {
		return nil, encodingErrorf(ErrCodeChannelsExhausted,
			"%d simultaneous notes on %d channels", len(notes), len(channels))
	}
	converted := make([]midiNote, len(notes))
	for i, n := range notes {
		m, err := bentNote(n, pitchBendRange)
		if err != nil {
			return nil, err
		}
		converted[i] = m
	}

	var out []byte
	for i, m := range converted {
		b := FourteenBit(m.bend)
		out = append(out, 0x00, 0xE0|byte(channels[i]), b[0], b[1])
	}
	for i, m := range converted {
		out = append(out, 0x00, 0x90|byte(channels[i]), m.pitch, m.velocity)
	}
	for i, m := range converted {
		if i == 0 {
			delta, err := VariableLengthQuantity(m.ticks)
			if err != nil {
				return nil, err
			}
			out = append(out, delta...)
		} else {
			out = append(out, 0x00)
		}
		out = append(out, 0x80|byte(channels[i]), m.pitch, 0x00)
	}
	return out, nil
}

// scalaChordEvents emits the events sounding one chord with Scala
// tuning. No bends are needed and every note shares the part's channel.
func scalaChordEvents(notes []eval.Note, channel int, tuning *scala.Tuning) ([]byte, error) {
	converted := make([]midiNote, len(notes))
	for i, n := range notes {
		m, err := mappedNote(n, tuning)
		if err != nil {
			return nil, err
		}
		converted[i] = m
	}

	var out []byte
	for _, m := range converted {
		out = append(out, 0x00, 0x90|byte(channel), m.pitch, m.velocity)
	}
	for i, m := range converted {
		if i == 0 {
			delta, err := VariableLengthQuantity(m.ticks)
			if err != nil {
				return nil, err
			}
			out = append(out, delta...)
		} else {
			out = append(out, 0x00)
		}
		out = append(out, 0x80|byte(channel), m.pitch, 0x00)
	}
	return out, nil
}

// partTrack builds the MTrk chunk for one part with pitch-bend tuning.
func partTrack(part eval.Part, channels []int, program int, pitchBendRange int) ([]byte, error) {
	var body []byte
	if program > 0 {
		body = append(body, programChanges(program, channels)...)
	}
	for _, e := range part {
		events, err := chordEvents(notesOf(e), channels, pitchBendRange)
		if err != nil {
			return nil, err
		}
		body = append(body, events...)
	}
	body = append(body, endOfTrack...)
	return trackChunk(body), nil
}

// voiceCount is the widest chord in the part, the number of channels
// the part needs for pitch-bend tuning.
func voiceCount(part eval.Part) int {
	count := 0
	for _, e := range part {
		count = max(count, len(notesOf(e)))
	}
	return count
}

// partTracks builds one track per part, each part claiming as many
// channels as its widest chord. Channel 0 is left free in case a synth
// treats it as the MPE master channel and channel 9 is General MIDI
// percussion, leaving 14 usable channels.
func partTracks(piece eval.Piece, programs []int, pitchBendRange int) ([][]byte, [][]int, error) {
	available := make([]int, 0, 14)
	for c := range 16 {
		if c != 0 && c != 9 {
			available = append(available, c)
		}
	}

	tracks := make([][]byte, 0, len(piece))
	partChannels := make([][]int, 0, len(piece))
	next := 0
	for i, part := range piece {
		n := voiceCount(part)
		if next+n > len(available) {
			return nil, nil, encodingErrorf(ErrCodeChannelsExhausted,
				"part %d needs %d channels but only %d remain",
				i+1, n, len(available)-next)
		}
		channels := available[next : next+n]
		next += n

		program := 0
		if len(programs) > 0 {
			// Extra parts reuse the last configured program.
			program = programs[min(i, len(programs)-1)]
		}

		track, err := partTrack(part, channels, program, pitchBendRange)
		if err != nil {
			return nil, nil, err
		}
		tracks = append(tracks, track)
		partChannels = append(partChannels, channels)
	}
	return tracks, partChannels, nil
}

// scalaPartTracks builds one track per part for Scala tuning. Bends are
// never sent, so each part needs only one channel, its own index.
func scalaPartTracks(piece eval.Piece, tuning *scala.Tuning) ([][]byte, [][]int, error) {
	if len(piece) > 16 {
		return nil, nil, encodingErrorf(ErrCodeChannelsExhausted,
			"%d parts exceed the 16 MIDI channels", len(piece))
	}
	tracks := make([][]byte, 0, len(piece))
	partChannels := make([][]int, 0, len(piece))
	for i, part := range piece {
		var body []byte
		for _, e := range part {
			events, err := scalaChordEvents(notesOf(e), i, tuning)
			if err != nil {
				return nil, nil, err
			}
			body = append(body, events...)
		}
		body = append(body, endOfTrack...)
		tracks = append(tracks, trackChunk(body))
		partChannels = append(partChannels, []int{i})
	}
	return tracks, partChannels, nil
}
