package midi

import (
	"encoding/binary"

	"github.com/roach88/partch/internal/eval"
	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/scala"
)

// TuningMethod selects how exact frequencies reach the synth.
type TuningMethod string

const (
	// TuningPitchBend corrects each note with a pitch-bend event on its
	// own channel.
	TuningPitchBend TuningMethod = "pitch_bend"

	// TuningScala emits plain note numbers retuned by Scala sidecar
	// files.
	TuningScala TuningMethod = "scala"
)

// DefaultPitchBendRange is the conventional two-semitone span of a
// full-scale pitch bend. MPE synths commonly use 48.
const DefaultPitchBendRange = 2

// Options control one encoding run.
type Options struct {
	// TimeUnit is the length of one beat in seconds.
	TimeUnit float64

	// ReferenceFrequency is the frequency of the ratio 1/1 in Hz.
	ReferenceFrequency float64

	// Tuning selects the tuning method. Empty means pitch bend.
	Tuning TuningMethod

	// PitchBendRange is the number of semitones spanned by a
	// full-scale bend. Zero means DefaultPitchBendRange.
	PitchBendRange int

	// Programs are 1-based General MIDI programs per part; parts
	// beyond the last entry reuse it, zero entries select none.
	Programs []int

	// Name labels the Scala scale description.
	Name string
}

// Rendering is one encoded piece.
type Rendering struct {
	// SMF is the complete standard MIDI file.
	SMF []byte

	// PartChannels lists the channels carrying each part, in source
	// part order.
	PartChannels [][]int

	// Tuning holds the Scala sidecar files, nil for pitch-bend tuning.
	Tuning *scala.Tuning
}

// Encode renders the piece as a Format-1 MIDI file: one tempo track,
// then one track per part in source order, all sharing the tempo and
// tick division. Tempering markers are resolved first and frequencies
// are fixed against the reference before any bytes are laid down; on
// any error no partial output is produced.
func Encode(piece music.Piece, opts Options) (*Rendering, error) {
	if opts.TimeUnit <= 0 {
		return nil, encodingErrorf(ErrCodeBadOptions,
			"time unit %v is not positive", opts.TimeUnit)
	}
	pitchBendRange := opts.PitchBendRange
	if pitchBendRange == 0 {
		pitchBendRange = DefaultPitchBendRange
	}
	if pitchBendRange < 0 {
		return nil, encodingErrorf(ErrCodeBadOptions,
			"pitch bend range %d is not positive", opts.PitchBendRange)
	}

	resolved, err := eval.ResolveMarkers(piece)
	if err != nil {
		return nil, err
	}
	evaluated, err := eval.Evaluate(resolved, opts.ReferenceFrequency)
	if err != nil {
		return nil, err
	}

	var (
		tracks       [][]byte
		partChannels [][]int
		tuning       *scala.Tuning
	)
	switch opts.Tuning {
	case TuningScala:
		name := opts.Name
		if name == "" {
			name = "partch"
		}
		tuning, err = scala.ForMidi(resolved, opts.ReferenceFrequency, name)
		if err != nil {
			return nil, err
		}
		tracks, partChannels, err = scalaPartTracks(evaluated, tuning)
	case TuningPitchBend, "":
		tracks, partChannels, err = partTracks(evaluated, opts.Programs, pitchBendRange)
	default:
		return nil, encodingErrorf(ErrCodeBadOptions,
			"unknown tuning method %q", opts.Tuning)
	}
	if err != nil {
		return nil, err
	}

	tempo, err := TempoTrack(opts.TimeUnit)
	if err != nil {
		return nil, err
	}

	smf := fileHeader(1 + len(tracks))
	smf = append(smf, tempo...)
	for _, t := range tracks {
		smf = append(smf, t...)
	}
	return &Rendering{SMF: smf, PartChannels: partChannels, Tuning: tuning}, nil
}

// fileHeader builds the MThd chunk: format 1, track count, ticks per
// quarter note.
func fileHeader(tracks int) []byte {
	header := make([]byte, 0, 14)
	header = append(header, "MThd"...)
	header = binary.BigEndian.AppendUint32(header, 6)
	header = binary.BigEndian.AppendUint16(header, 1)
	header = binary.BigEndian.AppendUint16(header, uint16(tracks))
	header = binary.BigEndian.AppendUint16(header, Division)
	return header
}
