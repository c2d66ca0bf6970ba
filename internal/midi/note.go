package midi

import (
	"math"

	"github.com/roach88/partch/internal/eval"
	"github.com/roach88/partch/internal/ratio"
	"github.com/roach88/partch/internal/scala"
)

// Division is the number of MIDI ticks per quarter note. 960*7 keeps
// durations with sevens in the denominator on whole ticks.
const Division = 6720

const (
	pitchBendCenter = 0x2000
	pitchBendMax    = 0x3FFF
)

// middleCHz is the frequency of MIDI note 60 in twelve-tone equal
// temperament at A4 = 440 Hz.
var middleCHz = 440 * math.Exp2(-9.0/12.0)

// midiNote is one note reduced to the fields MIDI events carry.
type midiNote struct {
	pitch    uint8
	bend     uint16
	ticks    int64
	velocity uint8
}

// noteTicks converts an exact duration in beats to MIDI ticks, one beat
// per quarter note.
func noteTicks(d ratio.Ratio) (int64, error) {
	t := d.Mul(ratio.FromInt(Division))
	if !t.IsInteger() {
		return 0, encodingErrorf(ErrCodeFractionalTicks,
			"duration %s is not a whole number of ticks at division %d", d, Division)
	}
	return t.Num(), nil
}

// bentNote converts a resolved note for pitch-bend tuning. The
// frequency maps to the nearest equal-tempered note number and the
// residual becomes a bend scaled by pitchBendRange, the number of
// semitones a full-scale bend spans. Ties round to even, bends clamp to
// the wheel's range.
func bentNote(n eval.Note, pitchBendRange int) (midiNote, error) {
	ticks, err := noteTicks(n.Duration)
	if err != nil {
		return midiNote{}, err
	}
	if n.IsRest() {
		return midiNote{pitch: 0, bend: pitchBendCenter, ticks: ticks, velocity: 0}, nil
	}

	exactSemitones := 12 * math.Log2(n.Hz/middleCHz)
	nearest := math.RoundToEven(exactSemitones)
	pitch := 60 + int(nearest)
	if pitch < 0 || pitch > 127 {
		return midiNote{}, encodingErrorf(ErrCodePitchOutOfRange,
			"frequency %.3f Hz maps to MIDI note %d, outside 0..127", n.Hz, pitch)
	}

	remainder := exactSemitones - nearest
	bend := math.RoundToEven(pitchBendCenter +
		remainder*(pitchBendMax-pitchBendCenter)/float64(pitchBendRange))
	bend = math.Min(math.Max(bend, 0), pitchBendMax)

	return midiNote{
		pitch:    uint8(pitch),
		bend:     uint16(bend),
		ticks:    ticks,
		velocity: velocity(n.Volume),
	}, nil
}

// mappedNote converts a resolved note for Scala tuning, where the pitch
// is the note number the keyboard mapping retunes to the note's exact
// frequency.
func mappedNote(n eval.Note, tuning *scala.Tuning) (midiNote, error) {
	ticks, err := noteTicks(n.Duration)
	if err != nil {
		return midiNote{}, err
	}
	if n.IsRest() {
		return midiNote{pitch: 0, bend: pitchBendCenter, ticks: ticks, velocity: 0}, nil
	}
	pitch, ok := tuning.Pitch(n.Frequency)
	if !ok {
		return midiNote{}, encodingErrorf(ErrCodeUnmappedFrequency,
			"frequency %s has no entry in the keyboard mapping", n.Frequency)
	}
	return midiNote{
		pitch:    uint8(pitch),
		bend:     pitchBendCenter,
		ticks:    ticks,
		velocity: velocity(n.Volume),
	}, nil
}

// velocity maps a volume to a MIDI velocity, volume 1 landing on 64 and
// anything from 2 up saturating at 127.
func velocity(volume ratio.Ratio) uint8 {
	v := math.RoundToEven(volume.Float() * 64)
	if v > 127 {
		v = 127
	}
	return uint8(v)
}
