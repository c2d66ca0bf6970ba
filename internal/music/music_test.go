package music

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partch/internal/ratio"
)

func note(t *testing.T, num, den int64) Note {
	t.Helper()
	r, err := ratio.New(num, den)
	require.NoError(t, err)
	n, err := NewNote(ratio.ProductOf(r), ratio.One(), ratio.One())
	require.NoError(t, err)
	return n
}

func TestNewNoteValidation(t *testing.T) {
	freq := ratio.ProductOf(ratio.One())

	_, err := NewNote(freq, ratio.Zero(), ratio.One())
	assert.True(t, IsModelError(err, ErrCodeNonPositiveDuration))

	_, err = NewNote(freq, ratio.One(), ratio.Zero())
	assert.True(t, IsModelError(err, ErrCodeNonPositiveVolume))

	_, err = NewNote(freq, ratio.One(), ratio.One())
	assert.NoError(t, err)
}

func TestRest(t *testing.T) {
	rest, err := NewNote(ratio.ProductOf(ratio.Zero()), ratio.One(), ratio.One())
	require.NoError(t, err)
	assert.True(t, rest.IsRest())
	assert.True(t, math.IsNaN(rest.Cents()))

	assert.False(t, note(t, 3, 2).IsRest())
}

func TestCents(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		want     float64
	}{
		{"unison", 1, 1, 0.0},
		{"major_third", 5, 4, 386.314},
		{"fifth", 3, 2, 701.955},
		{"octave", 2, 1, 1200.0},
		{"minor_third", 6, 5, 315.641},
		{"septimal_third", 7, 6, 266.871},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, note(t, tt.num, tt.den).Cents(), 1e-9)
		})
	}
}

func TestTemperedCents(t *testing.T) {
	n := Note{
		Frequency: ratio.NewPower(3, 12),
		Duration:  ratio.One(),
		Volume:    ratio.One(),
	}
	assert.InDelta(t, 300.0, n.Cents(), 1e-9)
}

func TestNoteString(t *testing.T) {
	assert.Equal(t, "Note(frequency=5/4, cents=386.314, duration=1)", note(t, 5, 4).String())

	loud := note(t, 3, 2)
	v, err := ratio.New(1, 2)
	require.NoError(t, err)
	loud.Volume = v
	assert.Equal(t, "Note(frequency=3/2, cents=701.955, duration=1, volume=1/2)", loud.String())
}

func TestMapNotesPreservesShape(t *testing.T) {
	piece := Piece{
		Part{note(t, 1, 1), Chord{note(t, 5, 4), note(t, 3, 2)}},
		Part{note(t, 1, 2)},
	}
	double := func(n Note) Note {
		n.Duration = n.Duration.Mul(ratio.FromInt(2))
		return n
	}
	got := MapNotes(piece, double).(Piece)

	require.Len(t, got, 2)
	require.Len(t, got[0], 2)
	assert.Equal(t, ratio.FromInt(2), got[0][0].(Note).Duration)
	assert.Equal(t, ratio.FromInt(2), got[0][1].(Chord)[1].Duration)
	// Original untouched.
	assert.Equal(t, ratio.One(), piece[0][0].(Note).Duration)
}

func TestMapNotesErrAborts(t *testing.T) {
	piece := Piece{Part{note(t, 1, 1), note(t, 3, 2)}}
	wantErr := NewModelError(ErrCodeBadDivisions, "boom")
	_, err := MapNotesErr(piece, func(n Note) (Note, error) {
		return Note{}, wantErr
	})
	assert.True(t, IsModelError(err, ErrCodeBadDivisions))
}

func TestSprint(t *testing.T) {
	piece := Piece{Part{note(t, 5, 4), Chord{note(t, 1, 1), note(t, 3, 2)}}}
	want := "(\n" +
		"  [\n" +
		"    Note(frequency=5/4, cents=386.314, duration=1),\n" +
		"    (\n" +
		"      Note(frequency=1, cents=0.000, duration=1),\n" +
		"      Note(frequency=3/2, cents=701.955, duration=1),\n" +
		"    ),\n" +
		"  ],\n" +
		"),\n"
	assert.Equal(t, want, Sprint(piece))
}
