package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/ratio"
)

func parse(t *testing.T, input string) music.Piece {
	t.Helper()
	piece, err := Parse(input)
	require.NoError(t, err)
	return piece
}

func r(t *testing.T, num, den int64) ratio.Ratio {
	t.Helper()
	v, err := ratio.New(num, den)
	require.NoError(t, err)
	return v
}

func TestSingleNote(t *testing.T) {
	piece := parse(t, "7/5:1")
	require.Len(t, piece, 1)
	require.Len(t, piece[0], 1)

	note := piece[0][0].(music.Note)
	assert.Equal(t, "7/5", note.Frequency.String())
	assert.Equal(t, ratio.One(), note.Duration)
	assert.Equal(t, ratio.One(), note.Volume)
	assert.Zero(t, note.EDO)
}

func TestNoteDefaults(t *testing.T) {
	note := parse(t, "3/2:1/4:1/2")[0][0].(music.Note)
	assert.Equal(t, r(t, 1, 4), note.Duration)
	assert.Equal(t, r(t, 1, 2), note.Volume)
}

func TestDurationProductIsReduced(t *testing.T) {
	note := parse(t, "1:1/4*2")[0][0].(music.Note)
	assert.Equal(t, r(t, 1, 2), note.Duration)
}

func TestChordSharesDurationAndVolume(t *testing.T) {
	chord := parse(t, "<1 5/4 3/2>:2:3/4")[0][0].(music.Chord)
	require.Len(t, chord, 3)
	for _, n := range chord {
		assert.Equal(t, ratio.FromInt(2), n.Duration)
		assert.Equal(t, r(t, 3, 4), n.Volume)
	}
	// Bottom-to-top order preserved.
	assert.Equal(t, "1", chord[0].Frequency.String())
	assert.Equal(t, "5/4", chord[1].Frequency.String())
	assert.Equal(t, "3/2", chord[2].Frequency.String())
}

func TestMultiplierDistributesIntoChord(t *testing.T) {
	chord := parse(t, "9/8*<1 9/8 5/4 3/2>:2")[0][0].(music.Chord)
	require.Len(t, chord, 4)

	want := []ratio.Ratio{r(t, 9, 8), r(t, 81, 64), r(t, 45, 32), r(t, 27, 16)}
	for i, n := range chord {
		product := n.Frequency.(ratio.RatioProduct)
		assert.Equal(t, want[i], product.Value())
	}
	// Factors stay visible: the root is factored out, not multiplied in.
	assert.Equal(t, "9/8*5/4", chord[2].Frequency.String())
}

func TestMultiplierDistributesThroughGroup(t *testing.T) {
	part := parse(t, "3/2*(1:1 <1 5/4>:1)")[0]
	require.Len(t, part, 2)

	note := part[0].(music.Note)
	assert.Equal(t, "3/2*1", note.Frequency.String())

	chord := part[1].(music.Chord)
	assert.Equal(t, r(t, 15, 8), chord[1].Frequency.(ratio.RatioProduct).Value())
}

func TestMultiplierChainAppliesInOrder(t *testing.T) {
	note := parse(t, "2*3/2*5/4:1")[0][0].(music.Note)
	assert.Equal(t, "2*3/2*5/4", note.Frequency.String())
	assert.Equal(t, r(t, 15, 4), note.Frequency.(ratio.RatioProduct).Value())
}

func TestGroupFlattensIntoPart(t *testing.T) {
	part := parse(t, "(1:1 2:1) 3:1")[0]
	require.Len(t, part, 3)
}

func TestTemperingMarker(t *testing.T) {
	note := parse(t, "3/2:1**12")[0][0].(music.Note)
	assert.Equal(t, 12, note.EDO)
	// The marker is carried, not resolved: frequency stays exact.
	_, ok := note.Frequency.(ratio.RatioProduct)
	assert.True(t, ok)
}

func TestTemperingMarkerCoversGroup(t *testing.T) {
	part := parse(t, "(1:1 <1 5/4>:1)**19")[0]
	assert.Equal(t, 19, part[0].(music.Note).EDO)
	for _, n := range part[1].(music.Chord) {
		assert.Equal(t, 19, n.EDO)
	}
}

func TestInnerTemperingMarkerWins(t *testing.T) {
	part := parse(t, "(5/4:1**31 3/2:1)**12")[0]
	assert.Equal(t, 31, part[0].(music.Note).EDO)
	assert.Equal(t, 12, part[1].(music.Note).EDO)
}

func TestParts(t *testing.T) {
	piece := parse(t, "2:1 3/2:1; 1/2:2")
	require.Len(t, piece, 2)
	assert.Len(t, piece[0], 2)
	assert.Len(t, piece[1], 1)
}

func TestRest(t *testing.T) {
	note := parse(t, "0:1")[0][0].(music.Note)
	assert.True(t, note.IsRest())
}

func TestEmptyInput(t *testing.T) {
	piece := parse(t, "")
	require.Len(t, piece, 1)
	assert.Empty(t, piece[0])
}

func TestModelErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  music.ModelErrorCode
	}{
		{"zero_denominator", "1/0:1", music.ErrCodeZeroDenominator},
		{"zero_denominator_duration", "1:1/0", music.ErrCodeZeroDenominator},
		{"empty_chord", "<>:1", music.ErrCodeEmptyChord},
		{"zero_duration", "1:0", music.ErrCodeNonPositiveDuration},
		{"zero_volume", "1:1:0", music.ErrCodeNonPositiveVolume},
		{"fractional_divisions", "1:1**3/2", music.ErrCodeBadDivisions},
		{"zero_divisions", "1:1**0", music.ErrCodeBadDivisions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, music.IsModelError(err, tt.code), "got %v", err)
		})
	}
}
