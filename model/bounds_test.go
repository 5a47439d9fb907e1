package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveBounds(t *testing.T) {
	tag := TagType{Key: "salida", PreSec: 3, PostSec: 8}

	start, end, err := DeriveBounds(501, tag)
	require.NoError(t, err)
	assert.Equal(t, 498.0, start)
	assert.Equal(t, 509.0, end)

	// Near the beginning of the video the start is clamped to zero.
	start, end, err = DeriveBounds(1, tag)
	require.NoError(t, err)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 9.0, end)
}

func TestDeriveBoundsRejectsEmptyWindow(t *testing.T) {
	tag := TagType{Key: "broken", PreSec: 0, PostSec: -5}

	_, _, err := DeriveBounds(10, tag)
	require.ErrorIs(t, err, ErrEmptyClipWindow)

	_, _, err = DeriveBounds(0, TagType{Key: "zero"})
	require.ErrorIs(t, err, ErrEmptyClipWindow)
}

func TestAdjustBoundScenario(t *testing.T) {
	c := Clip{TSec: 501, StartSec: 498, EndSec: 509}

	for range 4 {
		require.NoError(t, c.AdjustBound(BoundStart, -1))
	}
	assert.Equal(t, 494.0, c.StartSec)

	require.NoError(t, c.AdjustBound(BoundEnd, 1))
	assert.Equal(t, 510.0, c.EndSec)
}

func TestAdjustBoundKeepsInvariant(t *testing.T) {
	deltas := []float64{-100, -1, 1, 3, 7, 50, -0.5}
	for _, bound := range []Bound{BoundStart, BoundEnd} {
		for _, d := range deltas {
			c := Clip{StartSec: 2, EndSec: 6}
			require.NoError(t, c.AdjustBound(bound, d))
			assert.GreaterOrEqual(t, c.StartSec, 0.0, "bound=%s delta=%v", bound, d)
			assert.Less(t, c.StartSec, c.EndSec, "bound=%s delta=%v", bound, d)
		}
	}
}

func TestAdjustBoundPastOtherClampsToOneSecond(t *testing.T) {
	c := Clip{StartSec: 10, EndSec: 12}
	require.NoError(t, c.AdjustBound(BoundStart, 5))
	assert.Equal(t, 11.0, c.StartSec)
	assert.Equal(t, 12.0, c.EndSec)

	c = Clip{StartSec: 10, EndSec: 12}
	require.NoError(t, c.AdjustBound(BoundEnd, -5))
	assert.Equal(t, 11.0, c.EndSec)
}

func TestNonFiniteTimesRejected(t *testing.T) {
	tag := TagType{Key: "salida", PreSec: 3, PostSec: 8}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err := DeriveBounds(v, tag)
		assert.ErrorIs(t, err, ErrNotFinite, "t=%v", v)

		for _, bound := range []Bound{BoundStart, BoundEnd} {
			c := Clip{StartSec: 498, EndSec: 509}
			assert.ErrorIs(t, c.AdjustBound(bound, v), ErrNotFinite, "bound=%s delta=%v", bound, v)
			assert.Equal(t, Clip{StartSec: 498, EndSec: 509}, c, "clip untouched")
		}
	}

	_, _, err := DeriveBounds(10, TagType{Key: "odd", PreSec: math.NaN(), PostSec: 8})
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestAdjustBoundUnknown(t *testing.T) {
	c := Clip{StartSec: 1, EndSec: 2}
	assert.Error(t, c.AdjustBound(Bound("middle"), 1))
}

func TestParseFlag(t *testing.T) {
	f, err := ParseFlag("2")
	require.NoError(t, err)
	assert.Equal(t, FlagACorregir, f)

	f, err = ParseFlag(" Importante ")
	require.NoError(t, err)
	assert.Equal(t, FlagImportante, f)

	_, err = ParseFlag("has_chat")
	assert.Error(t, err)

	f, err = ParseFilterFlag("chat")
	require.NoError(t, err)
	assert.Equal(t, FlagHasChat, f)
}

func TestNewTagTypeDefaults(t *testing.T) {
	tag := NewTagType(TagTypeInput{Label: "Penal Corto"}, 12)
	assert.Equal(t, "penal_corto", tag.Key)
	assert.Equal(t, "tag-penal_corto", tag.ID)
	assert.Equal(t, RowOwn, tag.Row)
	assert.Equal(t, 3.0, tag.PreSec)
	assert.Equal(t, 8.0, tag.PostSec)
	assert.Equal(t, 13, tag.Order)
}
