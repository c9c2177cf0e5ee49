package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDifficulty("Expert")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid difficulty level. Must be one of: Beginner, Intermediate, Advanced, All", err.Error())

	_, err = ParseDifficulty("beginner")
	assert.Error(t, err)
}

func TestNormalizeDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"beginner":       Beginner,
		"ADVANCED":       Advanced,
		" Intermediate.": Intermediate,
		"**Advanced**":   Advanced,
	}
	for in, want := range cases {
		got, ok := NormalizeDifficulty(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := NormalizeDifficulty("All")
	assert.False(t, ok)
	_, ok = NormalizeDifficulty("Hard")
	assert.False(t, ok)
}

func TestDifficultyMatches(t *testing.T) {
	assert.True(t, AllDifficulties.Matches(Beginner))
	assert.True(t, Advanced.Matches(Advanced))
	assert.False(t, Advanced.Matches(Beginner))
}
