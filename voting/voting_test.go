// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		from      State
		directive Directive
		wantTo    State
		wantDelta int
		wantFlip  bool
		wantErr   error
	}{
		{"first up", NoVote, Up, Upvoted, 1, false, nil},
		{"first down", NoVote, Down, Downvoted, -1, false, nil},
		{"flip up to down", Upvoted, Down, Downvoted, -1, true, nil},
		{"flip down to up", Downvoted, Up, Upvoted, 1, true, nil},
		{"repeat up", Upvoted, Up, NoVote, 0, false, ErrDuplicateVote},
		{"repeat down", Downvoted, Down, NoVote, 0, false, ErrDuplicateVote},
		{"unknown directive", NoVote, Directive("maybe"), NoVote, 0, false, ErrInvalidDirective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.from, tt.directive)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Transition{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, got.From)
			assert.Equal(t, tt.wantTo, got.To)
			assert.Equal(t, tt.wantDelta, got.Delta)
			assert.Equal(t, tt.wantFlip, got.Flip)
		})
	}
}

func TestDuplicateVoteMessage(t *testing.T) {
	_, err := Apply(Upvoted, Up)
	assert.EqualError(t, err, "already voted up")

	_, err = Apply(Downvoted, Down)
	assert.EqualError(t, err, "already voted down")

	var dup *DuplicateVoteError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, Down, dup.Directive)
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		token   string
		want    Directive
		wantErr bool
	}{
		{"up", Up, false},
		{"down", Down, false},
		{"UP", "", true},
		{" up", "", true},
		{"", "", true},
		{"sideways", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseDirective(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDirective)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateOf(t *testing.T) {
	for _, s := range []State{NoVote, Upvoted, Downvoted} {
		got, err := StateOf(s.Directive())
		require.NoError(t, err)
		assert.Equal(t, s, got, s.String())
	}

	_, err := StateOf("left")
	assert.ErrorIs(t, err, ErrInvalidDirective)
}

func TestApplyScore(t *testing.T) {
	assert.Equal(t, 2, ApplyScore(1, 1))
	assert.Equal(t, 0, ApplyScore(1, -1))
	assert.Equal(t, 0, ApplyScore(0, -1))
	assert.Equal(t, 1, ApplyScore(0, 1))
}

// Replaying a sequence of accepted votes through Apply and ApplyScore
// must never drop below zero and must end on the same ledger regardless
// of how distinct voters interleave.
func TestVoteSequences(t *testing.T) {
	type vote struct {
		voter string
		d     Directive
	}

	replay := func(votes []vote) (int, map[string]State) {
		score := 1
		ledger := map[string]State{"creator": Upvoted}
		for _, v := range votes {
			tr, err := Apply(ledger[v.voter], v.d)
			if errors.Is(err, ErrDuplicateVote) {
				continue
			}
			require.NoError(t, err)
			ledger[v.voter] = tr.To
			score = ApplyScore(score, tr.Delta)
			require.GreaterOrEqual(t, score, 0)
		}
		return score, ledger
	}

	votes := []vote{{"a", Up}, {"b", Up}, {"c", Up}}
	reversed := []vote{{"c", Up}, {"b", Up}, {"a", Up}}

	s1, l1 := replay(votes)
	s2, l2 := replay(reversed)
	assert.Equal(t, 4, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, l1, l2)

	// Down votes on a low score clamp, so later up votes count from zero.
	s3, _ := replay([]vote{{"a", Down}, {"b", Down}, {"c", Down}, {"a", Up}})
	assert.Equal(t, 1, s3)

	// Repeats are ignored entirely.
	s4, _ := replay([]vote{{"creator", Up}, {"a", Up}, {"a", Up}, {"a", Up}})
	assert.Equal(t, 2, s4)
}
