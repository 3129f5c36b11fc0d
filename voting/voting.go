// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDirective = errors.New("invalid vote type")
	ErrDuplicateVote    = errors.New("duplicate vote")
)

// Directive is a guest's vote intent.
type Directive string

const (
	Up   Directive = "up"
	Down Directive = "down"
)

// State is what the ledger holds for one (request, voter) pair.
type State int

const (
	NoVote State = iota
	Upvoted
	Downvoted
)

func (s State) String() string {
	switch s {
	case Upvoted:
		return "upvoted"
	case Downvoted:
		return "downvoted"
	}
	return "no_vote"
}

// Directive returns the directive stored for s, or "" for NoVote.
func (s State) Directive() Directive {
	switch s {
	case Upvoted:
		return Up
	case Downvoted:
		return Down
	}
	return ""
}

// ParseDirective validates a vote type token from a request body.
// Matching is exact: "UP" or " up" are rejected.
func ParseDirective(token string) (Directive, error) {
	switch Directive(token) {
	case Up, Down:
		return Directive(token), nil
	}
	return "", fmt.Errorf("%w: %q (must be \"up\" or \"down\")", ErrInvalidDirective, token)
}

// StateOf maps a stored directive back to a ledger state.
// An empty directive means no ledger row exists.
func StateOf(d Directive) (State, error) {
	switch d {
	case "":
		return NoVote, nil
	case Up:
		return Upvoted, nil
	case Down:
		return Downvoted, nil
	}
	return NoVote, fmt.Errorf("%w: stored directive %q", ErrInvalidDirective, string(d))
}

// Transition is the outcome of applying one directive to a ledger state.
type Transition struct {
	From  State
	To    State
	Delta int
	Flip  bool
}

// Apply computes the transition for directive d arriving on state s.
// Repeating the current directive returns ErrDuplicateVote and a zero Transition.
func Apply(s State, d Directive) (Transition, error) {
	if d != Up && d != Down {
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidDirective, string(d))
	}

	if s.Directive() == d {
		return Transition{}, &DuplicateVoteError{Directive: d}
	}

	t := Transition{From: s, Flip: s != NoVote}
	if d == Up {
		t.To = Upvoted
		t.Delta = 1
	} else {
		t.To = Downvoted
		t.Delta = -1
	}
	return t, nil
}

// ApplyScore returns max(0, score+delta).
// The floor is applied to the running total after every accepted vote,
// so a clamped step is not remembered by later steps.
func ApplyScore(score, delta int) int {
	next := score + delta
	if next < 0 {
		return 0
	}
	return next
}

// DuplicateVoteError reports a repeated directive from the same voter.
// It matches ErrDuplicateVote under errors.Is.
type DuplicateVoteError struct {
	Directive Directive
}

func (e *DuplicateVoteError) Error() string {
	return "already voted " + string(e.Directive)
}

func (e *DuplicateVoteError) Is(target error) bool {
	return target == ErrDuplicateVote
}
