// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting holds the pure vote rules: the per-voter state machine,
the score floor and queue ranking. It has no database access.

# State Machine

	NoVote    + up   → Upvoted    (+1)
	NoVote    + down → Downvoted  (-1)
	Upvoted   + down → Downvoted  (-1, flip)
	Downvoted + up   → Upvoted    (+1, flip)
	Upvoted   + up   → rejected (ErrDuplicateVote)
	Downvoted + down → rejected (ErrDuplicateVote)

A flip moves the score by one, not two.

# Score

	newScore = max(0, score + delta)

# Ranking

Rank sorts by score descending, then creation time ascending, then ID.
*/
package voting
