// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"sort"

	"github.com/danielhkuo/request-queue/models"
)

// Rank orders requests for the queue view in place and returns the slice.
//
// Ordering criteria (lexicographic):
//  1. Higher score first
//  2. Earlier creation time first
//  3. Request ID ascending, so equal timestamps still order the same way on every read
func Rank(requests []models.Request) []models.Request {
	sort.SliceStable(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]

		if a.Score != b.Score {
			return a.Score > b.Score
		}

		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}

		return a.ID < b.ID
	})
	return requests
}
