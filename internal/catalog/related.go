package catalog

import (
	"math"
	"sort"
)

const (
	categoryWeight = 10.0

	priceWeight  = 5.0
	priceWindow  = 0.5
	lengthWeight = 3.0
	lengthWindow = 0.2
	yearWeight   = 2.0
	yearWindow   = 5
)

// Score is the similarity of candidate to reference. It is always >= 0.
func Score(reference, candidate Yacht) float64 {
	var score float64

	if candidate.Category == reference.Category {
		score += categoryWeight
	}

	// A zero reference price has no relative gap, so it scores like a missing one.
	if reference.Price != nil && candidate.Price != nil && *reference.Price > 0 {
		d := math.Abs(*candidate.Price-*reference.Price) / *reference.Price
		if d < priceWindow {
			score += priceWeight * (1 - d)
		}
	}

	if reference.LengthM > 0 {
		d := math.Abs(candidate.LengthM-reference.LengthM) / reference.LengthM
		if d < lengthWindow {
			score += lengthWeight * (1 - d)
		}
	}

	dy := candidate.YearBuilt - reference.YearBuilt
	if dy < 0 {
		dy = -dy
	}
	if dy <= yearWindow {
		score += yearWeight * (1 - float64(dy)/yearWindow)
	}

	return score
}

type scored struct {
	yacht Yacht
	score float64
}

// Related returns at most k available yachts from collection, most similar to
// reference first. Equal scores keep collection order.
func Related(collection []Yacht, reference Yacht, k int) []Yacht {
	if k <= 0 {
		return []Yacht{}
	}

	candidates := make([]scored, 0, len(collection))
	for _, y := range collection {
		if y.ID == reference.ID || !y.IsAvailable() {
			continue
		}
		candidates = append(candidates, scored{yacht: y, score: Score(reference, y)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	out := make([]Yacht, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.yacht.clone())
	}
	return out
}
