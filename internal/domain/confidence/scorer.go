// Package confidence reduces per-category scores into one [0,100] integer
// via a weighted mean followed by ordered multiplicative adjustments.
package confidence

import (
	"math"

	"github.com/vieraprotocol/subvet/internal/domain"
)

const (
	defaultScore = 50

	lowSecurityThreshold      = 50
	moderateSecurityThreshold = 70
	lowTechnicalThreshold     = 30
	bonusThreshold            = 85

	lowSecurityMultiplier      = 0.3
	moderateSecurityMultiplier = 0.7
	lowTechnicalMultiplier     = 0.5
	bonusMultiplier            = 1.05
)

// Scorer computes overall confidence from category scores. The weight table
// is fixed at construction and never mutated.
type Scorer struct {
	weights map[domain.Category]float64
}

// NewScorer creates a confidence scorer with the given category weights.
// Nil weights fall back to the engine defaults.
func NewScorer(weights map[domain.Category]float64) *Scorer {
	if len(weights) == 0 {
		weights = domain.DefaultConfig().Weights
	}
	w := make(map[domain.Category]float64, len(weights))
	for cat, v := range weights {
		w[cat] = v
	}
	return &Scorer{weights: w}
}

// Score computes the overall confidence for the given category scores.
// Missing categories renormalize the weights rather than dragging the mean
// toward zero; with no recognized category present the result is neutral.
func (s *Scorer) Score(scores map[domain.Category]float64) int {
	var weighted, totalWeight float64
	for cat, score := range scores {
		w, ok := s.weights[cat]
		if !ok {
			continue
		}
		weighted += score * w
		totalWeight += w
	}

	base := float64(defaultScore)
	if totalWeight > 0 {
		base = weighted / totalWeight
	}

	adjusted := s.adjust(scores, base)
	return domain.ClampScore(int(math.Round(adjusted)))
}

// adjust applies the multiplicative penalties and bonus in fixed order so
// their effects compound: a submission failing both the security and the
// technical-quality gate receives the product of both penalties.
func (s *Scorer) adjust(scores map[domain.Category]float64, base float64) float64 {
	adjusted := base

	security := scoreOrDefault(scores, domain.CategorySecurity)
	switch {
	case security < lowSecurityThreshold:
		adjusted *= lowSecurityMultiplier
	case security < moderateSecurityThreshold:
		adjusted *= moderateSecurityMultiplier
	}

	if scoreOrDefault(scores, domain.CategoryTechnical) < lowTechnicalThreshold {
		adjusted *= lowTechnicalMultiplier
	}

	if len(scores) > 0 && allAtLeast(scores, bonusThreshold) {
		adjusted = math.Min(100, adjusted*bonusMultiplier)
	}

	return adjusted
}

// scoreOrDefault treats an absent category as a perfect score so that
// missing data never triggers a penalty.
func scoreOrDefault(scores map[domain.Category]float64, cat domain.Category) float64 {
	if v, ok := scores[cat]; ok {
		return v
	}
	return 100
}

func allAtLeast(scores map[domain.Category]float64, threshold float64) bool {
	for _, v := range scores {
		if v < threshold {
			return false
		}
	}
	return true
}

// Label categorizes a confidence score for human-readable output.
func Label(confidence int) string {
	switch {
	case confidence >= 85:
		return "high"
	case confidence >= 70:
		return "medium"
	case confidence >= 50:
		return "low"
	default:
		return "very_low"
	}
}
