package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vieraprotocol/subvet/internal/domain"
)

func scores(sec, tech, orig, comp float64) map[domain.Category]float64 {
	return map[domain.Category]float64{
		domain.CategorySecurity:     sec,
		domain.CategoryTechnical:    tech,
		domain.CategoryOriginality:  orig,
		domain.CategoryCompleteness: comp,
	}
}

func TestScore_WeightedMean(t *testing.T) {
	s := NewScorer(nil)

	// 80*.35 + 70*.30 + 85*.20 + 80*.15 = 78.
	got := s.Score(scores(80, 70, 85, 80))
	assert.Equal(t, 78, got)
}

func TestScore_EmptyScoresAreNeutral(t *testing.T) {
	s := NewScorer(nil)
	assert.Equal(t, 50, s.Score(map[domain.Category]float64{}))
	assert.Equal(t, 50, s.Score(nil))
}

func TestScore_MissingCategoriesRenormalize(t *testing.T) {
	s := NewScorer(nil)

	// Only security present: the mean is the security score itself, and the
	// bonus lifts it since every present category clears 85.
	got := s.Score(map[domain.Category]float64{domain.CategorySecurity: 90})
	assert.Equal(t, 95, got)

	// Below the bonus threshold no adjustment fires.
	got = s.Score(map[domain.Category]float64{domain.CategorySecurity: 80})
	assert.Equal(t, 80, got)
}

func TestScore_UnknownCategoriesIgnored(t *testing.T) {
	s := NewScorer(nil)

	got := s.Score(map[domain.Category]float64{
		domain.CategorySecurity: 80,
		domain.Category("mood"): 10,
	})
	assert.Equal(t, 80, got)
}

func TestScore_LowSecurityPenalty(t *testing.T) {
	s := NewScorer(nil)

	// Mean 74.25, security below 50 multiplies by 0.3.
	got := s.Score(scores(40, 90, 95, 95))
	assert.Equal(t, 22, got)
}

func TestScore_ModerateSecurityPenalty(t *testing.T) {
	s := NewScorer(nil)

	// Mean 83.8, security in [50,70) multiplies by 0.7.
	got := s.Score(scores(60, 95, 98, 98))
	assert.Equal(t, 59, got)
}

func TestScore_PenaltiesCompound(t *testing.T) {
	s := NewScorer(nil)

	// Security 40 and technical 20 both fail their gates: 0.3 * 0.5.
	// Mean = 40*.35 + 20*.30 + 95*.20 + 95*.15 = 53.25 -> 7.9875 -> 8.
	got := s.Score(scores(40, 20, 95, 95))
	assert.Equal(t, 8, got)
}

func TestScore_BonusCapsAtHundred(t *testing.T) {
	s := NewScorer(nil)

	got := s.Score(scores(100, 100, 100, 100))
	assert.Equal(t, 100, got)
}

func TestScore_Bonus(t *testing.T) {
	s := NewScorer(nil)

	// Mean 86.15 with everything at or above 85 takes the 1.05 bonus.
	got := s.Score(scores(85, 86, 87, 88))
	assert.Equal(t, 90, got)
}

func TestScore_NoBonusWhenOneCategoryLags(t *testing.T) {
	s := NewScorer(nil)

	// Mean 89.95 but technical sits below 85, so no bonus applies.
	got := s.Score(scores(90, 84, 95, 95))
	assert.Equal(t, 90, got)
}

func TestScore_CustomWeights(t *testing.T) {
	s := NewScorer(map[domain.Category]float64{
		domain.CategorySecurity:  1,
		domain.CategoryTechnical: 1,
	})

	got := s.Score(map[domain.Category]float64{
		domain.CategorySecurity:  80,
		domain.CategoryTechnical: 70,
	})
	assert.Equal(t, 75, got)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "high", Label(85))
	assert.Equal(t, "medium", Label(70))
	assert.Equal(t, "low", Label(50))
	assert.Equal(t, "very_low", Label(49))
}
